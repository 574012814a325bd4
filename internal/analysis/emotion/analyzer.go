package emotion

import (
	"math"
	"strings"
)

// Label 表示一组表情整体传达的情绪。
type Label string

const (
	Neutral Label = "neutral"
	Happy   Label = "happy"
	Sad     Label = "sad"
	Angry   Label = "angry"
	Anxious Label = "anxious"
	Tired   Label = "tired"
	Loving  Label = "loving"
	Unwell  Label = "unwell"
)

// Labels lists every label in a stable order for summaries.
var Labels = []Label{Happy, Loving, Neutral, Tired, Anxious, Sad, Angry, Unwell}

// Decision 给出情绪识别结果以及强度。
type Decision struct {
	Emotion Label
	Scale   float32
	Score   int
}

var emojiBuckets = map[Label][]string{
	Happy: {
		"😀", "😃", "😊", "🥳", "😆", "😅", "😇", "🤗", "😎", "😜", "🤪", "😋", "😺", "😸", "😹", "🙃", "🤑",
	},
	Loving: {
		"😍", "🥰", "😚", "😻", "💖", "💘", "💝", "💞", "💋", "💟", "🧡", "💛", "💚", "💙", "💜", "🤍", "🤎",
	},
	Sad: {
		"😢", "😞", "😟", "🥺", "💔", "😿", "😩", "😣", "😖", "😕", "🖤",
	},
	Angry: {
		"😡", "😤", "😠", "🤬", "👺", "👹", "😾", "💣", "🗯️", "🙄", "😒",
	},
	Anxious: {
		"😱", "😰", "😬", "😳", "😲", "😯", "🙀", "🤯", "🫣", "🤐", "🤫", "🥶", "🥵",
	},
	Tired: {
		"😴", "😪", "🥴", "😌", "😶", "😐",
	},
	Unwell: {
		"🤢", "🤮", "🤧", "😷", "🤒", "🤕", "💀", "☠️", "🧟", "💩",
	},
}

var lookup = buildLookup()

func buildLookup() map[string]Label {
	m := make(map[string]Label)
	for label, tokens := range emojiBuckets {
		for _, tok := range tokens {
			m[tok] = label
			m[strings.TrimSuffix(tok, "\uFE0F")] = label
		}
	}
	return m
}

// Classify 根据所选表情推断整体情绪。
func Classify(tokens []string) Decision {
	scores := make(map[Label]int)
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if label, ok := lookup[tok]; ok {
			scores[label] += 3
			continue
		}
		// variation selectors are optional on some keyboards
		if label, ok := lookup[strings.TrimSuffix(tok, "\uFE0F")]; ok {
			scores[label] += 3
		}
	}

	bestLabel := Neutral
	bestScore := 0
	for _, label := range Labels {
		if s := scores[label]; s > bestScore {
			bestScore = s
			bestLabel = label
		}
	}

	if bestScore == 0 {
		return Decision{Emotion: Neutral, Scale: 3, Score: 0}
	}

	scale := 2 + float32(bestScore)/4
	if bestLabel == Tired {
		scale = float32(math.Min(3.5, float64(scale)))
	}
	if scale > 5 {
		scale = 5
	}

	return Decision{Emotion: bestLabel, Scale: scale, Score: bestScore}
}

// ClassifyString splits a concatenated record emoji back into graphemes before classifying.
func ClassifyString(joined string) Decision {
	return Classify(splitEmoji(joined))
}

// splitEmoji separates a concatenation of palette emoji, keeping variation selectors
// and zero-width joiners attached to the preceding rune.
func splitEmoji(s string) []string {
	var out []string
	var cur []rune
	joinNext := false
	for _, r := range s {
		switch {
		case r == '\uFE0F' || r == '\u20E3':
			cur = append(cur, r)
		case r == '\u200D':
			cur = append(cur, r)
			joinNext = true
		case joinNext:
			cur = append(cur, r)
			joinNext = false
		default:
			if len(cur) > 0 {
				out = append(out, string(cur))
			}
			cur = []rune{r}
		}
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}
