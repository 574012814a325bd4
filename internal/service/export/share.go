package export

import (
	"strings"
	"time"

	"github.com/zhouzirui/moodmate/backend/internal/model/mood"
)

type cardLabels struct {
	title string
	basis string
}

var labels = map[mood.Language]cardLabels{
	mood.English: {title: "Moodboard", basis: "Based on your emotions:"},
	mood.Italian: {title: "Moodboard", basis: "In base alle tue emozioni:"},
}

// ShareText renders a record as a plain-text card suitable for pasting into a chat.
func ShareText(record mood.EmotionRecord, lang mood.Language, loc *time.Location) string {
	l, ok := labels[lang]
	if !ok {
		l = labels[mood.English]
	}

	var b strings.Builder
	b.WriteString(l.title)
	b.WriteString(" · ")
	b.WriteString(mood.FormatTimestamp(record.Timestamp, loc))
	b.WriteString("\n")
	b.WriteString(l.basis)
	b.WriteString("\n")
	b.WriteString(record.Emoji)
	b.WriteString("\n")
	if record.AIResponse != nil {
		b.WriteString("\n")
		b.WriteString(record.AIResponse.Message)
		b.WriteString("\n")
		b.WriteString(record.AIResponse.Suggestion)
		b.WriteString("\n")
	}
	return b.String()
}
