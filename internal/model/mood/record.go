package mood

import (
	"strings"
	"time"
)

// Suggestion is the empathetic message plus activity pair shown after a submission.
type Suggestion struct {
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

// Complete reports whether both fields carry text.
func (s Suggestion) Complete() bool {
	return strings.TrimSpace(s.Message) != "" && strings.TrimSpace(s.Suggestion) != ""
}

// EmotionRecord is one completed submission as stored in the history.
type EmotionRecord struct {
	ID         string      `json:"id,omitempty"`
	Emoji      string      `json:"emoji"`
	Timestamp  int64       `json:"timestamp"`
	AIResponse *Suggestion `json:"aiResponse"`
}

// NewRecord joins the selected tokens into the display emoji and stamps the record.
func NewRecord(id string, tokens []string, result *Suggestion, at time.Time) EmotionRecord {
	var response *Suggestion
	if result != nil {
		copied := *result
		response = &copied
	}
	return EmotionRecord{
		ID:         id,
		Emoji:      strings.Join(tokens, ""),
		Timestamp:  at.UnixMilli(),
		AIResponse: response,
	}
}

// Time converts the epoch milliseconds back into a time.Time.
func (r EmotionRecord) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// FormatTimestamp renders a record time the way the history list shows it, e.g. "Oct 18, 03:04 PM".
func FormatTimestamp(ms int64, loc *time.Location) string {
	t := time.UnixMilli(ms)
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("Jan 2, 03:04 PM")
}
