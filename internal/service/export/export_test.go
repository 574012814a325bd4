package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/zhouzirui/moodmate/backend/internal/model/mood"
)

func sampleRecords() []mood.EmotionRecord {
	at := time.Date(2024, 10, 18, 15, 4, 0, 0, time.UTC)
	return []mood.EmotionRecord{
		mood.NewRecord("b", []string{"😢"}, &mood.Suggestion{Message: "Sorry", Suggestion: "Call a friend"}, at.Add(time.Hour)),
		mood.NewRecord("a", []string{"😀", "🥳"}, &mood.Suggestion{Message: "Nice", Suggestion: "Dance"}, at),
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleRecords(), time.UTC))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Time", "Emoji", "Emotion", "Message", "Suggestion"}, rows[0])
	assert.Equal(t, []string{"Oct 18, 04:04 PM", "😢", "sad", "Sorry", "Call a friend"}, rows[1])
	assert.Equal(t, "😀🥳", rows[2][1])
	assert.Equal(t, "happy", rows[2][2])
}

func TestWriteXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil, time.UTC))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestShareText(t *testing.T) {
	record := sampleRecords()[1]

	en := ShareText(record, mood.English, time.UTC)
	assert.True(t, strings.HasPrefix(en, "Moodboard · Oct 18, 03:04 PM\n"))
	assert.Contains(t, en, "Based on your emotions:\n😀🥳\n")
	assert.Contains(t, en, "Nice\nDance\n")

	it := ShareText(record, mood.Italian, time.UTC)
	assert.Contains(t, it, "In base alle tue emozioni:")

	bare := ShareText(mood.EmotionRecord{Emoji: "😴"}, mood.Language("xx"), time.UTC)
	assert.Contains(t, bare, "Based on your emotions:\n😴\n")
}
