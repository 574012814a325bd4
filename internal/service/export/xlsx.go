package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/zhouzirui/moodmate/backend/internal/analysis/emotion"
	"github.com/zhouzirui/moodmate/backend/internal/model/mood"
)

// SheetName is the worksheet holding the exported history.
const SheetName = "History"

var header = []any{"Time", "Emoji", "Emotion", "Message", "Suggestion"}

// WriteXLSX writes records as a single-sheet workbook, newest first.
func WriteXLSX(w io.Writer, records []mood.EmotionRecord, loc *time.Location) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, record := range records {
		var message, suggestion string
		if record.AIResponse != nil {
			message = record.AIResponse.Message
			suggestion = record.AIResponse.Suggestion
		}
		row := []any{
			mood.FormatTimestamp(record.Timestamp, loc),
			record.Emoji,
			string(emotion.ClassifyString(record.Emoji).Emotion),
			message,
			suggestion,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
