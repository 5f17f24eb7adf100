package export

import (
	"github.com/xuri/excelize/v2"
)

const sheetName = "Chat Messages"

var header = []any{"Role", "Content", "Timestamp", "Function Call"}

// RenderExcel writes one row per message under a styled header.
func RenderExcel(messages []Message) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i, msg := range messages {
		role := msg.Role
		if role == "" {
			role = "unknown"
		}
		fn := ""
		if msg.FunctionCall != nil {
			fn = msg.FunctionCall.Name
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{role, msg.Content, msg.Timestamp, fn}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, err
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "A1", "D1", style); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "B", "B", 100); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
