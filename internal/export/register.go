package export

import (
	"fmt"
	"strings"

	"github.com/piwi3910/FrameShop/internal/model"
	"github.com/xuri/excelize/v2"
)

const registerSheet = "Quotes"

var registerHeaders = []string{
	"Quote", "Date", "Valid Until", "Customer", "Frame", "Mats", "Glazing",
	"Outer W (cm)", "Outer H (cm)", "Subtotal", "Tax", "Total", "Currency",
}

// ExportQuoteRegister writes every quote as one spreadsheet row, with a
// totals row summing the money columns.
func ExportQuoteRegister(path string, quotes []model.Quote) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), registerSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(registerHeaders))
	for i, h := range registerHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(registerSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(registerHeaders))
	if err := f.SetCellStyle(registerSheet, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, q := range quotes {
		row := []interface{}{
			q.ID,
			dateOf(q.CreatedAt),
			q.ValidUntil,
			q.CustomerName,
			q.Names.Frame,
			strings.Join(q.Names.Mats, ", "),
			q.Names.Glazing,
			q.Dimensions.Outer.WidthCm,
			q.Dimensions.Outer.HeightCm,
			q.Subtotal,
			q.Tax,
			q.Total,
			q.Currency,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(registerSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write quote %s: %w", q.ID, err)
		}
	}

	if len(quotes) > 0 {
		totalRow := len(quotes) + 2
		label, _ := excelize.CoordinatesToCellName(1, totalRow)
		if err := f.SetCellStr(registerSheet, label, "Total"); err != nil {
			return err
		}
		for col := 10; col <= 12; col++ {
			name, _ := excelize.ColumnNumberToName(col)
			cell := fmt.Sprintf("%s%d", name, totalRow)
			formula := fmt.Sprintf("SUM(%s2:%s%d)", name, name, totalRow-1)
			if err := f.SetCellFormula(registerSheet, cell, formula); err != nil {
				return fmt.Errorf("failed to write totals: %w", err)
			}
		}
		start, _ := excelize.CoordinatesToCellName(1, totalRow)
		end, _ := excelize.CoordinatesToCellName(len(registerHeaders), totalRow)
		if err := f.SetCellStyle(registerSheet, start, end, bold); err != nil {
			return fmt.Errorf("failed to style totals: %w", err)
		}
	}

	if err := f.SetColWidth(registerSheet, "A", lastCol, 14); err != nil {
		return err
	}
	return f.SaveAs(path)
}
