package sink

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/nukewatch/reactorstatus/internal/classify"
)

const xlsxSheet = "Reactor Status"

// WriteXLSX renders the records as a single-worksheet workbook with a header
// row, for people who want the data in a spreadsheet instead of grepping the
// PSV artifact.
func WriteXLSX(path string, recs []classify.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	headers := []string{"Report Date", "Unit", "Power", "Reason/Comment"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(xlsxSheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for row, r := range recs {
		values := []any{r.Date.Format("2006-01-02"), r.Unit, r.Power, r.Reason}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row+1, err)
			}
		}
	}

	return f.SaveAs(path)
}
