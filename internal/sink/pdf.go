package sink

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nukewatch/reactorstatus/internal/classify"
)

// WriteSummaryPDF renders a one-page run summary: records per month plus
// totals and the per-run fetch failure count. This is intentionally simple
// and does not attempt to lay out the full record set.
func WriteSummaryPDF(path string, recs []classify.Record, failedDays int, year int) error {
	perMonth := make([]int, 13)
	for _, r := range recs {
		if r.Date.Year() == year {
			perMonth[int(r.Date.Month())]++
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Reactor Status Scrape Summary %d", year), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(60, 7, "Month", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Records", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for m := time.January; m <= time.December; m++ {
		pdf.CellFormat(60, 7, m.String(), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%d", perMonth[int(m)]), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total records: %d", len(recs)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Days with fetch failures: %d", failedDays), "", 1, "L", false, 0, "")

	return pdf.OutputFileAndClose(path)
}
