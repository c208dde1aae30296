package infra

// pdf.go renders the end-of-shift summary with go-pdf/fpdf: station header,
// operator and shift window, one row per pump, bold totals.
// The file is written to storagePath/shift_{date}_{type}_{id8}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"fuelpos/internal/dto"

	"github.com/go-pdf/fpdf"
)

// GenerateShiftReportPDF writes the summary of one closed shift and returns the file path.
func GenerateShiftReportPDF(station string, summary *dto.ShiftSummaryResponse, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	sh := summary.Shift
	id8 := sh.ID
	if len(id8) > 8 {
		id8 = id8[:8]
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("shift_%s_%s_%s.pdf", sh.Date, sh.Type, id8))

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, station, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Shift report", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 9)
	operator := sh.Username
	if operator == "" {
		operator = sh.UserID
	}
	end := "open"
	if sh.EndTime != nil {
		end = *sh.EndTime
	}
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Operator: %s", operator), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Shift: %s %s", sh.Date, sh.Type), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Start: %s", sh.StartTime), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("End: %s", end), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	colPump := contentW * 0.34
	colCount := contentW * 0.14
	colVol := contentW * 0.24
	colInc := contentW * 0.28

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colPump, 6, "Pump", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colCount, 6, "Tx", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colVol, 6, "Liters", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colInc, 6, "Income", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, p := range summary.Pumps {
		pdf.CellFormat(colPump, 5, fmt.Sprintf("%s (%s)", p.Label, p.Fuel), "", 0, "L", false, 0, "")
		pdf.CellFormat(colCount, 5, fmt.Sprintf("%d", p.Transactions), "", 0, "C", false, 0, "")
		pdf.CellFormat(colVol, 5, p.Volume.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colInc, 5, p.Income.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(1)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colPump+colCount, 6, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(colVol, 6, summary.Volume.StringFixed(2), "", 0, "R", false, 0, "")
	pdf.CellFormat(colInc, 6, summary.Income.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
