package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/wolfman30/submissions-dashboard/internal/submissions"
)

const (
	pdfFont       = "Helvetica"
	pdfLeft       = 14.0
	pdfRowHeight  = 6.0
	pdfTableStart = 35.0
	truncateAt    = 30
)

var (
	pdfHeaders = []string{"Timestamp", "Name", "Email", "Contact", "Address", "Notes"}
	pdfWidths  = []float64{30, 28, 36, 26, 31, 31}
)

// PDF renders the submissions report.
func PDF(records []submissions.Submission, at time.Time) (File, error) {
	if len(records) == 0 {
		return File{}, ErrNoData
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfLeft, 10, pdfLeft)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont(pdfFont, "", 16)
	pdf.SetTextColor(44, 62, 80)
	pdf.Text(pdfLeft, 15, "Form Submissions Report")

	pdf.SetFont(pdfFont, "", 10)
	pdf.SetTextColor(108, 117, 125)
	pdf.Text(pdfLeft, 22, "Generated: "+at.Format("1/2/2006, 3:04:05 PM"))
	pdf.Text(pdfLeft, 28, fmt.Sprintf("Total Records: %d", len(records)))

	pdf.SetY(pdfTableStart)
	header := func() {
		pdf.SetFont(pdfFont, "B", 7)
		pdf.SetFillColor(92, 184, 92)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range pdfHeaders {
			pdf.CellFormat(pdfWidths[i], pdfRowHeight+1, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(pdfFont, "", 7)
		pdf.SetTextColor(73, 80, 87)
	}
	header()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for i, r := range records {
		if pdf.GetY()+pdfRowHeight > pageHeight-bottom {
			pdf.AddPage()
			header()
		}
		fill := i%2 == 1
		pdf.SetFillColor(248, 249, 250)
		for col, v := range reportRow(r) {
			text := fitWidth(pdf, tr(v), pdfWidths[col]-2)
			pdf.CellFormat(pdfWidths[col], pdfRowHeight, text, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return File{}, fmt.Errorf("export: render pdf: %w", err)
	}
	return File{
		Name:        fileName("submissions_report", "pdf", at),
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}, nil
}

func reportRow(r submissions.Submission) []string {
	return []string{
		orNA(r.Timestamp),
		orNA(r.Name),
		orNA(r.Email),
		orNA(r.ContactNumber),
		truncate(r.CompleteAddress),
		truncate(r.Message),
	}
}

// truncate keeps the first 30 characters and marks the cut.
func truncate(s string) string {
	if s == "" {
		return "N/A"
	}
	runes := []rune(s)
	if len(runes) <= truncateAt {
		return s
	}
	return string(runes[:truncateAt]) + "..."
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// fitWidth trims text so it does not overflow its cell.
func fitWidth(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
