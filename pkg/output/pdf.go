package output

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/iwvelando/asset-depreciation/pkg/format"
	"github.com/iwvelando/asset-depreciation/pkg/report"
)

const (
	pdfFont       = "Helvetica"
	pdfLineHeight = 7.0
)

type pdfWriter struct {
	formatter *format.Formatter
}

// WriteSchedules renders one page per asset.
func (p pdfWriter) WriteSchedules(w io.Writer, schedules []NamedSchedule) error {
	pdf := newPDF("Depreciation schedules")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	widths := []float64{25, 50, 55, 50}

	if len(schedules) == 0 {
		pdf.AddPage()
		pdf.SetFont(pdfFont, "", 11)
		pdf.CellFormat(0, pdfLineHeight, "No assets.", "", 1, "L", false, 0, "")
	}
	for _, schedule := range schedules {
		pdf.AddPage()
		pdf.SetFont(pdfFont, "B", 14)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("%s (%s)", schedule.Name, schedule.Asset.Method)), "", 1, "L", false, 0, "")
		pdf.SetFont(pdfFont, "", 10)
		pdf.CellFormat(0, pdfLineHeight, tr(fmt.Sprintf("Cost %s, salvage %s, useful life %d years",
			p.formatter.Amount(schedule.Asset.Cost),
			p.formatter.Amount(schedule.Asset.SalvageValue),
			schedule.Asset.UsefulLife)), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		tableHeader(pdf, widths, []string{"Year", "Depreciation", "Accumulated", "Book Value"})
		pdf.SetFont(pdfFont, "", 10)
		for _, entry := range schedule.Entries {
			tableRow(pdf, widths, []string{
				fmt.Sprintf("%d", entry.Year),
				tr(p.formatter.Amount(entry.Depreciation)),
				tr(p.formatter.Amount(entry.AccumulatedDepreciation)),
				tr(p.formatter.Amount(entry.BookValue)),
			})
		}
	}

	return pdf.Output(w)
}

// WriteReport renders the yearly report as a single table.
func (p pdfWriter) WriteReport(w io.Writer, summary report.Summary) error {
	pdf := newPDF(fmt.Sprintf("Depreciation report %d", summary.Year))
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	widths := []float64{60, 35, 45, 45}

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Depreciation report for %d", summary.Year), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	tableHeader(pdf, widths, []string{"Asset", "Method", "Depreciation", "Book Value"})
	pdf.SetFont(pdfFont, "", 10)
	for _, line := range summary.Lines {
		dep, book := "-", "-"
		if line.Covered {
			dep = tr(p.formatter.Amount(line.Depreciation))
			book = tr(p.formatter.Amount(line.BookValue))
		}
		tableRow(pdf, widths, []string{tr(line.Name), line.Method.String(), dep, book})
	}
	pdf.SetFont(pdfFont, "B", 10)
	tableRow(pdf, widths, []string{
		"Total", "",
		tr(p.formatter.Amount(summary.TotalDepreciation)),
		tr(p.formatter.Amount(summary.TotalBookValue)),
	})

	return pdf.Output(w)
}

func newPDF(title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("asset-depreciation", true)
	return pdf
}

func tableHeader(pdf *fpdf.Fpdf, widths []float64, headers []string) {
	pdf.SetFont(pdfFont, "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, header := range headers {
		pdf.CellFormat(widths[i], pdfLineHeight, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func tableRow(pdf *fpdf.Fpdf, widths []float64, cells []string) {
	for i, cell := range cells {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], pdfLineHeight, cell, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}
