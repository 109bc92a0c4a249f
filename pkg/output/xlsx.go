package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/asset-depreciation/pkg/mathutil"
	"github.com/iwvelando/asset-depreciation/pkg/report"
	"github.com/xuri/excelize/v2"
)

const (
	defaultSheet      = "Sheet1"
	maxSheetNameRunes = 31
)

var sheetNameReplacer = strings.NewReplacer(
	":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", "(", "]", ")",
)

type xlsxWriter struct{}

// WriteSchedules writes one worksheet per asset.
func (xlsxWriter) WriteSchedules(w io.Writer, schedules []NamedSchedule) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	used := make(map[string]bool)
	for i, schedule := range schedules {
		sheet := uniqueSheetName(schedule.Name, i, used)
		if err := addSheet(f, i, sheet); err != nil {
			return err
		}

		if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Year", "Depreciation", "Accumulated Depreciation", "Book Value"}); err != nil {
			return err
		}
		for r, entry := range schedule.Entries {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			row := []interface{}{
				entry.Year,
				mathutil.Round(entry.Depreciation),
				mathutil.Round(entry.AccumulatedDepreciation),
				mathutil.Round(entry.BookValue),
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return err
			}
		}
	}

	_, err := f.WriteTo(w)
	return err
}

// WriteReport writes the yearly report to a single worksheet with a total
// row.
func (xlsxWriter) WriteReport(w io.Writer, summary report.Summary) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := fmt.Sprintf("Report %d", summary.Year)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Asset", "Method", "Depreciation", "Book Value", "Covered"}); err != nil {
		return err
	}
	row := 2
	for _, line := range summary.Lines {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []interface{}{
			line.Name,
			line.Method.String(),
			mathutil.Round(line.Depreciation),
			mathutil.Round(line.BookValue),
			line.Covered,
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		row++
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	total := []interface{}{"Total", "", mathutil.Round(summary.TotalDepreciation), mathutil.Round(summary.TotalBookValue)}
	if err := f.SetSheetRow(sheet, cell, &total); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}

func addSheet(f *excelize.File, index int, sheet string) error {
	if index == 0 {
		return f.SetSheetName(defaultSheet, sheet)
	}
	_, err := f.NewSheet(sheet)
	return err
}

// uniqueSheetName strips characters Excel rejects, truncates to the sheet
// name limit and disambiguates repeats.
func uniqueSheetName(name string, index int, used map[string]bool) string {
	base := strings.TrimSpace(sheetNameReplacer.Replace(name))
	base = strings.Trim(base, "'")
	if base == "" {
		base = fmt.Sprintf("Asset %d", index+1)
	}
	base = truncateRunes(base, maxSheetNameRunes)

	candidate := base
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncateRunes(base, maxSheetNameRunes-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
