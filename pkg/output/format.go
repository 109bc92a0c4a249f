package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/iwvelando/asset-depreciation/pkg/format"
	"github.com/iwvelando/asset-depreciation/pkg/report"
)

type prettyWriter struct {
	formatter *format.Formatter
}

// WriteSchedules outputs a human-readable rather than machine-readable table.
func (p prettyWriter) WriteSchedules(w io.Writer, schedules []NamedSchedule) error {
	ew := &errWriter{w: w}
	for i, schedule := range schedules {
		ew.printf("--- Schedule for asset %s (%s) ---\n", schedule.Name, schedule.Asset.Method)
		ew.printf("Year | Depreciation | Accumulated | Book Value\n")
		ew.printf("____ | ____________ | ___________ | __________\n")
		if len(schedule.Entries) == 0 {
			ew.printf("(no depreciation years)\n")
		}
		for _, entry := range schedule.Entries {
			ew.printf("%d | %s | %s | %s\n", entry.Year,
				p.formatter.Amount(entry.Depreciation),
				p.formatter.Amount(entry.AccumulatedDepreciation),
				p.formatter.Amount(entry.BookValue))
		}
		if i < len(schedules)-1 {
			ew.printf("\n")
		}
	}
	return ew.err
}

// WriteReport outputs the yearly report as a human-readable table.
func (p prettyWriter) WriteReport(w io.Writer, summary report.Summary) error {
	ew := &errWriter{w: w}
	ew.printf("--- Depreciation report for %d ---\n", summary.Year)
	ew.printf("Asset | Method | Depreciation | Book Value\n")
	ew.printf("_____ | ______ | ____________ | __________\n")
	for _, line := range summary.Lines {
		if !line.Covered {
			ew.printf("%s | %s | - | -\n", line.Name, line.Method)
			continue
		}
		ew.printf("%s | %s | %s | %s\n", line.Name, line.Method,
			p.formatter.Amount(line.Depreciation), p.formatter.Amount(line.BookValue))
	}
	ew.printf("Total | | %s | %s\n",
		p.formatter.Amount(summary.TotalDepreciation), p.formatter.Amount(summary.TotalBookValue))
	return ew.err
}

type csvWriter struct{}

// WriteSchedules outputs in comma-separated value format, one row per asset
// and year.
func (csvWriter) WriteSchedules(w io.Writer, schedules []NamedSchedule) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"asset", "method", "year", "depreciation", "accumulated depreciation", "book value"}); err != nil {
		return err
	}
	for _, schedule := range schedules {
		for _, entry := range schedule.Entries {
			record := []string{
				schedule.Name,
				schedule.Asset.Method.String(),
				fmt.Sprintf("%d", entry.Year),
				amount(entry.Depreciation),
				amount(entry.AccumulatedDepreciation),
				amount(entry.BookValue),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteReport outputs the yearly report in comma-separated value format with
// a trailing total row.
func (csvWriter) WriteReport(w io.Writer, summary report.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"year", "asset", "method", "depreciation", "book value", "covered"}); err != nil {
		return err
	}
	year := fmt.Sprintf("%d", summary.Year)
	for _, line := range summary.Lines {
		record := []string{
			year,
			line.Name,
			line.Method.String(),
			amount(line.Depreciation),
			amount(line.BookValue),
			fmt.Sprintf("%t", line.Covered),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{year, "total", "", amount(summary.TotalDepreciation), amount(summary.TotalBookValue), ""}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func amount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// errWriter remembers the first write error so table rendering can stay
// linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(layout string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, layout, args...)
}
