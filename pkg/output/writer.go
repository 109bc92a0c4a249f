// Package output provides utilities for formatting and exporting depreciation
// schedules and yearly reports.
package output

import (
	"fmt"
	"io"

	"github.com/iwvelando/asset-depreciation/pkg/constants"
	"github.com/iwvelando/asset-depreciation/pkg/depreciation"
	"github.com/iwvelando/asset-depreciation/pkg/format"
	"github.com/iwvelando/asset-depreciation/pkg/report"
	"github.com/iwvelando/asset-depreciation/pkg/validation"
)

// NamedSchedule is a computed schedule together with the asset it was
// derived from.
type NamedSchedule struct {
	ID      string                       `json:"id,omitempty"`
	Name    string                       `json:"name"`
	Asset   depreciation.Asset           `json:"asset"`
	Entries []depreciation.ScheduleEntry `json:"entries"`
}

// Writer serializes schedules and reports into one document format.
type Writer interface {
	WriteSchedules(w io.Writer, schedules []NamedSchedule) error
	WriteReport(w io.Writer, summary report.Summary) error
}

// NewWriter returns the Writer for the output format. The formatter renders
// amounts in the human-oriented formats (pretty, pdf); nil selects en-US/USD.
func NewWriter(outputFormat string, formatter *format.Formatter) (Writer, error) {
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return nil, err
	}
	if formatter == nil {
		formatter = format.Default()
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		return prettyWriter{formatter: formatter}, nil
	case constants.OutputFormatCSV:
		return csvWriter{}, nil
	case constants.OutputFormatJSON:
		return jsonWriter{}, nil
	case constants.OutputFormatXLSX:
		return xlsxWriter{}, nil
	case constants.OutputFormatPDF:
		return pdfWriter{formatter: formatter}, nil
	}
	return nil, fmt.Errorf("no writer for output format %s", outputFormat)
}

// ContentType returns the MIME type of an output format.
func ContentType(outputFormat string) string {
	switch outputFormat {
	case constants.OutputFormatCSV:
		return "text/csv; charset=utf-8"
	case constants.OutputFormatJSON:
		return "application/json"
	case constants.OutputFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case constants.OutputFormatPDF:
		return "application/pdf"
	default:
		return "text/plain; charset=utf-8"
	}
}

// FileExtension returns the file extension, including the dot, for an
// output format.
func FileExtension(outputFormat string) string {
	if outputFormat == constants.OutputFormatPretty {
		return ".txt"
	}
	return "." + outputFormat
}

// ComputeSchedules derives the schedule for each named asset. A nil
// generator computes without logging.
func ComputeSchedules(generator *depreciation.ScheduleGenerator, items []report.Item) []NamedSchedule {
	if generator == nil {
		generator = depreciation.NewScheduleGenerator(nil)
	}
	schedules := make([]NamedSchedule, 0, len(items))
	for _, item := range items {
		schedules = append(schedules, NamedSchedule{
			ID:      item.ID,
			Name:    item.Name,
			Asset:   item.Asset,
			Entries: generator.GenerateSchedule(item.Name, item.Asset),
		})
	}
	return schedules
}
