package output

import (
	"encoding/json"
	"io"

	"github.com/iwvelando/asset-depreciation/pkg/report"
)

type jsonWriter struct{}

type schedulesDocument struct {
	Schedules []NamedSchedule `json:"schedules"`
}

func (jsonWriter) WriteSchedules(w io.Writer, schedules []NamedSchedule) error {
	if schedules == nil {
		schedules = []NamedSchedule{}
	}
	return encodeIndented(w, schedulesDocument{Schedules: schedules})
}

func (jsonWriter) WriteReport(w io.Writer, summary report.Summary) error {
	return encodeIndented(w, summary)
}

func encodeIndented(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
