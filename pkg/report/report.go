// Package report aggregates depreciation schedules across many assets for a
// single calendar year.
package report

import (
	"github.com/iwvelando/asset-depreciation/pkg/depreciation"
	"github.com/iwvelando/asset-depreciation/pkg/mathutil"
)

// Item is one asset taking part in a report.
type Item struct {
	ID       string
	Name     string
	Category string
	Asset    depreciation.Asset
}

// Line is an asset's contribution to the reported year. Covered is false
// when the asset's schedule has no entry for the year, in which case the
// amounts are zero.
type Line struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Method       depreciation.Method `json:"depreciationMethod"`
	Depreciation float64             `json:"depreciation"`
	BookValue    float64             `json:"bookValue"`
	Covered      bool                `json:"covered"`
}

// Summary holds the per-asset lines and totals for a year.
type Summary struct {
	Year              int     `json:"year"`
	Lines             []Line  `json:"lines"`
	TotalDepreciation float64 `json:"totalDepreciation"`
	TotalBookValue    float64 `json:"totalBookValue"`
}

// ForYear looks up each item's schedule entry for the year and sums the
// depreciation and book values of the covered ones. Lines keep the order of
// items.
func ForYear(year int, items []Item) Summary {
	summary := Summary{Year: year, Lines: make([]Line, 0, len(items))}
	var depreciations, bookValues []float64

	for _, item := range items {
		line := Line{ID: item.ID, Name: item.Name, Method: item.Asset.Method}
		entry, ok := depreciation.EntryForYear(depreciation.ComputeSchedule(item.Asset), year)
		if ok {
			line.Depreciation = entry.Depreciation
			line.BookValue = entry.BookValue
			line.Covered = true
			depreciations = append(depreciations, entry.Depreciation)
			bookValues = append(bookValues, entry.BookValue)
		}
		summary.Lines = append(summary.Lines, line)
	}

	summary.TotalDepreciation = mathutil.Sum(depreciations...)
	summary.TotalBookValue = mathutil.Sum(bookValues...)
	return summary
}

// CoveredCount returns how many lines have an entry for the year.
func (s Summary) CoveredCount() int {
	n := 0
	for _, line := range s.Lines {
		if line.Covered {
			n++
		}
	}
	return n
}
