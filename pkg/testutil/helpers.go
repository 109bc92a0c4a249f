// Package testutil provides common utility functions for testing.
package testutil

import (
	"fmt"
	"testing"

	"github.com/iwvelando/asset-depreciation/pkg/constants"
	"github.com/iwvelando/asset-depreciation/pkg/depreciation"
	"github.com/iwvelando/asset-depreciation/pkg/mathutil"
)

// CheckScheduleInvariants reports every way the schedule breaks the
// guarantees of depreciation.ComputeSchedule for the given asset: length
// bounded by the useful life, book value never below salvage, accumulated
// depreciation non-decreasing, book value non-increasing, and book value plus
// accumulated depreciation equal to cost within a cent.
func CheckScheduleInvariants(asset depreciation.Asset, schedule []depreciation.ScheduleEntry) []string {
	var problems []string
	if asset.UsefulLife >= 1 && len(schedule) > asset.UsefulLife {
		problems = append(problems, "schedule longer than useful life")
	}

	previousBook := asset.Cost
	previousAccumulated := 0.0
	for i, entry := range schedule {
		if entry.BookValue < asset.SalvageValue-constants.FloatTolerance {
			problems = append(problems, fmt.Sprintf("book value %.6f below salvage at entry %d", entry.BookValue, i))
		}
		if entry.BookValue > previousBook+constants.FloatTolerance {
			problems = append(problems, fmt.Sprintf("book value increased at entry %d", i))
		}
		if entry.AccumulatedDepreciation < previousAccumulated-constants.FloatTolerance {
			problems = append(problems, fmt.Sprintf("accumulated depreciation decreased at entry %d", i))
		}
		if !mathutil.WithinTolerance(entry.BookValue+entry.AccumulatedDepreciation, asset.Cost, constants.CurrencyTolerance) {
			problems = append(problems, fmt.Sprintf("book value and accumulated depreciation do not add up to cost at entry %d", i))
		}
		previousBook = entry.BookValue
		previousAccumulated = entry.AccumulatedDepreciation
	}
	return problems
}

// AssertScheduleInvariants fails the test when CheckScheduleInvariants finds
// a problem.
func AssertScheduleInvariants(t testing.TB, asset depreciation.Asset, schedule []depreciation.ScheduleEntry) {
	t.Helper()
	for _, problem := range CheckScheduleInvariants(asset, schedule) {
		t.Errorf("%s (asset %+v)", problem, asset)
	}
}
