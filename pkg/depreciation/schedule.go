// Package depreciation computes year-by-year fixed-asset depreciation
// schedules.
//
// Two methods are supported: straight-line and double-declining balance. A
// purchase made after January receives a prorated first year, and no year
// may take the book value below the salvage value. The schedule stops early
// once the salvage value is reached, so it may hold fewer than UsefulLife
// entries.
//
// ComputeSchedule is pure: it keeps no state between calls and may be used
// from any number of goroutines.
package depreciation

import (
	"fmt"
	"time"

	"github.com/iwvelando/asset-depreciation/pkg/constants"
	"github.com/iwvelando/asset-depreciation/pkg/datetime"
	"go.uber.org/zap"
)

// Asset is the input to a schedule computation.
type Asset struct {
	Cost         float64   `json:"cost" yaml:"cost"`
	SalvageValue float64   `json:"salvageValue" yaml:"salvageValue"`
	UsefulLife   int       `json:"usefulLife" yaml:"usefulLife"` // years
	PurchaseDate time.Time `json:"purchaseDate" yaml:"purchaseDate"`
	Method       Method    `json:"depreciationMethod" yaml:"depreciationMethod"`
}

// ScheduleEntry holds the values for one depreciation year.
type ScheduleEntry struct {
	Year                    int     `json:"year"`
	Depreciation            float64 `json:"depreciation"`
	AccumulatedDepreciation float64 `json:"accumulatedDepreciation"`
	BookValue               float64 `json:"bookValue"`
}

// DepreciableBase is the amount the schedule may expense in total.
func (a Asset) DepreciableBase() float64 {
	return a.Cost - a.SalvageValue
}

// ComputeSchedule derives the depreciation schedule for the asset. A useful
// life below one year yields an empty schedule. Inputs are not validated.
func ComputeSchedule(asset Asset) []ScheduleEntry {
	return computeSchedule(asset, nil)
}

// ScheduleGenerator computes schedules and reports the decisions taken along
// the way at debug level.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// GenerateSchedule computes the schedule for a named asset.
func (g *ScheduleGenerator) GenerateSchedule(name string, asset Asset) []ScheduleEntry {
	return computeSchedule(asset, func(msg string, fields ...zap.Field) {
		fields = append(fields,
			zap.String("op", "depreciation.GenerateSchedule"),
			zap.String("asset", name),
		)
		g.logger.Debug(msg, fields...)
	})
}

type traceFunc func(msg string, fields ...zap.Field)

func computeSchedule(asset Asset, trace traceFunc) []ScheduleEntry {
	if asset.UsefulLife < 1 {
		if trace != nil {
			trace("useful life below one year, schedule is empty", zap.Int("usefulLife", asset.UsefulLife))
		}
		return []ScheduleEntry{}
	}

	schedule := make([]ScheduleEntry, 0, asset.UsefulLife)
	bookValue := asset.Cost
	accumulated := 0.0
	purchaseYear, purchaseMonth := datetime.YearAndMonth(asset.PurchaseDate)
	life := float64(asset.UsefulLife)

	for i := 0; i < asset.UsefulLife; i++ {
		year := purchaseYear + i

		var depreciation float64
		switch asset.Method {
		case DoubleDeclining:
			depreciation = bookValue * constants.DecliningBalanceFactor / life
		default:
			depreciation = asset.DepreciableBase() / life
		}

		// Only the first year is prorated, whatever the method.
		if i == 0 && purchaseMonth > 0 {
			depreciation *= datetime.RemainingMonthsFraction(purchaseMonth)
			if trace != nil {
				trace(fmt.Sprintf("%d: prorating first year from month %d", year, purchaseMonth+1),
					zap.Float64("depreciation", depreciation))
			}
		}

		if bookValue-depreciation < asset.SalvageValue {
			if trace != nil {
				trace(fmt.Sprintf("%d: clamping depreciation %.2f to salvage floor", year, depreciation),
					zap.Float64("salvageValue", asset.SalvageValue),
				)
			}
			depreciation = bookValue - asset.SalvageValue
		}

		bookValue -= depreciation
		accumulated += depreciation
		schedule = append(schedule, ScheduleEntry{
			Year:                    year,
			Depreciation:            depreciation,
			AccumulatedDepreciation: accumulated,
			BookValue:               bookValue,
		})

		if bookValue <= asset.SalvageValue {
			if trace != nil && i < asset.UsefulLife-1 {
				trace(fmt.Sprintf("%d: salvage value reached, stopping after %d of %d years", year, i+1, asset.UsefulLife))
			}
			break
		}
	}

	return schedule
}

// EntryForYear returns the entry recorded for the given calendar year.
func EntryForYear(schedule []ScheduleEntry, year int) (ScheduleEntry, bool) {
	for _, entry := range schedule {
		if entry.Year == year {
			return entry, true
		}
	}
	return ScheduleEntry{}, false
}

// TotalDepreciation returns the accumulated depreciation at the end of the
// schedule.
func TotalDepreciation(schedule []ScheduleEntry) float64 {
	if len(schedule) == 0 {
		return 0
	}
	return schedule[len(schedule)-1].AccumulatedDepreciation
}
