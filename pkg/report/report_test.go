package report_test

import (
	"testing"
	"time"

	"github.com/iwvelando/asset-depreciation/pkg/depreciation"
	"github.com/iwvelando/asset-depreciation/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jan(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

func fixtureItems() []report.Item {
	return []report.Item{
		{
			ID:   "van",
			Name: "Delivery van",
			Asset: depreciation.Asset{
				Cost: 10000, SalvageValue: 1000, UsefulLife: 5,
				PurchaseDate: jan(2023), Method: depreciation.StraightLine,
			},
		},
		{
			ID:   "press",
			Name: "Printing press",
			Asset: depreciation.Asset{
				Cost: 10000, SalvageValue: 1000, UsefulLife: 5,
				PurchaseDate: jan(2023), Method: depreciation.DoubleDeclining,
			},
		},
		{
			ID:   "desk",
			Name: "Desk",
			Asset: depreciation.Asset{
				Cost: 1200, SalvageValue: 0, UsefulLife: 3,
				PurchaseDate: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), Method: depreciation.StraightLine,
			},
		},
	}
}

func TestForYear_SumsCoveredAssets(t *testing.T) {
	summary := report.ForYear(2024, fixtureItems())

	require.Len(t, summary.Lines, 3)
	assert.Equal(t, 2024, summary.Year)

	assert.Equal(t, "van", summary.Lines[0].ID)
	assert.True(t, summary.Lines[0].Covered)
	assert.InDelta(t, 1800, summary.Lines[0].Depreciation, 1e-9)
	assert.InDelta(t, 6400, summary.Lines[0].BookValue, 1e-9)

	assert.True(t, summary.Lines[1].Covered)
	assert.InDelta(t, 2400, summary.Lines[1].Depreciation, 1e-9)
	assert.InDelta(t, 3600, summary.Lines[1].BookValue, 1e-9)
	assert.Equal(t, depreciation.DoubleDeclining, summary.Lines[1].Method)

	// Desk is bought in 2025, so 2024 is outside its schedule.
	assert.False(t, summary.Lines[2].Covered)
	assert.Zero(t, summary.Lines[2].Depreciation)
	assert.Zero(t, summary.Lines[2].BookValue)

	assert.InDelta(t, 4200, summary.TotalDepreciation, 1e-9)
	assert.InDelta(t, 10000, summary.TotalBookValue, 1e-9)
	assert.Equal(t, 2, summary.CoveredCount())
}

func TestForYear_ProratedFirstYear(t *testing.T) {
	summary := report.ForYear(2025, fixtureItems())

	require.Len(t, summary.Lines, 3)
	desk := summary.Lines[2]
	assert.True(t, desk.Covered)
	assert.InDelta(t, 200, desk.Depreciation, 1e-9)
	assert.InDelta(t, 1000, desk.BookValue, 1e-9)
}

func TestForYear_AfterScheduleEnds(t *testing.T) {
	summary := report.ForYear(2030, fixtureItems())

	assert.Equal(t, 0, summary.CoveredCount())
	assert.Zero(t, summary.TotalDepreciation)
	assert.Zero(t, summary.TotalBookValue)
}

func TestForYear_NoItems(t *testing.T) {
	summary := report.ForYear(2024, nil)

	assert.NotNil(t, summary.Lines)
	assert.Empty(t, summary.Lines)
	assert.Zero(t, summary.TotalDepreciation)
}

func TestForYear_TotalsMatchSumOfLines(t *testing.T) {
	items := make([]report.Item, 0, 50)
	for i := 0; i < 50; i++ {
		items = append(items, report.Item{
			ID: "asset",
			Asset: depreciation.Asset{
				Cost: 1000.10, SalvageValue: 0.10, UsefulLife: 3,
				PurchaseDate: jan(2020), Method: depreciation.StraightLine,
			},
		})
	}

	summary := report.ForYear(2021, items)
	assert.Equal(t, 50, summary.CoveredCount())
	assert.InDelta(t, 50*(1000.0/3.0), summary.TotalDepreciation, 1e-6)
}
