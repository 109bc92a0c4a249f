package depreciation_test

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/iwvelando/asset-depreciation/pkg/depreciation"
	"github.com/iwvelando/asset-depreciation/pkg/testutil"
)

// randomAsset draws sane inputs: positive cost, salvage in [0, cost],
// life 1..40, any purchase month.
func randomAsset(r *rand.Rand) depreciation.Asset {
	cost := math.Round((100+r.Float64()*1_000_000)*100) / 100
	salvage := math.Round(cost*r.Float64()*0.5*100) / 100
	method := depreciation.StraightLine
	if r.Intn(2) == 1 {
		method = depreciation.DoubleDeclining
	}
	return depreciation.Asset{
		Cost:         cost,
		SalvageValue: salvage,
		UsefulLife:   1 + r.Intn(40),
		PurchaseDate: time.Date(1990+r.Intn(40), time.Month(1+r.Intn(12)), 1+r.Intn(28), 0, 0, 0, 0, time.UTC),
		Method:       method,
	}
}

func TestScheduleProperties(t *testing.T) {
	r := rand.New(rand.NewSource(20240601))
	for i := 0; i < 2000; i++ {
		asset := randomAsset(r)
		schedule := depreciation.ComputeSchedule(asset)
		if len(schedule) == 0 {
			t.Fatalf("empty schedule for valid asset %+v", asset)
		}
		testutil.AssertScheduleInvariants(t, asset, schedule)

		first := schedule[0]
		if first.Year != asset.PurchaseDate.Year() {
			t.Errorf("first year = %d, expected purchase year %d", first.Year, asset.PurchaseDate.Year())
		}
		last := schedule[len(schedule)-1]
		if last.AccumulatedDepreciation > asset.DepreciableBase()+1e-6 {
			t.Errorf("accumulated %v exceeds depreciable base %v", last.AccumulatedDepreciation, asset.DepreciableBase())
		}
		if len(schedule) < asset.UsefulLife && last.BookValue > asset.SalvageValue {
			t.Errorf("schedule stopped early at %d of %d years above salvage", len(schedule), asset.UsefulLife)
		}
		if t.Failed() {
			return
		}
	}
}

func TestStraightLineJanuaryExhaustsBase(t *testing.T) {
	tests := []struct {
		name    string
		cost    float64
		salvage float64
		life    int
	}{
		{"E2E office equipment", 10000, 1000, 5},
		{"No salvage", 12000, 0, 4},
		{"Single year", 750, 50, 1},
		{"Long life", 360000, 60000, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := depreciation.Asset{
				Cost:         tt.cost,
				SalvageValue: tt.salvage,
				UsefulLife:   tt.life,
				PurchaseDate: time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
				Method:       depreciation.StraightLine,
			}
			schedule := depreciation.ComputeSchedule(asset)
			if len(schedule) != tt.life {
				t.Fatalf("ComputeSchedule() returned %d entries, expected %d", len(schedule), tt.life)
			}
			annual := (tt.cost - tt.salvage) / float64(tt.life)
			for _, entry := range schedule {
				if math.Abs(entry.Depreciation-annual) > 1e-6 {
					t.Errorf("year %d depreciation = %v, expected %v", entry.Year, entry.Depreciation, annual)
				}
			}
			last := schedule[len(schedule)-1]
			if math.Abs(last.AccumulatedDepreciation-(tt.cost-tt.salvage)) > 1e-6 {
				t.Errorf("final accumulated = %v, expected %v", last.AccumulatedDepreciation, tt.cost-tt.salvage)
			}
		})
	}
}
