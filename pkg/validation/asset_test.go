package validation

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/asset-depreciation/pkg/depreciation"
)

func TestCheckAsset(t *testing.T) {
	valid := depreciation.Asset{
		Cost:         10000,
		SalvageValue: 1000,
		UsefulLife:   5,
		PurchaseDate: time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
		Method:       depreciation.StraightLine,
	}

	tests := []struct {
		name     string
		mutate   func(a *depreciation.Asset)
		expected []string
	}{
		{name: "Valid asset", mutate: func(a *depreciation.Asset) {}},
		{name: "Zero salvage is fine", mutate: func(a *depreciation.Asset) { a.SalvageValue = 0 }},
		{name: "Salvage equal to cost is fine", mutate: func(a *depreciation.Asset) { a.SalvageValue = a.Cost }},
		{
			name:     "Negative cost",
			mutate:   func(a *depreciation.Asset) { a.Cost = -5 },
			expected: []string{"cost must be positive", "salvage value exceeds cost"},
		},
		{
			name:     "Negative salvage",
			mutate:   func(a *depreciation.Asset) { a.SalvageValue = -1 },
			expected: []string{"must not be negative"},
		},
		{
			name:     "Salvage above cost",
			mutate:   func(a *depreciation.Asset) { a.SalvageValue = 20000 },
			expected: []string{"salvage value exceeds cost"},
		},
		{
			name:     "Zero life",
			mutate:   func(a *depreciation.Asset) { a.UsefulLife = 0 },
			expected: []string{"useful life must be at least 1 year"},
		},
		{
			name:     "NaN cost",
			mutate:   func(a *depreciation.Asset) { a.Cost = math.NaN() },
			expected: []string{"non-finite cost"},
		},
		{
			name:     "Infinite salvage",
			mutate:   func(a *depreciation.Asset) { a.SalvageValue = math.Inf(1) },
			expected: []string{"non-finite salvage value"},
		},
		{
			name:     "Unknown method",
			mutate:   func(a *depreciation.Asset) { a.Method = "sum-of-years" },
			expected: []string{"unknown depreciation method"},
		},
		{
			name:     "Missing purchase date",
			mutate:   func(a *depreciation.Asset) { a.PurchaseDate = time.Time{} },
			expected: []string{"no purchase date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := valid
			tt.mutate(&asset)
			issues := CheckAsset("Press", asset)
			if len(issues) != len(tt.expected) {
				t.Fatalf("CheckAsset() = %v, expected %d issues", issues, len(tt.expected))
			}
			for i, snippet := range tt.expected {
				if !strings.Contains(issues[i], snippet) {
					t.Errorf("issue %q does not contain %q", issues[i], snippet)
				}
				if !strings.HasPrefix(issues[i], "Asset 'Press'") {
					t.Errorf("issue %q does not name the asset", issues[i])
				}
			}
		})
	}
}
