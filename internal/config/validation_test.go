package config

import (
	"strings"
	"testing"
)

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name             string
		config           Configuration
		expectedWarnings []string
	}{
		{
			name: "Valid configuration",
			config: Configuration{Assets: []AssetConfig{
				{ID: "a", Name: "Truck", Cost: 10000, SalvageValue: 1000, UsefulLife: 5, PurchaseDate: "2023-01-15"},
			}},
			expectedWarnings: nil,
		},
		{
			name:             "No assets",
			config:           Configuration{},
			expectedWarnings: []string{"No assets configured"},
		},
		{
			name: "Salvage above cost",
			config: Configuration{Assets: []AssetConfig{
				{Name: "Press", Cost: 1000, SalvageValue: 1500, UsefulLife: 3, PurchaseDate: "2022-01-01"},
			}},
			expectedWarnings: []string{"Asset 'Press' salvage value exceeds cost"},
		},
		{
			name: "Zero useful life",
			config: Configuration{Assets: []AssetConfig{
				{Name: "Tool", Cost: 100, UsefulLife: 0, PurchaseDate: "2022-01-01"},
			}},
			expectedWarnings: []string{"Asset 'Tool' useful life must be at least 1 year"},
		},
		{
			name: "Duplicate names and IDs",
			config: Configuration{Assets: []AssetConfig{
				{ID: "x", Name: "Desk", Cost: 100, UsefulLife: 3, PurchaseDate: "2022-01-01"},
				{ID: "x", Name: "Desk", Cost: 100, UsefulLife: 3, PurchaseDate: "2022-01-01"},
			}},
			expectedWarnings: []string{
				"Asset name 'Desk' is used more than once",
				"Asset ID 'x' is used more than once",
			},
		},
		{
			name: "Unnamed asset",
			config: Configuration{Assets: []AssetConfig{
				{Cost: 100, UsefulLife: 3, PurchaseDate: "2022-01-01"},
			}},
			expectedWarnings: []string{"Asset #1 has no name"},
		},
		{
			name: "Unparsable asset is left to Items",
			config: Configuration{Assets: []AssetConfig{
				{Name: "Broken", Cost: 100, UsefulLife: 3, PurchaseDate: "someday"},
			}},
			expectedWarnings: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.config.ValidateConfiguration()

			if len(warnings) != len(tt.expectedWarnings) {
				t.Fatalf("ValidateConfiguration() returned %d warnings %v, expected %d", len(warnings), warnings, len(tt.expectedWarnings))
			}
			for i, expected := range tt.expectedWarnings {
				if !strings.Contains(warnings[i], expected) {
					t.Errorf("warning[%d] = %q, expected to contain %q", i, warnings[i], expected)
				}
			}
		})
	}
}
