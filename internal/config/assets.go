package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/asset-depreciation/pkg/datetime"
	"github.com/iwvelando/asset-depreciation/pkg/depreciation"
	"github.com/iwvelando/asset-depreciation/pkg/report"
	"github.com/iwvelando/asset-depreciation/pkg/validation"
)

// AssetConfig describes one asset as written in the configuration file.
type AssetConfig struct {
	ID                 string  `yaml:"id,omitempty"`
	Name               string  `yaml:"name"`
	Category           string  `yaml:"category,omitempty"`
	Cost               float64 `yaml:"cost"`
	SalvageValue       float64 `yaml:"salvageValue"`
	UsefulLife         int     `yaml:"usefulLife"`
	PurchaseDate       string  `yaml:"purchaseDate"`
	DepreciationMethod string  `yaml:"depreciationMethod,omitempty"`
}

// ToAsset parses the purchase date and method into a depreciation.Asset.
// Values are otherwise passed through unchecked.
func (a AssetConfig) ToAsset() (depreciation.Asset, error) {
	purchaseDate, err := datetime.ParseDate(a.PurchaseDate)
	if err != nil {
		return depreciation.Asset{}, fmt.Errorf("asset %q: %w", a.Name, err)
	}
	method, err := depreciation.ParseMethod(a.DepreciationMethod)
	if err != nil {
		return depreciation.Asset{}, fmt.Errorf("asset %q: %w", a.Name, err)
	}
	return depreciation.Asset{
		Cost:         a.Cost,
		SalvageValue: a.SalvageValue,
		UsefulLife:   a.UsefulLife,
		PurchaseDate: purchaseDate,
		Method:       method,
	}, nil
}

// Items converts every configured asset for scheduling and reporting. Assets
// without an ID are identified by their position, e.g. "asset-3".
func (c *Configuration) Items() ([]report.Item, error) {
	items := make([]report.Item, 0, len(c.Assets))
	for i, assetConfig := range c.Assets {
		asset, err := assetConfig.ToAsset()
		if err != nil {
			return nil, err
		}
		id := strings.TrimSpace(assetConfig.ID)
		if id == "" {
			id = fmt.Sprintf("asset-%d", i+1)
		}
		items = append(items, report.Item{
			ID:       id,
			Name:     assetConfig.Name,
			Category: assetConfig.Category,
			Asset:    asset,
		})
	}
	return items, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Problems listed here do not stop schedules from being
// computed; an asset whose date or method cannot be parsed is reported by
// Items instead.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Assets) == 0 {
		warnings = append(warnings, "No assets configured")
	}

	seenIDs := make(map[string]bool)
	seenNames := make(map[string]bool)
	for i, assetConfig := range c.Assets {
		name := assetConfig.Name
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("#%d", i+1)
			warnings = append(warnings, fmt.Sprintf("Asset %s has no name", name))
		} else if seenNames[name] {
			warnings = append(warnings, fmt.Sprintf("Asset name '%s' is used more than once", name))
		}
		seenNames[name] = true

		if id := strings.TrimSpace(assetConfig.ID); id != "" {
			if seenIDs[id] {
				warnings = append(warnings, fmt.Sprintf("Asset ID '%s' is used more than once", id))
			}
			seenIDs[id] = true
		}

		asset, err := assetConfig.ToAsset()
		if err != nil {
			// Reported as an error by Items.
			continue
		}
		warnings = append(warnings, validation.CheckAsset(name, asset)...)
	}

	if c.Report.Year < 0 {
		warnings = append(warnings, fmt.Sprintf("Report year %d is negative", c.Report.Year))
	}

	return warnings
}
