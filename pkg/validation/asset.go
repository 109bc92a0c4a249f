package validation

import (
	"fmt"

	"github.com/iwvelando/asset-depreciation/pkg/depreciation"
	"github.com/iwvelando/asset-depreciation/pkg/mathutil"
)

// CheckAsset returns the problems that make an asset's schedule
// meaningless. The depreciation engine accepts such assets; callers decide
// whether a problem is a warning or a rejection.
func CheckAsset(name string, asset depreciation.Asset) []string {
	var issues []string
	label := fmt.Sprintf("Asset '%s'", name)

	finite := true
	if !mathutil.IsFinite(asset.Cost) {
		issues = append(issues, fmt.Sprintf("%s has a non-finite cost", label))
		finite = false
	}
	if !mathutil.IsFinite(asset.SalvageValue) {
		issues = append(issues, fmt.Sprintf("%s has a non-finite salvage value", label))
		finite = false
	}
	if finite {
		if asset.Cost <= 0 {
			issues = append(issues, fmt.Sprintf("%s cost must be positive, got %.2f", label, asset.Cost))
		}
		if asset.SalvageValue < 0 {
			issues = append(issues, fmt.Sprintf("%s salvage value must not be negative, got %.2f", label, asset.SalvageValue))
		}
		if asset.SalvageValue > asset.Cost {
			issues = append(issues, fmt.Sprintf("%s salvage value exceeds cost (%.2f > %.2f)",
				label, asset.SalvageValue, asset.Cost))
		}
	}
	if asset.UsefulLife < 1 {
		issues = append(issues, fmt.Sprintf("%s useful life must be at least 1 year, got %d - schedule will be empty",
			label, asset.UsefulLife))
	}
	if !asset.Method.IsValid() {
		issues = append(issues, fmt.Sprintf("%s has unknown depreciation method %q", label, asset.Method))
	}
	if asset.PurchaseDate.IsZero() {
		issues = append(issues, fmt.Sprintf("%s has no purchase date", label))
	}

	return issues
}
