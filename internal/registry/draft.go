package registry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/asset-depreciation/pkg/constants"
	"github.com/iwvelando/asset-depreciation/pkg/datetime"
	"github.com/iwvelando/asset-depreciation/pkg/depreciation"
	"github.com/iwvelando/asset-depreciation/pkg/validation"
)

// ErrInvalidDraft is wrapped by every draft validation failure.
var ErrInvalidDraft = errors.New("invalid asset")

// ErrConflict is returned when a new draft names an ID that is already stored.
var ErrConflict = errors.New("asset already exists")

// Draft is an uncommitted edit of an asset record. It starts from either the
// default template or a copy of a stored record; changes stay local until
// Service.Commit stores them.
type Draft struct {
	record Record
	isNew  bool
}

// NewDraft returns a draft built from the default template: straight-line,
// a five year life and a purchase date of today.
func NewDraft(now time.Time) *Draft {
	return &Draft{
		isNew: true,
		record: Record{
			Asset: depreciation.Asset{
				UsefulLife:   constants.DefaultUsefulLife,
				PurchaseDate: datetime.Today(now),
				Method:       depreciation.DefaultMethod,
			},
		},
	}
}

// DraftFrom returns a draft that edits a copy of an existing record.
func DraftFrom(record Record) *Draft {
	return &Draft{record: record}
}

// IsNew reports whether committing the draft creates a record.
func (d *Draft) IsNew() bool {
	return d.isNew
}

// Record returns a copy of the draft's current state.
func (d *Draft) Record() Record {
	return d.record
}

// SetID fixes the identifier of a new record. It has no effect on drafts of
// existing records.
func (d *Draft) SetID(id string) *Draft {
	if d.isNew {
		d.record.ID = strings.TrimSpace(id)
	}
	return d
}

func (d *Draft) SetName(name string) *Draft {
	d.record.Name = strings.TrimSpace(name)
	return d
}

func (d *Draft) SetCategory(category string) *Draft {
	d.record.Category = strings.TrimSpace(category)
	return d
}

func (d *Draft) SetCost(cost float64) *Draft {
	d.record.Asset.Cost = cost
	return d
}

func (d *Draft) SetSalvageValue(salvage float64) *Draft {
	d.record.Asset.SalvageValue = salvage
	return d
}

func (d *Draft) SetUsefulLife(years int) *Draft {
	d.record.Asset.UsefulLife = years
	return d
}

func (d *Draft) SetPurchaseDate(date time.Time) *Draft {
	d.record.Asset.PurchaseDate = date
	return d
}

func (d *Draft) SetMethod(method depreciation.Method) *Draft {
	d.record.Asset.Method = method
	return d
}

// Validate rejects drafts whose schedule would be meaningless. Unlike the
// depreciation engine, which computes whatever it is given, a draft must have
// a name, positive cost, salvage within [0, cost], at least one year of life,
// a known method and a purchase date.
func (d *Draft) Validate() error {
	var issues []string
	if d.record.Name == "" {
		issues = append(issues, "name is required")
	}
	issues = append(issues, validation.CheckAsset(d.record.Name, d.record.Asset)...)
	if len(issues) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidDraft, strings.Join(issues, "; "))
}
