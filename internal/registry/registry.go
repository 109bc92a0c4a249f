// Package registry manages stored asset records and derives their
// depreciation schedules and yearly reports.
package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/asset-depreciation/internal/metrics"
	"github.com/iwvelando/asset-depreciation/internal/store"
	"github.com/iwvelando/asset-depreciation/pkg/depreciation"
	"github.com/iwvelando/asset-depreciation/pkg/report"
	"go.uber.org/zap"
)

// RecordKind names asset records in shared storage.
const RecordKind = "asset"

// Record is a stored, named asset.
type Record struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Category  string             `json:"category,omitempty"`
	Asset     depreciation.Asset `json:"asset"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// Item converts the record for reporting.
func (r Record) Item() report.Item {
	return report.Item{ID: r.ID, Name: r.Name, Category: r.Category, Asset: r.Asset}
}

// Service is the entry point for asset records.
type Service struct {
	repo      store.Repository[Record]
	logger    *zap.Logger
	generator *depreciation.ScheduleGenerator
	now       func() time.Time
	newID     func() string
}

// NewService creates a service over the repository.
func NewService(repo store.Repository[Record], logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:      repo,
		logger:    logger,
		generator: depreciation.NewScheduleGenerator(logger),
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
}

// NewDraft starts a new record from the default template.
func (s *Service) NewDraft() *Draft {
	return NewDraft(s.now())
}

// Edit starts a draft of the stored record.
func (s *Service) Edit(ctx context.Context, id string) (*Draft, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return DraftFrom(record), nil
}

// Commit validates and stores the draft, returning the stored record. New
// records without an ID receive a random UUID; a new record whose ID is
// already stored fails with ErrConflict.
func (s *Service) Commit(ctx context.Context, draft *Draft) (Record, error) {
	if err := draft.Validate(); err != nil {
		return Record{}, err
	}

	record := draft.Record()
	now := s.now().UTC()
	if draft.IsNew() {
		if record.ID == "" {
			record.ID = s.newID()
		} else if _, err := s.repo.Get(ctx, record.ID); err == nil {
			return Record{}, fmt.Errorf("%w: %s", ErrConflict, record.ID)
		} else if !errors.Is(err, store.ErrNotFound) {
			return Record{}, err
		}
		record.CreatedAt = now
	} else {
		existing, err := s.repo.Get(ctx, record.ID)
		if err != nil {
			return Record{}, err
		}
		record.CreatedAt = existing.CreatedAt
	}
	record.UpdatedAt = now

	if err := s.repo.Put(ctx, record.ID, record); err != nil {
		return Record{}, fmt.Errorf("failed to store asset %s: %w", record.ID, err)
	}

	s.logger.Info("asset committed",
		zap.String("op", "registry.Commit"),
		zap.String("id", record.ID),
		zap.String("name", record.Name),
		zap.Bool("created", draft.IsNew()),
	)
	return record, nil
}

// Get returns the stored record.
func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	return s.repo.Get(ctx, id)
}

// List returns every stored record.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.repo.List(ctx)
}

// Delete removes the stored record.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("asset deleted",
		zap.String("op", "registry.Delete"),
		zap.String("id", id),
	)
	return nil
}

// Schedule computes the depreciation schedule of a stored record.
func (s *Service) Schedule(ctx context.Context, id string) (Record, []depreciation.ScheduleEntry, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return Record{}, nil, err
	}
	entries := s.generator.GenerateSchedule(record.Name, record.Asset)
	metrics.ObserveSchedule(record.Asset.Method, len(entries))
	return record, entries, nil
}

// Report aggregates every stored record for the calendar year.
func (s *Service) Report(ctx context.Context, year int) (report.Summary, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return report.Summary{}, err
	}
	items := make([]report.Item, 0, len(records))
	for _, record := range records {
		items = append(items, record.Item())
	}
	summary := report.ForYear(year, items)

	s.logger.Debug(fmt.Sprintf("report for %d covers %d of %d assets", year, summary.CoveredCount(), len(items)),
		zap.String("op", "registry.Report"),
	)
	return summary, nil
}

// Import stores report items as records, replacing records with the same
// ID. Items are validated like drafts; the first invalid item stops the
// import.
func (s *Service) Import(ctx context.Context, items []report.Item) (int, error) {
	imported := 0
	for _, item := range items {
		var draft *Draft
		existing, err := s.repo.Get(ctx, item.ID)
		switch {
		case err == nil:
			draft = DraftFrom(existing)
		case errors.Is(err, store.ErrNotFound) || item.ID == "":
			draft = s.NewDraft().SetID(item.ID)
		default:
			return imported, err
		}

		draft.SetName(item.Name).
			SetCategory(item.Category).
			SetCost(item.Asset.Cost).
			SetSalvageValue(item.Asset.SalvageValue).
			SetUsefulLife(item.Asset.UsefulLife).
			SetPurchaseDate(item.Asset.PurchaseDate).
			SetMethod(item.Asset.Method)

		if _, err := s.Commit(ctx, draft); err != nil {
			return imported, fmt.Errorf("failed to import asset %q: %w", item.Name, err)
		}
		imported++
	}
	return imported, nil
}
