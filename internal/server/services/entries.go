package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"pocketledger/internal/common"
	"pocketledger/internal/server/models"
	"pocketledger/internal/server/repositories/entries"
)

// EntryInput is one ledger mutation as submitted by the owner, before
// validation.
type EntryInput struct {
	Type        string
	Amount      decimal.Decimal
	Date        string
	Description string
}

// EntryService validates ledger mutations and delegates to the repository
// with the caller's identity attached. Ownership is re-checked in the
// repository on every mutating call.
type EntryService struct {
	repo entries.Repository
}

func NewEntryService(repo entries.Repository) *EntryService {
	return &EntryService{repo: repo}
}

func validateEntry(in *EntryInput) error {
	var violations []string

	if in.Type != models.EntryTypeExpense && in.Type != models.EntryTypeIncome {
		violations = append(violations, "type must be either income or expense")
	}
	if !in.Amount.IsPositive() {
		violations = append(violations, "amount must be greater than zero")
	}
	if _, err := time.Parse(models.DateLayout, in.Date); err != nil {
		violations = append(violations, "date must be a valid date in YYYY-MM-DD format")
	}
	if strings.TrimSpace(in.Description) == "" {
		violations = append(violations, "description must not be empty")
	}

	if len(violations) > 0 {
		return common.NewValidationError(violations...)
	}
	return nil
}

func (s *EntryService) Create(ctx context.Context, ownerID string, in *EntryInput) (*models.Entry, error) {
	if err := validateEntry(in); err != nil {
		return nil, err
	}

	entry := &models.Entry{
		OwnerID:     ownerID,
		Type:        in.Type,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
	}

	entry, err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}

	return entry, nil
}

// List returns every entry the owner holds, newest date first. An owner
// with no entries gets an empty sequence, not an error.
func (s *EntryService) List(ctx context.Context, ownerID string) ([]*models.Entry, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Update replaces all mutable fields of the entry matching both id and
// owner. A zero count covers missing and foreign-owned entries alike.
func (s *EntryService) Update(ctx context.Context, ownerID, entryID string, in *EntryInput) (int64, error) {
	if err := validateEntry(in); err != nil {
		return 0, err
	}

	entry := &models.Entry{
		Type:        in.Type,
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
	}

	return s.repo.Update(ctx, ownerID, entryID, entry)
}

func (s *EntryService) Delete(ctx context.Context, ownerID, entryID string) (int64, error) {
	return s.repo.Delete(ctx, ownerID, entryID)
}

// Summarize rolls the owner's ledger up into per-month income and expense
// totals.
func (s *EntryService) Summarize(ctx context.Context, ownerID string) ([]*models.MonthlySummary, error) {
	return s.repo.SummarizeByMonth(ctx, ownerID)
}
