package entries

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pocketledger/internal/server/models"
)

// MemoryRepository is an in-memory Repository used by tests. It mirrors
// the Postgres semantics: owner scoping, date-descending listing with
// insertion-order ties, and the monthly rollup.
type MemoryRepository struct {
	mu      sync.Mutex
	entries []*models.Entry
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *entry
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()
	r.entries = append(r.entries, &stored)

	out := stored
	return &out, nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*models.Entry, 0)
	for _, e := range r.entries {
		if e.OwnerID == ownerID {
			out := *e
			result = append(result, &out)
		}
	}

	// the slice already holds insertion order, a stable sort keeps it
	// for same-date entries
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})

	return result, nil
}

func (r *MemoryRepository) Update(ctx context.Context, ownerID, entryID string, entry *models.Entry) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.ID == entryID && e.OwnerID == ownerID {
			e.Type = entry.Type
			e.Amount = entry.Amount
			e.Date = entry.Date
			e.Description = entry.Description
			return 1, nil
		}
	}
	return 0, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, ownerID, entryID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.ID == entryID && e.OwnerID == ownerID {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *MemoryRepository) SummarizeByMonth(ctx context.Context, ownerID string) ([]*models.MonthlySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	buckets := make(map[string]*models.MonthlySummary)
	order := make([]string, 0)

	for _, e := range r.entries {
		if e.OwnerID != ownerID {
			continue
		}
		period := e.Date[:7]
		b, ok := buckets[period]
		if !ok {
			b = &models.MonthlySummary{
				Period:       period,
				TotalIncome:  decimal.Zero,
				TotalExpense: decimal.Zero,
			}
			buckets[period] = b
			order = append(order, period)
		}
		switch e.Type {
		case models.EntryTypeIncome:
			b.TotalIncome = b.TotalIncome.Add(e.Amount)
		case models.EntryTypeExpense:
			b.TotalExpense = b.TotalExpense.Add(e.Amount)
		}
	}

	result := make([]*models.MonthlySummary, 0, len(order))
	for _, period := range order {
		result = append(result, buckets[period])
	}
	return result, nil
}

var _ Repository = (*MemoryRepository)(nil)
