package entries

import (
	"context"

	"pocketledger/internal/server/models"
)

// Repository persists ledger entries. Every operation is scoped by the
// owner id; an entry is never visible or mutable through any other
// identity. Update and Delete report the number of affected rows and make
// no distinction between a missing entry and one held by another owner.
type Repository interface {
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Entry, error)
	Update(ctx context.Context, ownerID, entryID string, entry *models.Entry) (int64, error)
	Delete(ctx context.Context, ownerID, entryID string) (int64, error)
	SummarizeByMonth(ctx context.Context, ownerID string) ([]*models.MonthlySummary, error)
}
