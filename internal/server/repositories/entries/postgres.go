package entries

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pocketledger/internal/server/models"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {

	query :=
		`INSERT INTO entries (id, owner_id, type, amount, entry_date, description)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	entry.ID = uuid.NewString()

	err := r.db.QueryRowContext(ctx, query,
		entry.ID, entry.OwnerID, entry.Type, entry.Amount, entry.Date, entry.Description).
		Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return entry, nil
}

// ListByOwner returns the owner's entries ordered by date descending.
// Same-date ties keep insertion order (seq), so repeated calls over
// unchanged data yield identical sequences.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Entry, error) {
	query :=
		`SELECT id, owner_id, type, amount, entry_date, description, created_at
		 FROM entries
		 WHERE owner_id = $1
		 ORDER BY entry_date DESC, seq ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Entry, 0)
	for rows.Next() {
		entry := &models.Entry{}
		var date time.Time
		if err := rows.Scan(&entry.ID, &entry.OwnerID, &entry.Type, &entry.Amount,
			&date, &entry.Description, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		entry.Date = date.Format(models.DateLayout)
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, ownerID, entryID string, entry *models.Entry) (int64, error) {
	if _, err := uuid.Parse(entryID); err != nil {
		// a malformed id cannot match anything; same outcome as a miss
		return 0, nil
	}

	query :=
		`UPDATE entries
		 SET type = $1, amount = $2, entry_date = $3, description = $4
		 WHERE id = $5 AND owner_id = $6
		 `

	res, err := r.db.ExecContext(ctx, query,
		entry.Type, entry.Amount, entry.Date, entry.Description, entryID, ownerID)
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}

	return res.RowsAffected()
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, entryID string) (int64, error) {
	if _, err := uuid.Parse(entryID); err != nil {
		return 0, nil
	}

	query :=
		`DELETE FROM entries
		 WHERE id = $1 AND owner_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, entryID, ownerID)
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}

	return res.RowsAffected()
}

// SummarizeByMonth rolls the owner's ledger up into year-month buckets in
// a single aggregate query. Bucket order is whatever the grouping yields.
func (r *PostgresRepository) SummarizeByMonth(ctx context.Context, ownerID string) ([]*models.MonthlySummary, error) {
	query :=
		`SELECT to_char(entry_date, 'YYYY-MM') AS period,
		        COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0) AS total_income,
		        COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS total_expense
		 FROM entries
		 WHERE owner_id = $1
		 GROUP BY period
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	result := make([]*models.MonthlySummary, 0)
	for rows.Next() {
		s := &models.MonthlySummary{}
		if err := rows.Scan(&s.Period, &s.TotalIncome, &s.TotalExpense); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}
