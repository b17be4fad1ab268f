package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"pocketledger/internal/server/migrations"
	"pocketledger/internal/server/repositories/entries"
	"pocketledger/internal/server/repositories/users"
)

type PostgresManager struct {
	db      *sql.DB
	users   users.Repository
	entries entries.Repository
	ready   atomic.Bool
}

func (m *PostgresManager) Users() users.Repository {
	return m.users
}

func (m *PostgresManager) Entries() entries.Repository {
	return m.entries
}

func (m *PostgresManager) Ready() bool {
	return m.ready.Load()
}

func (m *PostgresManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *PostgresManager) Close() error {
	m.ready.Store(false)
	return m.db.Close()
}

func (m *PostgresManager) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

// NewPostgresManager opens the pool, verifies connectivity, runs the
// embedded migrations and only then flips the readiness gate. A failure
// here is fatal for the process; the caller must not start serving.
func NewPostgresManager(ctx context.Context, dsn string) (*PostgresManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	m := &PostgresManager{
		db:      db,
		users:   users.NewPostgresRepository(db),
		entries: entries.NewPostgresRepository(db),
	}

	if err := m.runMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	m.ready.Store(true)

	return m, nil
}

var _ Manager = (*PostgresManager)(nil)
