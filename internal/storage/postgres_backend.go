package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	loadTableQuery = `SELECT name, data, updated_at FROM story_tables WHERE name = $1`
	saveTableQuery = `
		INSERT INTO story_tables (name, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`
)

// DBTX - подмножество pgxpool.Pool, которое нужно бэкенду.
type DBTX interface {
	pgxscan.Querier
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type tableRow struct {
	Name      string    `db:"name"`
	Data      []byte    `db:"data"`
	UpdatedAt time.Time `db:"updated_at"`
}

// PostgresBackend хранит таблицы строками jsonb в story_tables.
type PostgresBackend struct {
	db     DBTX
	logger *zap.Logger
}

// NewPostgresBackend создаёт Postgres-бэкенд. Схема создаётся ApplyMigrations.
func NewPostgresBackend(db DBTX, logger *zap.Logger) *PostgresBackend {
	return &PostgresBackend{db: db, logger: logger.Named("PostgresBackend")}
}

func (b *PostgresBackend) Load(ctx context.Context, table string) ([]byte, error) {
	var row tableRow
	if err := pgxscan.Get(ctx, b.db, &row, loadTableQuery, table); err != nil {
		if pgxscan.NotFound(err) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to load table %s: %w", table, err)
	}
	b.logger.Debug("Table loaded", zap.String("table", table), zap.Time("updated_at", row.UpdatedAt))
	return row.Data, nil
}

func (b *PostgresBackend) Save(ctx context.Context, table string, data []byte) error {
	if _, err := b.db.Exec(ctx, saveTableQuery, table, string(data)); err != nil {
		return fmt.Errorf("failed to save table %s: %w", table, err)
	}
	return nil
}
