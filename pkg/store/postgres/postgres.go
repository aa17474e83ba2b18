// Package postgres provides a Store backed by a PostgreSQL table through pgx.
package postgres

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agentstation/tripmap/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS tripmap_documents (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Store keeps documents in the tripmap_documents table.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to dsn, verifies the connection and creates the table.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, errors.NewConfigError("postgres", "invalid connection string", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.WrapIO("connect", "postgres", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, errors.WrapIO("migrate", "postgres", err)
	}
	return New(pool), nil
}

// New wraps an existing pool. The caller owns the table.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Load returns the document stored under key.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, `SELECT value::text FROM tripmap_documents WHERE key = $1`, key).Scan(&value)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return nil, errors.NewNotFoundError("document", key)
	}
	if err != nil {
		return nil, errors.WrapIO("read", key, err)
	}
	return value, nil
}

// Save upserts the document under key.
func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	const sql = `
		INSERT INTO tripmap_documents (key, value, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := s.pool.Exec(ctx, sql, key, string(data)); err != nil {
		return errors.WrapIO("write", key, err)
	}
	return nil
}

// Keys lists stored keys in sorted order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT key FROM tripmap_documents ORDER BY key`)
	if err != nil {
		return nil, errors.WrapIO("read", "tripmap_documents", err)
	}
	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.WrapIO("read", "tripmap_documents", err)
	}
	return keys, nil
}

// Close closes the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
