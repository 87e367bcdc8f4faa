package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"alquimia/internal/persona"
)

// ErrNotFound indicates that a history item could not be located in the backing store.
var ErrNotFound = errors.New("history item not found")

// ErrInsufficientCredits indicates the user's balance cannot cover a deduction.
var ErrInsufficientCredits = errors.New("insufficient credits")

// DefaultBalance is granted to a user the first time their balance is touched.
const DefaultBalance = 100

// HistoryItem records one completed generation: the request as sent and
// the typed result, both kept as raw JSON so the store stays agnostic of
// result shapes.
type HistoryItem struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Mode       persona.Mode    `json:"mode"`
	Input      json.RawMessage `json:"input"`
	Output     json.RawMessage `json:"output"`
	PreviewURL string          `json:"preview_url,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Store defines the persistence behaviors the application relies on.
type Store interface {
	SaveHistory(ctx context.Context, item HistoryItem) (HistoryItem, error)
	ListHistory(ctx context.Context, userID string) ([]HistoryItem, error)
	GetHistory(ctx context.Context, id string) (HistoryItem, error)
	DeleteHistory(ctx context.Context, id string) error

	Balance(ctx context.Context, userID string) (int, error)
	Deduct(ctx context.Context, userID string, amount int) (int, error)
	Grant(ctx context.Context, userID string, amount int) (int, error)

	Close()
}

// NewStore selects a backing store based on whether a database URL is provided.
func NewStore(ctx context.Context, databaseURL string) (Store, error) {
	if databaseURL == "" {
		return NewInMemoryStore(), nil
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := ensureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

func ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS generation_history (
        id TEXT PRIMARY KEY,
        user_id TEXT NOT NULL,
        mode TEXT NOT NULL,
        input JSONB DEFAULT '{}'::jsonb,
        output JSONB DEFAULT '{}'::jsonb,
        preview_url TEXT,
        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`)
	if err != nil {
		return fmt.Errorf("create generation_history table: %w", err)
	}

	_, err = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS credit_balances (
        user_id TEXT PRIMARY KEY,
        balance INTEGER NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`)
	if err != nil {
		return fmt.Errorf("create credit_balances table: %w", err)
	}

	_, err = pool.Exec(ctx, `CREATE INDEX IF NOT EXISTS generation_history_user_idx ON generation_history (user_id, created_at DESC)`)
	if err != nil {
		return fmt.Errorf("index generation_history: %w", err)
	}

	return nil
}
