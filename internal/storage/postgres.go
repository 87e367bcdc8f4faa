package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists history and credit balances in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// SaveHistory stores the provided history item.
func (s *PostgresStore) SaveHistory(ctx context.Context, item HistoryItem) (HistoryItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	if _, err := s.pool.Exec(ctx,
		`INSERT INTO generation_history (id, user_id, mode, input, output, preview_url, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.UserID, item.Mode, item.Input, item.Output, item.PreviewURL, item.CreatedAt); err != nil {
		return HistoryItem{}, fmt.Errorf("insert history: %w", err)
	}

	return item, nil
}

// ListHistory returns the user's most recent history items.
func (s *PostgresStore) ListHistory(ctx context.Context, userID string) ([]HistoryItem, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, mode, input, output, COALESCE(preview_url, ''), created_at FROM generation_history WHERE user_id = $1 ORDER BY created_at DESC LIMIT 50`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	items := []HistoryItem{}
	for rows.Next() {
		var item HistoryItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Mode, &item.Input, &item.Output, &item.PreviewURL, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// GetHistory returns a history item by ID.
func (s *PostgresStore) GetHistory(ctx context.Context, id string) (HistoryItem, error) {
	var item HistoryItem
	err := s.pool.QueryRow(ctx,
		`SELECT id, user_id, mode, input, output, COALESCE(preview_url, ''), created_at FROM generation_history WHERE id = $1`,
		id).Scan(&item.ID, &item.UserID, &item.Mode, &item.Input, &item.Output, &item.PreviewURL, &item.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return HistoryItem{}, ErrNotFound
	}
	if err != nil {
		return HistoryItem{}, fmt.Errorf("get history: %w", err)
	}
	return item, nil
}

// DeleteHistory removes a history item by ID.
func (s *PostgresStore) DeleteHistory(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM generation_history WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Balance returns the user's credit balance, seeding first-time users.
func (s *PostgresStore) Balance(ctx context.Context, userID string) (int, error) {
	var balance int
	err := s.pool.QueryRow(ctx,
		`INSERT INTO credit_balances (user_id, balance) VALUES ($1, $2)
         ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
         RETURNING balance`,
		userID, DefaultBalance).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("read balance: %w", err)
	}
	return balance, nil
}

// Deduct atomically subtracts credits, refusing to go negative.
func (s *PostgresStore) Deduct(ctx context.Context, userID string, amount int) (int, error) {
	if _, err := s.Balance(ctx, userID); err != nil {
		return 0, err
	}

	var balance int
	err := s.pool.QueryRow(ctx,
		`UPDATE credit_balances SET balance = balance - $2, updated_at = now()
         WHERE user_id = $1 AND balance >= $2
         RETURNING balance`,
		userID, amount).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		current, berr := s.Balance(ctx, userID)
		if berr != nil {
			return 0, berr
		}
		return current, ErrInsufficientCredits
	}
	if err != nil {
		return 0, fmt.Errorf("deduct credits: %w", err)
	}
	return balance, nil
}

// Grant adds credits to the user's balance.
func (s *PostgresStore) Grant(ctx context.Context, userID string, amount int) (int, error) {
	var balance int
	err := s.pool.QueryRow(ctx,
		`INSERT INTO credit_balances (user_id, balance) VALUES ($1, $2)
         ON CONFLICT (user_id) DO UPDATE SET balance = credit_balances.balance + $3, updated_at = now()
         RETURNING balance`,
		userID, DefaultBalance+amount, amount).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("grant credits: %w", err)
	}
	return balance, nil
}

// Close releases database resources.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
