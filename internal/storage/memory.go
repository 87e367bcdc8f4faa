package storage

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore is a thread-safe store used when a database is not configured.
type InMemoryStore struct {
	mu       sync.RWMutex
	history  []HistoryItem
	balances map[string]int
}

// NewInMemoryStore constructs an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		history:  make([]HistoryItem, 0),
		balances: make(map[string]int),
	}
}

// SaveHistory prepends a history item, trimming the log to the 50 most recent.
func (s *InMemoryStore) SaveHistory(_ context.Context, item HistoryItem) (HistoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	s.history = append([]HistoryItem{item}, s.history...)
	if len(s.history) > 50 {
		s.history = s.history[:50]
	}

	return item, nil
}

// ListHistory returns a snapshot of the user's history, newest first.
func (s *InMemoryStore) ListHistory(_ context.Context, userID string) ([]HistoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := []HistoryItem{}
	for _, h := range s.history {
		if h.UserID == userID {
			items = append(items, h)
		}
	}
	return items, nil
}

// GetHistory returns a history item by ID.
func (s *InMemoryStore) GetHistory(_ context.Context, id string) (HistoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, h := range s.history {
		if h.ID == id {
			return h, nil
		}
	}
	return HistoryItem{}, ErrNotFound
}

// DeleteHistory removes a history item by ID.
func (s *InMemoryStore) DeleteHistory(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for idx, h := range s.history {
		if h.ID == id {
			s.history = append(s.history[:idx], s.history[idx+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// balanceLocked seeds a new user with the default balance.
func (s *InMemoryStore) balanceLocked(userID string) int {
	if _, ok := s.balances[userID]; !ok {
		s.balances[userID] = DefaultBalance
	}
	return s.balances[userID]
}

// Balance returns the user's current credit balance.
func (s *InMemoryStore) Balance(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.balanceLocked(userID), nil
}

// Deduct subtracts credits, refusing to let the balance go negative.
func (s *InMemoryStore) Deduct(_ context.Context, userID string, amount int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.balanceLocked(userID)
	if current < amount {
		return current, ErrInsufficientCredits
	}
	s.balances[userID] = current - amount
	return s.balances[userID], nil
}

// Grant adds credits to the user's balance.
func (s *InMemoryStore) Grant(_ context.Context, userID string, amount int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances[userID] = s.balanceLocked(userID) + amount
	return s.balances[userID], nil
}

// Close satisfies the Store interface.
func (s *InMemoryStore) Close() {}
