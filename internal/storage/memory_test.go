package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryHistory(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	t.Run("save assigns id and timestamp", func(t *testing.T) {
		item, err := store.SaveHistory(ctx, HistoryItem{
			UserID: "u1",
			Mode:   "IMAGE",
			Input:  json.RawMessage(`{"concept":"cat"}`),
			Output: json.RawMessage(`[]`),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, item.ID)
		assert.False(t, item.CreatedAt.IsZero())
	})

	t.Run("list is scoped to the user and newest first", func(t *testing.T) {
		first, err := store.SaveHistory(ctx, HistoryItem{UserID: "u2", Mode: "IMAGE"})
		require.NoError(t, err)
		second, err := store.SaveHistory(ctx, HistoryItem{UserID: "u2", Mode: "VIDEO"})
		require.NoError(t, err)
		_, err = store.SaveHistory(ctx, HistoryItem{UserID: "other", Mode: "IMAGE"})
		require.NoError(t, err)

		items, err := store.ListHistory(ctx, "u2")
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, second.ID, items[0].ID)
		assert.Equal(t, first.ID, items[1].ID)
	})

	t.Run("get and delete round trip", func(t *testing.T) {
		item, err := store.SaveHistory(ctx, HistoryItem{UserID: "u3", Mode: "LOGO_BRAND"})
		require.NoError(t, err)

		got, err := store.GetHistory(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, item.ID, got.ID)

		require.NoError(t, store.DeleteHistory(ctx, item.ID))
		_, err = store.GetHistory(ctx, item.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, store.DeleteHistory(ctx, item.ID), ErrNotFound)
	})

	t.Run("log is capped at 50 items", func(t *testing.T) {
		capped := NewInMemoryStore()
		for i := 0; i < 60; i++ {
			_, err := capped.SaveHistory(ctx, HistoryItem{UserID: "u", Mode: "IMAGE", PreviewURL: fmt.Sprintf("p%d", i)})
			require.NoError(t, err)
		}
		items, err := capped.ListHistory(ctx, "u")
		require.NoError(t, err)
		assert.Len(t, items, 50)
		assert.Equal(t, "p59", items[0].PreviewURL, "newest survives the trim")
	})
}

func TestInMemoryCredits(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	t.Run("first touch seeds the default balance", func(t *testing.T) {
		balance, err := store.Balance(ctx, "fresh")
		require.NoError(t, err)
		assert.Equal(t, DefaultBalance, balance)
	})

	t.Run("deduct and grant adjust the balance", func(t *testing.T) {
		balance, err := store.Deduct(ctx, "u1", 5)
		require.NoError(t, err)
		assert.Equal(t, DefaultBalance-5, balance)

		balance, err = store.Grant(ctx, "u1", 2)
		require.NoError(t, err)
		assert.Equal(t, DefaultBalance-3, balance)
	})

	t.Run("underflow is refused", func(t *testing.T) {
		_, err := store.Deduct(ctx, "u2", DefaultBalance+1)
		assert.ErrorIs(t, err, ErrInsufficientCredits)

		balance, err := store.Balance(ctx, "u2")
		require.NoError(t, err)
		assert.Equal(t, DefaultBalance, balance, "failed deduction must not change the balance")
	})
}
