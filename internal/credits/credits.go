// Package credits meters generation actions against per-user balances.
package credits

import (
	"context"

	"alquimia/internal/storage"
)

// Action names a billable operation.
type Action string

const (
	ActionGenerate Action = "generate"
	ActionReverse  Action = "reverse"
	ActionCampaign Action = "campaign"
	ActionAgent    Action = "agent"
	ActionPalette  Action = "palette"
	ActionAdapt    Action = "adapt"
	ActionRender   Action = "render"
)

// costs prices each action in credits. Unlisted actions are free.
var costs = map[Action]int{
	ActionGenerate: 1,
	ActionReverse:  2,
	ActionCampaign: 5,
	ActionAgent:    1,
	ActionPalette:  1,
	ActionAdapt:    2,
	ActionRender:   3,
}

// Cost returns the price of an action.
func Cost(action Action) int {
	return costs[action]
}

// Gate charges actions against the backing store before they run.
type Gate struct {
	store storage.Store
}

// NewGate wraps the store with action pricing.
func NewGate(store storage.Store) *Gate {
	return &Gate{store: store}
}

// Charge deducts the action's cost and returns the remaining balance.
// Returns storage.ErrInsufficientCredits when the balance cannot cover it.
func (g *Gate) Charge(ctx context.Context, userID string, action Action) (int, error) {
	cost := Cost(action)
	if cost == 0 {
		return g.store.Balance(ctx, userID)
	}
	return g.store.Deduct(ctx, userID, cost)
}

// Balance returns the user's current balance without charging.
func (g *Gate) Balance(ctx context.Context, userID string) (int, error) {
	return g.store.Balance(ctx, userID)
}

// Refund returns credits after a failed action.
func (g *Gate) Refund(ctx context.Context, userID string, action Action) (int, error) {
	cost := Cost(action)
	if cost == 0 {
		return g.store.Balance(ctx, userID)
	}
	return g.store.Grant(ctx, userID, cost)
}
