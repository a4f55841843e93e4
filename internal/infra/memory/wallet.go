package memory

import (
	"context"
	"sync"
)

// Wallet keeps player balances in memory.
type Wallet struct {
	mu       sync.Mutex
	balances map[string]int
}

func NewWallet() *Wallet {
	return &Wallet{
		balances: make(map[string]int),
	}
}

func (w *Wallet) Credit(_ context.Context, playerID string, amount int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.balances[playerID] += amount
	return nil
}

// Balance reports a player's accumulated winnings.
func (w *Wallet) Balance(playerID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balances[playerID]
}
