package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Wallet keeps player balances in the players table.
type Wallet struct {
	pool *pgxpool.Pool
}

func NewWallet(pool *pgxpool.Pool) *Wallet {
	return &Wallet{pool: pool}
}

func (w *Wallet) Credit(ctx context.Context, playerID string, amount int) error {
	_, err := w.pool.Exec(ctx,
		`INSERT INTO players (id, balance) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET balance = players.balance + EXCLUDED.balance`,
		playerID, amount)
	if err != nil {
		return fmt.Errorf("credit player %s: %w", playerID, err)
	}
	return nil
}

// Balance reports a player's accumulated winnings; unknown players have 0.
func (w *Wallet) Balance(ctx context.Context, playerID string) (int, error) {
	var balance int
	err := w.pool.QueryRow(ctx,
		`SELECT COALESCE((SELECT balance FROM players WHERE id=$1), 0)`, playerID).
		Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("read balance for %s: %w", playerID, err)
	}
	return balance, nil
}
