package postgres

import (
	"context"
	"fmt"

	"millionaire-service/internal/app"
	"millionaire-service/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Archive persists finished games so player history survives the in-memory
// live store.
type Archive struct {
	pool *pgxpool.Pool
}

func NewArchive(pool *pgxpool.Pool) *Archive {
	return &Archive{pool: pool}
}

func (a *Archive) RecordFinished(ctx context.Context, game *app.Game) error {
	_, err := a.pool.Exec(ctx,
		`INSERT INTO game_archive (id, player_id, level, prize, status, created_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO NOTHING`,
		game.ID(), game.OwnerID(), game.Level(), game.Prize(), string(game.Status()),
		game.CreatedAt(), game.FinishedAt())
	if err != nil {
		return fmt.Errorf("archive game %s: %w", game.ID(), err)
	}
	return nil
}

// ListByPlayer returns a player's finished games, most recent first.
func (a *Archive) ListByPlayer(ctx context.Context, playerID string) ([]domain.GameRecord, error) {
	rows, err := a.pool.Query(ctx,
		`SELECT id, player_id, level, prize, status, created_at, finished_at
		   FROM game_archive WHERE player_id=$1 ORDER BY finished_at DESC`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list games for %s: %w", playerID, err)
	}
	defer rows.Close()

	var records []domain.GameRecord
	for rows.Next() {
		var r domain.GameRecord
		var status string
		if err := rows.Scan(&r.ID, &r.PlayerID, &r.Level, &r.Prize, &status, &r.CreatedAt, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan game record: %w", err)
		}
		r.Status = domain.GameStatus(status)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game records: %w", err)
	}
	return records, nil
}
