package postgres

import (
	"context"
	"errors"
	"fmt"

	"millionaire-service/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// QuestionBank serves questions from Postgres, one random row per level.
type QuestionBank struct {
	pool *pgxpool.Pool
}

func NewQuestionBank(pool *pgxpool.Pool) *QuestionBank {
	return &QuestionBank{pool: pool}
}

func (b *QuestionBank) FetchOneAtLevel(ctx context.Context, level int) (domain.Question, error) {
	var q domain.Question
	err := b.pool.QueryRow(ctx,
		`SELECT id, level, text, answer1, answer2, answer3, answer4
		   FROM questions WHERE level=$1 ORDER BY RANDOM() LIMIT 1`, level).
		Scan(&q.ID, &q.Level, &q.Text, &q.Answers[0], &q.Answers[1], &q.Answers[2], &q.Answers[3])
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Question{}, domain.ErrQuestionUnavailable
	}
	if err != nil {
		return domain.Question{}, fmt.Errorf("fetch question: %w", err)
	}
	return q, nil
}

// LoadPool returns every question stored for a level, for caching layers.
func (b *QuestionBank) LoadPool(ctx context.Context, level int) ([]domain.Question, error) {
	rows, err := b.pool.Query(ctx,
		`SELECT id, level, text, answer1, answer2, answer3, answer4
		   FROM questions WHERE level=$1 ORDER BY id`, level)
	if err != nil {
		return nil, fmt.Errorf("load question pool: %w", err)
	}
	defer rows.Close()

	var pool []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Level, &q.Text, &q.Answers[0], &q.Answers[1], &q.Answers[2], &q.Answers[3]); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		pool = append(pool, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	if len(pool) == 0 {
		return nil, domain.ErrQuestionUnavailable
	}
	return pool, nil
}
