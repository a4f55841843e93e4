package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"millionaire-service/internal/domain"
)

// QuestionBank serves questions from in-memory per-level pools (useful for
// tests and demos). Each fetch picks uniformly from the level's pool.
type QuestionBank struct {
	mu    sync.Mutex
	rnd   *rand.Rand
	pools map[int][]domain.Question
}

func NewQuestionBank(questions []domain.Question) *QuestionBank {
	pools := make(map[int][]domain.Question)
	for _, q := range questions {
		pools[q.Level] = append(pools[q.Level], q)
	}
	return &QuestionBank{
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		pools: pools,
	}
}

func (b *QuestionBank) FetchOneAtLevel(_ context.Context, level int) (domain.Question, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	pool := b.pools[level]
	if len(pool) == 0 {
		return domain.Question{}, domain.ErrQuestionUnavailable
	}
	return pool[b.rnd.Intn(len(pool))], nil
}

// LoadPool returns a copy of the whole pool for a level, for caching layers.
func (b *QuestionBank) LoadPool(_ context.Context, level int) ([]domain.Question, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	pool := b.pools[level]
	if len(pool) == 0 {
		return nil, domain.ErrQuestionUnavailable
	}
	out := make([]domain.Question, len(pool))
	copy(out, pool)
	return out, nil
}
