package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"millionaire-service/internal/domain"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// PoolLoader loads the full question pool for a level from the backing
// store (Postgres, in-memory seed data, ...).
type PoolLoader interface {
	LoadPool(ctx context.Context, level int) ([]domain.Question, error)
}

// QuestionBank caches each level's question pool in Redis as a JSON blob
// and picks one question at random per fetch. Cache misses collapse through
// singleflight so a cold level hits the loader only once.
type QuestionBank struct {
	client *redis.Client
	loader PoolLoader
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuestionBank(client *redis.Client, loader PoolLoader, ttl time.Duration) *QuestionBank {
	return &QuestionBank{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (b *QuestionBank) FetchOneAtLevel(ctx context.Context, level int) (domain.Question, error) {
	pool, err := b.pool(ctx, level)
	if err != nil {
		return domain.Question{}, err
	}
	if len(pool) == 0 {
		return domain.Question{}, domain.ErrQuestionUnavailable
	}
	return pool[b.intn(len(pool))], nil
}

func (b *QuestionBank) pool(ctx context.Context, level int) ([]domain.Question, error) {
	key := b.key(level)

	if raw, err := b.client.Get(ctx, key).Bytes(); err == nil {
		return decodePool(raw)
	}

	result, err, _ := b.sf.Do(key, func() (interface{}, error) {
		// Re-check the cache in case another goroutine filled it.
		if raw, err := b.client.Get(ctx, key).Bytes(); err == nil {
			return decodePool(raw)
		}

		pool, err := b.loader.LoadPool(ctx, level)
		if err != nil {
			return nil, err
		}
		if raw, err := json.Marshal(pool); err == nil {
			// best-effort cache fill
			_ = b.client.Set(ctx, key, raw, b.ttlWithJitter()).Err()
		}
		return pool, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (b *QuestionBank) key(level int) string {
	return fmt.Sprintf("questions:level:%d", level)
}

func (b *QuestionBank) intn(n int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rnd.Intn(n)
}

func (b *QuestionBank) ttlWithJitter() time.Duration {
	if b.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(b.ttl) / 10
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ttl + time.Duration(b.rnd.Int63n(jitterMax+1))
}

func decodePool(raw []byte) ([]domain.Question, error) {
	var pool []domain.Question
	if err := json.Unmarshal(raw, &pool); err != nil {
		return nil, fmt.Errorf("decode cached question pool: %w", err)
	}
	return pool, nil
}
