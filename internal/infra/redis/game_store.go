package redis

import (
	"context"
	"sync"
	"time"

	"millionaire-service/internal/app"

	"github.com/redis/go-redis/v9"
)

// GameStore is a Redis-aware implementation of app.GameStore.
// Notes:
//   - Live games stay in a local map; the state machine is an in-process
//     object and a single instance owns all turns of a game.
//   - Redis marks game liveness per owner so operators (and future
//     instances) can see who is mid-game, with a TTL safety net.
type GameStore struct {
	client *redis.Client
	ttl    time.Duration
	mu     sync.RWMutex
	games  map[string]*app.Game
}

func NewGameStore(client *redis.Client, ttl time.Duration) *GameStore {
	return &GameStore{
		client: client,
		ttl:    ttl,
		games:  make(map[string]*app.Game),
	}
}

func (s *GameStore) Put(game *app.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID()] = game
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(game.ID()), game.OwnerID(), s.ttl).Err()
}

func (s *GameStore) Get(id string) (*app.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	return game, ok
}

func (s *GameStore) FindInProgressByOwner(ownerID string) (*app.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, game := range s.games {
		if game.OwnerID() == ownerID && !game.Finished() {
			return game, true
		}
	}
	return nil, false
}

func (s *GameStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	_ = s.client.Del(context.Background(), s.key(id)).Err()
}

func (s *GameStore) key(id string) string {
	return "game:live:" + id
}
