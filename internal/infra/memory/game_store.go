package memory

import (
	"sync"

	"millionaire-service/internal/app"
)

// GameStore is an in-memory implementation of app.GameStore.
type GameStore struct {
	mu    sync.RWMutex
	games map[string]*app.Game
}

func NewGameStore() *GameStore {
	return &GameStore{
		games: make(map[string]*app.Game),
	}
}

func (s *GameStore) Put(game *app.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID()] = game
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
}
