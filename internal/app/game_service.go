package app

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"millionaire-service/internal/domain"
)

// QuestionBank supplies one question for a requested difficulty level.
type QuestionBank interface {
	FetchOneAtLevel(ctx context.Context, level int) (domain.Question, error)
}

// Wallet credits a player's balance when a game settles.
type Wallet interface {
	Credit(ctx context.Context, playerID string, amount int) error
}

// GameStore abstracts where live games are kept (in-memory, Redis, etc).
type GameStore interface {
	Put(game *Game)
	Get(id string) (*Game, bool)
	FindInProgressByOwner(ownerID string) (*Game, bool)
	Delete(id string)
}

// Archive records finished games for player history. Recording is
// best-effort; failures never undo a finish.
type Archive interface {
	RecordFinished(ctx context.Context, game *Game) error
}

// GameService contains the game use cases. Mutating calls against one game
// are serialized through a per-game lock held at this boundary; the Game
// state machine itself stays lock-free.
type GameService struct {
	games    GameStore
	bank     QuestionBank
	wallet   Wallet
	archive  Archive
	clock    func() time.Time
	shuffler Shuffler

	timeLimit time.Duration

	startMu sync.Mutex // serializes the in-progress check in StartGame

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewGameService(games GameStore, bank QuestionBank, wallet Wallet) *GameService {
	return &GameService{
		games:     games,
		bank:      bank,
		wallet:    wallet,
		clock:     time.Now,
		shuffler:  rand.New(rand.NewSource(time.Now().UnixNano())),
		timeLimit: TimeLimit,
		locks:     make(map[string]*sync.Mutex),
	}
}

// WithClock injects a deterministic time source for tests.
func (s *GameService) WithClock(now func() time.Time) *GameService {
	s.clock = now
	return s
}

// WithShuffler injects a deterministic permutation source for tests.
func (s *GameService) WithShuffler(shuffler Shuffler) *GameService {
	s.shuffler = shuffler
	return s
}

// WithArchive enables recording of finished games.
func (s *GameService) WithArchive(archive Archive) *GameService {
	s.archive = archive
	return s
}

// WithTimeLimit overrides the session time limit for games created from now on.
func (s *GameService) WithTimeLimit(limit time.Duration) *GameService {
	if limit > 0 {
		s.timeLimit = limit
	}
	return s
}

// StartGame creates a game with one question per level, all-or-nothing: a
// failed fetch at any level leaves nothing behind. A player who already has
// a game in progress is handed that game back instead of a second one.
func (s *GameService) StartGame(ctx context.Context, ownerID string) (domain.GameView, error) {
	s.startMu.Lock()
	defer s.startMu.Unlock()

	if existing, ok := s.games.FindInProgressByOwner(ownerID); ok {
		view := existing.View()
		view.Resumed = true
		return view, nil
	}

	questions := make([]*GameQuestion, 0, questionsPerGame)
	for level := 0; level <= MaxLevel; level++ {
		q, err := s.bank.FetchOneAtLevel(ctx, level)
		if err != nil {
			return domain.GameView{}, fmt.Errorf("fetch question for level %d: %w", level, err)
		}
		gq, err := NewGameQuestion(q, s.shuffler)
		if err != nil {
			return domain.GameView{}, fmt.Errorf("prepare question for level %d: %w", level, err)
		}
		questions = append(questions, gq)
	}

	game := NewGame(newGameID(), ownerID, questions, s.timeLimit, s.clock())
	s.games.Put(game)
	return game.View(), nil
}

// Answer submits a label for the game's current question. Submissions
// against finished games are idempotent no-ops reported as incorrect.
func (s *GameService) Answer(ctx context.Context, ownerID, gameID, label string) (domain.TurnResult, error) {
	game, err := s.ownedGame(ownerID, gameID)
	if err != nil {
		return domain.TurnResult{}, err
	}

	lock := s.lockFor(gameID)
	lock.Lock()
	defer lock.Unlock()

	if game.Finished() {
		return domain.TurnResult{Correct: false, Game: game.View()}, nil
	}

	question, _ := game.CurrentQuestion()
	before := game.snapshot()
	correct := game.Answer(label, s.clock())

	if game.Finished() {
		if err := s.settle(ctx, game, before); err != nil {
			return domain.TurnResult{}, err
		}
	}

	result := domain.TurnResult{Correct: correct, Game: game.View()}
	if !correct && game.Finished() {
		result.CorrectAnswer = question.CorrectText()
	}
	return result, nil
}

// CashOut ends the game voluntarily, keeping the last cleared tier's payout.
// Cashing out a finished game is a no-op.
func (s *GameService) CashOut(ctx context.Context, ownerID, gameID string) (domain.GameView, error) {
	game, err := s.ownedGame(ownerID, gameID)
	if err != nil {
		return domain.GameView{}, err
	}

	lock := s.lockFor(gameID)
	lock.Lock()
	defer lock.Unlock()

	if game.Finished() {
		return game.View(), nil
	}

	before := game.snapshot()
	game.CashOut(s.clock())
	if err := s.settle(ctx, game, before); err != nil {
		return domain.GameView{}, err
	}
	return game.View(), nil
}

// GameState returns the current view of a game for rendering.
func (s *GameService) GameState(_ context.Context, ownerID, gameID string) (domain.GameView, error) {
	game, err := s.ownedGame(ownerID, gameID)
	if err != nil {
		return domain.GameView{}, err
	}

	lock := s.lockFor(gameID)
	lock.Lock()
	defer lock.Unlock()
	return game.View(), nil
}

// settle commits a terminal transition: the prize credit must land or the
// game is restored to its pre-move state and stays playable.
func (s *GameService) settle(ctx context.Context, game *Game, before gameState) error {
	if err := s.wallet.Credit(ctx, game.OwnerID(), game.Prize()); err != nil {
		game.restore(before)
		return fmt.Errorf("%w: %v", domain.ErrCreditFailed, err)
	}
	if s.archive != nil {
		if err := s.archive.RecordFinished(ctx, game); err != nil {
			log.Printf("archive game %s: %v", game.ID(), err)
		}
	}
	return nil
}

func (s *GameService) ownedGame(ownerID, gameID string) (*Game, error) {
	game, ok := s.games.Get(gameID)
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	if game.OwnerID() != ownerID {
		return nil, domain.ErrNotYourGame
	}
	return game, nil
}

func (s *GameService) lockFor(gameID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[gameID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[gameID] = lock
	}
	return lock
}

const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

func newGameID() string {
	b := make([]byte, 12)
	for i := range b {
		b[i] = idCharset[rand.Intn(len(idCharset))]
	}
	return string(b)
}
