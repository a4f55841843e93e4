package app

import (
	"time"

	"millionaire-service/internal/domain"
)

// TimeLimit is how long a game may run before it counts as lost. Changing it
// retroactively changes how old failed games classify between fail and
// timeout; tests pin a single value.
const TimeLimit = 35 * time.Minute

const questionsPerGame = MaxLevel + 1

// Game is the single-player session state machine: fifteen questions of
// ascending difficulty, a level pointer and the settled prize. It holds no
// lock of its own; callers serialize access and supply the current time, so
// expiry is detected lazily on the next interaction.
type Game struct {
	id         string
	ownerID    string
	questions  []*GameQuestion // ordered by ascending level, fixed at creation
	level      int             // 0..15; 15 means the final question was cleared
	prize      int
	failed     bool
	timeLimit  time.Duration
	createdAt  time.Time
	finishedAt time.Time // zero while in progress
}

// NewGame assembles a game from its fifteen prepared questions. The caller
// (GameService) guarantees the questions are complete and level-ordered.
func NewGame(id, ownerID string, questions []*GameQuestion, timeLimit time.Duration, now time.Time) *Game {
	return &Game{
		id:        id,
		ownerID:   ownerID,
		questions: questions,
		timeLimit: timeLimit,
		createdAt: now,
	}
}

func (g *Game) ID() string            { return g.id }
func (g *Game) OwnerID() string       { return g.ownerID }
func (g *Game) Level() int            { return g.level }
func (g *Game) Prize() int            { return g.prize }
func (g *Game) CreatedAt() time.Time  { return g.createdAt }
func (g *Game) FinishedAt() time.Time { return g.finishedAt }

// PreviousLevel is the last cleared tier, -1 for a fresh game.
func (g *Game) PreviousLevel() int { return g.level - 1 }

// Finished reports whether the game reached a terminal outcome.
func (g *Game) Finished() bool { return !g.finishedAt.IsZero() }

// CurrentQuestion returns the question awaiting an answer.
func (g *Game) CurrentQuestion() (*GameQuestion, bool) {
	if g.Finished() || g.level > MaxLevel {
		return nil, false
	}
	return g.questions[g.level], true
}

// IsExpired reports whether the time limit has silently run out on a game
// still in progress.
func (g *Game) IsExpired(now time.Time) bool {
	return !g.Finished() && now.Sub(g.createdAt) > g.timeLimit
}

// Answer applies one turn and reports whether the submitted label was
// accepted as correct. Wrong answers, expired games and turns against
// already-finished games all come back false; only the first two settle the
// game, the last is a no-op.
func (g *Game) Answer(label string, now time.Time) bool {
	if g.Finished() {
		return false
	}
	if g.IsExpired(now) {
		g.finish(FireproofPrize(g.PreviousLevel()), true, now)
		return false
	}
	if !g.questions[g.level].IsCorrect(label) {
		g.finish(FireproofPrize(g.PreviousLevel()), true, now)
		return false
	}

	g.level++
	if g.level > MaxLevel {
		g.finish(TierPrize(MaxLevel), false, now)
	}
	return true
}

// CashOut settles the game at the last cleared tier's payout. A game whose
// time already ran out cannot be cashed out and is settled by the fireproof
// rule instead. Finished games are untouched.
func (g *Game) CashOut(now time.Time) {
	if g.Finished() {
		return
	}
	if g.IsExpired(now) {
		g.finish(FireproofPrize(g.PreviousLevel()), true, now)
		return
	}
	g.finish(TierPrize(g.PreviousLevel()), false, now)
}

func (g *Game) finish(prize int, failed bool, now time.Time) {
	g.prize = prize
	g.failed = failed
	g.finishedAt = now
}

// Status classifies the game from its final fields without mutating it.
// Failed games are split into timeout and fail by replaying the time-limit
// check against the recorded timestamps.
func (g *Game) Status() domain.GameStatus {
	switch {
	case !g.Finished():
		return domain.StatusInProgress
	case g.failed:
		if g.finishedAt.Sub(g.createdAt) > g.timeLimit {
			return domain.StatusTimeout
		}
		return domain.StatusFail
	case g.level > MaxLevel:
		return domain.StatusWon
	default:
		return domain.StatusMoney
	}
}

// View renders the transport-facing snapshot of the game.
func (g *Game) View() domain.GameView {
	view := domain.GameView{
		ID:        g.id,
		Level:     g.level,
		Prize:     g.prize,
		Status:    g.Status(),
		Finished:  g.Finished(),
		CreatedAt: g.createdAt,
	}
	if g.Finished() {
		finishedAt := g.finishedAt
		view.FinishedAt = &finishedAt
		return view
	}
	if q, ok := g.CurrentQuestion(); ok {
		view.Question = &domain.QuestionView{
			Level:    q.Level(),
			Text:     q.Text(),
			Variants: q.Variants(),
		}
	}
	return view
}

// gameState captures the mutable scalars so a terminal transition can be
// rolled back when the prize credit fails.
type gameState struct {
	level      int
	prize      int
	failed     bool
	finishedAt time.Time
}

func (g *Game) snapshot() gameState {
	return gameState{
		level:      g.level,
		prize:      g.prize,
		failed:     g.failed,
		finishedAt: g.finishedAt,
	}
}

func (g *Game) restore(state gameState) {
	g.level = state.level
	g.prize = state.prize
	g.failed = state.failed
	g.finishedAt = state.finishedAt
}
