package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"millionaire-service/internal/app"
	"millionaire-service/internal/domain"
	"millionaire-service/internal/infra/memory"
)

type identityPerm struct{}

func (identityPerm) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// bankQuestions yields one question per level; answer "a" is always correct
// once dealt through identityPerm.
func bankQuestions() []domain.Question {
	questions := make([]domain.Question, 0, 15)
	for level := 0; level <= app.MaxLevel; level++ {
		questions = append(questions, domain.Question{
			Level:   level,
			Text:    fmt.Sprintf("Question for level %d", level),
			Answers: [4]string{"right", "wrong one", "wrong two", "wrong three"},
		})
	}
	return questions
}

type fixture struct {
	service *app.GameService
	wallet  *memory.Wallet
	store   *memory.GameStore
	now     time.Time
}

func newFixture() *fixture {
	f := &fixture{
		wallet: memory.NewWallet(),
		store:  memory.NewGameStore(),
		now:    time.Date(2024, 11, 22, 12, 0, 0, 0, time.UTC),
	}
	f.service = app.NewGameService(f.store, memory.NewQuestionBank(bankQuestions()), f.wallet).
		WithClock(func() time.Time { return f.now }).
		WithShuffler(identityPerm{})
	return f
}

func TestStartGameDealsFifteenOrderedQuestions(t *testing.T) {
	f := newFixture()

	view, err := f.service.StartGame(context.Background(), "u1")
	if err != nil {
		t.Fatalf("start game: %v", err)
	}
	if view.Level != 0 || view.Prize != 0 || view.Status != domain.StatusInProgress {
		t.Fatalf("unexpected fresh game view: %+v", view)
	}
	if view.Question == nil || view.Question.Level != 0 {
		t.Fatalf("expected the level 0 question to be current, got %+v", view.Question)
	}

	game, ok := f.store.Get(view.ID)
	if !ok {
		t.Fatal("expected game in store")
	}
	// Walk the whole ladder to see every level once, in order.
	for level := 0; level <= app.MaxLevel; level++ {
		q, ok := game.CurrentQuestion()
		if !ok {
			t.Fatalf("no current question at level %d", level)
		}
		if q.Level() != level {
			t.Fatalf("question %d has level %d, want %d", level, q.Level(), level)
		}
		game.Answer(q.CorrectLabel(), f.now)
	}
}

func TestStartGameIsAllOrNothing(t *testing.T) {
	f := newFixture()
	// A bank with a hole at level 7.
	questions := make([]domain.Question, 0, 14)
	for _, q := range bankQuestions() {
		if q.Level != 7 {
			questions = append(questions, q)
		}
	}
	service := app.NewGameService(f.store, memory.NewQuestionBank(questions), f.wallet).
		WithShuffler(identityPerm{})

	_, err := service.StartGame(context.Background(), "u1")
	if !errors.Is(err, domain.ErrQuestionUnavailable) {
		t.Fatalf("got %v, want ErrQuestionUnavailable", err)
	}
	if _, ok := f.store.FindInProgressByOwner("u1"); ok {
		t.Fatal("expected no partial game to be left behind")
	}
}

func TestStartGameResumesInProgressGame(t *testing.T) {
	f := newFixture()

	first, err := f.service.StartGame(context.Background(), "u1")
	if err != nil {
		t.Fatalf("start game: %v", err)
	}
	second, err := f.service.StartGame(context.Background(), "u1")
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected the in-progress game back, got %s and %s", first.ID, second.ID)
	}
	if !second.Resumed {
		t.Error("expected resumed flag on the second start")
	}

	// Another player gets their own game.
	other, err := f.service.StartGame(context.Background(), "u2")
	if err != nil {
		t.Fatalf("start for u2: %v", err)
	}
	if other.ID == first.ID {
		t.Error("expected a distinct game for another player")
	}
}

func TestAnswerCreditsWalletOnLoss(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	view, _ := f.service.StartGame(ctx, "u1")
	// Clear levels 0..8, then miss level 9.
	for i := 0; i < 9; i++ {
		result, err := f.service.Answer(ctx, "u1", view.ID, "a")
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		if !result.Correct {
			t.Fatalf("expected answer %d to be correct", i)
		}
	}
	result, err := f.service.Answer(ctx, "u1", view.ID, "c")
	if err != nil {
		t.Fatalf("losing answer: %v", err)
	}
	if result.Correct {
		t.Fatal("expected losing answer to be incorrect")
	}
	if result.Game.Status != domain.StatusFail || result.Game.Prize != 1_000 {
		t.Errorf("got status %s prize %d, want fail with 1000", result.Game.Status, result.Game.Prize)
	}
	if result.CorrectAnswer != "right" {
		t.Errorf("expected the correct answer revealed, got %q", result.CorrectAnswer)
	}
	if got := f.wallet.Balance("u1"); got != 1_000 {
		t.Errorf("wallet balance = %d, want 1000", got)
	}
}

func TestAnswerWholeLadderWinsMillion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	view, _ := f.service.StartGame(ctx, "u1")
	var result domain.TurnResult
	var err error
	for level := 0; level <= app.MaxLevel; level++ {
		result, err = f.service.Answer(ctx, "u1", view.ID, "A")
		if err != nil {
			t.Fatalf("answer at level %d: %v", level, err)
		}
	}
	if result.Game.Status != domain.StatusWon || result.Game.Prize != 1_000_000 {
		t.Errorf("got status %s prize %d, want won with 1000000", result.Game.Status, result.Game.Prize)
	}
	if got := f.wallet.Balance("u1"); got != 1_000_000 {
		t.Errorf("wallet balance = %d, want 1000000", got)
	}
}

func TestCashOutCreditsLastClearedTier(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	view, _ := f.service.StartGame(ctx, "u1")
	for i := 0; i < 5; i++ {
		if _, err := f.service.Answer(ctx, "u1", view.ID, "a"); err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
	}
	cashed, err := f.service.CashOut(ctx, "u1", view.ID)
	if err != nil {
		t.Fatalf("cash out: %v", err)
	}
	if cashed.Status != domain.StatusMoney || cashed.Prize != 1_000 {
		t.Errorf("got status %s prize %d, want money with 1000", cashed.Status, cashed.Prize)
	}
	if got := f.wallet.Balance("u1"); got != 1_000 {
		t.Errorf("wallet balance = %d, want 1000", got)
	}
}

func TestTimedOutAnswerSettlesAsTimeout(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	view, _ := f.service.StartGame(ctx, "u1")
	f.now = f.now.Add(app.TimeLimit + time.Minute)

	result, err := f.service.Answer(ctx, "u1", view.ID, "a")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if result.Correct {
		t.Fatal("expected a late answer to be rejected")
	}
	if result.Game.Status != domain.StatusTimeout {
		t.Errorf("status = %s, want timeout", result.Game.Status)
	}
	if got := f.wallet.Balance("u1"); got != 0 {
		t.Errorf("wallet balance = %d, want 0", got)
	}
}

func TestFinishedGameTurnsAreIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	view, _ := f.service.StartGame(ctx, "u1")
	if _, err := f.service.Answer(ctx, "u1", view.ID, "b"); err != nil {
		t.Fatalf("losing answer: %v", err)
	}
	balance := f.wallet.Balance("u1")

	// Duplicate and late submissions must not move money or state.
	result, err := f.service.Answer(ctx, "u1", view.ID, "a")
	if err != nil {
		t.Fatalf("duplicate answer: %v", err)
	}
	if result.Correct {
		t.Error("expected duplicate submission to be reported incorrect")
	}
	if _, err := f.service.CashOut(ctx, "u1", view.ID); err != nil {
		t.Fatalf("cash out after finish: %v", err)
	}
	if got := f.wallet.Balance("u1"); got != balance {
		t.Errorf("wallet balance changed from %d to %d on a no-op turn", balance, got)
	}
}

type failingWallet struct{}

func (failingWallet) Credit(context.Context, string, int) error {
	return errors.New("ledger unreachable")
}

func TestCreditFailureRollsBackFinish(t *testing.T) {
	store := memory.NewGameStore()
	service := app.NewGameService(store, memory.NewQuestionBank(bankQuestions()), failingWallet{}).
		WithShuffler(identityPerm{})
	ctx := context.Background()

	view, err := service.StartGame(ctx, "u1")
	if err != nil {
		t.Fatalf("start game: %v", err)
	}
	_, err = service.Answer(ctx, "u1", view.ID, "b")
	if !errors.Is(err, domain.ErrCreditFailed) {
		t.Fatalf("got %v, want ErrCreditFailed", err)
	}

	// The game must still be playable for a retry.
	state, err := service.GameState(ctx, "u1", view.ID)
	if err != nil {
		t.Fatalf("game state: %v", err)
	}
	if state.Status != domain.StatusInProgress {
		t.Errorf("status = %s, want in_progress after rollback", state.Status)
	}
}

func TestOwnershipChecks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	view, _ := f.service.StartGame(ctx, "u1")

	if _, err := f.service.Answer(ctx, "u2", view.ID, "a"); !errors.Is(err, domain.ErrNotYourGame) {
		t.Errorf("answer by stranger: got %v, want ErrNotYourGame", err)
	}
	if _, err := f.service.CashOut(ctx, "u2", view.ID); !errors.Is(err, domain.ErrNotYourGame) {
		t.Errorf("cash out by stranger: got %v, want ErrNotYourGame", err)
	}
	if _, err := f.service.GameState(ctx, "u1", "missing"); !errors.Is(err, domain.ErrGameNotFound) {
		t.Errorf("unknown game: got %v, want ErrGameNotFound", err)
	}
}

type recordingArchive struct {
	records []string
}

func (a *recordingArchive) RecordFinished(_ context.Context, game *app.Game) error {
	a.records = append(a.records, game.ID())
	return nil
}

func TestFinishedGamesAreArchived(t *testing.T) {
	f := newFixture()
	archive := &recordingArchive{}
	f.service.WithArchive(archive)
	ctx := context.Background()

	view, _ := f.service.StartGame(ctx, "u1")
	if _, err := f.service.CashOut(ctx, "u1", view.ID); err != nil {
		t.Fatalf("cash out: %v", err)
	}

	if len(archive.records) != 1 || archive.records[0] != view.ID {
		t.Errorf("archive records = %v, want [%s]", archive.records, view.ID)
	}
}
