package domain

import "errors"

var (
	// ErrQuestionUnavailable is returned when the bank has no question for a
	// required difficulty level; game creation aborts without side effects.
	ErrQuestionUnavailable = errors.New("no question available for level")
	// ErrMalformedQuestion indicates a question without four distinct,
	// non-empty answer texts.
	ErrMalformedQuestion = errors.New("question does not have four distinct answers")
	// ErrGameNotFound is returned when the requested game does not exist.
	ErrGameNotFound = errors.New("game not found")
	// ErrNotYourGame is returned when a player acts on someone else's game.
	ErrNotYourGame = errors.New("game belongs to another player")
	// ErrCreditFailed indicates the prize credit did not go through; the
	// finish was rolled back and the game is still in progress.
	ErrCreditFailed = errors.New("prize credit failed")
)
