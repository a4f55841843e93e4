package domain

import "time"

// Question is one record of the question bank. By storage convention the
// first answer text is the correct one; games never show answers in storage
// order.
type Question struct {
	ID      int64     `json:"id"`
	Level   int       `json:"level"`
	Text    string    `json:"text"`
	Answers [4]string `json:"answers"`
}

// GameStatus classifies a game from its final fields.
type GameStatus string

const (
	StatusInProgress GameStatus = "in_progress"
	StatusFail       GameStatus = "fail"    // lost on a wrong answer
	StatusTimeout    GameStatus = "timeout" // lost to the session time limit
	StatusWon        GameStatus = "won"     // all fifteen questions cleared
	StatusMoney      GameStatus = "money"   // cashed out before finishing
)

// QuestionView is the player-facing shape of the current question: the
// prompt plus the four answers under their shuffled display labels.
type QuestionView struct {
	Level    int               `json:"level"`
	Text     string            `json:"text"`
	Variants map[string]string `json:"variants"`
}

// GameView is a snapshot-friendly view of a game for transports.
type GameView struct {
	ID         string        `json:"id"`
	Level      int           `json:"level"`
	Prize      int           `json:"prize"`
	Status     GameStatus    `json:"status"`
	Finished   bool          `json:"finished"`
	Resumed    bool          `json:"resumed,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
	FinishedAt *time.Time    `json:"finishedAt,omitempty"`
	Question   *QuestionView `json:"question,omitempty"`
}

// TurnResult summarizes one answer submission. CorrectAnswer is revealed
// only on the turn that loses the game.
type TurnResult struct {
	Correct       bool     `json:"correct"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
	Game          GameView `json:"game"`
}

// GameRecord is an archived finished game, used for player history.
type GameRecord struct {
	ID         string     `json:"id"`
	PlayerID   string     `json:"playerId"`
	Level      int        `json:"level"`
	Prize      int        `json:"prize"`
	Status     GameStatus `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	FinishedAt time.Time  `json:"finishedAt"`
}
