package app

import (
	"strings"

	"millionaire-service/internal/domain"
)

// Shuffler supplies the randomness for answer-slot permutations.
// *math/rand.Rand satisfies it.
type Shuffler interface {
	Perm(n int) []int
}

// Labels are the display labels players pick from, in display order.
var Labels = [4]string{"a", "b", "c", "d"}

// GameQuestion is one round of a game: a question plus the game-specific
// assignment of its four answers to display labels. Immutable after
// creation.
type GameQuestion struct {
	question domain.Question
	// slots[i] is the original answer position (1..4) shown under Labels[i];
	// always a permutation, so position 1 appears under exactly one label.
	slots [4]int
}

// NewGameQuestion draws a fresh uniform random label assignment for q.
func NewGameQuestion(q domain.Question, shuffler Shuffler) (*GameQuestion, error) {
	seen := make(map[string]struct{}, len(q.Answers))
	for _, text := range q.Answers {
		if text == "" {
			return nil, domain.ErrMalformedQuestion
		}
		seen[text] = struct{}{}
	}
	if len(seen) != len(q.Answers) {
		return nil, domain.ErrMalformedQuestion
	}

	gq := &GameQuestion{question: q}
	for i, p := range shuffler.Perm(len(gq.slots)) {
		gq.slots[i] = p + 1
	}
	return gq, nil
}

func (gq *GameQuestion) Level() int {
	return gq.question.Level
}

func (gq *GameQuestion) Text() string {
	return gq.question.Text
}

// IsCorrect reports whether label picks the stored-correct answer. Unknown
// labels are simply incorrect, never an error.
func (gq *GameQuestion) IsCorrect(label string) bool {
	return normalizeLabel(label) == gq.CorrectLabel()
}

// CorrectLabel returns the label hiding original answer position 1.
func (gq *GameQuestion) CorrectLabel() string {
	for i, pos := range gq.slots {
		if pos == 1 {
			return Labels[i]
		}
	}
	return "" // unreachable: slots is a permutation of 1..4
}

// CorrectText returns the text of the correct answer.
func (gq *GameQuestion) CorrectText() string {
	return gq.question.Answers[0]
}

// DisplayText returns the answer text shown under label, or "" for an
// unknown label.
func (gq *GameQuestion) DisplayText(label string) string {
	normalized := normalizeLabel(label)
	for i, l := range Labels {
		if l == normalized {
			return gq.question.Answers[gq.slots[i]-1]
		}
	}
	return ""
}

// Variants maps every display label to its answer text.
func (gq *GameQuestion) Variants() map[string]string {
	variants := make(map[string]string, len(Labels))
	for i, l := range Labels {
		variants[l] = gq.question.Answers[gq.slots[i]-1]
	}
	return variants
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
