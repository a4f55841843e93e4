package cli

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"millionaire-service/internal/config"
	"millionaire-service/internal/domain"

	"github.com/spf13/cobra"
)

// NewSeedCmd bulk-loads questions from a JSON file into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed [questions.json]",
		Short: "Load a batch of questions into the question bank",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Postgres.URL == "" {
				return fmt.Errorf("postgres url not configured")
			}
			return seedQuestions(cmd, cfg, args[0])
		},
	}
}

func seedQuestions(cmd *cobra.Command, cfg config.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var questions []domain.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	db := openBunDB(cfg.Postgres.URL)
	defer db.Close()

	inserted := 0
	for _, q := range questions {
		if err := validateQuestion(q); err != nil {
			return fmt.Errorf("question %q: %w", q.Text, err)
		}
		res, err := db.ExecContext(cmd.Context(),
			`INSERT INTO questions (level, text, answer1, answer2, answer3, answer4)
			 VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT (text) DO NOTHING`,
			q.Level, q.Text, q.Answers[0], q.Answers[1], q.Answers[2], q.Answers[3])
		if err != nil {
			return fmt.Errorf("insert question %q: %w", q.Text, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}
	log.Printf("seeded %d of %d questions", inserted, len(questions))
	return nil
}

func validateQuestion(q domain.Question) error {
	if q.Level < 0 || q.Level > 14 {
		return fmt.Errorf("level %d out of range 0..14", q.Level)
	}
	if q.Text == "" {
		return fmt.Errorf("empty question text")
	}
	seen := make(map[string]struct{}, len(q.Answers))
	for _, text := range q.Answers {
		if text == "" {
			return domain.ErrMalformedQuestion
		}
		seen[text] = struct{}{}
	}
	if len(seen) != len(q.Answers) {
		return domain.ErrMalformedQuestion
	}
	return nil
}
