package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"millionaire-service/internal/app"
	"millionaire-service/internal/config"
	"millionaire-service/internal/domain"
	"millionaire-service/internal/infra/memory"
	pginfra "millionaire-service/internal/infra/postgres"
	redisinfra "millionaire-service/internal/infra/redis"
	transport "millionaire-service/internal/transport/http"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.Duration(cfg.Redis.TTL, time.Hour)
	questionTTL := config.Duration(cfg.Game.QuestionTTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	// Question bank: Postgres when configured, demo questions otherwise, with
	// a Redis pool cache layered on top when Redis is available.
	var bank app.QuestionBank
	var loader redisinfra.PoolLoader
	if pool != nil {
		pgBank := pginfra.NewQuestionBank(pool)
		bank, loader = pgBank, pgBank
	} else {
		memBank := memory.NewQuestionBank(sampleQuestions())
		bank, loader = memBank, memBank
	}
	if redisClient != nil {
		bank = redisinfra.NewQuestionBank(redisClient, loader, questionTTL)
	}

	var store app.GameStore
	if redisClient != nil {
		store = redisinfra.NewGameStore(redisClient, redisTTL)
	} else {
		store = memory.NewGameStore()
	}

	var wallet app.Wallet
	if pool != nil {
		wallet = pginfra.NewWallet(pool)
	} else {
		wallet = memory.NewWallet()
	}

	service := app.NewGameService(store, bank, wallet).
		WithTimeLimit(config.Duration(cfg.Game.TimeLimit, app.TimeLimit))
	if pool != nil {
		service.WithArchive(pginfra.NewArchive(pool))
	}

	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting millionaire service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuestions provides one demo question per level so the server can run
// without a database; swap in the Postgres bank for production.
func sampleQuestions() []domain.Question {
	questions := make([]domain.Question, 0, 15)
	for level := 0; level <= app.MaxLevel; level++ {
		a := level + 2
		b := level + 3
		sum := a + b
		questions = append(questions, domain.Question{
			Level: level,
			Text:  fmt.Sprintf("What is %d + %d?", a, b),
			Answers: [4]string{
				fmt.Sprint(sum),
				fmt.Sprint(sum - 1),
				fmt.Sprint(sum + 1),
				fmt.Sprint(sum + 2),
			},
		})
	}
	return questions
}
