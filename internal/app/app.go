// Package app wires configuration, storage, services, and transport into a
// running server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/kotoba-app/kotoba-backend/internal/auth"
	"github.com/kotoba-app/kotoba-backend/internal/config"
	"github.com/kotoba-app/kotoba-backend/internal/generation"
	"github.com/kotoba-app/kotoba-backend/internal/transport/middleware"
	"github.com/kotoba-app/kotoba-backend/internal/transport/rest"

	postgres "github.com/kotoba-app/kotoba-backend/internal/adapter/postgres"
	journalrepo "github.com/kotoba-app/kotoba-backend/internal/adapter/postgres/journal"
	settingsrepo "github.com/kotoba-app/kotoba-backend/internal/adapter/postgres/settings"
	wordrepo "github.com/kotoba-app/kotoba-backend/internal/adapter/postgres/word"

	journalsvc "github.com/kotoba-app/kotoba-backend/internal/service/journal"
	quizsvc "github.com/kotoba-app/kotoba-backend/internal/service/quiz"
	reviewsvc "github.com/kotoba-app/kotoba-backend/internal/service/review"
	settingssvc "github.com/kotoba-app/kotoba-backend/internal/service/settings"
	vocabularysvc "github.com/kotoba-app/kotoba-backend/internal/service/vocabulary"
)

// Run is the application entry point. It loads configuration, connects to
// the database, applies migrations, builds the service graph, and serves
// HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(cfg.Database.DSN); err != nil {
		return err
	}

	txManager := postgres.NewTxManager(pool)
	words := wordrepo.New(pool)
	journalEntries := journalrepo.New(pool)
	userSettings := settingsrepo.New(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)

	var generator *generation.Client
	if cfg.Generation.APIKey != "" {
		generator, err = generation.NewClient(logger, cfg.Generation)
		if err != nil {
			return err
		}
	} else {
		logger.Warn("generation API key not configured, word generation and quiz are disabled")
	}

	// The nil branch passes an untyped nil so the services' own
	// availability checks see a nil interface, not a typed-nil pointer.
	var vocab *vocabularysvc.Service
	var quiz *quizsvc.Service
	if generator != nil {
		vocab = vocabularysvc.New(logger, words, txManager, generator, cfg.Generation)
		quiz = quizsvc.New(logger, words, generator, cfg.Generation.TargetLanguage)
	} else {
		vocab = vocabularysvc.New(logger, words, txManager, nil, cfg.Generation)
		quiz = quizsvc.New(logger, words, nil, cfg.Generation.TargetLanguage)
	}
	review := reviewsvc.New(logger, words)
	journal := journalsvc.New(logger, journalEntries)
	settings := settingssvc.New(logger, userSettings, cfg.Generation.TargetLanguage)

	router := rest.NewRouter(rest.Handlers{
		Words:    rest.NewWordsHandler(vocab, review, logger),
		Journal:  rest.NewJournalHandler(journal, logger),
		Settings: rest.NewSettingsHandler(settings, logger),
		Quiz:     rest.NewQuizHandler(quiz, logger),
		Health:   rest.NewHealthHandler(pool, BuildVersion()),
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
	)(router)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped cleanly")
	return nil
}
