package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/hanlearn/hanlearn-api/internal/config"
	"github.com/hanlearn/hanlearn-api/internal/platform/logger"
	"github.com/hanlearn/hanlearn-api/internal/platform/postgres"
	"github.com/hanlearn/hanlearn-api/internal/service/auth"
	"github.com/hanlearn/hanlearn-api/internal/store"
)

// application holds the initialized dependencies of the server. It is built
// once at startup and wires configuration, logging, the database pool, the
// stores and the auth services together.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService     auth.JWTService
	passwordHasher *auth.BcryptHasher

	userStore         store.UserStore
	profileStore      store.ProfileStore
	chapterStore      store.ChapterStore
	lessonStore       store.LessonStore
	postStore         store.PostStore
	commentStore      store.CommentStore
	progressStore     store.ProgressStore
	threadStore       store.ThreadStore
	pictureGuessStore store.PictureGuessStore
	matchingStore     store.MatchingStore
	puzzleStore       store.PuzzleStore
	aboutStore        store.AboutStore
}

// newApplication loads configuration, sets up logging, connects to the
// database, runs migrations and constructs all stores and services.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"media_dir", cfg.Server.MediaDir)

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := postgres.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database migrations applied")

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	app := &application{
		config:         cfg,
		logger:         log,
		db:             db,
		jwtService:     jwtService,
		passwordHasher: auth.NewBcryptHasher(),

		userStore:         postgres.NewUserStore(db, log),
		profileStore:      postgres.NewProfileStore(db, log),
		chapterStore:      postgres.NewChapterStore(db, log),
		lessonStore:       postgres.NewLessonStore(db, log),
		postStore:         postgres.NewPostStore(db, log),
		commentStore:      postgres.NewCommentStore(db, log),
		progressStore:     postgres.NewProgressStore(db, log),
		threadStore:       postgres.NewThreadStore(db, log),
		pictureGuessStore: postgres.NewPictureGuessStore(db, log),
		matchingStore:     postgres.NewMatchingStore(db, log),
		puzzleStore:       postgres.NewPuzzleStore(db, log),
		aboutStore:        postgres.NewAboutStore(db, log),
	}

	return app, nil
}

// close releases resources held by the application.
func (app *application) close() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", "error", err)
		}
	}
}
