package commands

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/contentally/ally/internal/chat"
	"github.com/contentally/ally/internal/config"
	"github.com/contentally/ally/internal/db"
	"github.com/contentally/ally/internal/flows"
	"github.com/contentally/ally/internal/habits"
	"github.com/contentally/ally/internal/notify"
	"github.com/contentally/ally/internal/tasks"
	"github.com/contentally/ally/internal/tui"
)

// Store is a snapshot store that holds resources until closed
type Store interface {
	db.SnapshotStore
	Close() error
}

// App is the composition root shared by every command. It owns the
// store and the engines; nothing is reachable through package state.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Store    Store
	Tasks    *tasks.Engine
	Habits   *habits.Engine
	Chat     *chat.History
	Notifier notify.Notifier

	// NewGenerator builds the model client on first use
	NewGenerator func(ctx context.Context) (flows.Generator, error)

	flowsOnce sync.Once
	flows     *flows.Flows
	flowsErr  error
}

// AppFactory builds the App for one command invocation
type AppFactory func(opts *rootOptions, out io.Writer) (*App, error)

// NewApp wires the App from a loaded store and loads every collection
func NewApp(cfg *config.Config, logger *zap.Logger, store Store, n notify.Notifier) (*App, error) {
	app := &App{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Tasks:    tasks.New(store, logger),
		Habits:   habits.New(store, logger),
		Chat:     chat.New(store, logger),
		Notifier: n,
	}
	app.NewGenerator = func(ctx context.Context) (flows.Generator, error) {
		key, err := cfg.RequireAPIKey()
		if err != nil {
			return nil, err
		}
		return flows.NewGemini(ctx, key, cfg.LLM.Model, logger)
	}

	if err := app.Tasks.Load(); err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	if err := app.Habits.Load(); err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}
	if err := app.Chat.Load(); err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	return app, nil
}

// defaultApp opens the configured SQLite database
func defaultApp(opts *rootOptions, out io.Writer) (*App, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	path := cfg.Storage.Path
	if opts.dbPath != "" {
		path = opts.dbPath
	}
	if path == "" {
		if path, err = db.DefaultPath(); err != nil {
			return nil, err
		}
	}

	store, err := db.NewSQLiteStore(path)
	if err != nil {
		return nil, err
	}
	opts.logger.Debug("database opened", zap.String("path", path))

	app, err := NewApp(cfg, opts.logger, store, notify.NewTerminal(out, tui.ToastStyles()))
	if err != nil {
		store.Close()
		return nil, err
	}
	return app, nil
}

// Flows returns the AI flows, creating the model client on first use
func (a *App) Flows(ctx context.Context) (*flows.Flows, error) {
	a.flowsOnce.Do(func() {
		gen, err := a.NewGenerator(ctx)
		if err != nil {
			a.flowsErr = err
			return
		}
		a.flows = flows.New(gen, a.Logger)
	})
	return a.flows, a.flowsErr
}

// Close releases the store
func (a *App) Close() error {
	return a.Store.Close()
}
