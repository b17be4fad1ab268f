// Package server initializes and runs the application: it loads
// configuration, opens and migrates the persistence layer, wires the
// services and serves the HTTP API until the process is signalled.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"pocketledger/internal/logging"
	"pocketledger/internal/server/config"
	"pocketledger/internal/server/httpapi"
	"pocketledger/internal/server/repositories/repomanager"
	"pocketledger/internal/server/services"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	manager      repomanager.Manager
	userService  *services.UserService
	entryService *services.EntryService
}

// NewApp wires the application. A persistence layer that cannot be
// reached or migrated is an unrecoverable startup failure.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	handler := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(handler)

	manager, err := repomanager.NewPostgresManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := services.NewUserService(manager.Users(), cfg)
	es := services.NewEntryService(manager.Entries())

	return &App{
		config:       cfg,
		logger:       logger,
		manager:      manager,
		userService:  us,
		entryService: es,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config, app.logger, app.userService, app.entryService, app.manager.Ready)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.manager.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
