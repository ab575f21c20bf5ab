// Package server initializes and runs the AllBox backend: it opens the
// database, runs migrations, wires services and the realtime feed hub, and
// starts the HTTP server with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/allbox-app/allbox/internal/logging"
	"github.com/allbox-app/allbox/internal/server/config"
	"github.com/allbox-app/allbox/internal/server/feed"
	"github.com/allbox-app/allbox/internal/server/httpapi"
	"github.com/allbox-app/allbox/internal/server/repositories/repomanager"
	"github.com/allbox-app/allbox/internal/server/services"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	hub            *feed.Hub
	dialogService  *services.DialogService
	fileService    *services.FileService
	messageService *services.MessageService
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	store := services.NewObjectStore(c)

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		hub:            feed.NewHub(logger),
		dialogService:  services.NewDialogService(db, rm),
		fileService:    services.NewFileService(db, rm, store),
		messageService: services.NewMessageService(db, rm, store),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(
		app.config.EndpointAddrHTTP,
		app.logger,
		app.dialogService,
		app.fileService,
		app.messageService,
		app.hub,
		app.config.SecretKey,
		app.config.AccessTokenValidityDuration,
	)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.hub.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
