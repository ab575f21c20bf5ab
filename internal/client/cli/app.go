// Package cli implements the interactive AllBox terminal client: a small
// REPL over the backend API and the local device state.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/allbox-app/allbox/internal/client/api"
	"github.com/allbox-app/allbox/internal/client/config"
	"github.com/allbox-app/allbox/internal/client/devicestate"
	"github.com/allbox-app/allbox/internal/client/repositories/kv"
	"github.com/allbox-app/allbox/internal/client/services"
	"github.com/allbox-app/allbox/internal/client/storage"
	"github.com/allbox-app/allbox/internal/i18n"
)

type App struct {
	config         *config.Config
	store          *devicestate.Store
	apiClient      *api.Client
	dialogService  *services.DialogService
	fileService    *services.FileService
	messageService *services.MessageService
	reconciler     *services.Reconciler
	reader         *bufio.Reader

	// current dialog scope; empty means the home screen
	currentDialog string
	feedCancel    context.CancelFunc
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := storage.Open(ctx, c.StateDBPath)
	if err != nil {
		log.Printf("error initializing local state: %s", err.Error())
		return nil, err
	}

	store := devicestate.NewStore(kv.NewSQLiteRepository(db))
	apiClient := api.NewClient(c.ServerEndpointAddr)

	return &App{
		config:         c,
		store:          store,
		apiClient:      apiClient,
		dialogService:  services.NewDialogService(apiClient, store),
		fileService:    services.NewFileService(apiClient, store),
		messageService: services.NewMessageService(apiClient, store),
		reconciler:     services.NewReconciler(store),
		reader:         bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	lang := a.store.Language(ctx)
	log.Printf("%s — %s (type 'help' for commands)\n", i18n.T(lang, "appName"), i18n.T(lang, "tagline"))

	a.applyTheme(a.store.Theme(ctx))

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)

	a.stopFeed()
}

func (a *App) inDialog() bool {
	return a.currentDialog != ""
}

func (a *App) lang(ctx context.Context) i18n.Language {
	return a.store.Language(ctx)
}

func (a *App) getStatus() string {
	ctx := context.Background()

	s := a.store.DeviceName(ctx)
	if a.currentDialog != "" {
		name := a.store.DialogName(ctx, a.currentDialog)
		if name == "" {
			name = a.currentDialog
		}
		if s != "" {
			s += " "
		}
		s += "@" + name
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// promptColor holds the active ANSI palette, the terminal counterpart of the
// web client's theme class toggle.
var promptColor = ""

func (a *App) applyTheme(theme devicestate.Theme) {
	if theme == devicestate.ThemeLight {
		promptColor = "\033[30m"
	} else {
		promptColor = "\033[97m"
	}
}

// startFeed subscribes to the dialog change feed and reconciles incoming
// events into the local state until stopFeed or a new dialog is opened.
func (a *App) startFeed(ctx context.Context, dialogID string) {
	a.stopFeed()

	feedCtx, cancel := context.WithCancel(ctx)
	a.feedCancel = cancel

	events, err := a.apiClient.SubscribeFeed(feedCtx, dialogID)
	if err != nil {
		log.Printf("feed subscription failed: %s", err.Error())
		cancel()
		a.feedCancel = nil
		return
	}

	go a.reconciler.Run(feedCtx, events)
}

func (a *App) stopFeed() {
	if a.feedCancel != nil {
		a.feedCancel()
		a.feedCancel = nil
	}
}
