package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cristianoliveira/courtside/internal/config"
	"github.com/cristianoliveira/courtside/internal/devserver"
	"github.com/cristianoliveira/courtside/internal/domain"
	"github.com/cristianoliveira/courtside/internal/gateway"
	"github.com/cristianoliveira/courtside/internal/logging"
	"github.com/cristianoliveira/courtside/internal/session"
	"github.com/cristianoliveira/courtside/internal/storage/sqlite"
	"github.com/cristianoliveira/courtside/internal/tui/app"
	"github.com/cristianoliveira/courtside/internal/version"
	"github.com/spf13/cobra"
)

// historyStore is the part of the application history the CLI reads and prunes.
type historyStore interface {
	ListApplications(ctx context.Context, opts sqlite.ListOptions) ([]domain.ApplicationRecord, error)
	PruneApplications(ctx context.Context, daysThreshold int, dryRun bool) (int64, error)
}

var (
	newStore = func(path string) (*sqlite.Store, error) {
		return sqlite.NewStore(path)
	}
	newProgramRunner = func() app.ProgramRunner {
		return app.NewDefaultProgramRunner()
	}
)

// cliDeps opens the resources shared by the commands. Nothing is opened until
// a command asks for it, after configuration has been loaded.
type cliDeps struct {
	mu      sync.Mutex
	session *session.Session
	store   *sqlite.Store
}

func buildCLIDeps() *cliDeps {
	return &cliDeps{}
}

func (d *cliDeps) currentSession() *session.Session {
	if d.session == nil {
		d.session = session.New(config.Get("api_token", ""))
	}
	return d.session
}

func (d *cliDeps) openStore() (*sqlite.Store, error) {
	if d.store != nil {
		return d.store, nil
	}
	path := config.Get("history_db", "")
	if path == "" {
		return nil, fmt.Errorf("history_db is not configured")
	}
	store, err := newStore(path)
	if err != nil {
		return nil, fmt.Errorf("open application history: %w", err)
	}
	d.store = store
	return store, nil
}

// TUIClient wires the gateway, session and history into the screen factory.
func (d *cliDeps) TUIClient(ctx context.Context) (app.Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sess := d.currentSession()
	log := logging.With("component", "tui")
	if !sess.Authenticated() {
		log.Warn("api_token is not set, requests are sent anonymously")
	}
	gw, err := gateway.NewHTTPClient(config.Get("api_base_url", ""),
		gateway.WithTimeout(config.GetDuration("request_timeout", 10*time.Second)),
		gateway.WithRateLimit(config.GetInt("requests_per_second", 10)),
		gateway.WithTokenSource(sess),
		gateway.WithLogger(logging.GetGlobal()),
	)
	if err != nil {
		return nil, err
	}

	deps := app.Deps{
		Context:           ctx,
		Feed:              gw,
		Slots:             gw,
		Session:           sess,
		Logger:            log,
		PageSize:          config.GetInt("page_size", 20),
		PrefetchThreshold: config.GetInt("prefetch_threshold", 3),
	}
	// History is optional for the interactive screens.
	if store, err := d.openStore(); err != nil {
		log.Warn("application history unavailable", "error", err)
	} else {
		deps.Recorder = store
	}
	return app.NewDefaultClient(deps, newProgramRunner()), nil
}

// History returns the application history store.
func (d *cliDeps) History() (historyStore, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	store, err := d.openStore()
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Serve runs the development backend until ctx is done.
func (d *cliDeps) Serve(ctx context.Context, addr string, flakyLikes int) error {
	srv := devserver.New(
		devserver.WithToken(config.Get("api_token", "")),
		devserver.WithFlakyLikes(flakyLikes),
		devserver.WithLogger(logging.GetGlobal()),
	)
	return srv.ListenAndServe(ctx, addr)
}

// Version returns the build version.
func (d *cliDeps) Version() string {
	return version.String()
}

// Close ends the session and releases the history database.
func (d *cliDeps) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session != nil {
		d.session.Close()
		d.session = nil
	}
	if d.store != nil {
		err := d.store.Close()
		d.store = nil
		return err
	}
	return nil
}

func registerCommands(root *cobra.Command, deps *cliDeps) {
	root.AddCommand(
		NewFeedCmd(deps),
		NewSlotsCmd(deps),
		NewHistoryCmd(deps),
		NewServeCmd(deps),
		NewVersionCmd(deps),
	)
}
