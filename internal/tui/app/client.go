package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/courtside/internal/apply"
	"github.com/cristianoliveira/courtside/internal/colors"
	"github.com/cristianoliveira/courtside/internal/domain"
	"github.com/cristianoliveira/courtside/internal/feed"
	"github.com/cristianoliveira/courtside/internal/logging"
	"github.com/cristianoliveira/courtside/internal/session"
	"github.com/cristianoliveira/courtside/internal/tui/state"
)

// Deps holds what the screens are built from.
type Deps struct {
	Context           context.Context
	Feed              feed.Gateway
	Slots             apply.Gateway
	Recorder          apply.Recorder
	Session           *session.Session
	Logger            logging.Logger
	PageSize          int
	PrefetchThreshold int
}

// Client defines dependencies needed by the interactive commands.
type Client interface {
	CreateFeedModel() tea.Model
	CreateSlotsModel(kind domain.SlotKind) tea.Model
	RunProgram(model tea.Model) error
}

// DefaultClient is the default adapter-based implementation used by CLI wiring.
type DefaultClient struct {
	deps          Deps
	programRunner ProgramRunner
}

// NewDefaultClient creates a default TUI client adapter.
// If programRunner is nil, a DefaultProgramRunner will be used.
func NewDefaultClient(deps Deps, programRunner ProgramRunner) *DefaultClient {
	if programRunner == nil {
		programRunner = NewDefaultProgramRunner()
	}
	if deps.Logger == nil {
		deps.Logger = logging.Nop()
	}
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	return &DefaultClient{deps: deps, programRunner: programRunner}
}

// CreateFeedModel builds the community feed screen.
func (d *DefaultClient) CreateFeedModel() tea.Model {
	pagerOpts := []feed.Option{
		feed.WithPageSize(d.deps.PageSize),
		feed.WithLogger(d.deps.Logger),
		feed.WithContext(d.deps.Context),
	}
	opts := []state.FeedOption{state.WithPrefetchThreshold(d.deps.PrefetchThreshold)}
	if d.deps.Session != nil {
		pagerOpts = append(pagerOpts, feed.WithBadges(d.deps.Session))
		opts = append(opts, state.WithFeedBadges(d.deps.Session))
	}
	return state.NewFeedModel(feed.NewPager(d.deps.Feed, pagerOpts...), opts...)
}

// CreateSlotsModel builds the application screen starting on kind.
func (d *DefaultClient) CreateSlotsModel(kind domain.SlotKind) tea.Model {
	opts := []apply.Option{
		apply.WithLogger(d.deps.Logger),
		apply.WithContext(d.deps.Context),
	}
	if d.deps.Recorder != nil {
		opts = append(opts, apply.WithRecorder(d.deps.Recorder))
	}
	var badges state.BadgeSource
	if d.deps.Session != nil {
		opts = append(opts, apply.WithBadges(d.deps.Session))
		badges = d.deps.Session
	}
	wf := apply.NewWorkflow(kind, d.deps.Slots, opts...)
	return state.NewSlotsModel(wf, badges)
}

// RunProgram starts the bubbletea program using the configured ProgramRunner.
func (d *DefaultClient) RunProgram(model tea.Model) error {
	err := d.programRunner.Run(model)
	if err != nil {
		colors.Error(fmt.Sprintf("Error running TUI: %v", err))
		return err
	}
	return nil
}
