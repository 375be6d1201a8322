// Package state provides the bubbletea models of the courtside screens.
package state

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/courtside/internal/errors"
	"github.com/cristianoliveira/courtside/internal/tui/render"
)

const (
	headerFooterLines     = 4
	defaultViewportWidth  = 80
	defaultViewportHeight = 22
	statusTTL             = 5 * time.Second

	// DefaultPrefetchThreshold is how many rows before the end of the feed the
	// next page is requested.
	DefaultPrefetchThreshold = 5
)

// BadgeSource supplies the badge counters shown in headers.
type BadgeSource interface {
	Badge(name string) int
	BadgeNames() []string
	ResetBadge(name string)
}

// headerBadges lists the non-zero counters of b.
func headerBadges(b BadgeSource) []render.Badge {
	if b == nil {
		return nil
	}
	names := b.BadgeNames()
	badges := make([]render.Badge, 0, len(names))
	for _, name := range names {
		badges = append(badges, render.Badge{Name: name, Count: b.Badge(name)})
	}
	return badges
}

// clearBadges resets every counter of b.
func clearBadges(b BadgeSource) {
	if b == nil {
		return
	}
	for _, name := range b.BadgeNames() {
		b.ResetBadge(name)
	}
}

// statusExpiredMsg triggers a redraw once a status message is due to expire.
type statusExpiredMsg struct{}

func statusExpiredAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return statusExpiredMsg{}
	})
}

// statusReporter forwards new core errors to a status line once.
type statusReporter struct {
	line *errors.StatusLine
	last string
}

func newStatusReporter() *statusReporter {
	return &statusReporter{line: errors.NewStatusLine()}
}

// report posts msg when it differs from the last reported error.
func (r *statusReporter) report(msg string) tea.Cmd {
	if msg == "" {
		r.last = ""
		return nil
	}
	if msg == r.last {
		return nil
	}
	r.last = msg
	r.line.Error(msg)
	return statusExpiredAfter(statusTTL)
}

// reset forgets the last reported error so a repeat of it is shown again.
func (r *statusReporter) reset() {
	r.last = ""
}

func (r *statusReporter) current() *errors.Message {
	msg, ok := r.line.Current(statusTTL)
	if !ok {
		return nil
	}
	return &msg
}

func newSpinner() spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.Dot))
}
