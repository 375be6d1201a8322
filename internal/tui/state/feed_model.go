package state

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/courtside/internal/feed"
	"github.com/cristianoliveira/courtside/internal/tui/render"
)

var feedHelp = []string{"j/k: move", "l: like", "n: notify", "d: delete", "r: refresh", "c: clear badges", "q: quit"}

// FeedOption configures a FeedModel.
type FeedOption func(*FeedModel)

// WithPrefetchThreshold sets how many rows before the end the next page loads.
func WithPrefetchThreshold(rows int) FeedOption {
	return func(m *FeedModel) {
		if rows >= 0 {
			m.prefetch = rows
		}
	}
}

// WithFeedBadges shows the counters of b in the header.
func WithFeedBadges(b BadgeSource) FeedOption {
	return func(m *FeedModel) { m.badges = b }
}

// FeedModel is the community feed screen. It decides when to page and
// forwards user intents to the pager. It renders the snapshots the pager
// publishes.
type FeedModel struct {
	pager    *feed.Pager
	snap     feed.State
	ui       *UIState
	spinner  spinner.Model
	status   *statusReporter
	badges   BadgeSource
	prefetch int
	now      func() time.Time
}

// NewFeedModel creates the feed screen driving pager.
func NewFeedModel(pager *feed.Pager, opts ...FeedOption) *FeedModel {
	m := &FeedModel{
		pager:    pager,
		ui:       NewUIState(),
		spinner:  newSpinner(),
		status:   newStatusReporter(),
		prefetch: DefaultPrefetchThreshold,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	pager.Subscribe(feed.SinkFunc(func(s feed.State) { m.snap = s }))
	return m
}

// Init loads the first page.
func (m *FeedModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.pager.LoadFirstPage())
}

// Update handles messages and updates the model state.
func (m *FeedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui.Resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case statusExpiredMsg:
		return m, nil
	}

	if m.pager.Update(msg) {
		s := m.snap
		m.ui.AdjustCursorBounds(len(s.Posts))
		return m, m.status.report(s.Error)
	}
	return m, nil
}

func (m *FeedModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.snap
	key := msg.String()

	if key == "ctrl+c" {
		return m.quit()
	}
	if s.PendingDelete != 0 {
		switch key {
		case "y", "enter":
			m.status.reset()
			return m, m.pager.ConfirmDelete()
		case "n", "esc":
			m.pager.CancelDelete()
		}
		return m, nil
	}

	n := len(s.Posts)
	switch key {
	case "q":
		return m.quit()
	case "j", "down":
		m.ui.MoveCursorDown(n)
		m.ui.EnsureCursorVisible(n)
		return m, m.maybePrefetch(s)
	case "k", "up":
		m.ui.MoveCursorUp()
		m.ui.EnsureCursorVisible(n)
	case "g", "home":
		m.ui.ResetCursor()
	case "G", "end":
		m.ui.SetCursor(n - 1)
		m.ui.AdjustCursorBounds(n)
		m.ui.EnsureCursorVisible(n)
		return m, m.maybePrefetch(s)
	case "r":
		m.status.reset()
		if n == 0 {
			return m, m.pager.LoadFirstPage()
		}
		return m, m.pager.Refresh()
	case "l":
		if post, ok := m.selected(s); ok {
			return m, m.pager.ToggleLike(post)
		}
	case "n":
		if post, ok := m.selected(s); ok {
			m.status.reset()
			return m, m.pager.ToggleNotification(post)
		}
	case "d":
		if post, ok := m.selected(s); ok {
			m.pager.RequestDelete(post)
		}
	case "c":
		clearBadges(m.badges)
	}
	return m, nil
}

func (m *FeedModel) quit() (tea.Model, tea.Cmd) {
	m.pager.Close()
	return m, tea.Quit
}

func (m *FeedModel) selected(s feed.State) (int64, bool) {
	cursor := m.ui.GetCursor()
	if cursor < 0 || cursor >= len(s.Posts) {
		return 0, false
	}
	return s.Posts[cursor].ID, true
}

// maybePrefetch requests the next page once the cursor is within the
// prefetch threshold of the last post.
func (m *FeedModel) maybePrefetch(s feed.State) tea.Cmd {
	if len(s.Posts) == 0 || len(s.Posts)-1-m.ui.GetCursor() > m.prefetch {
		return nil
	}
	return m.pager.LoadNextPage()
}

// View renders the feed screen.
func (m *FeedModel) View() string {
	s := m.snap
	width := m.ui.GetWidth()

	var b strings.Builder
	b.WriteString(render.Header(render.HeaderState{
		Title:  "courtside · community",
		Badges: headerBadges(m.badges),
		Width:  width,
	}))
	if s.Refreshing {
		b.WriteString("  " + m.spinner.View() + " refreshing")
	}
	b.WriteString("\n")

	switch {
	case s.PendingDelete != 0:
		post, _ := s.Post(s.PendingDelete)
		b.WriteString(render.ConfirmDelete(post, s.Deleting, width))
	case s.ShowErrorScreen():
		b.WriteString(render.ErrorScreen(s.Error, width))
	case len(s.Posts) == 0 && s.InitialLoading:
		b.WriteString(m.spinner.View() + " Loading posts...")
	case len(s.Posts) == 0:
		b.WriteString(render.Muted("No posts yet"))
	default:
		m.updateViewportContent(s, width)
		b.WriteString(m.ui.GetViewport().View())
		if s.LoadingMore {
			b.WriteString("\n" + m.spinner.View() + " Loading more...")
		} else if !s.CanLoadMore {
			b.WriteString("\n" + render.Muted("· end of feed ·"))
		}
	}

	b.WriteString("\n")
	b.WriteString(render.Footer(render.FooterState{
		Help:   feedHelp,
		Status: m.status.current(),
		Width:  width,
	}))
	return b.String()
}

func (m *FeedModel) updateViewportContent(s feed.State, width int) {
	now := m.now()
	cursor := m.ui.GetCursor()
	rows := make([]string, len(s.Posts))
	for i, post := range s.Posts {
		rows[i] = render.PostRow(render.PostRowState{
			Post:     post,
			Updating: s.IsUpdatingNotification(post.ID),
			Selected: i == cursor,
			Width:    width,
			Now:      now,
		})
	}
	m.ui.GetViewport().SetContent(strings.Join(rows, "\n"))
}
