// Package feed implements the community feed pager: first-page loading,
// refresh, incremental pagination and optimistic like/notification toggles.
//
// Every operation returns a tea.Cmd performing the backend call. The Pager is
// not safe for concurrent use; its methods, including Update, must be called
// from a single goroutine (normally the bubbletea event loop). Commands may
// run anywhere.
package feed

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/courtside/internal/domain"
	"github.com/cristianoliveira/courtside/internal/gateway"
	"github.com/cristianoliveira/courtside/internal/logging"
	"github.com/cristianoliveira/courtside/internal/session"
)

// DefaultPageSize is the number of posts requested per page.
const DefaultPageSize = 20

// Gateway is the backend surface used by the pager.
type Gateway interface {
	FetchPage(ctx context.Context, index, size int) (domain.Page, error)
	ToggleLike(ctx context.Context, postID int64) error
	ToggleNotification(ctx context.Context, postID int64) (bool, error)
	DeletePost(ctx context.Context, postID int64) error
}

// Sink receives a snapshot after every state transition.
type Sink interface {
	Publish(State)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(State)

// Publish calls f(s).
func (f SinkFunc) Publish(s State) { f(s) }

// BadgeCounter is bumped whenever the server confirms a notification
// subscription.
type BadgeCounter interface {
	Increment(name string) int
}

// Option configures a Pager.
type Option func(*Pager)

// WithPageSize sets the page size. Non-positive values keep the default.
func WithPageSize(size int) Option {
	return func(p *Pager) {
		if size > 0 {
			p.pageSize = size
		}
	}
}

// WithLogger sets the logger used for transition diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(p *Pager) {
		if l != nil {
			p.log = l
		}
	}
}

// WithBadges bumps the notifications badge of b for every confirmed
// subscription.
func WithBadges(b BadgeCounter) Option {
	return func(p *Pager) { p.badges = b }
}

// WithContext sets the parent context of every backend call.
func WithContext(ctx context.Context) Option {
	return func(p *Pager) {
		if ctx != nil {
			p.parent = ctx
		}
	}
}

type subscriber struct {
	id   int
	sink Sink
}

// Pager owns the feed state.
type Pager struct {
	gw       Gateway
	pageSize int
	log      logging.Logger
	badges   BadgeCounter

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	state State
	// epoch increases with every first-page load; next-page results from an
	// older epoch are dropped.
	epoch uint64

	subs   []subscriber
	nextID int
}

// NewPager creates a Pager reading from gw.
func NewPager(gw Gateway, opts ...Option) *Pager {
	p := &Pager{
		gw:       gw,
		pageSize: DefaultPageSize,
		log:      logging.Nop(),
		parent:   context.Background(),
		state: State{
			CanLoadMore:          true,
			UpdatingNotification: map[int64]bool{},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.ctx, p.cancel = context.WithCancel(p.parent)
	p.log = p.log.With("component", "feed")
	return p
}

// PageSize returns the configured page size.
func (p *Pager) PageSize() int { return p.pageSize }

// State returns a snapshot of the current state.
func (p *Pager) State() State { return p.state.Clone() }

// Subscribe registers sink and immediately publishes the current state to it.
// The returned function removes the subscription.
func (p *Pager) Subscribe(sink Sink) func() {
	p.nextID++
	id := p.nextID
	p.subs = append(p.subs, subscriber{id: id, sink: sink})
	sink.Publish(p.state.Clone())
	return func() {
		for i, s := range p.subs {
			if s.id == id {
				p.subs = append(p.subs[:i:i], p.subs[i+1:]...)
				return
			}
		}
	}
}

// Close cancels in-flight calls and detaches all sinks. Results arriving after
// Close are ignored.
func (p *Pager) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.cancel()
	p.subs = nil
	p.log.Debug("pager closed")
}

func (p *Pager) set(s State) {
	p.state = s
	for _, sub := range p.subs {
		sub.sink.Publish(s.Clone())
	}
}

// LoadFirstPage fetches page 0 and replaces the feed with it.
func (p *Pager) LoadFirstPage() tea.Cmd {
	return p.startFirstPage(loadInitial)
}

// Refresh refetches page 0. Posts stay visible until the new page arrives.
func (p *Pager) Refresh() tea.Cmd {
	return p.startFirstPage(loadRefresh)
}

func (p *Pager) startFirstPage(mode loadMode) tea.Cmd {
	if p.closed || p.state.InitialLoading || p.state.Refreshing {
		return nil
	}
	p.epoch++
	s := p.state
	// A next page in flight belongs to the previous epoch.
	s.LoadingMore = false
	s.Error = ""
	if mode == loadRefresh {
		s.Refreshing = true
	} else {
		s.InitialLoading = true
	}
	p.set(s)
	p.log.Debug("loading first page", "mode", mode.String(), "epoch", p.epoch)
	return p.fetch(mode, 0)
}

// LoadNextPage fetches the page after the last one appended. It is a no-op
// while a page load is in flight or when the last page reported no successor.
func (p *Pager) LoadNextPage() tea.Cmd {
	s := p.state
	if p.closed || s.LoadingMore || !s.CanLoadMore || s.InitialLoading || s.Refreshing {
		return nil
	}
	s.LoadingMore = true
	p.set(s)
	p.log.Debug("loading next page", "page", s.Page+1)
	return p.fetch(loadMore, s.Page+1)
}

func (p *Pager) fetch(mode loadMode, index int) tea.Cmd {
	gw, ctx, size, epoch := p.gw, p.ctx, p.pageSize, p.epoch
	return func() tea.Msg {
		page, err := gw.FetchPage(ctx, index, size)
		return pageLoadedMsg{epoch: epoch, mode: mode, index: index, page: page, err: err}
	}
}

// ToggleLike optimistically flips the like state of postID. A rejected toggle
// is rolled back without surfacing an error.
func (p *Pager) ToggleLike(postID int64) tea.Cmd {
	if p.closed {
		return nil
	}
	next, token, ok := applyLikeToggle(p.state, postID)
	if !ok {
		return nil
	}
	p.set(next)
	gw, ctx := p.gw, p.ctx
	return func() tea.Msg {
		return likeToggledMsg{token: token, err: gw.ToggleLike(ctx, postID)}
	}
}

// ToggleNotification optimistically flips the notification state of postID.
// The server-confirmed value wins on success; a failure rolls back and sets
// Error.
func (p *Pager) ToggleNotification(postID int64) tea.Cmd {
	if p.closed {
		return nil
	}
	next, token, ok := applyNotificationToggle(p.state, postID)
	if !ok {
		return nil
	}
	p.set(next)
	gw, ctx := p.gw, p.ctx
	return func() tea.Msg {
		enabled, err := gw.ToggleNotification(ctx, postID)
		return notificationToggledMsg{token: token, confirmed: enabled, err: err}
	}
}

// RequestDelete asks for confirmation before deleting postID.
func (p *Pager) RequestDelete(postID int64) {
	if p.closed || p.state.Deleting || p.state.indexOf(postID) < 0 {
		return
	}
	s := p.state
	s.PendingDelete = postID
	p.set(s)
}

// CancelDelete drops a pending delete request.
func (p *Pager) CancelDelete() {
	if p.closed || p.state.PendingDelete == 0 || p.state.Deleting {
		return
	}
	s := p.state
	s.PendingDelete = 0
	p.set(s)
}

// ConfirmDelete deletes the post awaiting confirmation. The post leaves the
// feed only once the backend accepted the delete.
func (p *Pager) ConfirmDelete() tea.Cmd {
	s := p.state
	if p.closed || s.PendingDelete == 0 || s.Deleting {
		return nil
	}
	s.Deleting = true
	p.set(s)
	gw, ctx, postID := p.gw, p.ctx, s.PendingDelete
	return func() tea.Msg {
		return postDeletedMsg{postID: postID, err: gw.DeletePost(ctx, postID)}
	}
}

// Update applies a command result. It reports whether msg belonged to the
// pager.
func (p *Pager) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		if !p.closed {
			p.onPageLoaded(msg)
		}
	case likeToggledMsg:
		if !p.closed {
			p.onLikeToggled(msg)
		}
	case notificationToggledMsg:
		if !p.closed {
			p.onNotificationToggled(msg)
		}
	case postDeletedMsg:
		if !p.closed {
			p.onPostDeleted(msg)
		}
	default:
		return false
	}
	return true
}

func (p *Pager) onPageLoaded(msg pageLoadedMsg) {
	if msg.epoch != p.epoch {
		p.log.Debug("dropping stale page", "page", msg.index, "epoch", msg.epoch)
		return
	}
	s := p.state
	switch msg.mode {
	case loadInitial, loadRefresh:
		s.InitialLoading = false
		s.Refreshing = false
		if msg.err != nil {
			s.Error = "failed to load posts: " + gateway.Message(msg.err)
			p.log.Warn("first page failed", "mode", msg.mode.String(), "error", msg.err)
			break
		}
		s.Posts = append([]domain.Post(nil), msg.page.Items...)
		s.generation++
		s.Page = 0
		s.CanLoadMore = msg.page.HasNext
		s.Error = ""
		p.log.Debug("first page loaded", "count", len(msg.page.Items), "has_next", msg.page.HasNext)
	case loadMore:
		s.LoadingMore = false
		if msg.err != nil {
			s.Error = "failed to load more posts: " + gateway.Message(msg.err)
			p.log.Warn("next page failed", "page", msg.index, "error", msg.err)
			break
		}
		posts := make([]domain.Post, 0, len(s.Posts)+len(msg.page.Items))
		posts = append(posts, s.Posts...)
		s.Posts = append(posts, msg.page.Items...)
		s.Page = msg.index
		s.CanLoadMore = msg.page.HasNext
		p.log.Debug("page appended", "page", msg.index, "count", len(msg.page.Items), "has_next", msg.page.HasNext)
	}
	p.set(s)
}

func (p *Pager) onLikeToggled(msg likeToggledMsg) {
	if msg.err == nil {
		return
	}
	p.log.Debug("like toggle rolled back", "post_id", msg.token.postID, "error", msg.err)
	p.set(revertLikeToggle(p.state, msg.token))
}

func (p *Pager) onNotificationToggled(msg notificationToggledMsg) {
	if msg.err != nil {
		p.log.Warn("notification toggle failed", "post_id", msg.token.postID, "error", msg.err)
		s := revertNotificationToggle(p.state, msg.token)
		s.Error = "failed to update notification: " + gateway.Message(msg.err)
		p.set(s)
		return
	}
	if msg.confirmed && p.badges != nil {
		p.badges.Increment(session.BadgeNotifications)
	}
	p.set(commitNotificationToggle(p.state, msg.token, msg.confirmed))
}

func (p *Pager) onPostDeleted(msg postDeletedMsg) {
	s := p.state
	s.Deleting = false
	s.PendingDelete = 0
	if msg.err != nil {
		s.Error = "failed to delete post: " + gateway.Message(msg.err)
		p.log.Warn("delete failed", "post_id", msg.postID, "error", msg.err)
		p.set(s)
		return
	}
	p.log.Info("post deleted", "post_id", msg.postID)
	p.set(s.withoutPost(msg.postID))
}
