// Package apply implements the activity and academy application workflow:
// browsing slots, the detail dialog, submission, and the completion dialog
// including the duplicate-application outcome.
//
// Like the feed pager, a Workflow is driven from a single goroutine and hands
// backend calls out as tea.Cmd values whose results come back through Update.
package apply

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/courtside/internal/domain"
	apperrors "github.com/cristianoliveira/courtside/internal/errors"
	"github.com/cristianoliveira/courtside/internal/gateway"
	"github.com/cristianoliveira/courtside/internal/logging"
	"github.com/cristianoliveira/courtside/internal/session"
)

// MsgSlotFull is reported when submitting on a slot with no free place.
const MsgSlotFull = "slot is full"

// Gateway is the backend surface used by the workflow.
type Gateway interface {
	ListSlots(ctx context.Context, kind domain.SlotKind) ([]domain.Slot, error)
	SubmitApplication(ctx context.Context, kind domain.SlotKind, slotID int64) error
}

// Recorder persists submission outcomes.
type Recorder interface {
	RecordApplication(ctx context.Context, rec domain.ApplicationRecord) (int64, error)
}

// BadgeCounter is bumped on every successful application.
type BadgeCounter interface {
	Increment(name string) int
}

// Sink receives a snapshot after every state transition.
type Sink interface {
	Publish(State)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(State)

// Publish calls f(s).
func (f SinkFunc) Publish(s State) { f(s) }

// Option configures a Workflow.
type Option func(*Workflow)

// WithRecorder records every submission outcome in r.
func WithRecorder(r Recorder) Option {
	return func(w *Workflow) { w.recorder = r }
}

// WithBadges bumps the applications badge of b on success.
func WithBadges(b BadgeCounter) Option {
	return func(w *Workflow) { w.badges = b }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(w *Workflow) {
		if l != nil {
			w.log = l
		}
	}
}

// WithContext sets the parent context of every backend call.
func WithContext(ctx context.Context) Option {
	return func(w *Workflow) {
		if ctx != nil {
			w.parent = ctx
		}
	}
}

// Workflow owns the application flow for one slot kind at a time.
type Workflow struct {
	gw       Gateway
	recorder Recorder
	badges   BadgeCounter
	log      logging.Logger
	now      func() time.Time

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	state State
	subs  []Sink
}

// NewWorkflow creates a workflow browsing slots of kind.
func NewWorkflow(kind domain.SlotKind, gw Gateway, opts ...Option) *Workflow {
	w := &Workflow{
		gw:     gw,
		log:    logging.Nop(),
		now:    time.Now,
		parent: context.Background(),
		state:  State{Kind: kind},
	}
	for _, opt := range opts {
		opt(w)
	}
	w.ctx, w.cancel = context.WithCancel(w.parent)
	w.log = w.log.With("component", "apply")
	return w
}

// State returns a snapshot of the current state.
func (w *Workflow) State() State { return w.state.Clone() }

// Subscribe registers sink and publishes the current state to it.
func (w *Workflow) Subscribe(sink Sink) {
	w.subs = append(w.subs, sink)
	sink.Publish(w.state.Clone())
}

// Close cancels in-flight calls. Later results are ignored.
func (w *Workflow) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.cancel()
	w.subs = nil
}

func (w *Workflow) set(s State) {
	w.state = s
	for _, sink := range w.subs {
		sink.Publish(s.Clone())
	}
}

// LoadSlots fetches the slot list of the current kind.
func (w *Workflow) LoadSlots() tea.Cmd {
	if w.closed || w.state.LoadingSlots {
		return nil
	}
	s := w.state
	s.LoadingSlots = true
	s.Error = ""
	w.set(s)
	return w.listSlots(s.Kind)
}

func (w *Workflow) listSlots(kind domain.SlotKind) tea.Cmd {
	gw, ctx := w.gw, w.ctx
	return func() tea.Msg {
		slots, err := gw.ListSlots(ctx, kind)
		return slotsLoadedMsg{kind: kind, slots: slots, err: err}
	}
}

// SwitchKind moves the workflow to another slot kind and loads its slots.
// Only allowed while browsing.
func (w *Workflow) SwitchKind(kind domain.SlotKind) tea.Cmd {
	if w.closed || w.state.Phase != PhaseBrowsing || !kind.IsValid() || kind == w.state.Kind {
		return nil
	}
	s := w.state
	s.Kind = kind
	s.Slots = nil
	s.LoadingSlots = true
	s.Error = ""
	w.set(s)
	return w.listSlots(kind)
}

// SelectSlot opens the detail dialog for slot.
func (w *Workflow) SelectSlot(slot domain.Slot) {
	if w.closed || w.state.Phase != PhaseBrowsing {
		return
	}
	s := w.state
	s.Phase = PhaseDetailShown
	s.Selected = &slot
	s.ShowDetail = true
	s.Error = ""
	w.set(s)
}

// DismissDetail closes the detail dialog without applying.
func (w *Workflow) DismissDetail() {
	if w.closed || w.state.Phase != PhaseDetailShown {
		return
	}
	s := w.state.browsing()
	s.Error = ""
	w.set(s)
}

// Submit applies for the selected slot. Submissions for a full slot are
// refused without calling the backend.
func (w *Workflow) Submit(slotID int64) tea.Cmd {
	s := w.state
	if w.closed || s.Phase != PhaseDetailShown || s.Selected == nil || s.Selected.ID != slotID {
		return nil
	}
	if s.Selected.IsFull() {
		s.Error = MsgSlotFull
		w.set(s)
		return nil
	}
	s.Phase = PhaseSubmitting
	s.Loading = true
	s.Error = ""
	w.set(s)

	slot := *s.Selected
	slot.Kind = s.Kind
	w.log.Info("submitting application", "kind", slot.Kind.String(), "slot_id", slot.ID)
	gw, ctx, recorder, log, now := w.gw, w.ctx, w.recorder, w.log, w.now
	return func() tea.Msg {
		msg := submittedMsg{slotID: slot.ID}
		if err := gw.SubmitApplication(ctx, slot.Kind, slot.ID); err != nil {
			// Status text stands in for a missing body and must not look like
			// the backend's generic duplicate message.
			status, serverMsg := gateway.ServerMessage(err)
			msg.status, msg.message = gateway.StatusAndMessage(err)
			msg.failure = apperrors.Classify(status, serverMsg)
			msg.failed = true
		} else {
			msg.slots, msg.reloadErr = gw.ListSlots(ctx, slot.Kind)
		}
		if recorder != nil {
			if _, err := recorder.RecordApplication(ctx, msg.record(slot, now())); err != nil {
				log.Warn("failed to record application", "slot_id", slot.ID, "error", err)
			}
		}
		return msg
	}
}

// DismissCompletion closes the completion dialog and returns to browsing.
func (w *Workflow) DismissCompletion() {
	if w.closed || w.state.Phase != PhaseCompleted {
		return
	}
	s := w.state.browsing()
	s.Error = ""
	w.set(s)
}

// Update applies a command result. It reports whether msg belonged to the
// workflow.
func (w *Workflow) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case slotsLoadedMsg:
		if !w.closed {
			w.onSlotsLoaded(msg)
		}
	case submittedMsg:
		if !w.closed {
			w.onSubmitted(msg)
		}
	default:
		return false
	}
	return true
}

func (w *Workflow) onSlotsLoaded(msg slotsLoadedMsg) {
	if msg.kind != w.state.Kind {
		return
	}
	s := w.state
	s.LoadingSlots = false
	if msg.err != nil {
		s.Error = "failed to load slots: " + gateway.Message(msg.err)
		w.log.Warn("slot list failed", "kind", msg.kind.String(), "error", msg.err)
	} else {
		s.Slots = withKind(msg.slots, msg.kind)
		w.log.Debug("slots loaded", "kind", msg.kind.String(), "count", len(msg.slots))
	}
	w.set(s)
}

func (w *Workflow) onSubmitted(msg submittedMsg) {
	s := w.state
	if s.Phase != PhaseSubmitting || s.Selected == nil || s.Selected.ID != msg.slotID {
		return
	}
	s.Loading = false

	if !msg.failed {
		s.Phase = PhaseCompleted
		s.ShowDetail = false
		s.ShowCompletion = true
		s.Duplicate = false
		if msg.reloadErr != nil {
			s.Error = "failed to reload slots: " + gateway.Message(msg.reloadErr)
		} else {
			s.Slots = withKind(msg.slots, s.Kind)
		}
		if w.badges != nil {
			w.badges.Increment(session.BadgeApplications)
		}
		w.log.Info("application accepted", "slot_id", msg.slotID)
		w.set(s)
		return
	}

	w.log.Info("application rejected", "slot_id", msg.slotID, "status", msg.status, "failure", msg.failure.String())
	if msg.failure == apperrors.FailureDuplicate {
		s.Phase = PhaseCompleted
		s.ShowDetail = false
		s.ShowCompletion = true
		s.Duplicate = true
		s.Error = ""
		w.set(s)
		return
	}
	// The detail dialog stays open with the error so the user can retry.
	s.Phase = PhaseDetailShown
	s.ShowDetail = true
	s.Error = apperrors.UserMessage(msg.failure, msg.message)
	w.set(s)
}

func withKind(slots []domain.Slot, kind domain.SlotKind) []domain.Slot {
	out := make([]domain.Slot, len(slots))
	for i, slot := range slots {
		if slot.Kind == "" {
			slot.Kind = kind
		}
		out[i] = slot
	}
	return out
}

type slotsLoadedMsg struct {
	kind  domain.SlotKind
	slots []domain.Slot
	err   error
}

type submittedMsg struct {
	slotID int64

	failed  bool
	status  int
	message string
	failure apperrors.FailureKind

	slots     []domain.Slot
	reloadErr error
}

func (m submittedMsg) record(slot domain.Slot, at time.Time) domain.ApplicationRecord {
	rec := domain.ApplicationRecord{
		SlotID:    slot.ID,
		Kind:      slot.Kind,
		Title:     slot.Title,
		Outcome:   domain.OutcomeApplied,
		CreatedAt: at,
	}
	if !m.failed {
		return rec
	}
	if m.failure == apperrors.FailureDuplicate {
		rec.Outcome = domain.OutcomeDuplicate
		rec.Message = m.message
		return rec
	}
	rec.Outcome = domain.OutcomeFailed
	rec.Message = fmt.Sprintf("%s (status %d)", apperrors.UserMessage(m.failure, m.message), m.status)
	return rec
}
