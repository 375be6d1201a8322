package apply

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/courtside/internal/domain"
	"github.com/cristianoliveira/courtside/internal/gateway"
	"github.com/cristianoliveira/courtside/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memoryRecorder struct {
	records []domain.ApplicationRecord
	err     error
}

func (r *memoryRecorder) RecordApplication(_ context.Context, rec domain.ApplicationRecord) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.records = append(r.records, rec)
	return int64(len(r.records)), nil
}

var (
	openSlot = domain.Slot{ID: 7, Kind: domain.KindActivity, Title: "Morning rally", Current: 2, Max: 8}
	fullSlot = domain.Slot{ID: 8, Kind: domain.KindActivity, Title: "Doubles night", Current: 8, Max: 8}
)

func run(t *testing.T, w *Workflow, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	assert.True(t, w.Update(cmd()))
}

type fixture struct {
	gw       *gateway.MockGateway
	recorder *memoryRecorder
	session  *session.Session
	wf       *Workflow
}

func newFixture(t *testing.T, kind domain.SlotKind) *fixture {
	t.Helper()
	f := &fixture{
		gw:       new(gateway.MockGateway),
		recorder: &memoryRecorder{},
		session:  session.New("token"),
	}
	f.wf = NewWorkflow(kind, f.gw, WithRecorder(f.recorder), WithBadges(f.session))
	f.wf.now = func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) }
	return f
}

// detail loads openSlot and fullSlot and opens the detail dialog for slot.
func (f *fixture) detail(t *testing.T, slot domain.Slot) {
	t.Helper()
	f.gw.On("ListSlots", mock.Anything, f.wf.State().Kind).Return([]domain.Slot{openSlot, fullSlot}, nil).Once()
	run(t, f.wf, f.wf.LoadSlots())
	f.wf.SelectSlot(slot)
	require.Equal(t, PhaseDetailShown, f.wf.State().Phase)
}

func TestLoadSlots(t *testing.T) {
	f := newFixture(t, domain.KindActivity)
	f.gw.On("ListSlots", mock.Anything, domain.KindActivity).Return([]domain.Slot{openSlot}, nil).Once()

	cmd := f.wf.LoadSlots()
	assert.True(t, f.wf.State().LoadingSlots)
	assert.Nil(t, f.wf.LoadSlots())
	run(t, f.wf, cmd)

	s := f.wf.State()
	assert.False(t, s.LoadingSlots)
	assert.Equal(t, []domain.Slot{openSlot}, s.Slots)
	assert.Equal(t, PhaseBrowsing, s.Phase)
}

func TestLoadSlotsFailure(t *testing.T) {
	f := newFixture(t, domain.KindAcademy)
	f.gw.On("ListSlots", mock.Anything, domain.KindAcademy).Return(nil, errors.New("offline")).Once()

	run(t, f.wf, f.wf.LoadSlots())

	assert.Equal(t, "failed to load slots: offline", f.wf.State().Error)
}

func TestSelectAndDismissDetail(t *testing.T) {
	f := newFixture(t, domain.KindActivity)
	f.detail(t, openSlot)

	s := f.wf.State()
	assert.True(t, s.ShowDetail)
	require.NotNil(t, s.Selected)
	assert.Equal(t, openSlot.ID, s.Selected.ID)

	f.wf.SelectSlot(fullSlot)
	assert.Equal(t, openSlot.ID, f.wf.State().Selected.ID, "selection only while browsing")

	f.wf.DismissDetail()
	s = f.wf.State()
	assert.Equal(t, PhaseBrowsing, s.Phase)
	assert.Nil(t, s.Selected)
	assert.False(t, s.ShowDetail)
}

func TestSubmitSuccessReloadsSlots(t *testing.T) {
	f := newFixture(t, domain.KindActivity)
	f.detail(t, openSlot)
	reloaded := openSlot
	reloaded.Current = 3
	f.gw.On("SubmitApplication", mock.Anything, domain.KindActivity, int64(7)).Return(nil).Once()
	f.gw.On("ListSlots", mock.Anything, domain.KindActivity).Return([]domain.Slot{reloaded, fullSlot}, nil).Once()

	cmd := f.wf.Submit(7)
	require.NotNil(t, cmd)
	s := f.wf.State()
	assert.Equal(t, PhaseSubmitting, s.Phase)
	assert.True(t, s.Loading)
	assert.Nil(t, f.wf.Submit(7), "no second submission in flight")

	f.wf.Update(cmd())

	s = f.wf.State()
	assert.Equal(t, PhaseCompleted, s.Phase)
	assert.True(t, s.ShowCompletion)
	assert.False(t, s.ShowDetail)
	assert.False(t, s.Duplicate)
	assert.False(t, s.Loading)
	slot, _ := s.Slot(7)
	assert.Equal(t, 3, slot.Current)
	assert.Equal(t, 1, f.session.Badge(session.BadgeApplications))

	require.Len(t, f.recorder.records, 1)
	assert.Equal(t, domain.OutcomeApplied, f.recorder.records[0].Outcome)
	assert.Equal(t, "Morning rally", f.recorder.records[0].Title)
	f.gw.AssertExpectations(t)
}

func TestSubmitDuplicateOutcomes(t *testing.T) {
	tests := []struct {
		name string
		kind domain.SlotKind
		err  error
	}{
		{"activity marker", domain.KindActivity, &gateway.Error{Status: 400, Message: "이미 신청한 활동입니다"}},
		{"academy opaque server error", domain.KindAcademy, &gateway.Error{Status: 500, Message: "서버 오류가 발생했습니다"}},
		{"conflict", domain.KindActivity, &gateway.Error{Status: 409, Message: "conflict"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.kind)
			f.detail(t, openSlot)
			f.gw.On("SubmitApplication", mock.Anything, tt.kind, int64(7)).Return(tt.err).Once()

			run(t, f.wf, f.wf.Submit(7))

			s := f.wf.State()
			assert.Equal(t, PhaseCompleted, s.Phase)
			assert.True(t, s.Duplicate)
			assert.True(t, s.ShowCompletion)
			assert.Empty(t, s.Error)
			assert.Zero(t, f.session.Badge(session.BadgeApplications))
			require.Len(t, f.recorder.records, 1)
			assert.Equal(t, domain.OutcomeDuplicate, f.recorder.records[0].Outcome)
			f.gw.AssertNumberOfCalls(t, "ListSlots", 1)
		})
	}
}

func TestSubmitFailureReturnsToDetail(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unauthorized", &gateway.Error{Status: 401, Message: "token expired"}, "authentication required"},
		{"not found", &gateway.Error{Status: 404, Message: "missing"}, "slot not found"},
		{"server message", &gateway.Error{Status: 500, Message: "database timeout"}, "database timeout"},
		{"network", &gateway.Error{Message: "network error: connection refused"}, "network error: connection refused"},
		{"empty message", &gateway.Error{Status: 502}, "failed to submit application"},
		{"bodiless server error", &gateway.Error{Status: 500, Message: "Internal Server Error", Synthesized: true}, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, domain.KindActivity)
			f.detail(t, openSlot)
			f.gw.On("SubmitApplication", mock.Anything, domain.KindActivity, int64(7)).Return(tt.err).Once()

			run(t, f.wf, f.wf.Submit(7))

			s := f.wf.State()
			assert.Equal(t, PhaseDetailShown, s.Phase)
			assert.True(t, s.ShowDetail)
			assert.False(t, s.ShowCompletion)
			assert.False(t, s.Loading)
			assert.Equal(t, tt.want, s.Error)
			require.NotNil(t, s.Selected)
			require.Len(t, f.recorder.records, 1)
			assert.Equal(t, domain.OutcomeFailed, f.recorder.records[0].Outcome)
		})
	}
}

func TestSubmitFullSlotRefused(t *testing.T) {
	f := newFixture(t, domain.KindActivity)
	f.detail(t, fullSlot)

	assert.Nil(t, f.wf.Submit(fullSlot.ID))

	s := f.wf.State()
	assert.Equal(t, PhaseDetailShown, s.Phase)
	assert.Equal(t, MsgSlotFull, s.Error)
	f.gw.AssertNotCalled(t, "SubmitApplication", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitOtherSlotIgnored(t *testing.T) {
	f := newFixture(t, domain.KindActivity)
	f.detail(t, openSlot)

	assert.Nil(t, f.wf.Submit(99))
	assert.Equal(t, PhaseDetailShown, f.wf.State().Phase)
}

func TestSubmitReloadFailureStillCompletes(t *testing.T) {
	f := newFixture(t, domain.KindActivity)
	f.detail(t, openSlot)
	f.gw.On("SubmitApplication", mock.Anything, domain.KindActivity, int64(7)).Return(nil).Once()
	f.gw.On("ListSlots", mock.Anything, domain.KindActivity).Return(nil, errors.New("offline")).Once()

	run(t, f.wf, f.wf.Submit(7))

	s := f.wf.State()
	assert.Equal(t, PhaseCompleted, s.Phase)
	assert.False(t, s.Duplicate)
	assert.Equal(t, "failed to reload slots: offline", s.Error)
	assert.Len(t, s.Slots, 2)
}

func TestRecorderFailureDoesNotBlockOutcome(t *testing.T) {
	f := newFixture(t, domain.KindActivity)
	f.recorder.err = errors.New("disk full")
	f.detail(t, openSlot)
	f.gw.On("SubmitApplication", mock.Anything, domain.KindActivity, int64(7)).Return(&gateway.Error{Status: 409}).Once()

	run(t, f.wf, f.wf.Submit(7))

	assert.True(t, f.wf.State().Duplicate)
}

func TestDismissCompletionResets(t *testing.T) {
	f := newFixture(t, domain.KindActivity)
	f.detail(t, openSlot)
	f.gw.On("SubmitApplication", mock.Anything, domain.KindActivity, int64(7)).Return(&gateway.Error{Status: 409}).Once()
	run(t, f.wf, f.wf.Submit(7))

	f.wf.DismissDetail()
	assert.Equal(t, PhaseCompleted, f.wf.State().Phase, "detail dismissal does not apply to completion")

	f.wf.DismissCompletion()
	s := f.wf.State()
	assert.Equal(t, PhaseBrowsing, s.Phase)
	assert.Nil(t, s.Selected)
	assert.False(t, s.Duplicate)
	assert.False(t, s.ShowCompletion)
}

func TestSwitchKindDropsStaleSlots(t *testing.T) {
	f := newFixture(t, domain.KindActivity)
	f.gw.On("ListSlots", mock.Anything, domain.KindActivity).Return([]domain.Slot{openSlot}, nil).Once()
	academy := domain.Slot{ID: 30, Title: "Junior clinic", Current: 1, Max: 6}
	f.gw.On("ListSlots", mock.Anything, domain.KindAcademy).Return([]domain.Slot{academy}, nil).Once()

	stale := f.wf.LoadSlots()
	switched := f.wf.SwitchKind(domain.KindAcademy)
	require.NotNil(t, switched)
	assert.Nil(t, f.wf.SwitchKind(domain.KindAcademy))

	f.wf.Update(stale())
	assert.Empty(t, f.wf.State().Slots)

	f.wf.Update(switched())
	s := f.wf.State()
	require.Len(t, s.Slots, 1)
	assert.Equal(t, domain.KindAcademy, s.Slots[0].Kind)
}

func TestSubscribeAndClose(t *testing.T) {
	f := newFixture(t, domain.KindActivity)
	var phases []Phase
	f.wf.Subscribe(SinkFunc(func(s State) { phases = append(phases, s.Phase) }))
	f.gw.On("ListSlots", mock.Anything, domain.KindActivity).Return([]domain.Slot{openSlot}, nil).Once()

	cmd := f.wf.LoadSlots()
	f.wf.SelectSlot(openSlot)
	f.wf.Close()
	f.wf.Update(cmd())
	f.wf.DismissDetail()

	assert.Equal(t, []Phase{PhaseBrowsing, PhaseBrowsing, PhaseDetailShown}, phases)
	assert.Empty(t, f.wf.State().Slots)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "browsing", PhaseBrowsing.String())
	assert.Equal(t, "detail", PhaseDetailShown.String())
	assert.Equal(t, "submitting", PhaseSubmitting.String())
	assert.Equal(t, "completed", PhaseCompleted.String())
}
