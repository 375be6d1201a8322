package state

import (
	"testing"

	"github.com/cristianoliveira/courtside/internal/apply"
	"github.com/cristianoliveira/courtside/internal/domain"
	"github.com/cristianoliveira/courtside/internal/gateway"
	"github.com/cristianoliveira/courtside/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testSlots = []domain.Slot{
	{ID: 101, Kind: domain.KindActivity, Title: "Morning rally", Date: "2026-11-07", StartTime: "07:00", EndTime: "09:00", Current: 3, Max: 8},
	{ID: 102, Kind: domain.KindActivity, Title: "Doubles night", Date: "2026-11-08", StartTime: "19:00", EndTime: "21:00", Current: 7, Max: 8},
}

func newLoadedSlots(t *testing.T) (*SlotsModel, *gateway.MockGateway, *session.Session) {
	t.Helper()
	gw := new(gateway.MockGateway)
	gw.On("ListSlots", mock.Anything, domain.KindActivity).Return(testSlots, nil).Once()
	sess := session.New("")
	wf := apply.NewWorkflow(domain.KindActivity, gw, apply.WithBadges(sess))
	m := NewSlotsModel(wf, sess)
	send(t, m, wf.LoadSlots())
	return m, gw, sess
}

func TestSlotsModelBrowseAndApply(t *testing.T) {
	m, gw, sess := newLoadedSlots(t)
	gw.On("SubmitApplication", mock.Anything, domain.KindActivity, int64(102)).Return(nil).Once()
	gw.On("ListSlots", mock.Anything, domain.KindActivity).Return(testSlots, nil).Once()

	view := m.View()
	assert.Contains(t, view, "Morning rally")
	assert.Contains(t, view, "Doubles night")

	m.Update(key("j"))
	m.Update(key("enter"))
	assert.Equal(t, apply.PhaseDetailShown, m.wf.State().Phase)
	assert.Contains(t, m.View(), "Activity · Doubles night")

	_, cmd := m.Update(key("a"))
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Submitting...")
	m.Update(cmd())

	assert.Equal(t, apply.PhaseCompleted, m.wf.State().Phase)
	view = m.View()
	assert.Contains(t, view, "Application complete")
	assert.Contains(t, view, "applied for Doubles night")
	assert.Contains(t, view, "applications 1")
	assert.Equal(t, 1, sess.Badge(session.BadgeApplications))

	m.Update(key("enter"))
	assert.Equal(t, apply.PhaseBrowsing, m.wf.State().Phase)
}

func TestSlotsModelDuplicate(t *testing.T) {
	m, gw, _ := newLoadedSlots(t)
	gw.On("SubmitApplication", mock.Anything, domain.KindActivity, int64(101)).
		Return(&gateway.Error{Status: 400, Message: "이미 신청한 활동입니다"}).Once()

	m.Update(key("enter"))
	_, cmd := m.Update(key("enter"))
	send(t, m, cmd)

	assert.True(t, m.wf.State().Duplicate)
	assert.Contains(t, m.View(), "Already applied")
}

func TestSlotsModelFailureStaysInDetail(t *testing.T) {
	m, gw, _ := newLoadedSlots(t)
	gw.On("SubmitApplication", mock.Anything, domain.KindActivity, int64(101)).
		Return(&gateway.Error{Status: 401, Message: "expired"}).Once()

	m.Update(key("enter"))
	_, cmd := m.Update(key("a"))
	send(t, m, cmd)

	assert.Equal(t, apply.PhaseDetailShown, m.wf.State().Phase)
	assert.Contains(t, m.View(), "authentication required")

	m.Update(key("esc"))
	assert.Equal(t, apply.PhaseBrowsing, m.wf.State().Phase)
}

func TestSlotsModelSwitchKind(t *testing.T) {
	m, gw, _ := newLoadedSlots(t)
	academy := []domain.Slot{{ID: 201, Title: "Beginner clinic", Current: 2, Max: 6}}
	gw.On("ListSlots", mock.Anything, domain.KindAcademy).Return(academy, nil).Once()

	m.Update(key("j"))
	_, cmd := m.Update(key("tab"))
	send(t, m, cmd)

	assert.Equal(t, domain.KindAcademy, m.wf.State().Kind)
	assert.Zero(t, m.ui.GetCursor())
	assert.Contains(t, m.View(), "Beginner clinic")
}

func TestSlotsModelFollowsWorkflowSnapshots(t *testing.T) {
	m, _, _ := newLoadedSlots(t)
	require.Len(t, m.snap.Slots, 2)

	m.wf.SelectSlot(testSlots[0])
	assert.Equal(t, apply.PhaseDetailShown, m.snap.Phase)
	assert.Contains(t, m.View(), "Activity · Morning rally")

	m.wf.DismissDetail()
	assert.Equal(t, apply.PhaseBrowsing, m.snap.Phase)
}

func TestSlotsModelClearsBadges(t *testing.T) {
	m, _, sess := newLoadedSlots(t)
	sess.Increment(session.BadgeApplications)
	assert.Contains(t, m.View(), "applications 1")

	m.Update(key("c"))
	assert.Zero(t, sess.Badge(session.BadgeApplications))
	assert.NotContains(t, m.View(), "applications 1")
}
