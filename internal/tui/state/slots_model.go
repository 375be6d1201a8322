package state

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/courtside/internal/apply"
	"github.com/cristianoliveira/courtside/internal/domain"
	"github.com/cristianoliveira/courtside/internal/tui/render"
)

var (
	slotKinds     = []domain.SlotKind{domain.KindActivity, domain.KindAcademy}
	browsingHelp  = []string{"j/k: move", "enter: details", "tab: switch", "r: reload", "c: clear badges", "q: quit"}
	detailHelp    = []string{"a/enter: apply", "esc: close"}
	completedHelp = []string{"enter: ok"}
)

// SlotsModel is the activity/academy application screen.
type SlotsModel struct {
	wf      *apply.Workflow
	snap    apply.State
	ui      *UIState
	spinner spinner.Model
	status  *statusReporter
	badges  BadgeSource
}

// NewSlotsModel creates the slot screen driving wf. badges may be nil.
func NewSlotsModel(wf *apply.Workflow, badges BadgeSource) *SlotsModel {
	m := &SlotsModel{
		wf:      wf,
		ui:      NewUIState(),
		spinner: newSpinner(),
		status:  newStatusReporter(),
		badges:  badges,
	}
	wf.Subscribe(apply.SinkFunc(func(s apply.State) { m.snap = s }))
	return m
}

// Init loads the slot list.
func (m *SlotsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.wf.LoadSlots())
}

// Update handles messages and updates the model state.
func (m *SlotsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	before := m.snap.Phase
	if !m.wf.Update(msg) {
		return m, nil
	}
	s := m.snap
	m.ui.AdjustCursorBounds(len(s.Slots))
	if before == apply.PhaseSubmitting && s.Phase == apply.PhaseCompleted && s.Selected != nil {
		if s.Duplicate {
			m.status.line.Warning(fmt.Sprintf("already applied for %s", s.Selected.Title))
		} else {
			m.status.line.Success(fmt.Sprintf("applied for %s", s.Selected.Title))
		}
		return m, statusExpiredAfter(statusTTL)
	}
	// Submission errors are shown inside the detail dialog.
	if s.Phase == apply.PhaseDetailShown {
		return m, nil
	}
	return m, m.status.report(s.Error)
}

func (m *SlotsModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.snap
	key := msg.String()
	if key == "ctrl+c" {
		return m.quit()
	}

	switch s.Phase {
	case apply.PhaseCompleted:
		switch key {
		case "enter", "esc", " ":
			m.wf.DismissCompletion()
		}
		return m, nil
	case apply.PhaseSubmitting:
		return m, nil
	case apply.PhaseDetailShown:
		switch key {
		case "a", "enter":
			return m, m.wf.Submit(s.Selected.ID)
		case "esc", "q":
			m.wf.DismissDetail()
		}
		return m, nil
	}

	n := len(s.Slots)
	switch key {
	case "q":
		return m.quit()
	case "j", "down":
		m.ui.MoveCursorDown(n)
		m.ui.EnsureCursorVisible(n)
	case "k", "up":
		m.ui.MoveCursorUp()
		m.ui.EnsureCursorVisible(n)
	case "enter":
		if c := m.ui.GetCursor(); c < n {
			m.wf.SelectSlot(s.Slots[c])
		}
	case "tab":
		m.ui.ResetCursor()
		m.status.reset()
		return m, m.wf.SwitchKind(nextKind(s.Kind))
	case "r":
		m.status.reset()
		return m, m.wf.LoadSlots()
	case "c":
		clearBadges(m.badges)
	}
	return m, nil
}

func (m *SlotsModel) quit() (tea.Model, tea.Cmd) {
	m.wf.Close()
	return m, tea.Quit
}

func nextKind(kind domain.SlotKind) domain.SlotKind {
	if kind == domain.KindActivity {
		return domain.KindAcademy
	}
	return domain.KindActivity
}

// View renders the slot screen.
func (m *SlotsModel) View() string {
	s := m.snap
	width := m.ui.GetWidth()

	active := 0
	tabs := make([]string, len(slotKinds))
	for i, kind := range slotKinds {
		tabs[i] = kind.Label()
		if kind == s.Kind {
			active = i
		}
	}

	var b strings.Builder
	b.WriteString(render.Header(render.HeaderState{
		Title:  "courtside",
		Tabs:   tabs,
		Active: active,
		Badges: headerBadges(m.badges),
		Width:  width,
	}))
	b.WriteString("\n")

	help := browsingHelp
	switch {
	case s.Phase == apply.PhaseCompleted && s.Selected != nil:
		help = completedHelp
		b.WriteString(render.Completion(*s.Selected, s.Duplicate, s.Error, width))
	case (s.Phase == apply.PhaseDetailShown || s.Phase == apply.PhaseSubmitting) && s.Selected != nil:
		help = detailHelp
		b.WriteString(render.SlotDetail(*s.Selected, s.Loading, s.Error, width))
		if s.Loading {
			b.WriteString("\n" + m.spinner.View() + " Submitting...")
		}
	case s.LoadingSlots && len(s.Slots) == 0:
		b.WriteString(m.spinner.View() + " Loading slots...")
	case len(s.Slots) == 0:
		b.WriteString(render.Muted("No slots scheduled"))
	default:
		m.updateViewportContent(s, width)
		b.WriteString(m.ui.GetViewport().View())
	}

	b.WriteString("\n")
	b.WriteString(render.Footer(render.FooterState{
		Help:   help,
		Status: m.status.current(),
		Width:  width,
	}))
	return b.String()
}

func (m *SlotsModel) updateViewportContent(s apply.State, width int) {
	cursor := m.ui.GetCursor()
	rows := make([]string, len(s.Slots))
	for i, slot := range s.Slots {
		rows[i] = render.SlotRow(render.SlotRowState{
			Slot:     slot,
			Selected: i == cursor,
			Width:    width,
		})
	}
	m.ui.GetViewport().SetContent(strings.Join(rows, "\n"))
}
