package apply

import "github.com/cristianoliveira/courtside/internal/domain"

// Phase is the position of the workflow in its dialog sequence.
type Phase int

const (
	PhaseBrowsing Phase = iota
	PhaseDetailShown
	PhaseSubmitting
	PhaseCompleted
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseDetailShown:
		return "detail"
	case PhaseSubmitting:
		return "submitting"
	case PhaseCompleted:
		return "completed"
	default:
		return "browsing"
	}
}

// State is the slot list plus the dialog state of the application flow.
type State struct {
	Kind         domain.SlotKind
	Slots        []domain.Slot
	LoadingSlots bool

	Phase    Phase
	Selected *domain.Slot

	ShowDetail     bool
	ShowCompletion bool
	// Duplicate marks a completion caused by an application that already existed.
	Duplicate bool
	// Loading is true while a submission is in flight.
	Loading bool

	Error string
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	c := s
	if s.Slots != nil {
		c.Slots = append([]domain.Slot(nil), s.Slots...)
	}
	if s.Selected != nil {
		sel := *s.Selected
		c.Selected = &sel
	}
	return c
}

// Slot returns the listed slot with the given id.
func (s State) Slot(id int64) (domain.Slot, bool) {
	for _, slot := range s.Slots {
		if slot.ID == id {
			return slot, true
		}
	}
	return domain.Slot{}, false
}

func (s State) browsing() State {
	s.Phase = PhaseBrowsing
	s.Selected = nil
	s.ShowDetail = false
	s.ShowCompletion = false
	s.Duplicate = false
	s.Loading = false
	return s
}
