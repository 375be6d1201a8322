package domain

import (
	"fmt"
	"strings"
)

// SlotKind distinguishes activities from academy classes.
type SlotKind string

const (
	KindActivity SlotKind = "activity"
	KindAcademy  SlotKind = "academy"
)

// IsValid checks if the kind is known.
func (k SlotKind) IsValid() bool {
	switch k {
	case KindActivity, KindAcademy:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k SlotKind) String() string {
	return string(k)
}

// Label returns the human readable name of the kind.
func (k SlotKind) Label() string {
	switch k {
	case KindAcademy:
		return "Academy"
	default:
		return "Activity"
	}
}

// ParseSlotKind parses a kind name, accepting singular and plural forms.
func ParseSlotKind(s string) (SlotKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "activity", "activities":
		return KindActivity, nil
	case "academy", "academies":
		return KindAcademy, nil
	default:
		return "", fmt.Errorf("invalid slot kind %q: must be one of: activity, academy", s)
	}
}

// SlotStatus is the capacity status of a slot.
type SlotStatus string

const (
	StatusOpen       SlotStatus = "open"
	StatusAlmostFull SlotStatus = "almost-full"
	StatusFull       SlotStatus = "full"
)

// String returns the string representation of the status.
func (s SlotStatus) String() string {
	return string(s)
}

// Slot is a schedulable activity or academy instance with a participant capacity.
type Slot struct {
	ID        int64
	Kind      SlotKind
	Title     string
	Date      string
	StartTime string
	EndTime   string
	Location  string
	Court     string
	Current   int
	Max       int
}

// Status derives the capacity status from the participant counts.
func (s Slot) Status() SlotStatus {
	return DeriveStatus(s.Current, s.Max)
}

// IsFull reports whether no seat is left.
func (s Slot) IsFull() bool {
	return s.Status() == StatusFull
}

// DeriveStatus computes the status for the given participant counts.
func DeriveStatus(current, max int) SlotStatus {
	switch {
	case current >= max:
		return StatusFull
	case current >= max-1:
		return StatusAlmostFull
	default:
		return StatusOpen
	}
}

// TimeWindow renders the slot's time range.
func (s Slot) TimeWindow() string {
	if s.EndTime == "" {
		return s.StartTime
	}
	return s.StartTime + "-" + s.EndTime
}
