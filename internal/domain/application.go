package domain

import "time"

// ApplicationOutcome is the final result of an application attempt.
type ApplicationOutcome string

const (
	OutcomeApplied   ApplicationOutcome = "applied"
	OutcomeDuplicate ApplicationOutcome = "duplicate"
	OutcomeFailed    ApplicationOutcome = "failed"
)

// String returns the string representation of the outcome.
func (o ApplicationOutcome) String() string {
	return string(o)
}

// ApplicationRecord is one entry of the local application history.
type ApplicationRecord struct {
	ID        int64
	SlotID    int64
	Kind      SlotKind
	Title     string
	Outcome   ApplicationOutcome
	Message   string
	CreatedAt time.Time
}
