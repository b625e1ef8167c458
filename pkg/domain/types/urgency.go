package types

// Urgency is the display triage tier of a case, derived from its status and
// final deadline. It is never persisted.
type Urgency string

const (
	UrgencyResolved Urgency = "RESOLVED"
	UrgencyOverdue  Urgency = "OVERDUE"
	UrgencyDueSoon  Urgency = "DUE_SOON"
	UrgencyNone     Urgency = "NONE"
)

// String returns the string representation of the urgency tier
func (u Urgency) String() string {
	return string(u)
}
