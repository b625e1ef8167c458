package types

import (
	"fmt"
	"strings"
)

// AssignmentStatus represents the response state of a responsible assignment
type AssignmentStatus string

const (
	AssignmentStatusPending   AssignmentStatus = "Pending"
	AssignmentStatusResponded AssignmentStatus = "Responded"
)

// Display labels shown in the dashboard. Kept in the original Portuguese form,
// including the colored-dot decoration, for compatibility with stored exports.
const (
	assignmentDisplayPending   = "🔴 Pendente"
	assignmentDisplayResponded = "🟢 Respondido"
)

// AllAssignmentStatuses returns all valid assignment statuses
func AllAssignmentStatuses() []AssignmentStatus {
	return []AssignmentStatus{
		AssignmentStatusPending,
		AssignmentStatusResponded,
	}
}

// IsValid checks if the assignment status is valid
func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentStatusPending, AssignmentStatusResponded:
		return true
	default:
		return false
	}
}

// String returns the string representation of the assignment status
func (s AssignmentStatus) String() string {
	return string(s)
}

// Display returns the decorated label for the assignment status. Invalid
// statuses render as the pending label.
func (s AssignmentStatus) Display() string {
	if s == AssignmentStatusResponded {
		return assignmentDisplayResponded
	}
	return assignmentDisplayPending
}

// ParseAssignmentStatus parses a canonical string into an AssignmentStatus
func ParseAssignmentStatus(s string) (AssignmentStatus, error) {
	status := AssignmentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid assignment status: %s", s)
	}
	return status, nil
}

// AssignmentStatusFromDisplay maps a display label back to its canonical
// status. The mapping is total: anything unrecognized, including the empty
// string, resolves to AssignmentStatusPending so that a stray display value
// can never propagate into persistence.
func AssignmentStatusFromDisplay(label string) AssignmentStatus {
	switch strings.TrimSpace(label) {
	case assignmentDisplayResponded, string(AssignmentStatusResponded):
		return AssignmentStatusResponded
	default:
		return AssignmentStatusPending
	}
}
