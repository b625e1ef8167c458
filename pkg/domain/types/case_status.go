package types

import "fmt"

// CaseStatus represents the lifecycle status of a case
type CaseStatus string

const (
	CaseStatusReceived    CaseStatus = "Received"
	CaseStatusDistributed CaseStatus = "Distributed"
	CaseStatusResolved    CaseStatus = "Resolved"
	CaseStatusPending     CaseStatus = "Pending"
)

// AllCaseStatuses returns all valid case statuses
func AllCaseStatuses() []CaseStatus {
	return []CaseStatus{
		CaseStatusReceived,
		CaseStatusDistributed,
		CaseStatusResolved,
		CaseStatusPending,
	}
}

// IsValid checks if the case status is valid
func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusReceived,
		CaseStatusDistributed,
		CaseStatusResolved,
		CaseStatusPending:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as CaseStatusReceived for backward compatibility.
func (s CaseStatus) Normalize() CaseStatus {
	if s == "" {
		return CaseStatusReceived
	}
	return s
}

// String returns the string representation of the case status
func (s CaseStatus) String() string {
	return string(s)
}

// ParseCaseStatus parses a string into a CaseStatus
func ParseCaseStatus(s string) (CaseStatus, error) {
	status := CaseStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid case status: %s", s)
	}
	return status, nil
}
