package model

import (
	"time"

	"github.com/caseflow-lab/doctrack/pkg/domain/types"
)

// Assignment represents one (case, responsible party) pairing: the named party
// must respond to the case. RequestDeadline mirrors the case's request
// deadline for display and is refreshed on every reconciliation.
type Assignment struct {
	ID              int64
	CaseID          int64
	Name            string
	Status          types.AssignmentStatus
	RequestDeadline *time.Time
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
