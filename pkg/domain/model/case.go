package model

import (
	"strings"
	"time"

	"github.com/caseflow-lab/doctrack/pkg/domain/types"
)

// BlankFieldMark is stored in place of a blank value for the NOT NULL columns
// of the cases collection. The write path coerces blanks to this mark instead
// of rejecting them; readers treat it as "no value".
const BlankFieldMark = "—"

// Case represents one unit of document work: a received document, the request
// distributed for it, and the eventual response.
type Case struct {
	ID int64

	// Received document fields. Never persisted blank (see NormalizeRequired).
	ReceivedDocNo string
	Subject       string
	Origin        string
	FinalDeadline *time.Time
	Notes         string

	// Request fields. Genuinely optional, stored empty when absent.
	RequestSubject  string
	RequestDeadline *time.Time
	RequestedDocNo  string

	// Response fields. ResolvedAt is set exactly when ResponseDocNo is recorded.
	ResponseDocNo string
	ResolvedAt    *time.Time

	Status    types.CaseStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeRequired coerces blank required fields to BlankFieldMark so that a
// write can never violate the NOT NULL constraints of the backing store. This
// is deliberate masking, not validation.
func (c *Case) NormalizeRequired() {
	c.ReceivedDocNo = orMark(c.ReceivedDocNo)
	c.Subject = orMark(c.Subject)
	c.Origin = orMark(c.Origin)
	c.Notes = orMark(c.Notes)

	c.RequestSubject = strings.TrimSpace(c.RequestSubject)
	c.RequestedDocNo = strings.TrimSpace(c.RequestedDocNo)
	c.ResponseDocNo = strings.TrimSpace(c.ResponseDocNo)
}

// HasResponse reports whether a response document number has been recorded.
func (c *Case) HasResponse() bool {
	return strings.TrimSpace(c.ResponseDocNo) != ""
}

func orMark(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return BlankFieldMark
	}
	return s
}
