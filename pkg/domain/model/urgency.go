package model

import (
	"time"

	"github.com/caseflow-lab/doctrack/pkg/domain/types"
)

// DueSoonWindowDays is the default number of days before the final deadline
// during which a case is flagged as due soon.
const DueSoonWindowDays = 5

// DeriveUrgency maps a case's status and final deadline to its display triage
// tier. It is a total function: a missing deadline yields UrgencyNone, and a
// resolved case is always UrgencyResolved regardless of its deadline.
func DeriveUrgency(c *Case, today time.Time) types.Urgency {
	return DeriveUrgencyWindow(c, today, DueSoonWindowDays)
}

// DeriveUrgencyWindow is DeriveUrgency with a configurable due-soon window.
func DeriveUrgencyWindow(c *Case, today time.Time, windowDays int) types.Urgency {
	if c == nil {
		return types.UrgencyNone
	}
	if c.Status == types.CaseStatusResolved {
		return types.UrgencyResolved
	}
	if c.FinalDeadline == nil {
		return types.UrgencyNone
	}

	diff := daysUntil(today, *c.FinalDeadline)
	switch {
	case diff <= 0:
		return types.UrgencyOverdue
	case diff <= windowDays:
		return types.UrgencyDueSoon
	default:
		return types.UrgencyNone
	}
}

// IsOverdue reports whether a case counts toward the dashboard's overdue
// metric: deadline on or before today and not resolved.
func IsOverdue(c *Case, today time.Time) bool {
	if c == nil || c.FinalDeadline == nil || c.Status == types.CaseStatusResolved {
		return false
	}
	return daysUntil(today, *c.FinalDeadline) <= 0
}

// daysUntil returns the whole-day difference between the calendar dates of
// from and to, ignoring the time of day of either.
func daysUntil(from, to time.Time) int {
	return int(startOfDay(to).Sub(startOfDay(from)).Hours() / 24)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
