package model

import (
	"strings"
	"time"
)

// Responsible is a registry entry of a valid responsible-party name. The
// registry exists for selection convenience; assignments are not constrained
// to it at the data layer.
type Responsible struct {
	Name      string
	CreatedAt time.Time
}

// NormalizeName collapses all whitespace runs (including non-breaking spaces)
// to single spaces and trims the result. Registry uniqueness is checked on the
// normalized, case-folded form.
func NormalizeName(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

// SameName reports whether two responsible-party names are equal after
// normalization, ignoring case.
func SameName(a, b string) bool {
	return strings.EqualFold(NormalizeName(a), NormalizeName(b))
}
