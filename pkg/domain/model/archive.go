package model

import "time"

// ArchiveEntry marks a case as archived. Membership is independent of the
// case's own status field; unarchiving simply removes the entry.
type ArchiveEntry struct {
	CaseID     int64
	ArchivedAt time.Time
}
