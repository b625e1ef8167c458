package interfaces

import (
	"context"

	"github.com/caseflow-lab/doctrack/pkg/domain/model"
)

// ArchiveRepository defines the interface for the archive membership index.
type ArchiveRepository interface {
	// Put upserts a membership entry. Re-archiving refreshes the timestamp
	// and must not create a duplicate.
	Put(ctx context.Context, ownerID string, entry *model.ArchiveEntry) error

	// Remove deletes the membership entry. Removing a non-member is a no-op.
	Remove(ctx context.Context, ownerID string, caseID int64) error

	// List returns all archived entries of the owner
	List(ctx context.Context, ownerID string) ([]*model.ArchiveEntry, error)
}
