package interfaces

import (
	"context"

	"github.com/caseflow-lab/doctrack/pkg/domain/model"
)

// ResponsibleRepository defines the interface for the responsible-party name
// registry.
type ResponsibleRepository interface {
	Create(ctx context.Context, ownerID string, r *model.Responsible) (*model.Responsible, error)

	// List returns all registry entries of the owner, sorted by name
	List(ctx context.Context, ownerID string) ([]*model.Responsible, error)

	// Delete removes a registry entry by exact stored name. Deleting an
	// unknown name is a no-op.
	Delete(ctx context.Context, ownerID string, name string) error
}
