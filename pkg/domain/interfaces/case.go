package interfaces

import (
	"context"

	"github.com/caseflow-lab/doctrack/pkg/domain/model"
)

// CaseRepository defines the interface for Case data access. All methods are
// scoped to an owner identity; the owner is an opaque pass-through attribute.
type CaseRepository interface {
	// Create creates a new case with an auto-generated ID
	Create(ctx context.Context, ownerID string, c *model.Case) (*model.Case, error)

	// Get retrieves a case by ID
	Get(ctx context.Context, ownerID string, id int64) (*model.Case, error)

	// List retrieves all cases of the owner
	List(ctx context.Context, ownerID string) ([]*model.Case, error)

	// Update replaces an existing case record
	Update(ctx context.Context, ownerID string, c *model.Case) (*model.Case, error)

	// Delete deletes a case by ID
	Delete(ctx context.Context, ownerID string, id int64) error
}
