package interfaces

import (
	"context"

	"github.com/caseflow-lab/doctrack/pkg/domain/model"
)

// AssignmentRepository defines the interface for ResponsibleAssignment data
// access. Uniqueness of (case, name) is enforced by the reconciler, not here.
type AssignmentRepository interface {
	Create(ctx context.Context, ownerID string, a *model.Assignment) (*model.Assignment, error)
	Get(ctx context.Context, ownerID string, id int64) (*model.Assignment, error)

	// List retrieves all assignments of the owner across cases
	List(ctx context.Context, ownerID string) ([]*model.Assignment, error)

	// ListByCase retrieves the assignments of one case, sorted by party name
	ListByCase(ctx context.Context, ownerID string, caseID int64) ([]*model.Assignment, error)

	Update(ctx context.Context, ownerID string, a *model.Assignment) (*model.Assignment, error)
	Delete(ctx context.Context, ownerID string, id int64) error

	// DeleteByCase removes all assignments of a case (archived-case purge)
	DeleteByCase(ctx context.Context, ownerID string, caseID int64) error

	// DeleteByName removes all assignments bearing the party name, across
	// cases (registry cascade)
	DeleteByName(ctx context.Context, ownerID string, name string) error
}
