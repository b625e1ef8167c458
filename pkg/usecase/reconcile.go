package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/caseflow-lab/doctrack/pkg/domain/interfaces"
	"github.com/caseflow-lab/doctrack/pkg/domain/model"
	"github.com/caseflow-lab/doctrack/pkg/domain/types"
	"github.com/caseflow-lab/doctrack/pkg/utils/logging"
)

// AssignmentUseCase manages the responsible assignments of cases, including
// the distribution reconciler.
type AssignmentUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

// Distribute reconciles the assignment set of a case against the selected
// party names and stores the request fields. The reconciliation is diff-based:
// deselected parties are removed, kept parties retain their response progress
// with only the deadline mirror refreshed, and newly selected parties start
// pending. The writes are sequential and not atomic; the first failure aborts
// and leaves the earlier writes in place.
func (uc *AssignmentUseCase) Distribute(ctx context.Context, ownerID string, caseID int64, names []string, req *RequestFields) error {
	c, err := uc.repo.Case().Get(ctx, ownerID, caseID)
	if err != nil {
		return goerr.Wrap(ErrCaseNotFound, "failed to get case", goerr.V("case_id", caseID))
	}

	existing, err := uc.repo.Assignment().ListByCase(ctx, ownerID, caseID)
	if err != nil {
		return goerr.Wrap(err, "failed to list assignments", goerr.V("case_id", caseID))
	}

	selected := normalizeNames(names)

	byName := make(map[string]*model.Assignment, len(existing))
	for _, a := range existing {
		byName[model.NormalizeName(a.Name)] = a
	}

	var removed, kept, added int

	for key, a := range byName {
		if _, ok := selected[key]; ok {
			continue
		}
		if err := uc.repo.Assignment().Delete(ctx, ownerID, a.ID); err != nil {
			return goerr.Wrap(err, "failed to remove deselected assignment",
				goerr.V("case_id", caseID), goerr.V("assignment_id", a.ID))
		}
		removed++
	}

	for key, name := range selected {
		if a, ok := byName[key]; ok {
			a.RequestDeadline = copyTimePtr(req.RequestDeadline)
			if _, err := uc.repo.Assignment().Update(ctx, ownerID, a); err != nil {
				return goerr.Wrap(err, "failed to refresh assignment deadline",
					goerr.V("case_id", caseID), goerr.V("assignment_id", a.ID))
			}
			kept++
			continue
		}

		a := &model.Assignment{
			CaseID:          caseID,
			Name:            name,
			Status:          types.AssignmentStatusPending,
			RequestDeadline: copyTimePtr(req.RequestDeadline),
		}
		if _, err := uc.repo.Assignment().Create(ctx, ownerID, a); err != nil {
			return goerr.Wrap(err, "failed to create assignment",
				goerr.V("case_id", caseID), goerr.V("name", name))
		}
		added++
	}

	// Saving the request marks the case as distributed, the same way the
	// request-only creation path does
	c.RequestSubject = req.RequestSubject
	c.RequestDeadline = req.RequestDeadline
	c.RequestedDocNo = req.RequestedDocNo
	c.Status = types.CaseStatusDistributed
	c.NormalizeRequired()

	if _, err := uc.repo.Case().Update(ctx, ownerID, c); err != nil {
		return goerr.Wrap(err, "failed to store request fields", goerr.V("case_id", caseID))
	}

	logging.From(ctx).Info("distribution reconciled",
		"case_id", caseID,
		"removed", removed,
		"kept", kept,
		"added", added,
	)

	return nil
}

// ListByCase returns the assignments of a case sorted by party name.
func (uc *AssignmentUseCase) ListByCase(ctx context.Context, ownerID string, caseID int64) ([]*model.Assignment, error) {
	assignments, err := uc.repo.Assignment().ListByCase(ctx, ownerID, caseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assignments", goerr.V("case_id", caseID))
	}
	return assignments, nil
}

// SetStatus records the response state of one assignment and replaces its
// notes.
func (uc *AssignmentUseCase) SetStatus(ctx context.Context, ownerID string, id int64, status types.AssignmentStatus, notes string) (*model.Assignment, error) {
	a, err := uc.repo.Assignment().Get(ctx, ownerID, id)
	if err != nil {
		return nil, goerr.Wrap(ErrAssignmentNotFound, "failed to get assignment", goerr.V("assignment_id", id))
	}

	a.Status = status
	a.Notes = notes

	updated, err := uc.repo.Assignment().Update(ctx, ownerID, a)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update assignment", goerr.V("assignment_id", id))
	}

	return updated, nil
}

// normalizeNames collapses whitespace in each name and drops blanks and
// duplicates. The map key is the normalized form, the value the display form.
func normalizeNames(names []string) map[string]string {
	selected := make(map[string]string, len(names))
	for _, name := range names {
		normalized := model.NormalizeName(name)
		if normalized == "" {
			continue
		}
		if _, ok := selected[normalized]; !ok {
			selected[normalized] = normalized
		}
	}
	return selected
}

func copyTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
