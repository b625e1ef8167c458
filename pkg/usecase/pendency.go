package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/caseflow-lab/doctrack/pkg/domain/model"
	"github.com/caseflow-lab/doctrack/pkg/domain/types"
)

// PendenciesByCase counts the pending assignments per case. Cases with no
// pending assignment are absent from the map.
func (uc *AssignmentUseCase) PendenciesByCase(ctx context.Context, ownerID string) (map[int64]int, error) {
	assignments, err := uc.repo.Assignment().List(ctx, ownerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assignments")
	}

	return countPendingByCase(assignments), nil
}

// TotalPendencies counts the pending assignments across all cases of the
// owner.
func (uc *AssignmentUseCase) TotalPendencies(ctx context.Context, ownerID string) (int, error) {
	byCase, err := uc.PendenciesByCase(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, n := range byCase {
		total += n
	}
	return total, nil
}

func countPendingByCase(assignments []*model.Assignment) map[int64]int {
	pending := make(map[int64]int)
	for _, a := range assignments {
		if a.Status != types.AssignmentStatusResponded {
			pending[a.CaseID]++
		}
	}
	return pending
}
