package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/caseflow-lab/doctrack/pkg/domain/interfaces"
	"github.com/caseflow-lab/doctrack/pkg/domain/model"
	"github.com/caseflow-lab/doctrack/pkg/domain/types"
	"github.com/caseflow-lab/doctrack/pkg/repository/memory"
)

func runAssignmentRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	owner := fmt.Sprintf("assign-owner-%d", time.Now().UnixNano())

	t.Run("Create and ListByCase sorted by name", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		deadline := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
		for _, name := range []string{"Charlie", "Alpha", "Bravo"} {
			_, err := repo.Assignment().Create(ctx, owner, &model.Assignment{
				CaseID:          1,
				Name:            name,
				Status:          types.AssignmentStatusPending,
				RequestDeadline: &deadline,
			})
			gt.NoError(t, err).Required()
		}
		_, err := repo.Assignment().Create(ctx, owner, &model.Assignment{
			CaseID: 2,
			Name:   "Alpha",
			Status: types.AssignmentStatusPending,
		})
		gt.NoError(t, err).Required()

		assignments, err := repo.Assignment().ListByCase(ctx, owner, 1)
		gt.NoError(t, err).Required()
		gt.Array(t, assignments).Length(3)
		gt.Value(t, assignments[0].Name).Equal("Alpha")
		gt.Value(t, assignments[1].Name).Equal("Bravo")
		gt.Value(t, assignments[2].Name).Equal("Charlie")
	})

	t.Run("Update preserves CreatedAt and changes status", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Assignment().Create(ctx, owner, &model.Assignment{
			CaseID: 3,
			Name:   "Delta",
			Status: types.AssignmentStatusPending,
		})
		gt.NoError(t, err).Required()

		created.Status = types.AssignmentStatusResponded
		created.Notes = "answered by radio"

		updated, err := repo.Assignment().Update(ctx, owner, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Status).Equal(types.AssignmentStatusResponded)
		gt.Value(t, updated.Notes).Equal("answered by radio")
		gt.Bool(t, updated.CreatedAt.Equal(created.CreatedAt)).True()

		retrieved, err := repo.Assignment().Get(ctx, owner, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Status).Equal(types.AssignmentStatusResponded)
	})

	t.Run("Delete removes a single assignment", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Assignment().Create(ctx, owner, &model.Assignment{
			CaseID: 4,
			Name:   "Echo",
			Status: types.AssignmentStatusPending,
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Assignment().Delete(ctx, owner, created.ID)).Required()

		_, err = repo.Assignment().Get(ctx, owner, created.ID)
		gt.Value(t, err).NotNil()
	})

	t.Run("DeleteByCase removes only that case's assignments", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, caseID := range []int64{10, 10, 11} {
			_, err := repo.Assignment().Create(ctx, owner, &model.Assignment{
				CaseID: caseID,
				Name:   fmt.Sprintf("unit-%d", time.Now().UnixNano()),
				Status: types.AssignmentStatusPending,
			})
			gt.NoError(t, err).Required()
		}

		gt.NoError(t, repo.Assignment().DeleteByCase(ctx, owner, 10)).Required()

		left10, err := repo.Assignment().ListByCase(ctx, owner, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, left10).Length(0)

		left11, err := repo.Assignment().ListByCase(ctx, owner, 11)
		gt.NoError(t, err).Required()
		gt.Array(t, left11).Length(1)
	})

	t.Run("DeleteByName removes the name across cases", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, caseID := range []int64{20, 21} {
			_, err := repo.Assignment().Create(ctx, owner, &model.Assignment{
				CaseID: caseID,
				Name:   "Foxtrot",
				Status: types.AssignmentStatusPending,
			})
			gt.NoError(t, err).Required()
		}
		keep, err := repo.Assignment().Create(ctx, owner, &model.Assignment{
			CaseID: 20,
			Name:   "Golf",
			Status: types.AssignmentStatusPending,
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Assignment().DeleteByName(ctx, owner, "Foxtrot")).Required()

		left, err := repo.Assignment().ListByCase(ctx, owner, 20)
		gt.NoError(t, err).Required()
		gt.Array(t, left).Length(1)
		gt.Value(t, left[0].ID).Equal(keep.ID)

		left21, err := repo.Assignment().ListByCase(ctx, owner, 21)
		gt.NoError(t, err).Required()
		gt.Array(t, left21).Length(0)
	})

	t.Run("ListByCase with no assignments returns empty", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		assignments, err := repo.Assignment().ListByCase(ctx, owner, 999)
		gt.NoError(t, err).Required()
		gt.Array(t, assignments).Length(0)
	})
}

func TestAssignmentRepository_Memory(t *testing.T) {
	runAssignmentRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestAssignmentRepository_Firestore(t *testing.T) {
	runAssignmentRepositoryTest(t, newFirestoreRepo)
}
