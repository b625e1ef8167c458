package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/caseflow-lab/doctrack/pkg/domain/interfaces"
	"github.com/caseflow-lab/doctrack/pkg/domain/model"
	"github.com/caseflow-lab/doctrack/pkg/domain/types"
	"github.com/caseflow-lab/doctrack/pkg/repository/firestore"
	"github.com/caseflow-lab/doctrack/pkg/repository/memory"
)

const testOwner = "owner-1"

func newFirestoreRepo(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	repo, err := firestore.New(context.Background(), projectID, os.Getenv("FIRESTORE_DATABASE_ID"))
	gt.NoError(t, err).Required()
	return repo
}

func runCaseRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns auto-increment IDs", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		deadline := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
		case1 := &model.Case{
			ReceivedDocNo: "2024-01",
			Subject:       "Annual inspection schedule",
			Origin:        "1st Division",
			FinalDeadline: &deadline,
			Notes:         "—",
			Status:        types.CaseStatusReceived,
		}

		created1, err := repo.Case().Create(ctx, testOwner, case1)
		gt.NoError(t, err).Required()

		gt.Value(t, created1.ID).NotEqual(int64(0))
		gt.Value(t, created1.ReceivedDocNo).Equal(case1.ReceivedDocNo)
		gt.Value(t, created1.Subject).Equal(case1.Subject)
		gt.Value(t, created1.Status).Equal(types.CaseStatusReceived)
		gt.Bool(t, created1.CreatedAt.IsZero()).False()
		gt.Bool(t, created1.UpdatedAt.IsZero()).False()

		created2, err := repo.Case().Create(ctx, testOwner, &model.Case{
			ReceivedDocNo: "2024-02",
			Subject:       "Fuel report",
			Origin:        "—",
			Notes:         "—",
			Status:        types.CaseStatusReceived,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created2.ID).NotEqual(created1.ID)
	})

	t.Run("Get retrieves existing case", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Case().Create(ctx, testOwner, &model.Case{
			ReceivedDocNo: "2024-03",
			Subject:       "Maintenance request",
			Origin:        "HQ",
			Notes:         "—",
			Status:        types.CaseStatusReceived,
		})
		gt.NoError(t, err).Required()

		retrieved, err := repo.Case().Get(ctx, testOwner, created.ID)
		gt.NoError(t, err).Required()

		gt.Value(t, retrieved.ID).Equal(created.ID)
		gt.Value(t, retrieved.Subject).Equal(created.Subject)
		gt.Value(t, retrieved.Origin).Equal(created.Origin)
	})

	t.Run("Get returns error for non-existent case", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Case().Get(ctx, testOwner, time.Now().UnixNano())
		gt.Value(t, err).NotNil()
	})

	t.Run("Cases are scoped by owner", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Case().Create(ctx, testOwner, &model.Case{
			ReceivedDocNo: "2024-04",
			Subject:       "Owner scoping",
			Origin:        "—",
			Notes:         "—",
			Status:        types.CaseStatusReceived,
		})
		gt.NoError(t, err).Required()

		_, err = repo.Case().Get(ctx, "someone-else", created.ID)
		gt.Value(t, err).NotNil()
	})

	t.Run("Update replaces fields and keeps CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Case().Create(ctx, testOwner, &model.Case{
			ReceivedDocNo: "2024-05",
			Subject:       "Original subject",
			Origin:        "HQ",
			Notes:         "—",
			Status:        types.CaseStatusReceived,
		})
		gt.NoError(t, err).Required()

		created.Subject = "Updated subject"
		created.Status = types.CaseStatusDistributed
		created.RequestSubject = "Send inventory"

		updated, err := repo.Case().Update(ctx, testOwner, created)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.ID).Equal(created.ID)
		gt.Value(t, updated.Subject).Equal("Updated subject")
		gt.Value(t, updated.Status).Equal(types.CaseStatusDistributed)
		gt.Value(t, updated.RequestSubject).Equal("Send inventory")
		gt.Bool(t, updated.CreatedAt.Equal(created.CreatedAt)).True()
	})

	t.Run("Update of unknown case fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Case().Update(ctx, testOwner, &model.Case{ID: 99999, Subject: "ghost"})
		gt.Value(t, err).NotNil()
	})

	t.Run("Delete removes the case", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Case().Create(ctx, testOwner, &model.Case{
			ReceivedDocNo: "2024-06",
			Subject:       "To be deleted",
			Origin:        "—",
			Notes:         "—",
			Status:        types.CaseStatusReceived,
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Case().Delete(ctx, testOwner, created.ID)).Required()

		_, err = repo.Case().Get(ctx, testOwner, created.ID)
		gt.Value(t, err).NotNil()
	})

	t.Run("List returns all cases of the owner", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		listOwner := fmt.Sprintf("list-owner-%d", time.Now().UnixNano())
		for i := 0; i < 3; i++ {
			_, err := repo.Case().Create(ctx, listOwner, &model.Case{
				ReceivedDocNo: "2024-10",
				Subject:       "bulk",
				Origin:        "—",
				Notes:         "—",
				Status:        types.CaseStatusReceived,
			})
			gt.NoError(t, err).Required()
		}

		cases, err := repo.Case().List(ctx, listOwner)
		gt.NoError(t, err).Required()
		gt.Array(t, cases).Length(3)

		empty, err := repo.Case().List(ctx, "nobody")
		gt.NoError(t, err).Required()
		gt.Array(t, empty).Length(0)
	})
}

func TestCaseRepository_Memory(t *testing.T) {
	runCaseRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestCaseRepository_Firestore(t *testing.T) {
	runCaseRepositoryTest(t, newFirestoreRepo)
}
