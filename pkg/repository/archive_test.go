package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/caseflow-lab/doctrack/pkg/domain/interfaces"
	"github.com/caseflow-lab/doctrack/pkg/domain/model"
	"github.com/caseflow-lab/doctrack/pkg/repository/memory"
)

func runArchiveRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and List", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		owner := fmt.Sprintf("arch-owner-%d", time.Now().UnixNano())

		gt.NoError(t, repo.Archive().Put(ctx, owner, &model.ArchiveEntry{CaseID: 7, ArchivedAt: time.Now().UTC()})).Required()
		gt.NoError(t, repo.Archive().Put(ctx, owner, &model.ArchiveEntry{CaseID: 3, ArchivedAt: time.Now().UTC()})).Required()

		entries, err := repo.Archive().List(ctx, owner)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(2)
		gt.Value(t, entries[0].CaseID).Equal(int64(3))
		gt.Value(t, entries[1].CaseID).Equal(int64(7))
	})

	t.Run("Put is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		owner := fmt.Sprintf("arch-owner-%d", time.Now().UnixNano())

		first := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
		second := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)

		gt.NoError(t, repo.Archive().Put(ctx, owner, &model.ArchiveEntry{CaseID: 7, ArchivedAt: first})).Required()
		gt.NoError(t, repo.Archive().Put(ctx, owner, &model.ArchiveEntry{CaseID: 7, ArchivedAt: second})).Required()

		entries, err := repo.Archive().List(ctx, owner)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(1)
		gt.Bool(t, entries[0].ArchivedAt.Equal(second)).True()
	})

	t.Run("Remove is a no-op for non-members", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		owner := fmt.Sprintf("arch-owner-%d", time.Now().UnixNano())

		gt.NoError(t, repo.Archive().Remove(ctx, owner, 42)).Required()

		gt.NoError(t, repo.Archive().Put(ctx, owner, &model.ArchiveEntry{CaseID: 42, ArchivedAt: time.Now().UTC()})).Required()
		gt.NoError(t, repo.Archive().Remove(ctx, owner, 42)).Required()
		gt.NoError(t, repo.Archive().Remove(ctx, owner, 42)).Required()

		entries, err := repo.Archive().List(ctx, owner)
		gt.NoError(t, err).Required()
		gt.Array(t, entries).Length(0)
	})
}

func TestArchiveRepository_Memory(t *testing.T) {
	runArchiveRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestArchiveRepository_Firestore(t *testing.T) {
	runArchiveRepositoryTest(t, newFirestoreRepo)
}
