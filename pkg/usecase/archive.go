package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/caseflow-lab/doctrack/pkg/domain/interfaces"
	"github.com/caseflow-lab/doctrack/pkg/domain/model"
	"github.com/caseflow-lab/doctrack/pkg/utils/logging"
)

// ArchiveUseCase manages the archive membership index. Archiving is a marker,
// not a move: the case record stays where it is.
type ArchiveUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

// Archive marks a case as archived. Re-archiving refreshes the timestamp.
func (uc *ArchiveUseCase) Archive(ctx context.Context, ownerID string, caseID int64) error {
	if _, err := uc.repo.Case().Get(ctx, ownerID, caseID); err != nil {
		return goerr.Wrap(ErrCaseNotFound, "failed to get case", goerr.V("case_id", caseID))
	}

	entry := &model.ArchiveEntry{
		CaseID:     caseID,
		ArchivedAt: uc.now(),
	}
	if err := uc.repo.Archive().Put(ctx, ownerID, entry); err != nil {
		return goerr.Wrap(err, "failed to archive case", goerr.V("case_id", caseID))
	}

	logging.From(ctx).Info("case archived", "case_id", caseID)

	return nil
}

// Unarchive removes the archive marker, restoring the case to the active
// listing. Unarchiving a non-member is a no-op.
func (uc *ArchiveUseCase) Unarchive(ctx context.Context, ownerID string, caseID int64) error {
	if err := uc.repo.Archive().Remove(ctx, ownerID, caseID); err != nil {
		return goerr.Wrap(err, "failed to unarchive case", goerr.V("case_id", caseID))
	}
	return nil
}

// ArchivedIDs returns the archived case IDs as a membership set.
func (uc *ArchiveUseCase) ArchivedIDs(ctx context.Context, ownerID string) (map[int64]bool, error) {
	entries, err := uc.repo.Archive().List(ctx, ownerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list archive entries")
	}

	ids := make(map[int64]bool, len(entries))
	for _, entry := range entries {
		ids[entry.CaseID] = true
	}
	return ids, nil
}

// ListArchived returns the archived cases of the owner.
func (uc *ArchiveUseCase) ListArchived(ctx context.Context, ownerID string) ([]*model.Case, error) {
	ids, err := uc.ArchivedIDs(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	cases, err := uc.repo.Case().List(ctx, ownerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases")
	}

	archived := make([]*model.Case, 0, len(ids))
	for _, c := range cases {
		if ids[c.ID] {
			archived = append(archived, c)
		}
	}
	return archived, nil
}

// Purge permanently deletes an archived case together with its assignments
// and its archive marker. Only archived cases can be purged.
func (uc *ArchiveUseCase) Purge(ctx context.Context, ownerID string, caseID int64) error {
	archived, err := uc.isArchived(ctx, ownerID, caseID)
	if err != nil {
		return err
	}
	if !archived {
		return goerr.Wrap(ErrCaseNotArchived, "cannot purge an active case", goerr.V("case_id", caseID))
	}

	if err := uc.repo.Assignment().DeleteByCase(ctx, ownerID, caseID); err != nil {
		return goerr.Wrap(err, "failed to delete assignments", goerr.V("case_id", caseID))
	}
	if err := uc.repo.Archive().Remove(ctx, ownerID, caseID); err != nil {
		return goerr.Wrap(err, "failed to remove archive entry", goerr.V("case_id", caseID))
	}
	if err := uc.repo.Case().Delete(ctx, ownerID, caseID); err != nil {
		return goerr.Wrap(err, "failed to delete case", goerr.V("case_id", caseID))
	}

	logging.From(ctx).Info("case purged", "case_id", caseID)

	return nil
}

func (uc *ArchiveUseCase) isArchived(ctx context.Context, ownerID string, caseID int64) (bool, error) {
	ids, err := uc.ArchivedIDs(ctx, ownerID)
	if err != nil {
		return false, err
	}
	return ids[caseID], nil
}
