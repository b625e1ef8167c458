package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/caseflow-lab/doctrack/pkg/domain/model"
)

type archiveRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newArchiveRepository(client *firestore.Client) *archiveRepository {
	return &archiveRepository{
		client: client,
	}
}

func (r *archiveRepository) collection(ownerID string) *firestore.CollectionRef {
	return r.client.Collection(prefixed(r.collectionPrefix, "owners")).Doc(ownerID).Collection("archived")
}

func (r *archiveRepository) Put(ctx context.Context, ownerID string, entry *model.ArchiveEntry) error {
	// Document ID is the case ID, so re-archiving overwrites in place.
	docID := fmt.Sprintf("%d", entry.CaseID)
	if _, err := r.collection(ownerID).Doc(docID).Set(ctx, entry); err != nil {
		return goerr.Wrap(err, "failed to archive case", goerr.V("case_id", entry.CaseID))
	}
	return nil
}

func (r *archiveRepository) Remove(ctx context.Context, ownerID string, caseID int64) error {
	// Delete on a missing document succeeds, matching the no-op contract.
	docID := fmt.Sprintf("%d", caseID)
	if _, err := r.collection(ownerID).Doc(docID).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to unarchive case", goerr.V("case_id", caseID))
	}
	return nil
}

func (r *archiveRepository) List(ctx context.Context, ownerID string) ([]*model.ArchiveEntry, error) {
	iter := r.collection(ownerID).OrderBy("CaseID", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	entries := []*model.ArchiveEntry{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate archive entries")
		}

		var e model.ArchiveEntry
		if err := docSnap.DataTo(&e); err != nil {
			return nil, goerr.Wrap(err, "failed to decode archive entry", goerr.V("doc_id", docSnap.Ref.ID))
		}

		entries = append(entries, &e)
	}

	return entries, nil
}
