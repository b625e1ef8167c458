package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/caseflow-lab/doctrack/pkg/domain/model"
)

type responsibleRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newResponsibleRepository(client *firestore.Client) *responsibleRepository {
	return &responsibleRepository{
		client: client,
	}
}

func (r *responsibleRepository) collection(ownerID string) *firestore.CollectionRef {
	return r.client.Collection(prefixed(r.collectionPrefix, "owners")).Doc(ownerID).Collection("responsibles")
}

func (r *responsibleRepository) Create(ctx context.Context, ownerID string, entry *model.Responsible) (*model.Responsible, error) {
	created := *entry
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	// Document ID is the stored name, keeping one entry per name.
	if _, err := r.collection(ownerID).Doc(created.Name).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create responsible", goerr.V("name", created.Name))
	}

	return &created, nil
}

func (r *responsibleRepository) List(ctx context.Context, ownerID string) ([]*model.Responsible, error) {
	iter := r.collection(ownerID).OrderBy("Name", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	entries := []*model.Responsible{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate responsibles")
		}

		var e model.Responsible
		if err := docSnap.DataTo(&e); err != nil {
			return nil, goerr.Wrap(err, "failed to decode responsible", goerr.V("doc_id", docSnap.Ref.ID))
		}

		entries = append(entries, &e)
	}

	return entries, nil
}

func (r *responsibleRepository) Delete(ctx context.Context, ownerID string, name string) error {
	if _, err := r.collection(ownerID).Doc(name).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete responsible", goerr.V("name", name))
	}
	return nil
}
