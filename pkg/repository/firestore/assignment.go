package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/caseflow-lab/doctrack/pkg/domain/model"
)

type assignmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssignmentRepository(client *firestore.Client) *assignmentRepository {
	return &assignmentRepository{
		client: client,
	}
}

func (r *assignmentRepository) collection(ownerID string) *firestore.CollectionRef {
	return r.client.Collection(prefixed(r.collectionPrefix, "owners")).Doc(ownerID).Collection("assignments")
}

func (r *assignmentRepository) counterDoc(ownerID string) *firestore.DocumentRef {
	return r.client.Collection(prefixed(r.collectionPrefix, "owners")).Doc(ownerID).Collection("counters").Doc("assignment_counter")
}

func (r *assignmentRepository) Create(ctx context.Context, ownerID string, a *model.Assignment) (*model.Assignment, error) {
	nextID, err := nextCounterValue(ctx, r.client, r.counterDoc(ownerID))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get next assignment ID")
	}

	now := time.Now().UTC()
	created := *a
	created.ID = nextID
	created.CreatedAt = now
	created.UpdatedAt = now

	docID := fmt.Sprintf("%d", created.ID)
	if _, err := r.collection(ownerID).Doc(docID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create assignment", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *assignmentRepository) Get(ctx context.Context, ownerID string, id int64) (*model.Assignment, error) {
	docID := fmt.Sprintf("%d", id)
	docSnap, err := r.collection(ownerID).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assignment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get assignment", goerr.V("id", id))
	}

	var a model.Assignment
	if err := docSnap.DataTo(&a); err != nil {
		return nil, goerr.Wrap(err, "failed to decode assignment", goerr.V("id", id))
	}

	return &a, nil
}

func (r *assignmentRepository) List(ctx context.Context, ownerID string) ([]*model.Assignment, error) {
	return r.collect(r.collection(ownerID).Documents(ctx))
}

func (r *assignmentRepository) ListByCase(ctx context.Context, ownerID string, caseID int64) ([]*model.Assignment, error) {
	query := r.collection(ownerID).
		Where("CaseID", "==", caseID).
		OrderBy("Name", firestore.Asc)
	return r.collect(query.Documents(ctx))
}

func (r *assignmentRepository) collect(iter *firestore.DocumentIterator) ([]*model.Assignment, error) {
	defer iter.Stop()

	assignments := []*model.Assignment{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assignments")
		}

		var a model.Assignment
		if err := docSnap.DataTo(&a); err != nil {
			return nil, goerr.Wrap(err, "failed to decode assignment", goerr.V("doc_id", docSnap.Ref.ID))
		}

		assignments = append(assignments, &a)
	}

	return assignments, nil
}

func (r *assignmentRepository) Update(ctx context.Context, ownerID string, a *model.Assignment) (*model.Assignment, error) {
	docID := fmt.Sprintf("%d", a.ID)
	docRef := r.collection(ownerID).Doc(docID)

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assignment not found", goerr.V("id", a.ID))
		}
		return nil, goerr.Wrap(err, "failed to get assignment", goerr.V("id", a.ID))
	}

	var existing model.Assignment
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode assignment", goerr.V("id", a.ID))
	}

	updated := *a
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update assignment", goerr.V("id", a.ID))
	}

	return &updated, nil
}

func (r *assignmentRepository) Delete(ctx context.Context, ownerID string, id int64) error {
	docID := fmt.Sprintf("%d", id)
	docRef := r.collection(ownerID).Doc(docID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "assignment not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get assignment", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete assignment", goerr.V("id", id))
	}

	return nil
}

func (r *assignmentRepository) DeleteByCase(ctx context.Context, ownerID string, caseID int64) error {
	return r.deleteWhere(ctx, r.collection(ownerID).Where("CaseID", "==", caseID))
}

func (r *assignmentRepository) DeleteByName(ctx context.Context, ownerID string, name string) error {
	return r.deleteWhere(ctx, r.collection(ownerID).Where("Name", "==", name))
}

func (r *assignmentRepository) deleteWhere(ctx context.Context, query firestore.Query) error {
	iter := query.Documents(ctx)
	defer iter.Stop()

	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate assignments")
		}

		if _, err := docSnap.Ref.Delete(ctx); err != nil {
			return goerr.Wrap(err, "failed to delete assignment", goerr.V("doc_id", docSnap.Ref.ID))
		}
	}

	return nil
}
