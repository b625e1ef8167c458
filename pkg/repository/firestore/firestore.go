package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/caseflow-lab/doctrack/pkg/domain/interfaces"
)

type Firestore struct {
	client      *firestore.Client
	caseRepo    *caseRepository
	assignment  *assignmentRepository
	archive     *archiveRepository
	responsible *responsibleRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes every collection name, for sharing a database
// between deployments.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.caseRepo.collectionPrefix = prefix
		f.assignment.collectionPrefix = prefix
		f.archive.collectionPrefix = prefix
		f.responsible.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client:      client,
		caseRepo:    newCaseRepository(client),
		assignment:  newAssignmentRepository(client),
		archive:     newArchiveRepository(client),
		responsible: newResponsibleRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Close() error {
	return f.client.Close()
}

func (f *Firestore) Case() interfaces.CaseRepository {
	return f.caseRepo
}

func (f *Firestore) Assignment() interfaces.AssignmentRepository {
	return f.assignment
}

func (f *Firestore) Archive() interfaces.ArchiveRepository {
	return f.archive
}

func (f *Firestore) Responsible() interfaces.ResponsibleRepository {
	return f.responsible
}

func prefixed(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}
