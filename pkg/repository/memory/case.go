package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/caseflow-lab/doctrack/pkg/domain/model"
)

type caseRepository struct {
	mu     sync.RWMutex
	cases  map[string]map[int64]*model.Case
	nextID map[string]int64
}

func newCaseRepository() *caseRepository {
	return &caseRepository{
		cases:  make(map[string]map[int64]*model.Case),
		nextID: make(map[string]int64),
	}
}

func (r *caseRepository) ensureOwner(ownerID string) {
	if _, exists := r.cases[ownerID]; !exists {
		r.cases[ownerID] = make(map[int64]*model.Case)
	}
	if _, exists := r.nextID[ownerID]; !exists {
		r.nextID[ownerID] = 1
	}
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// copyCase creates a deep copy of a case
func copyCase(c *model.Case) *model.Case {
	return &model.Case{
		ID:              c.ID,
		ReceivedDocNo:   c.ReceivedDocNo,
		Subject:         c.Subject,
		Origin:          c.Origin,
		FinalDeadline:   copyTime(c.FinalDeadline),
		Notes:           c.Notes,
		RequestSubject:  c.RequestSubject,
		RequestDeadline: copyTime(c.RequestDeadline),
		RequestedDocNo:  c.RequestedDocNo,
		ResponseDocNo:   c.ResponseDocNo,
		ResolvedAt:      copyTime(c.ResolvedAt),
		Status:          c.Status,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (r *caseRepository) Create(ctx context.Context, ownerID string, c *model.Case) (*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureOwner(ownerID)

	now := time.Now().UTC()
	created := copyCase(c)
	created.ID = r.nextID[ownerID]
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID[ownerID]++

	r.cases[ownerID][created.ID] = created
	return copyCase(created), nil
}

func (r *caseRepository) Get(ctx context.Context, ownerID string, id int64) (*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, exists := r.cases[ownerID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "case not found", goerr.V("id", id))
	}

	c, exists := owner[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "case not found", goerr.V("id", id))
	}

	return copyCase(c), nil
}

func (r *caseRepository) List(ctx context.Context, ownerID string) ([]*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, exists := r.cases[ownerID]
	if !exists {
		return []*model.Case{}, nil
	}

	cases := make([]*model.Case, 0, len(owner))
	for _, c := range owner {
		cases = append(cases, copyCase(c))
	}

	return cases, nil
}

func (r *caseRepository) Update(ctx context.Context, ownerID string, c *model.Case) (*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, exists := r.cases[ownerID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "case not found", goerr.V("id", c.ID))
	}

	existing, exists := owner[c.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "case not found", goerr.V("id", c.ID))
	}

	updated := copyCase(c)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.cases[ownerID][updated.ID] = updated
	return copyCase(updated), nil
}

func (r *caseRepository) Delete(ctx context.Context, ownerID string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, exists := r.cases[ownerID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "case not found", goerr.V("id", id))
	}

	if _, exists := owner[id]; !exists {
		return goerr.Wrap(ErrNotFound, "case not found", goerr.V("id", id))
	}

	delete(r.cases[ownerID], id)
	return nil
}
