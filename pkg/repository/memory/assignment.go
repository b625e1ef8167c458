package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/caseflow-lab/doctrack/pkg/domain/model"
)

type assignmentRepository struct {
	mu          sync.RWMutex
	assignments map[string]map[int64]*model.Assignment
	nextID      map[string]int64
}

func newAssignmentRepository() *assignmentRepository {
	return &assignmentRepository{
		assignments: make(map[string]map[int64]*model.Assignment),
		nextID:      make(map[string]int64),
	}
}

func (r *assignmentRepository) ensureOwner(ownerID string) {
	if _, exists := r.assignments[ownerID]; !exists {
		r.assignments[ownerID] = make(map[int64]*model.Assignment)
	}
	if _, exists := r.nextID[ownerID]; !exists {
		r.nextID[ownerID] = 1
	}
}

// copyAssignment creates a deep copy of an assignment
func copyAssignment(a *model.Assignment) *model.Assignment {
	return &model.Assignment{
		ID:              a.ID,
		CaseID:          a.CaseID,
		Name:            a.Name,
		Status:          a.Status,
		RequestDeadline: copyTime(a.RequestDeadline),
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func (r *assignmentRepository) Create(ctx context.Context, ownerID string, a *model.Assignment) (*model.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureOwner(ownerID)

	now := time.Now().UTC()
	created := copyAssignment(a)
	created.ID = r.nextID[ownerID]
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID[ownerID]++

	r.assignments[ownerID][created.ID] = created
	return copyAssignment(created), nil
}

func (r *assignmentRepository) Get(ctx context.Context, ownerID string, id int64) (*model.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, exists := r.assignments[ownerID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assignment not found", goerr.V("id", id))
	}

	a, exists := owner[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assignment not found", goerr.V("id", id))
	}

	return copyAssignment(a), nil
}

func (r *assignmentRepository) List(ctx context.Context, ownerID string) ([]*model.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, exists := r.assignments[ownerID]
	if !exists {
		return []*model.Assignment{}, nil
	}

	assignments := make([]*model.Assignment, 0, len(owner))
	for _, a := range owner {
		assignments = append(assignments, copyAssignment(a))
	}

	return assignments, nil
}

func (r *assignmentRepository) ListByCase(ctx context.Context, ownerID string, caseID int64) ([]*model.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, exists := r.assignments[ownerID]
	if !exists {
		return []*model.Assignment{}, nil
	}

	assignments := make([]*model.Assignment, 0)
	for _, a := range owner {
		if a.CaseID == caseID {
			assignments = append(assignments, copyAssignment(a))
		}
	}

	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].Name < assignments[j].Name
	})

	return assignments, nil
}

func (r *assignmentRepository) Update(ctx context.Context, ownerID string, a *model.Assignment) (*model.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, exists := r.assignments[ownerID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assignment not found", goerr.V("id", a.ID))
	}

	existing, exists := owner[a.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assignment not found", goerr.V("id", a.ID))
	}

	updated := copyAssignment(a)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.assignments[ownerID][updated.ID] = updated
	return copyAssignment(updated), nil
}

func (r *assignmentRepository) Delete(ctx context.Context, ownerID string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, exists := r.assignments[ownerID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "assignment not found", goerr.V("id", id))
	}

	if _, exists := owner[id]; !exists {
		return goerr.Wrap(ErrNotFound, "assignment not found", goerr.V("id", id))
	}

	delete(r.assignments[ownerID], id)
	return nil
}

func (r *assignmentRepository) DeleteByCase(ctx context.Context, ownerID string, caseID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, exists := r.assignments[ownerID]
	if !exists {
		return nil
	}

	for id, a := range owner {
		if a.CaseID == caseID {
			delete(owner, id)
		}
	}
	return nil
}

func (r *assignmentRepository) DeleteByName(ctx context.Context, ownerID string, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, exists := r.assignments[ownerID]
	if !exists {
		return nil
	}

	for id, a := range owner {
		if a.Name == name {
			delete(owner, id)
		}
	}
	return nil
}
