package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/caseflow-lab/doctrack/pkg/domain/model"
)

type responsibleRepository struct {
	mu    sync.RWMutex
	names map[string]map[string]*model.Responsible
}

func newResponsibleRepository() *responsibleRepository {
	return &responsibleRepository{
		names: make(map[string]map[string]*model.Responsible),
	}
}

func copyResponsible(r *model.Responsible) *model.Responsible {
	return &model.Responsible{
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
	}
}

func (r *responsibleRepository) Create(ctx context.Context, ownerID string, entry *model.Responsible) (*model.Responsible, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.names[ownerID]; !exists {
		r.names[ownerID] = make(map[string]*model.Responsible)
	}

	created := copyResponsible(entry)
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.names[ownerID][created.Name] = created
	return copyResponsible(created), nil
}

func (r *responsibleRepository) List(ctx context.Context, ownerID string) ([]*model.Responsible, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, exists := r.names[ownerID]
	if !exists {
		return []*model.Responsible{}, nil
	}

	entries := make([]*model.Responsible, 0, len(owner))
	for _, e := range owner {
		entries = append(entries, copyResponsible(e))
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

func (r *responsibleRepository) Delete(ctx context.Context, ownerID string, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, exists := r.names[ownerID]
	if !exists {
		return nil
	}

	delete(owner, name)
	return nil
}
