package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/caseflow-lab/doctrack/pkg/domain/model"
)

type archiveRepository struct {
	mu      sync.RWMutex
	entries map[string]map[int64]*model.ArchiveEntry
}

func newArchiveRepository() *archiveRepository {
	return &archiveRepository{
		entries: make(map[string]map[int64]*model.ArchiveEntry),
	}
}

func copyEntry(e *model.ArchiveEntry) *model.ArchiveEntry {
	return &model.ArchiveEntry{
		CaseID:     e.CaseID,
		ArchivedAt: e.ArchivedAt,
	}
}

func (r *archiveRepository) Put(ctx context.Context, ownerID string, entry *model.ArchiveEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[ownerID]; !exists {
		r.entries[ownerID] = make(map[int64]*model.ArchiveEntry)
	}

	// Keyed by case ID: re-archiving overwrites, never duplicates.
	r.entries[ownerID][entry.CaseID] = copyEntry(entry)
	return nil
}

func (r *archiveRepository) Remove(ctx context.Context, ownerID string, caseID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, exists := r.entries[ownerID]
	if !exists {
		return nil
	}

	delete(owner, caseID)
	return nil
}

func (r *archiveRepository) List(ctx context.Context, ownerID string) ([]*model.ArchiveEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, exists := r.entries[ownerID]
	if !exists {
		return []*model.ArchiveEntry{}, nil
	}

	entries := make([]*model.ArchiveEntry, 0, len(owner))
	for _, e := range owner {
		entries = append(entries, copyEntry(e))
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CaseID < entries[j].CaseID
	})

	return entries, nil
}
