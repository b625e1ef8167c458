package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/caseflow-lab/doctrack/pkg/domain/interfaces"
	"github.com/caseflow-lab/doctrack/pkg/domain/model"
)

// ResponsibleUseCase manages the registry of responsible-party names.
type ResponsibleUseCase struct {
	repo interfaces.Repository
}

// Add registers a new party name. The name is whitespace-normalized before
// storage, and duplicates are rejected case-insensitively.
func (uc *ResponsibleUseCase) Add(ctx context.Context, ownerID string, name string) (*model.Responsible, error) {
	normalized := model.NormalizeName(name)
	if normalized == "" {
		return nil, goerr.Wrap(ErrResponsibleNameRequired, "empty name")
	}

	existing, err := uc.repo.Responsible().List(ctx, ownerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list responsibles")
	}
	for _, r := range existing {
		if model.SameName(r.Name, normalized) {
			return nil, goerr.Wrap(ErrDuplicateResponsible, "name already registered",
				goerr.V("name", normalized))
		}
	}

	created, err := uc.repo.Responsible().Create(ctx, ownerID, &model.Responsible{Name: normalized})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create responsible", goerr.V("name", normalized))
	}

	return created, nil
}

// List returns the registered party names sorted by name.
func (uc *ResponsibleUseCase) List(ctx context.Context, ownerID string) ([]*model.Responsible, error) {
	entries, err := uc.repo.Responsible().List(ctx, ownerID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list responsibles")
	}
	return entries, nil
}

// Remove deletes a party name from the registry and cascades the removal to
// every assignment bearing that name, across cases.
func (uc *ResponsibleUseCase) Remove(ctx context.Context, ownerID string, name string) error {
	normalized := model.NormalizeName(name)

	if err := uc.repo.Assignment().DeleteByName(ctx, ownerID, normalized); err != nil {
		return goerr.Wrap(err, "failed to delete assignments by name", goerr.V("name", normalized))
	}
	if err := uc.repo.Responsible().Delete(ctx, ownerID, normalized); err != nil {
		return goerr.Wrap(err, "failed to delete responsible", goerr.V("name", normalized))
	}

	return nil
}
