package repositories

import (
	"context"
	"strings"
	"time"

	"itasset/src/ids"
	"itasset/src/models"
	"itasset/src/schemas"
	"itasset/src/storage"
	"itasset/src/validators"
)

type ContainerRepository interface {
	Create(ctx context.Context, ownerID string, req *schemas.CreateContainerRequest) (*models.Container, error)
	GetByID(ctx context.Context, id string) (*models.Container, error)
	GetAll(ctx context.Context, ownerID string) ([]models.Container, error)
	Update(ctx context.Context, id string, req *schemas.UpdateContainerRequest) (*models.Container, error)
	Delete(ctx context.Context, id string) error
}

type containerRepo struct {
	store  *storage.Store
	layout storage.Layout
}

func NewContainerRepository(store *storage.Store, layout storage.Layout) ContainerRepository {
	return &containerRepo{store: store, layout: layout}
}

func (r *containerRepo) Create(_ context.Context, ownerID string, req *schemas.CreateContainerRequest) (*models.Container, error) {
	if !ids.Validate(ownerID, ids.User) {
		return nil, &ids.MalformedIDError{ID: ownerID, Kind: ids.User}
	}

	container := &models.Container{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		OwnerID:     ownerID,
	}
	if err := validators.ValidateContainer(container); err != nil {
		return nil, err
	}

	id, err := ids.Generate(ids.Container, ownerID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	container.ID = id
	container.CreatedAt = now
	container.UpdatedAt = now

	err = r.store.Update(r.layout.Containers(), containerHeader, func(rows []storage.Row) ([]storage.Row, error) {
		return append(rows, encodeContainer(container)), nil
	})
	if err != nil {
		return nil, err
	}
	return container, nil
}

func (r *containerRepo) GetByID(_ context.Context, id string) (*models.Container, error) {
	rows, err := r.store.ReadAll(r.layout.Containers())
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row["id"] == id {
			return decodeContainer(row), nil
		}
	}
	return nil, notFound("container", id)
}

func (r *containerRepo) GetAll(_ context.Context, ownerID string) ([]models.Container, error) {
	rows, err := r.store.ReadAll(r.layout.Containers())
	if err != nil {
		return nil, err
	}
	containers := make([]models.Container, 0, len(rows))
	for _, row := range rows {
		if row["ownerId"] == ownerID {
			containers = append(containers, *decodeContainer(row))
		}
	}
	return containers, nil
}

func (r *containerRepo) Update(_ context.Context, id string, req *schemas.UpdateContainerRequest) (*models.Container, error) {
	if !ids.Validate(id, ids.Container) {
		return nil, &ids.MalformedIDError{ID: id, Kind: ids.Container}
	}

	var updated *models.Container
	err := r.store.Update(r.layout.Containers(), containerHeader, func(rows []storage.Row) ([]storage.Row, error) {
		for i, row := range rows {
			if row["id"] != id {
				continue
			}
			container := decodeContainer(row)
			if req.Name != nil {
				container.Name = strings.TrimSpace(*req.Name)
			}
			if req.Description != nil {
				container.Description = *req.Description
			}
			// Partial updates never bypass validation of the whole record.
			if err := validators.ValidateContainer(container); err != nil {
				return nil, err
			}
			container.UpdatedAt = time.Now().UTC()
			rows[i] = encodeContainer(container)
			updated = container
			return rows, nil
		}
		return nil, notFound("container", id)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete cascade-deletes the container and every descendant row. Collections
// are rewritten children first (assets, subtypes, types, then the container)
// so a crash mid-cascade can orphan only rows whose parent is already gone,
// never leave a missing parent with live children unflagged.
func (r *containerRepo) Delete(ctx context.Context, id string) error {
	if !ids.Validate(id, ids.Container) {
		return &ids.MalformedIDError{ID: id, Kind: ids.Container}
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}

	steps := []struct {
		path   string
		header []string
	}{
		{r.layout.Assets(), assetHeader},
		{r.layout.SubTypes(), subTypeHeader},
		{r.layout.AssetTypes(), assetTypeHeader},
	}
	for _, step := range steps {
		err := r.store.Update(step.path, step.header, func(rows []storage.Row) ([]storage.Row, error) {
			return dropByColumn(rows, "containerId", id), nil
		})
		if err != nil {
			return err
		}
	}

	return r.store.Update(r.layout.Containers(), containerHeader, func(rows []storage.Row) ([]storage.Row, error) {
		return dropByColumn(rows, "id", id), nil
	})
}

func dropByColumn(rows []storage.Row, column, value string) []storage.Row {
	kept := make([]storage.Row, 0, len(rows))
	for _, row := range rows {
		if row[column] != value {
			kept = append(kept, row)
		}
	}
	return kept
}
