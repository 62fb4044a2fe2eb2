package repositories

import (
	"context"
	"strings"

	"itasset/src/ids"
	"itasset/src/models"
	"itasset/src/schemas"
	"itasset/src/storage"
	"itasset/src/validators"
)

type AssetTypeRepository interface {
	Create(ctx context.Context, containerID string, req *schemas.CreateAssetTypeRequest) (*models.AssetType, error)
	GetByID(ctx context.Context, id string) (*models.AssetType, error)
	GetAll(ctx context.Context, containerID string) ([]models.AssetType, error)
	Update(ctx context.Context, id string, req *schemas.UpdateAssetTypeRequest) (*models.AssetType, error)
	Delete(ctx context.Context, id string) error
}

type assetTypeRepo struct {
	store  *storage.Store
	layout storage.Layout
}

func NewAssetTypeRepository(store *storage.Store, layout storage.Layout) AssetTypeRepository {
	return &assetTypeRepo{store: store, layout: layout}
}

func (r *assetTypeRepo) Create(_ context.Context, containerID string, req *schemas.CreateAssetTypeRequest) (*models.AssetType, error) {
	if !ids.Validate(containerID, ids.Container) {
		return nil, &ids.MalformedIDError{ID: containerID, Kind: ids.Container}
	}
	if err := containerExists(r.store, r.layout, containerID); err != nil {
		return nil, err
	}

	assetType := &models.AssetType{
		Name:        strings.TrimSpace(req.Name),
		Label:       strings.TrimSpace(req.Label),
		ContainerID: containerID,
		Fields:      req.Fields,
		SubTypes:    []string{},
	}
	if err := validators.ValidateAssetType(assetType); err != nil {
		return nil, err
	}

	id, err := ids.Generate(ids.AssetType, containerID)
	if err != nil {
		return nil, err
	}
	assetType.ID = id
	assetType.Fields, err = assignFieldIDs(id, req.Fields, nil)
	if err != nil {
		return nil, err
	}

	row, err := encodeAssetType(assetType)
	if err != nil {
		return nil, err
	}
	err = r.store.Update(r.layout.AssetTypes(), assetTypeHeader, func(rows []storage.Row) ([]storage.Row, error) {
		return append(rows, row), nil
	})
	if err != nil {
		return nil, err
	}
	return assetType, nil
}

func (r *assetTypeRepo) GetByID(_ context.Context, id string) (*models.AssetType, error) {
	return assetTypeByID(r.store, r.layout, id)
}

func (r *assetTypeRepo) GetAll(_ context.Context, containerID string) ([]models.AssetType, error) {
	rows, err := r.store.ReadAll(r.layout.AssetTypes())
	if err != nil {
		return nil, err
	}
	types := make([]models.AssetType, 0, len(rows))
	for _, row := range rows {
		if row["containerId"] != containerID {
			continue
		}
		t, err := decodeAssetType(row)
		if err != nil {
			return nil, err
		}
		types = append(types, *t)
	}
	return types, nil
}

func (r *assetTypeRepo) Update(_ context.Context, id string, req *schemas.UpdateAssetTypeRequest) (*models.AssetType, error) {
	if !ids.Validate(id, ids.AssetType) {
		return nil, &ids.MalformedIDError{ID: id, Kind: ids.AssetType}
	}

	var updated *models.AssetType
	err := r.store.Update(r.layout.AssetTypes(), assetTypeHeader, func(rows []storage.Row) ([]storage.Row, error) {
		for i, row := range rows {
			if row["id"] != id {
				continue
			}
			assetType, err := decodeAssetType(row)
			if err != nil {
				return nil, err
			}
			previous := assetType.Fields
			if req.Name != nil {
				assetType.Name = strings.TrimSpace(*req.Name)
			}
			if req.Label != nil {
				assetType.Label = strings.TrimSpace(*req.Label)
			}
			if req.Fields != nil {
				assetType.Fields = *req.Fields
			}
			if err := validators.ValidateAssetType(assetType); err != nil {
				return nil, err
			}
			if req.Fields != nil {
				assetType.Fields, err = assignFieldIDs(id, *req.Fields, previous)
				if err != nil {
					return nil, err
				}
			}
			next, err := encodeAssetType(assetType)
			if err != nil {
				return nil, err
			}
			rows[i] = next
			updated = assetType
			return rows, nil
		}
		return nil, notFound("asset type", id)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete cascade-deletes the type's descendants children first: assets
// referencing the type, then its subtypes, then the type row itself.
func (r *assetTypeRepo) Delete(ctx context.Context, id string) error {
	if !ids.Validate(id, ids.AssetType) {
		return &ids.MalformedIDError{ID: id, Kind: ids.AssetType}
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}

	err := r.store.Update(r.layout.Assets(), assetHeader, func(rows []storage.Row) ([]storage.Row, error) {
		return dropByColumn(rows, "assetTypeId", id), nil
	})
	if err != nil {
		return err
	}
	err = r.store.Update(r.layout.SubTypes(), subTypeHeader, func(rows []storage.Row) ([]storage.Row, error) {
		return dropByColumn(rows, "parentTypeId", id), nil
	})
	if err != nil {
		return err
	}
	return r.store.Update(r.layout.AssetTypes(), assetTypeHeader, func(rows []storage.Row) ([]storage.Row, error) {
		return dropByColumn(rows, "id", id), nil
	})
}

// assignFieldIDs mints ids for field definitions under their owning type or
// subtype. Fields keeping a name that existed before keep its id, so edits to
// a definition do not churn identifiers.
func assignFieldIDs(parentID string, fields []models.Field, previous []models.Field) ([]models.Field, error) {
	prevByName := make(map[string]string, len(previous))
	for _, f := range previous {
		prevByName[f.Name] = f.ID
	}
	out := make([]models.Field, len(fields))
	for i, f := range fields {
		if id, ok := prevByName[f.Name]; ok {
			f.ID = id
		} else {
			id, err := ids.Generate(ids.Field, parentID)
			if err != nil {
				return nil, err
			}
			f.ID = id
		}
		out[i] = f
	}
	return out, nil
}

func containerExists(store *storage.Store, layout storage.Layout, id string) error {
	rows, err := store.ReadAll(layout.Containers())
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row["id"] == id {
			return nil
		}
	}
	return notFound("container", id)
}

func assetTypeByID(store *storage.Store, layout storage.Layout, id string) (*models.AssetType, error) {
	rows, err := store.ReadAll(layout.AssetTypes())
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row["id"] == id {
			return decodeAssetType(row)
		}
	}
	return nil, notFound("asset type", id)
}
