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

type AssetSubTypeRepository interface {
	Create(ctx context.Context, parentTypeID string, req *schemas.CreateSubTypeRequest) (*models.AssetSubType, error)
	GetByID(ctx context.Context, id string) (*models.AssetSubType, error)
	GetAll(ctx context.Context, parentTypeID string) ([]models.AssetSubType, error)
	Update(ctx context.Context, id string, req *schemas.UpdateSubTypeRequest) (*models.AssetSubType, error)
	Delete(ctx context.Context, id string) error
}

type subTypeRepo struct {
	store  *storage.Store
	layout storage.Layout
}

func NewAssetSubTypeRepository(store *storage.Store, layout storage.Layout) AssetSubTypeRepository {
	return &subTypeRepo{store: store, layout: layout}
}

func (r *subTypeRepo) Create(_ context.Context, parentTypeID string, req *schemas.CreateSubTypeRequest) (*models.AssetSubType, error) {
	if !ids.Validate(parentTypeID, ids.AssetType) {
		return nil, &ids.MalformedIDError{ID: parentTypeID, Kind: ids.AssetType}
	}
	parent, err := assetTypeByID(r.store, r.layout, parentTypeID)
	if err != nil {
		return nil, err
	}

	subType := &models.AssetSubType{
		Name:             strings.TrimSpace(req.Name),
		Label:            strings.TrimSpace(req.Label),
		ContainerID:      parent.ContainerID,
		ParentTypeID:     parentTypeID,
		Fields:           req.Fields,
		HiddenFields:     req.HiddenFields,
		OverriddenFields: req.OverriddenFields,
	}
	if err := validators.ValidateSubType(subType, parent); err != nil {
		return nil, err
	}

	id, err := ids.Generate(ids.SubType, parentTypeID)
	if err != nil {
		return nil, err
	}
	subType.ID = id
	subType.Fields, err = assignFieldIDs(id, req.Fields, nil)
	if err != nil {
		return nil, err
	}

	row, err := encodeSubType(subType)
	if err != nil {
		return nil, err
	}
	err = r.store.Update(r.layout.SubTypes(), subTypeHeader, func(rows []storage.Row) ([]storage.Row, error) {
		return append(rows, row), nil
	})
	if err != nil {
		return nil, err
	}

	// Register the subtype on its parent after the row lands; a crash in
	// between leaves an unlisted subtype, never a listed ghost.
	err = r.patchParentSubTypes(parentTypeID, func(list []string) []string {
		return append(list, id)
	})
	if err != nil {
		return nil, err
	}
	return subType, nil
}

func (r *subTypeRepo) GetByID(_ context.Context, id string) (*models.AssetSubType, error) {
	rows, err := r.store.ReadAll(r.layout.SubTypes())
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row["id"] == id {
			return decodeSubType(row)
		}
	}
	return nil, notFound("subtype", id)
}

func (r *subTypeRepo) GetAll(_ context.Context, parentTypeID string) ([]models.AssetSubType, error) {
	rows, err := r.store.ReadAll(r.layout.SubTypes())
	if err != nil {
		return nil, err
	}
	subTypes := make([]models.AssetSubType, 0, len(rows))
	for _, row := range rows {
		if row["parentTypeId"] != parentTypeID {
			continue
		}
		s, err := decodeSubType(row)
		if err != nil {
			return nil, err
		}
		subTypes = append(subTypes, *s)
	}
	return subTypes, nil
}

func (r *subTypeRepo) Update(ctx context.Context, id string, req *schemas.UpdateSubTypeRequest) (*models.AssetSubType, error) {
	if !ids.Validate(id, ids.SubType) {
		return nil, &ids.MalformedIDError{ID: id, Kind: ids.SubType}
	}
	// Resolve the parent before entering the rewrite; collection locks never
	// nest.
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	parent, err := assetTypeByID(r.store, r.layout, current.ParentTypeID)
	if err != nil {
		return nil, err
	}

	var updated *models.AssetSubType
	err = r.store.Update(r.layout.SubTypes(), subTypeHeader, func(rows []storage.Row) ([]storage.Row, error) {
		for i, row := range rows {
			if row["id"] != id {
				continue
			}
			subType, err := decodeSubType(row)
			if err != nil {
				return nil, err
			}
			previous := subType.Fields
			if req.Name != nil {
				subType.Name = strings.TrimSpace(*req.Name)
			}
			if req.Label != nil {
				subType.Label = strings.TrimSpace(*req.Label)
			}
			if req.Fields != nil {
				subType.Fields = *req.Fields
			}
			if req.HiddenFields != nil {
				subType.HiddenFields = *req.HiddenFields
			}
			if req.OverriddenFields != nil {
				subType.OverriddenFields = *req.OverriddenFields
			}
			if err := validators.ValidateSubType(subType, parent); err != nil {
				return nil, err
			}
			if req.Fields != nil {
				subType.Fields, err = assignFieldIDs(id, *req.Fields, previous)
				if err != nil {
					return nil, err
				}
			}
			next, err := encodeSubType(subType)
			if err != nil {
				return nil, err
			}
			rows[i] = next
			updated = subType
			return rows, nil
		}
		return nil, notFound("subtype", id)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the subtype row, detaches referencing assets (they fall back
// to their plain asset type; the asset id never changes) and unregisters the
// subtype from its parent. Assets are rewritten first.
func (r *subTypeRepo) Delete(ctx context.Context, id string) error {
	if !ids.Validate(id, ids.SubType) {
		return &ids.MalformedIDError{ID: id, Kind: ids.SubType}
	}
	subType, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = r.store.Update(r.layout.Assets(), assetHeader, func(rows []storage.Row) ([]storage.Row, error) {
		for i, row := range rows {
			if row["assetSubTypeId"] == id {
				rows[i]["assetSubTypeId"] = ""
				rows[i]["updatedAt"] = encodeTime(time.Now().UTC())
			}
		}
		return rows, nil
	})
	if err != nil {
		return err
	}

	err = r.store.Update(r.layout.SubTypes(), subTypeHeader, func(rows []storage.Row) ([]storage.Row, error) {
		return dropByColumn(rows, "id", id), nil
	})
	if err != nil {
		return err
	}

	return r.patchParentSubTypes(subType.ParentTypeID, func(list []string) []string {
		kept := make([]string, 0, len(list))
		for _, entry := range list {
			if entry != id {
				kept = append(kept, entry)
			}
		}
		return kept
	})
}

func (r *subTypeRepo) patchParentSubTypes(parentTypeID string, patch func([]string) []string) error {
	return r.store.Update(r.layout.AssetTypes(), assetTypeHeader, func(rows []storage.Row) ([]storage.Row, error) {
		for i, row := range rows {
			if row["id"] != parentTypeID {
				continue
			}
			parent, err := decodeAssetType(row)
			if err != nil {
				return nil, err
			}
			parent.SubTypes = patch(parent.SubTypes)
			next, err := encodeAssetType(parent)
			if err != nil {
				return nil, err
			}
			rows[i] = next
			return rows, nil
		}
		return nil, notFound("asset type", parentTypeID)
	})
}
