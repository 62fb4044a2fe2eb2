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

type AssetRepository interface {
	Create(ctx context.Context, containerID string, req *schemas.CreateAssetRequest) (*models.Asset, error)
	GetByID(ctx context.Context, id string) (*models.Asset, error)
	GetAll(ctx context.Context, containerID string) ([]models.Asset, error)
	Update(ctx context.Context, id string, req *schemas.UpdateAssetRequest) (*models.Asset, error)
	Delete(ctx context.Context, id string) error
}

type assetRepo struct {
	store  *storage.Store
	layout storage.Layout
}

func NewAssetRepository(store *storage.Store, layout storage.Layout) AssetRepository {
	return &assetRepo{store: store, layout: layout}
}

func (r *assetRepo) Create(_ context.Context, containerID string, req *schemas.CreateAssetRequest) (*models.Asset, error) {
	if !ids.Validate(containerID, ids.Container) {
		return nil, &ids.MalformedIDError{ID: containerID, Kind: ids.Container}
	}
	if err := containerExists(r.store, r.layout, containerID); err != nil {
		return nil, err
	}

	asset := &models.Asset{
		Name:           strings.TrimSpace(req.Name),
		ContainerID:    containerID,
		AssetTypeID:    req.AssetTypeID,
		AssetSubTypeID: req.AssetSubTypeID,
		Values:         req.Values,
	}
	if asset.Values == nil {
		asset.Values = map[string]interface{}{}
	}
	if err := r.validate(asset); err != nil {
		return nil, err
	}

	id, err := ids.Generate(ids.Asset, containerID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	asset.ID = id
	asset.CreatedAt = now
	asset.UpdatedAt = now

	row, err := encodeAsset(asset)
	if err != nil {
		return nil, err
	}
	err = r.store.Update(r.layout.Assets(), assetHeader, func(rows []storage.Row) ([]storage.Row, error) {
		return append(rows, row), nil
	})
	if err != nil {
		return nil, err
	}
	return asset, nil
}

func (r *assetRepo) GetByID(_ context.Context, id string) (*models.Asset, error) {
	rows, err := r.store.ReadAll(r.layout.Assets())
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row["id"] == id {
			return decodeAsset(row)
		}
	}
	return nil, notFound("asset", id)
}

func (r *assetRepo) GetAll(_ context.Context, containerID string) ([]models.Asset, error) {
	rows, err := r.store.ReadAll(r.layout.Assets())
	if err != nil {
		return nil, err
	}
	assets := make([]models.Asset, 0, len(rows))
	for _, row := range rows {
		if row["containerId"] != containerID {
			continue
		}
		a, err := decodeAsset(row)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *a)
	}
	return assets, nil
}

// Update merges the patch onto the stored asset and re-validates the whole
// record against its effective field set before writing. A validation
// failure leaves the assets file untouched. Updating a deleted asset is a
// NotFoundError; deletion is terminal.
func (r *assetRepo) Update(ctx context.Context, id string, req *schemas.UpdateAssetRequest) (*models.Asset, error) {
	if !ids.Validate(id, ids.Asset) {
		return nil, &ids.MalformedIDError{ID: id, Kind: ids.Asset}
	}
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *current
	if req.Name != nil {
		merged.Name = strings.TrimSpace(*req.Name)
	}
	if req.AssetTypeID != nil {
		// Asset ids chain off the container, so re-typing never changes the id.
		merged.AssetTypeID = *req.AssetTypeID
	}
	if req.AssetSubTypeID != nil {
		merged.AssetSubTypeID = *req.AssetSubTypeID
	}
	if req.Values != nil {
		values := make(map[string]interface{}, len(current.Values)+len(req.Values))
		for k, v := range current.Values {
			values[k] = v
		}
		for k, v := range req.Values {
			if v == nil {
				delete(values, k)
				continue
			}
			values[k] = v
		}
		merged.Values = values
	}
	if err := r.validate(&merged); err != nil {
		return nil, err
	}
	merged.UpdatedAt = time.Now().UTC()

	next, err := encodeAsset(&merged)
	if err != nil {
		return nil, err
	}
	err = r.store.Update(r.layout.Assets(), assetHeader, func(rows []storage.Row) ([]storage.Row, error) {
		for i, row := range rows {
			if row["id"] == id {
				rows[i] = next
				return rows, nil
			}
		}
		return nil, notFound("asset", id)
	})
	if err != nil {
		return nil, err
	}
	return &merged, nil
}

func (r *assetRepo) Delete(_ context.Context, id string) error {
	if !ids.Validate(id, ids.Asset) {
		return &ids.MalformedIDError{ID: id, Kind: ids.Asset}
	}
	return r.store.Update(r.layout.Assets(), assetHeader, func(rows []storage.Row) ([]storage.Row, error) {
		kept := dropByColumn(rows, "id", id)
		if len(kept) == len(rows) {
			return nil, notFound("asset", id)
		}
		return kept, nil
	})
}

// validate checks the asset's references and its values against the effective
// field set after the subtype hide/override merge.
func (r *assetRepo) validate(asset *models.Asset) error {
	verr := &validators.ValidationError{}
	if strings.TrimSpace(asset.Name) == "" {
		verr.Details = append(verr.Details, validators.FieldError{
			Field: "name", Code: validators.CodeRequired, Message: "name must not be empty",
		})
		return verr
	}

	assetType, err := assetTypeByID(r.store, r.layout, asset.AssetTypeID)
	if err != nil {
		return err
	}
	if assetType.ContainerID != asset.ContainerID {
		verr.Details = append(verr.Details, validators.FieldError{
			Field: "assetTypeId", Code: validators.CodeInvalidValue,
			Message: "asset type belongs to a different container",
		})
		return verr
	}

	var subType *models.AssetSubType
	if asset.AssetSubTypeID != "" {
		subType, err = subTypeByID(r.store, r.layout, asset.AssetSubTypeID)
		if err != nil {
			return err
		}
		if subType.ParentTypeID != asset.AssetTypeID {
			verr.Details = append(verr.Details, validators.FieldError{
				Field: "assetSubTypeId", Code: validators.CodeInvalidValue,
				Message: "subtype does not refine the asset's type",
			})
			return verr
		}
	}

	effective := models.EffectiveFields(assetType, subType)
	return validators.ValidateAssetValues(effective, asset.Values)
}

func subTypeByID(store *storage.Store, layout storage.Layout, id string) (*models.AssetSubType, error) {
	rows, err := store.ReadAll(layout.SubTypes())
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
