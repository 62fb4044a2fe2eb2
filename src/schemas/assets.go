package schemas

type CreateAssetRequest struct {
	Name           string                 `json:"name"`
	AssetTypeID    string                 `json:"assetTypeId"`
	AssetSubTypeID string                 `json:"assetSubTypeId,omitempty"`
	Values         map[string]interface{} `json:"values"`
}

// UpdateAssetRequest patches an asset. Values merge key by key onto the
// stored values; an explicit JSON null removes the key. Re-pointing
// AssetTypeID never changes the asset's id.
type UpdateAssetRequest struct {
	Name           *string                `json:"name,omitempty"`
	AssetTypeID    *string                `json:"assetTypeId,omitempty"`
	AssetSubTypeID *string                `json:"assetSubTypeId,omitempty"`
	Values         map[string]interface{} `json:"values,omitempty"`
}
