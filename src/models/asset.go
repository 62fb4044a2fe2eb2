package models

import "time"

// Asset is a concrete record in a container. It references its type (and
// optionally a subtype) by id, but its own id chains off the container; an
// asset can be re-typed without an id change.
type Asset struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	ContainerID    string                 `json:"containerId"`
	AssetTypeID    string                 `json:"assetTypeId"`
	AssetSubTypeID string                 `json:"assetSubTypeId,omitempty"`
	Values         map[string]interface{} `json:"values"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}
