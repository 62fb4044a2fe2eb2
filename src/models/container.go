package models

import "time"

// Container is a tenant-scoped grouping of asset-type schemas and asset
// records. Deleting a container cascade-deletes everything beneath it.
type Container struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
