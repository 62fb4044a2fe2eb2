package schemas

import "itasset/src/models"

type CreateAssetTypeRequest struct {
	Name   string         `json:"name"`
	Label  string         `json:"label"`
	Fields []models.Field `json:"fields"`
}

// UpdateAssetTypeRequest patches an asset type. A non-nil Fields replaces the
// whole list; entries keeping their name keep their field id.
type UpdateAssetTypeRequest struct {
	Name   *string         `json:"name,omitempty"`
	Label  *string         `json:"label,omitempty"`
	Fields *[]models.Field `json:"fields,omitempty"`
}

type CreateSubTypeRequest struct {
	Name             string         `json:"name"`
	Label            string         `json:"label"`
	Fields           []models.Field `json:"fields"`
	HiddenFields     []string       `json:"hiddenFields"`
	OverriddenFields []string       `json:"overriddenFields"`
}

type UpdateSubTypeRequest struct {
	Name             *string         `json:"name,omitempty"`
	Label            *string         `json:"label,omitempty"`
	Fields           *[]models.Field `json:"fields,omitempty"`
	HiddenFields     *[]string       `json:"hiddenFields,omitempty"`
	OverriddenFields *[]string       `json:"overriddenFields,omitempty"`
}
