package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"itasset/src/models"
	"itasset/src/storage"
)

// Fixed header-column lists, one per collection kind. Complex columns embed
// JSON strings within their CSV cell.
var (
	containerHeader = []string{"id", "name", "description", "ownerId", "createdAt", "updatedAt"}
	assetTypeHeader = []string{"id", "name", "label", "containerId", "fields", "subtypes"}
	subTypeHeader   = []string{"id", "name", "label", "containerId", "parentTypeId", "fields", "hiddenFields", "overriddenFields"}
	assetHeader     = []string{"id", "name", "containerId", "assetTypeId", "assetSubTypeId", "values", "createdAt", "updatedAt"}
)

const timeLayout = time.RFC3339Nano

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func decodeTime(s string) time.Time {
	t, _ := time.Parse(timeLayout, s)
	return t
}

func encodeJSONCell(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeJSONCell(cell string, out interface{}) error {
	if cell == "" {
		return nil
	}
	return json.Unmarshal([]byte(cell), out)
}

func decodeError(collection, id string, err error) error {
	return fmt.Errorf("decode %s row %q: %w", collection, id, err)
}

func encodeContainer(c *models.Container) storage.Row {
	return storage.Row{
		"id":          c.ID,
		"name":        c.Name,
		"description": c.Description,
		"ownerId":     c.OwnerID,
		"createdAt":   encodeTime(c.CreatedAt),
		"updatedAt":   encodeTime(c.UpdatedAt),
	}
}

func decodeContainer(row storage.Row) *models.Container {
	return &models.Container{
		ID:          row["id"],
		Name:        row["name"],
		Description: row["description"],
		OwnerID:     row["ownerId"],
		CreatedAt:   decodeTime(row["createdAt"]),
		UpdatedAt:   decodeTime(row["updatedAt"]),
	}
}

func encodeAssetType(t *models.AssetType) (storage.Row, error) {
	fields, err := encodeJSONCell(t.Fields)
	if err != nil {
		return nil, err
	}
	subTypes, err := encodeJSONCell(t.SubTypes)
	if err != nil {
		return nil, err
	}
	return storage.Row{
		"id":          t.ID,
		"name":        t.Name,
		"label":       t.Label,
		"containerId": t.ContainerID,
		"fields":      fields,
		"subtypes":    subTypes,
	}, nil
}

func decodeAssetType(row storage.Row) (*models.AssetType, error) {
	t := &models.AssetType{
		ID:          row["id"],
		Name:        row["name"],
		Label:       row["label"],
		ContainerID: row["containerId"],
	}
	if err := decodeJSONCell(row["fields"], &t.Fields); err != nil {
		return nil, decodeError("asset type", t.ID, err)
	}
	if err := decodeJSONCell(row["subtypes"], &t.SubTypes); err != nil {
		return nil, decodeError("asset type", t.ID, err)
	}
	return t, nil
}

func encodeSubType(s *models.AssetSubType) (storage.Row, error) {
	fields, err := encodeJSONCell(s.Fields)
	if err != nil {
		return nil, err
	}
	hidden, err := encodeJSONCell(s.HiddenFields)
	if err != nil {
		return nil, err
	}
	overridden, err := encodeJSONCell(s.OverriddenFields)
	if err != nil {
		return nil, err
	}
	return storage.Row{
		"id":               s.ID,
		"name":             s.Name,
		"label":            s.Label,
		"containerId":      s.ContainerID,
		"parentTypeId":     s.ParentTypeID,
		"fields":           fields,
		"hiddenFields":     hidden,
		"overriddenFields": overridden,
	}, nil
}

func decodeSubType(row storage.Row) (*models.AssetSubType, error) {
	s := &models.AssetSubType{
		ID:           row["id"],
		Name:         row["name"],
		Label:        row["label"],
		ContainerID:  row["containerId"],
		ParentTypeID: row["parentTypeId"],
	}
	if err := decodeJSONCell(row["fields"], &s.Fields); err != nil {
		return nil, decodeError("subtype", s.ID, err)
	}
	if err := decodeJSONCell(row["hiddenFields"], &s.HiddenFields); err != nil {
		return nil, decodeError("subtype", s.ID, err)
	}
	if err := decodeJSONCell(row["overriddenFields"], &s.OverriddenFields); err != nil {
		return nil, decodeError("subtype", s.ID, err)
	}
	return s, nil
}

func encodeAsset(a *models.Asset) (storage.Row, error) {
	values, err := encodeJSONCell(a.Values)
	if err != nil {
		return nil, err
	}
	return storage.Row{
		"id":             a.ID,
		"name":           a.Name,
		"containerId":    a.ContainerID,
		"assetTypeId":    a.AssetTypeID,
		"assetSubTypeId": a.AssetSubTypeID,
		"values":         values,
		"createdAt":      encodeTime(a.CreatedAt),
		"updatedAt":      encodeTime(a.UpdatedAt),
	}, nil
}

func decodeAsset(row storage.Row) (*models.Asset, error) {
	a := &models.Asset{
		ID:             row["id"],
		Name:           row["name"],
		ContainerID:    row["containerId"],
		AssetTypeID:    row["assetTypeId"],
		AssetSubTypeID: row["assetSubTypeId"],
		CreatedAt:      decodeTime(row["createdAt"]),
		UpdatedAt:      decodeTime(row["updatedAt"]),
	}
	if err := decodeJSONCell(row["values"], &a.Values); err != nil {
		return nil, decodeError("asset", a.ID, err)
	}
	return a, nil
}
