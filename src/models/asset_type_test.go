package models_test

import (
	"testing"

	"itasset/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func laptopType() *models.AssetType {
	return &models.AssetType{
		ID:          "u-a-c-b-t-c",
		Name:        "laptop",
		Label:       "Laptop",
		ContainerID: "u-a-c-b",
		Fields: []models.Field{
			{Name: "serial", Label: "Serial", Type: models.FieldText, Required: true},
			{Name: "status", Label: "Status", Type: models.FieldSelect, Options: []string{"new", "used"}},
			{Name: "qty", Label: "Quantity", Type: models.FieldNumber},
		},
	}
}

func TestEffectiveFieldsNoSubType(t *testing.T) {
	typ := laptopType()
	fields := models.EffectiveFields(typ, nil)
	require.Len(t, fields, 3)
	assert.Equal(t, typ.Fields, fields)

	// The result is a copy, not an alias of the type's list.
	fields[0].Name = "mutated"
	assert.Equal(t, "serial", typ.Fields[0].Name)
}

func TestEffectiveFieldsHideAndOverride(t *testing.T) {
	typ := laptopType()
	sub := &models.AssetSubType{
		Name:             "gaming",
		ParentTypeID:     typ.ID,
		HiddenFields:     []string{"serial"},
		OverriddenFields: []string{"status"},
		Fields: []models.Field{
			{Name: "status", Label: "Condition", Type: models.FieldSelect, Options: []string{"mint", "worn"}},
			{Name: "gpu", Label: "GPU", Type: models.FieldText},
		},
	}

	// Recomputing must be deterministic regardless of repeated invocation.
	for i := 0; i < 3; i++ {
		fields := models.EffectiveFields(typ, sub)
		require.Len(t, fields, 3)

		names := make([]string, len(fields))
		for j, f := range fields {
			names[j] = f.Name
		}
		assert.Equal(t, []string{"status", "qty", "gpu"}, names)

		// "serial" is hidden, "status" uses the subtype's definition.
		assert.Equal(t, "Condition", fields[0].Label)
		assert.Equal(t, []string{"mint", "worn"}, fields[0].Options)
	}
}

func TestEffectiveFieldsOverrideWithoutDeclarationKeepsParent(t *testing.T) {
	typ := laptopType()
	sub := &models.AssetSubType{
		ParentTypeID:     typ.ID,
		OverriddenFields: []string{"status"},
	}

	fields := models.EffectiveFields(typ, sub)
	require.Len(t, fields, 3)
	assert.Equal(t, "Status", fields[1].Label)
}
