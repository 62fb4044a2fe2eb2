package validators_test

import (
	"strings"
	"testing"

	"itasset/src/models"
	"itasset/src/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func details(t *testing.T, err error) []validators.FieldError {
	t.Helper()
	require.Error(t, err)
	var verr *validators.ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Details
}

func hasCode(ds []validators.FieldError, code string) bool {
	for _, d := range ds {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestValidateContainer(t *testing.T) {
	tests := []struct {
		name      string
		container models.Container
		wantCode  string
	}{
		{"valid", models.Container{Name: "Office hardware"}, ""},
		{"empty name", models.Container{Name: "   "}, validators.CodeRequired},
		{"name too long", models.Container{Name: strings.Repeat("x", 101)}, validators.CodeTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validators.ValidateContainer(&tt.container)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, hasCode(details(t, err), tt.wantCode))
		})
	}
}

func TestValidateAssetType(t *testing.T) {
	valid := models.AssetType{
		Name:  "laptop",
		Label: "Laptop",
		Fields: []models.Field{
			{Name: "serial", Label: "Serial", Type: models.FieldText, Required: true},
			{Name: "qty", Label: "Quantity", Type: models.FieldNumber, Constraints: models.Constraints{Min: floatPtr(0)}},
		},
	}
	require.NoError(t, validators.ValidateAssetType(&valid))

	t.Run("empty fields list", func(t *testing.T) {
		typ := valid
		typ.Fields = nil
		ds := details(t, validators.ValidateAssetType(&typ))
		assert.True(t, hasCode(ds, validators.CodeRequired))
	})

	t.Run("duplicate field names", func(t *testing.T) {
		typ := valid
		typ.Fields = []models.Field{
			{Name: "serial", Label: "Serial", Type: models.FieldText},
			{Name: "serial", Label: "Serial again", Type: models.FieldText},
		}
		ds := details(t, validators.ValidateAssetType(&typ))
		assert.True(t, hasCode(ds, validators.CodeDuplicateField))
	})

	t.Run("select without options", func(t *testing.T) {
		typ := valid
		typ.Fields = []models.Field{{Name: "status", Label: "Status", Type: models.FieldSelect}}
		ds := details(t, validators.ValidateAssetType(&typ))
		assert.True(t, hasCode(ds, validators.CodeInvalidOptions))
	})

	t.Run("duplicate options", func(t *testing.T) {
		typ := valid
		typ.Fields = []models.Field{{Name: "status", Label: "Status", Type: models.FieldSelect, Options: []string{"a", "a"}}}
		ds := details(t, validators.ValidateAssetType(&typ))
		assert.True(t, hasCode(ds, validators.CodeInvalidOptions))
	})

	t.Run("min greater than max fails at definition time", func(t *testing.T) {
		typ := valid
		typ.Fields = []models.Field{{
			Name: "qty", Label: "Quantity", Type: models.FieldNumber,
			Constraints: models.Constraints{Min: floatPtr(10), Max: floatPtr(5)},
		}}
		ds := details(t, validators.ValidateAssetType(&typ))
		assert.True(t, hasCode(ds, validators.CodeInvalidConstraint))
	})

	t.Run("minLength greater than maxLength", func(t *testing.T) {
		typ := valid
		typ.Fields = []models.Field{{
			Name: "serial", Label: "Serial", Type: models.FieldText,
			Constraints: models.Constraints{MinLength: intPtr(9), MaxLength: intPtr(3)},
		}}
		ds := details(t, validators.ValidateAssetType(&typ))
		assert.True(t, hasCode(ds, validators.CodeInvalidConstraint))
	})

	t.Run("minDate after maxDate", func(t *testing.T) {
		typ := valid
		typ.Fields = []models.Field{{
			Name: "bought", Label: "Bought", Type: models.FieldDate,
			Constraints: models.Constraints{MinDate: "2024-06-01", MaxDate: "2024-01-01"},
		}}
		ds := details(t, validators.ValidateAssetType(&typ))
		assert.True(t, hasCode(ds, validators.CodeInvalidConstraint))
	})

	t.Run("unknown field type", func(t *testing.T) {
		typ := valid
		typ.Fields = []models.Field{{Name: "x", Label: "X", Type: models.FieldType("blob")}}
		ds := details(t, validators.ValidateAssetType(&typ))
		assert.True(t, hasCode(ds, validators.CodeInvalidFieldType))
	})

	t.Run("field name too long", func(t *testing.T) {
		typ := valid
		typ.Fields = []models.Field{{Name: strings.Repeat("n", 51), Label: "X", Type: models.FieldText}}
		ds := details(t, validators.ValidateAssetType(&typ))
		assert.True(t, hasCode(ds, validators.CodeTooLong))
	})
}

func TestValidateSubType(t *testing.T) {
	parent := models.AssetType{
		Name:  "laptop",
		Label: "Laptop",
		Fields: []models.Field{
			{Name: "serial", Label: "Serial", Type: models.FieldText},
			{Name: "status", Label: "Status", Type: models.FieldSelect, Options: []string{"new", "used"}},
		},
	}

	t.Run("valid", func(t *testing.T) {
		sub := models.AssetSubType{
			Name:             "gaming",
			Label:            "Gaming laptop",
			HiddenFields:     []string{"serial"},
			OverriddenFields: []string{"status"},
			Fields: []models.Field{
				{Name: "status", Label: "Condition", Type: models.FieldSelect, Options: []string{"mint"}},
			},
		}
		assert.NoError(t, validators.ValidateSubType(&sub, &parent))
	})

	t.Run("hidden field not on parent", func(t *testing.T) {
		sub := models.AssetSubType{Name: "gaming", Label: "Gaming", HiddenFields: []string{"nosuch"}}
		ds := details(t, validators.ValidateSubType(&sub, &parent))
		assert.True(t, hasCode(ds, validators.CodeUnknownField))
	})

	t.Run("override without own definition", func(t *testing.T) {
		sub := models.AssetSubType{Name: "gaming", Label: "Gaming", OverriddenFields: []string{"status"}}
		ds := details(t, validators.ValidateSubType(&sub, &parent))
		assert.True(t, hasCode(ds, validators.CodeRequired))
	})

	t.Run("hidden and overridden at once", func(t *testing.T) {
		sub := models.AssetSubType{
			Name: "gaming", Label: "Gaming",
			HiddenFields:     []string{"status"},
			OverriddenFields: []string{"status"},
			Fields:           []models.Field{{Name: "status", Label: "S", Type: models.FieldText}},
		}
		ds := details(t, validators.ValidateSubType(&sub, &parent))
		assert.True(t, hasCode(ds, validators.CodeInvalidValue))
	})
}

func TestValidateAssetValues(t *testing.T) {
	fields := []models.Field{
		{Name: "name", Label: "Name", Type: models.FieldText, Required: true},
		{Name: "qty", Label: "Quantity", Type: models.FieldNumber, Constraints: models.Constraints{Min: floatPtr(0)}},
		{Name: "status", Label: "Status", Type: models.FieldSelect, Options: []string{"new", "used"}},
		{Name: "tags", Label: "Tags", Type: models.FieldMultiSelect, Options: []string{"a", "b"}},
		{Name: "bought", Label: "Bought", Type: models.FieldDate, Constraints: models.Constraints{MinDate: "2020-01-01"}},
		{Name: "leased", Label: "Leased", Type: models.FieldBoolean},
		{Name: "parent", Label: "Parent", Type: models.FieldReference},
	}

	tests := []struct {
		name     string
		values   map[string]interface{}
		wantCode string
	}{
		{"valid full", map[string]interface{}{
			"name": "Laptop", "qty": 3.0, "status": "new",
			"tags": []interface{}{"a"}, "bought": "2024-05-01",
			"leased": true, "parent": "u-x-c-y-a-z",
		}, ""},
		{"valid minimal", map[string]interface{}{"name": "Laptop"}, ""},
		{"required missing", map[string]interface{}{"qty": 1.0}, validators.CodeRequired},
		{"required empty string", map[string]interface{}{"name": ""}, validators.CodeRequired},
		{"qty below min", map[string]interface{}{"name": "L", "qty": -1.0}, validators.CodeOutOfRange},
		{"qty wrong type", map[string]interface{}{"name": "L", "qty": "three"}, validators.CodeInvalidValue},
		{"status not an option", map[string]interface{}{"name": "L", "status": "broken"}, validators.CodeInvalidValue},
		{"tag not an option", map[string]interface{}{"name": "L", "tags": []interface{}{"z"}}, validators.CodeInvalidValue},
		{"bad date", map[string]interface{}{"name": "L", "bought": "05/01/2024"}, validators.CodeInvalidValue},
		{"date before minDate", map[string]interface{}{"name": "L", "bought": "2019-12-31"}, validators.CodeOutOfRange},
		{"boolean wrong type", map[string]interface{}{"name": "L", "leased": "yes"}, validators.CodeInvalidValue},
		{"reference not an asset id", map[string]interface{}{"name": "L", "parent": "u-x-c-y"}, validators.CodeInvalidValue},
		{"unknown key", map[string]interface{}{"name": "L", "ghost": 1.0}, validators.CodeUnknownField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validators.ValidateAssetValues(fields, tt.values)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, hasCode(details(t, err), tt.wantCode))
		})
	}
}
