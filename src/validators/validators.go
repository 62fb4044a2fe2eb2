package validators

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"itasset/src/models"
	"itasset/src/utils"
)

// Structural length ceilings enforced before any write.
const (
	MaxContainerNameLen = 100
	MaxLabelLen         = 100
	MaxNameLen          = 50
)

// ValidateContainer checks a container payload before persistence.
func ValidateContainer(c *models.Container) error {
	verr := &ValidationError{}
	checkName(verr, "name", c.Name, MaxContainerNameLen)
	return verr.orNil()
}

// ValidateAssetType checks an asset type definition, including every field
// definition it carries. An empty field list is rejected.
func ValidateAssetType(t *models.AssetType) error {
	verr := &ValidationError{}
	checkName(verr, "name", t.Name, MaxNameLen)
	checkName(verr, "label", t.Label, MaxLabelLen)

	if len(t.Fields) == 0 {
		verr.add("fields", CodeRequired, "an asset type requires at least one field")
	}
	checkFieldList(verr, "fields", t.Fields)
	return verr.orNil()
}

// ValidateSubType checks a subtype definition against its parent type.
// Hidden and overridden entries must name fields locally declared on the
// parent; hiding or overriding a field the parent does not declare itself is
// undefined and rejected. Overridden entries must also be re-declared in the
// subtype's own field list.
func ValidateSubType(s *models.AssetSubType, parent *models.AssetType) error {
	verr := &ValidationError{}
	checkName(verr, "name", s.Name, MaxNameLen)
	checkName(verr, "label", s.Label, MaxLabelLen)
	checkFieldList(verr, "fields", s.Fields)

	parentFields := make(map[string]struct{}, len(parent.Fields))
	for _, f := range parent.Fields {
		parentFields[f.Name] = struct{}{}
	}
	ownFields := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		ownFields[f.Name] = struct{}{}
	}

	hidden := make(map[string]struct{}, len(s.HiddenFields))
	for _, name := range s.HiddenFields {
		hidden[name] = struct{}{}
		if _, ok := parentFields[name]; !ok {
			verr.add("hiddenFields", CodeUnknownField, "hidden field %q is not declared on the parent type", name)
		}
	}
	for _, name := range s.OverriddenFields {
		if _, ok := parentFields[name]; !ok {
			verr.add("overriddenFields", CodeUnknownField, "overridden field %q is not declared on the parent type", name)
		}
		if _, ok := ownFields[name]; !ok {
			verr.add("overriddenFields", CodeRequired, "overridden field %q has no definition in the subtype", name)
		}
		if _, ok := hidden[name]; ok {
			verr.add("overriddenFields", CodeInvalidValue, "field %q cannot be both hidden and overridden", name)
		}
	}
	return verr.orNil()
}

func checkName(verr *ValidationError, field, value string, max int) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		verr.add(field, CodeRequired, "%s must not be empty", field)
		return
	}
	if len(trimmed) > max {
		verr.add(field, CodeTooLong, "%s exceeds %d characters", field, max)
	}
}

func checkFieldList(verr *ValidationError, path string, fields []models.Field) {
	seen := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		fieldPath := fmt.Sprintf("%s[%d]", path, i)
		if _, dup := seen[f.Name]; dup {
			verr.add(fieldPath+".name", CodeDuplicateField, "field name %q already used", f.Name)
		}
		seen[f.Name] = struct{}{}
		checkFieldDefinition(verr, fieldPath, f)
	}
}

func checkFieldDefinition(verr *ValidationError, path string, f models.Field) {
	checkName(verr, path+".name", f.Name, MaxNameLen)
	checkName(verr, path+".label", f.Label, MaxLabelLen)

	if !f.Type.Known() {
		verr.add(path+".type", CodeInvalidFieldType, "unknown field type %q", f.Type)
		return
	}

	if f.Type.HasOptions() {
		if len(f.Options) == 0 {
			verr.add(path+".options", CodeInvalidOptions, "%s fields require a non-empty option list", f.Type)
		}
		seen := make(map[string]struct{}, len(f.Options))
		for _, opt := range f.Options {
			if _, dup := seen[opt]; dup {
				verr.add(path+".options", CodeInvalidOptions, "duplicate option %q", opt)
			}
			seen[opt] = struct{}{}
		}
	} else if len(f.Options) > 0 {
		verr.add(path+".options", CodeInvalidOptions, "%s fields do not take options", f.Type)
	}

	checkConstraints(verr, path+".constraints", f.Constraints)
}

// checkConstraints rejects internally inconsistent bounds at definition time,
// regardless of whether a value is ever tested against them.
func checkConstraints(verr *ValidationError, path string, c models.Constraints) {
	if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
		verr.add(path, CodeInvalidConstraint, "min %v exceeds max %v", *c.Min, *c.Max)
	}
	if c.MinLength != nil && *c.MinLength < 0 {
		verr.add(path, CodeInvalidConstraint, "minLength must not be negative")
	}
	if c.MaxLength != nil && *c.MaxLength < 0 {
		verr.add(path, CodeInvalidConstraint, "maxLength must not be negative")
	}
	if c.MinLength != nil && c.MaxLength != nil && *c.MinLength > *c.MaxLength {
		verr.add(path, CodeInvalidConstraint, "minLength %d exceeds maxLength %d", *c.MinLength, *c.MaxLength)
	}

	var minDate, maxDate time.Time
	var err error
	if c.MinDate != "" {
		minDate, err = time.Parse(utils.ShortDashDateLayout, c.MinDate)
		if err != nil {
			verr.add(path, CodeInvalidConstraint, "minDate %q is not a valid date", c.MinDate)
		}
	}
	if c.MaxDate != "" {
		maxDate, err = time.Parse(utils.ShortDashDateLayout, c.MaxDate)
		if err != nil {
			verr.add(path, CodeInvalidConstraint, "maxDate %q is not a valid date", c.MaxDate)
		}
	}
	if !minDate.IsZero() && !maxDate.IsZero() && minDate.After(maxDate) {
		verr.add(path, CodeInvalidConstraint, "minDate %s is after maxDate %s", c.MinDate, c.MaxDate)
	}

	if c.Pattern != "" {
		if _, err := regexp.Compile(c.Pattern); err != nil {
			verr.add(path, CodeInvalidConstraint, "pattern does not compile: %v", err)
		}
	}
}
