package validators

import (
	"regexp"
	"time"

	"itasset/src/ids"
	"itasset/src/models"
	"itasset/src/utils"
)

// ValidateAssetValues checks an asset's values against its effective field
// set (after the subtype hide/override merge). Required fields must be
// present and non-empty; every present value must match its field type and
// constraints. Keys that name no effective field are rejected.
func ValidateAssetValues(fields []models.Field, values map[string]interface{}) error {
	verr := &ValidationError{}

	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f.Name] = struct{}{}
		value, present := values[f.Name]
		if !present || isEmpty(value) {
			if f.Required {
				verr.add("values."+f.Name, CodeRequired, "required field %q is missing", f.Name)
			}
			continue
		}
		checkValue(verr, f, value)
	}

	for name := range values {
		if _, ok := known[name]; !ok {
			verr.add("values."+name, CodeUnknownField, "no field %q in the effective field set", name)
		}
	}
	return verr.orNil()
}

func isEmpty(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []interface{}:
		return len(v) == 0
	case []string:
		return len(v) == 0
	}
	return false
}

// checkValue switches exhaustively over the field-type variant; an unknown
// type is rejected rather than passed through.
func checkValue(verr *ValidationError, f models.Field, value interface{}) {
	path := "values." + f.Name

	switch f.Type {
	case models.FieldText:
		s, ok := value.(string)
		if !ok {
			verr.add(path, CodeInvalidValue, "field %q expects text", f.Name)
			return
		}
		checkTextBounds(verr, path, f, s)

	case models.FieldNumber:
		n, ok := asNumber(value)
		if !ok {
			verr.add(path, CodeInvalidValue, "field %q expects a number", f.Name)
			return
		}
		if f.Constraints.Min != nil && n < *f.Constraints.Min {
			verr.add(path, CodeOutOfRange, "field %q value %v is below min %v", f.Name, n, *f.Constraints.Min)
		}
		if f.Constraints.Max != nil && n > *f.Constraints.Max {
			verr.add(path, CodeOutOfRange, "field %q value %v is above max %v", f.Name, n, *f.Constraints.Max)
		}

	case models.FieldDate:
		s, ok := value.(string)
		if !ok {
			verr.add(path, CodeInvalidValue, "field %q expects a %s date", f.Name, utils.ShortDashDateLayout)
			return
		}
		d, err := time.Parse(utils.ShortDashDateLayout, s)
		if err != nil {
			verr.add(path, CodeInvalidValue, "field %q value %q is not a valid date", f.Name, s)
			return
		}
		if f.Constraints.MinDate != "" {
			if minDate, err := time.Parse(utils.ShortDashDateLayout, f.Constraints.MinDate); err == nil && d.Before(minDate) {
				verr.add(path, CodeOutOfRange, "field %q date %s is before %s", f.Name, s, f.Constraints.MinDate)
			}
		}
		if f.Constraints.MaxDate != "" {
			if maxDate, err := time.Parse(utils.ShortDashDateLayout, f.Constraints.MaxDate); err == nil && d.After(maxDate) {
				verr.add(path, CodeOutOfRange, "field %q date %s is after %s", f.Name, s, f.Constraints.MaxDate)
			}
		}

	case models.FieldBoolean:
		if _, ok := value.(bool); !ok {
			verr.add(path, CodeInvalidValue, "field %q expects a boolean", f.Name)
		}

	case models.FieldSelect:
		s, ok := value.(string)
		if !ok {
			verr.add(path, CodeInvalidValue, "field %q expects one of its options", f.Name)
			return
		}
		if !inOptions(f.Options, s) {
			verr.add(path, CodeInvalidValue, "field %q value %q is not an option", f.Name, s)
		}

	case models.FieldMultiSelect:
		entries, ok := asStringSlice(value)
		if !ok {
			verr.add(path, CodeInvalidValue, "field %q expects a list of options", f.Name)
			return
		}
		for _, entry := range entries {
			if !inOptions(f.Options, entry) {
				verr.add(path, CodeInvalidValue, "field %q entry %q is not an option", f.Name, entry)
			}
		}

	case models.FieldReference:
		s, ok := value.(string)
		if !ok || !ids.Validate(s, ids.Asset) {
			verr.add(path, CodeInvalidValue, "field %q expects an asset id", f.Name)
		}

	default:
		verr.add(path, CodeInvalidFieldType, "unknown field type %q", f.Type)
	}
}

func checkTextBounds(verr *ValidationError, path string, f models.Field, s string) {
	if f.Constraints.MinLength != nil && len(s) < *f.Constraints.MinLength {
		verr.add(path, CodeOutOfRange, "field %q is shorter than %d characters", f.Name, *f.Constraints.MinLength)
	}
	if f.Constraints.MaxLength != nil && len(s) > *f.Constraints.MaxLength {
		verr.add(path, CodeOutOfRange, "field %q is longer than %d characters", f.Name, *f.Constraints.MaxLength)
	}
	if f.Constraints.Pattern != "" {
		re, err := regexp.Compile(f.Constraints.Pattern)
		if err == nil && !re.MatchString(s) {
			verr.add(path, CodeInvalidValue, "field %q does not match pattern %q", f.Name, f.Constraints.Pattern)
		}
	}
}

func asNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func asStringSlice(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, entry := range v {
			s, ok := entry.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func inOptions(options []string, s string) bool {
	for _, opt := range options {
		if opt == s {
			return true
		}
	}
	return false
}
