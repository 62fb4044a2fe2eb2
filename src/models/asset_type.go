package models

// AssetType is a named schema (ordered field list) describing a category of
// asset within a container.
type AssetType struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	ContainerID string   `json:"containerId"`
	Fields      []Field  `json:"fields"`
	SubTypes    []string `json:"subtypes"`
}

// AssetSubType refines an AssetType: it inherits the parent's fields, may
// hide specific inherited fields and may override inherited fields with its
// own definitions (matched by name).
type AssetSubType struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Label            string   `json:"label"`
	ContainerID      string   `json:"containerId"`
	ParentTypeID     string   `json:"parentTypeId"`
	Fields           []Field  `json:"fields"`
	HiddenFields     []string `json:"hiddenFields"`
	OverriddenFields []string `json:"overriddenFields"`
}

// EffectiveFields resolves the field set an asset is validated and displayed
// against. With a nil subtype it is the type's own list. Otherwise the
// parent's fields are walked in order, hidden names dropped, overridden names
// replaced by the subtype's definition, and subtype-only fields appended in
// declaration order. The result is recomputed on every call and never
// persisted.
func EffectiveFields(t *AssetType, s *AssetSubType) []Field {
	if s == nil {
		return append([]Field(nil), t.Fields...)
	}

	hidden := make(map[string]struct{}, len(s.HiddenFields))
	for _, name := range s.HiddenFields {
		hidden[name] = struct{}{}
	}
	overridden := make(map[string]struct{}, len(s.OverriddenFields))
	for _, name := range s.OverriddenFields {
		overridden[name] = struct{}{}
	}
	own := make(map[string]Field, len(s.Fields))
	for _, f := range s.Fields {
		own[f.Name] = f
	}

	fields := make([]Field, 0, len(t.Fields)+len(s.Fields))
	inherited := make(map[string]struct{}, len(t.Fields))
	for _, f := range t.Fields {
		inherited[f.Name] = struct{}{}
		if _, ok := hidden[f.Name]; ok {
			continue
		}
		if _, ok := overridden[f.Name]; ok {
			if override, declared := own[f.Name]; declared {
				fields = append(fields, override)
				continue
			}
		}
		fields = append(fields, f)
	}

	// Subtype fields that neither override nor shadow an inherited field are
	// additions of the refinement.
	for _, f := range s.Fields {
		if _, ok := inherited[f.Name]; ok {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}
