package schema

import (
	"encoding/json"
	"fmt"
)

// FieldSpec is the serializable declaration of a field. It is what flow
// documents carry in their frontmatter and what MarshalJSON emits.
type FieldSpec struct {
	Name        string      `json:"name" yaml:"name" mapstructure:"name"`
	Type        string      `json:"type" yaml:"type" mapstructure:"type"`
	Required    bool        `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Enum        []string    `json:"enum,omitempty" yaml:"enum,omitempty" mapstructure:"enum"`
	Min         *float64    `json:"min,omitempty" yaml:"min,omitempty" mapstructure:"min"`
	Max         *float64    `json:"max,omitempty" yaml:"max,omitempty" mapstructure:"max"`
	Default     any         `json:"default,omitempty" yaml:"default,omitempty" mapstructure:"default"`
	Fields      []FieldSpec `json:"fields,omitempty" yaml:"fields,omitempty" mapstructure:"fields"`
}

// FromSpecs builds a Schema from field declarations.
func FromSpecs(specs []FieldSpec) (Schema, error) {
	result := make(Schema, len(specs))
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("field declaration without name")
		}
		if _, dup := result[spec.Name]; dup {
			return nil, fmt.Errorf("field %s: declared twice", spec.Name)
		}
		t, err := typeFromSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", spec.Name, err)
		}
		field := Field{
			Type:        t,
			Optional:    !spec.Required,
			Description: spec.Description,
		}
		if spec.Default != nil {
			def, err := normalizeValue(t, spec.Default)
			if err != nil {
				return nil, fmt.Errorf("field %s: invalid default: %w", spec.Name, err)
			}
			field = field.WithDefault(def)
		}
		result[spec.Name] = field
	}
	return result, nil
}

func typeFromSpec(spec FieldSpec) (Type, error) {
	typeStr := spec.Type
	if typeStr == "" {
		typeStr = "string"
	}

	if len(typeStr) > 2 && typeStr[0] == '[' && typeStr[len(typeStr)-1] == ']' {
		elem := spec
		elem.Type = typeStr[1 : len(typeStr)-1]
		elemType, err := typeFromSpec(elem)
		if err != nil {
			return nil, err
		}
		return Slice(elemType), nil
	}

	switch typeStr {
	case "object":
		nested, err := FromSpecs(spec.Fields)
		if err != nil {
			return nil, err
		}
		return Object(nested), nil
	case "string":
		if len(spec.Enum) > 0 {
			return Enum(spec.Enum...), nil
		}
		return String(), nil
	case "int", "integer":
		return &IntType{Bounds: Bounds{Min: spec.Min, Max: spec.Max}}, nil
	case "float", "number":
		return &FloatType{Bounds: Bounds{Min: spec.Min, Max: spec.Max}}, nil
	}
	return ParseType(typeStr)
}

// Specs returns the declarations of the schema, sorted by field name.
// Custom types are emitted by name and cannot be parsed back.
func (s Schema) Specs() []FieldSpec {
	specs := make([]FieldSpec, 0, len(s))
	for _, key := range s.Keys() {
		field := s[key]
		spec := specFromType(field.Type)
		spec.Name = key
		spec.Required = !field.Optional
		spec.Description = field.Description
		spec.Default = field.Default
		specs = append(specs, spec)
	}
	return specs
}

func specFromType(t Type) FieldSpec {
	switch typ := t.(type) {
	case *EnumType:
		return FieldSpec{Type: "string", Enum: typ.Values()}
	case *IntType:
		return FieldSpec{Type: "int", Min: typ.Min, Max: typ.Max}
	case *FloatType:
		return FieldSpec{Type: "float", Min: typ.Min, Max: typ.Max}
	case *ObjectType:
		return FieldSpec{Type: "object", Fields: typ.Fields().Specs()}
	case *SliceType:
		elem := specFromType(typ.Elem())
		elem.Type = "[" + elem.Type + "]"
		return elem
	case nil:
		return FieldSpec{}
	}
	return FieldSpec{Type: t.Name()}
}

// MarshalJSON serializes the schema as a list of field declarations.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}

	for key, field := range s {
		if field.Type == nil {
			return nil, fmt.Errorf("field %s: type is nil", key)
		}
	}

	return json.Marshal(s.Specs())
}

// UnmarshalJSON deserializes the schema from a list of field declarations.
// A plain map of field names to type strings is also accepted.
func (s *Schema) UnmarshalJSON(data []byte) error {
	if s == nil {
		return fmt.Errorf("schema: UnmarshalJSON on nil pointer")
	}

	if string(data) == "null" {
		*s = nil
		return nil
	}

	var specs []FieldSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		// Fallback: the compact {"name": "type"} form
		var raw map[string]string
		if errMap := json.Unmarshal(data, &raw); errMap != nil {
			return err
		}
		parsed, errMap := ParseTypeMap(raw)
		if errMap != nil {
			return errMap
		}
		*s = parsed
		return nil
	}

	parsed, err := FromSpecs(specs)
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}

// JSONSchema projects the schema to a JSON Schema object document.
func JSONSchema(s Schema) map[string]any {
	props := make(map[string]any, len(s))
	for _, key := range s.Keys() {
		field := s[key]
		prop := typeJSONSchema(field.Type)
		if field.Description != "" {
			prop["description"] = field.Description
		}
		if field.Default != nil {
			prop["default"] = field.Default
		}
		props[key] = prop
	}

	doc := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if required := s.RequiredKeys(); len(required) > 0 {
		doc["required"] = required
	}
	return doc
}

func typeJSONSchema(t Type) map[string]any {
	switch typ := t.(type) {
	case *StringType:
		return map[string]any{"type": "string"}
	case *EnumType:
		return map[string]any{"type": "string", "enum": typ.Values()}
	case *IntType:
		return withBounds(map[string]any{"type": "integer"}, typ.Bounds)
	case *FloatType:
		return withBounds(map[string]any{"type": "number"}, typ.Bounds)
	case *BoolType:
		return map[string]any{"type": "boolean"}
	case *SliceType:
		return map[string]any{"type": "array", "items": typeJSONSchema(typ.Elem())}
	case *ObjectType:
		return JSONSchema(typ.Fields())
	}
	return map[string]any{}
}

func withBounds(m map[string]any, b Bounds) map[string]any {
	if b.Min != nil {
		m["minimum"] = *b.Min
	}
	if b.Max != nil {
		m["maximum"] = *b.Max
	}
	return m
}
