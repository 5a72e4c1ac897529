package schema

import (
	"fmt"
	"sort"
)

// Field declares one entry of a Schema.
type Field struct {
	Type        Type
	Optional    bool
	Default     any
	Description string
}

// Required declares a field that must be present.
func Required(t Type) Field { return Field{Type: t} }

// Optional declares a field that may be absent.
func Optional(t Type) Field { return Field{Type: t, Optional: true} }

// WithDefault returns a copy of the field that is optional and takes def when absent.
func (f Field) WithDefault(def any) Field {
	f.Optional = true
	f.Default = def
	return f
}

// Describe returns a copy of the field with a description, surfaced to
// reasoning providers and API documentation.
func (f Field) Describe(desc string) Field {
	f.Description = desc
	return f
}

// Schema is a map of field names to their declarations.
// Example: {"api_key": Required(String()), "tags": Optional(Slice(String()))}
type Schema map[string]Field

// Keys returns field names in a stable order.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RequiredKeys returns the names of required fields in a stable order.
func (s Schema) RequiredKeys() []string {
	var keys []string
	for _, k := range s.Keys() {
		if !s[k].Optional {
			keys = append(keys, k)
		}
	}
	return keys
}

// Validate checks if data conforms to the schema.
// Returns an error with all validation failures found.
func Validate(schema Schema, data map[string]any) error {
	_, err := Normalize(schema, data)
	return err
}

// Normalize validates data and returns its canonical form: unknown keys are
// dropped, absent optional fields are omitted or take their declared default,
// and nested values are normalized by their types.
// A nil or empty schema accepts any data unchanged.
func Normalize(schema Schema, data map[string]any) (map[string]any, error) {
	if len(schema) == 0 {
		// No schema = no validation
		return data, nil
	}

	out := make(map[string]any, len(schema))
	var errs []error

	for _, fieldName := range schema.Keys() {
		field := schema[fieldName]
		if field.Type == nil {
			errs = append(errs, &ValidationError{Key: fieldName, Reason: "type is nil"})
			continue
		}

		value, exists := data[fieldName]
		if !exists || value == nil {
			switch {
			case field.Default != nil:
				value = field.Default
			case field.Optional:
				continue
			default:
				errs = append(errs, &ValidationError{
					Key:    fieldName,
					Reason: "required",
					Value:  nil,
				})
				continue
			}
		}

		normalized, err := normalizeValue(field.Type, value)
		if err != nil {
			errs = append(errs, nestedErrors(fieldName, err, value)...)
			continue
		}
		out[fieldName] = normalized
	}

	// If there are errors, aggregate them
	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}

	return out, nil
}

// ValidateFields validates only specific fields from data against the schema.
// Missing fields are treated as an error.
func ValidateFields(schema Schema, data map[string]any, fields ...string) error {
	if len(fields) == 0 {
		// No fields to validate
		return nil
	}

	var errs []error

	for _, fieldName := range fields {
		field, exists := schema[fieldName]
		if !exists {
			// Field not defined in schema
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "not defined in schema",
				Value:  nil,
			})
			continue
		}

		value, fieldExists := data[fieldName]
		if !fieldExists {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "required",
				Value:  nil,
			})
			continue
		}

		if err := field.Type.Validate(value); err != nil {
			errs = append(errs, nestedErrors(fieldName, err, value)...)
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}

// nestedErrors prefixes failures from nested objects with the parent key so
// callers see "userProfile.name" instead of "name".
func nestedErrors(key string, err error, value any) []error {
	inner := ValidationErrors(err)
	if inner == nil {
		return []error{&ValidationError{Key: key, Reason: err.Error(), Value: value}}
	}
	out := make([]error, 0, len(inner))
	for _, e := range inner {
		if ve, ok := e.(*ValidationError); ok {
			out = append(out, &ValidationError{
				Key:    fmt.Sprintf("%s.%s", key, ve.Key),
				Reason: ve.Reason,
				Value:  ve.Value,
			})
			continue
		}
		out = append(out, &ValidationError{Key: key, Reason: e.Error(), Value: value})
	}
	return out
}
