package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
)

// Type defines the contract for field validation.
// Implementations determine how values are validated against a type.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// Normalizer is implemented by types that can canonicalize a valid value,
// e.g. turning a JSON float64 into an int or filling defaults in nested objects.
type Normalizer interface {
	Normalize(value any) (any, error)
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	_, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// EnumType validates strings restricted to a fixed set of values.
type EnumType struct {
	values []string
}

func (t *EnumType) Name() string { return "string" }

// Values returns the allowed values in declaration order.
func (t *EnumType) Values() []string { return slices.Clone(t.values) }

func (t *EnumType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	if !slices.Contains(t.values, s) {
		return fmt.Errorf("must be one of [%s]", strings.Join(t.values, ", "))
	}
	return nil
}

// Bounds restricts a numeric value to an inclusive range. Nil ends are open.
type Bounds struct {
	Min *float64
	Max *float64
}

func (b Bounds) check(v float64) error {
	if b.Min != nil && v < *b.Min {
		return fmt.Errorf("must be >= %s", formatNumber(*b.Min))
	}
	if b.Max != nil && v > *b.Max {
		return fmt.Errorf("must be <= %s", formatNumber(*b.Max))
	}
	return nil
}

// IntType validates integer values.
type IntType struct {
	Bounds
}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Validate(value any) error {
	_, err := t.Normalize(value)
	return err
}

// Normalize returns the value as an int.
func (t *IntType) Normalize(value any) (any, error) {
	var n int64
	switch v := value.(type) {
	case int:
		n = int64(v)
	case int8:
		n = int64(v)
	case int16:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case float32:
		if float64(v) != math.Trunc(float64(v)) {
			return nil, fmt.Errorf("expected int, got float (not a whole number)")
		}
		i, err := wholeToInt64(float64(v))
		if err != nil {
			return nil, err
		}
		n = i
	case float64:
		// Accept floats that are whole numbers (from JSON unmarshaling)
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("expected int, got float (not a whole number)")
		}
		i, err := wholeToInt64(v)
		if err != nil {
			return nil, err
		}
		n = i
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
				return nil, fmt.Errorf("expected int, got %q", v.String())
			}
			if i, err = wholeToInt64(f); err != nil {
				return nil, err
			}
		}
		n = i
	default:
		return nil, fmt.Errorf("expected int, got %T", value)
	}
	if n > math.MaxInt || n < math.MinInt {
		return nil, fmt.Errorf("expected int, %d is out of range", n)
	}
	if err := t.check(float64(n)); err != nil {
		return nil, err
	}
	return int(n), nil
}

// wholeToInt64 converts a whole float, rejecting values an int64 cannot hold.
func wholeToInt64(f float64) (int64, error) {
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("expected int, %s is out of range", formatNumber(f))
	}
	return int64(f), nil
}

// FloatType validates floating-point values.
type FloatType struct {
	Bounds
}

func (t *FloatType) Name() string { return "float" }

func (t *FloatType) Validate(value any) error {
	_, err := t.Normalize(value)
	return err
}

// Normalize returns the value as a float64.
func (t *FloatType) Normalize(value any) (any, error) {
	var f float64
	switch v := value.(type) {
	case float32:
		f = float64(v)
	case float64:
		f = v
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("expected float, got %q", v.String())
		}
		f = parsed
	default:
		return nil, fmt.Errorf("expected float, got %T", value)
	}
	if math.IsNaN(f) {
		return nil, fmt.Errorf("expected float, got NaN")
	}
	if err := t.check(f); err != nil {
		return nil, err
	}
	return f, nil
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(value any) error {
	_, ok := value.(bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

// Elem returns the element type.
func (t *SliceType) Elem() Type { return t.elemType }

func (t *SliceType) Validate(value any) error {
	_, err := t.Normalize(value)
	return err
}

// Normalize returns a []any with every element normalized.
func (t *SliceType) Normalize(value any) (any, error) {
	if value == nil {
		return nil, fmt.Errorf("expected slice, got nil")
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected slice, got %T", value)
	}

	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem, err := normalizeValue(t.elemType, rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, elem)
	}
	return out, nil
}

// ObjectType validates nested objects against a schema.
type ObjectType struct {
	fields Schema
}

func (t *ObjectType) Name() string { return "object" }

// Fields returns the nested schema.
func (t *ObjectType) Fields() Schema { return t.fields }

func (t *ObjectType) Validate(value any) error {
	_, err := t.Normalize(value)
	return err
}

// Normalize returns the object normalized against its schema.
func (t *ObjectType) Normalize(value any) (any, error) {
	m, ok := asMap(value)
	if !ok {
		return nil, fmt.Errorf("expected object, got %T", value)
	}
	return Normalize(t.fields, m)
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Enum creates a string type restricted to the given values.
func Enum(values ...string) Type { return &EnumType{values: values} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// IntRange creates an integer type bounded to [min, max].
func IntRange(min, max int) Type {
	lo, hi := float64(min), float64(max)
	return &IntType{Bounds: Bounds{Min: &lo, Max: &hi}}
}

// Float creates a float type validator.
func Float() Type { return &FloatType{} }

// FloatMin creates a float type with a lower bound.
func FloatMin(min float64) Type {
	return &FloatType{Bounds: Bounds{Min: &min}}
}

// FloatRange creates a float type bounded to [min, max].
func FloatRange(min, max float64) Type {
	return &FloatType{Bounds: Bounds{Min: &min, Max: &max}}
}

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// Object creates a nested object type validated against fields.
func Object(fields Schema) Type {
	return &ObjectType{fields: fields}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

// ParseType converts a string type name to a Type.
// Supports basic types: "string", "int", "float", "bool", "[string]", "[int]", etc.
// "object" and "[object]" yield objects with no declared fields; use FieldSpec
// to declare nested fields.
func ParseType(typeStr string) (Type, error) {
	typeStr = strings.TrimSpace(typeStr)

	// Handle slice types: [string], [int], etc.
	if len(typeStr) > 2 && typeStr[0] == '[' && typeStr[len(typeStr)-1] == ']' {
		elemTypeStr := typeStr[1 : len(typeStr)-1]
		elemType, err := ParseType(elemTypeStr)
		if err != nil {
			return nil, err
		}
		return Slice(elemType), nil
	}

	// Handle built-in types
	switch typeStr {
	case "string":
		return String(), nil
	case "int", "integer":
		return Int(), nil
	case "float", "number":
		return Float(), nil
	case "bool", "boolean":
		return Bool(), nil
	case "object":
		return Object(Schema{}), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
}

// ParseTypeMap converts a map of field names to type strings into a Schema
// of required fields. A trailing "?" marks a field optional.
// Example: {"api_key": "string", "retries": "int?"}
func ParseTypeMap(typeMap map[string]string) (Schema, error) {
	result := make(Schema)
	for key, typeStr := range typeMap {
		optional := strings.HasSuffix(typeStr, "?")
		t, err := ParseType(strings.TrimSuffix(typeStr, "?"))
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		result[key] = Field{Type: t, Optional: optional}
	}
	return result, nil
}

func normalizeValue(t Type, value any) (any, error) {
	if n, ok := t.(Normalizer); ok {
		return n.Normalize(value)
	}
	if err := t.Validate(value); err != nil {
		return nil, err
	}
	return value, nil
}

func asMap(value any) (map[string]any, bool) {
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		return m, true
	}
	return nil, false
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
