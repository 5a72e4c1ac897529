package gemini

import (
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
	"google.golang.org/genai"
)

// ToGenaiSchema converts a flow schema into the controlled-generation schema
// understood by Gemini. Custom types degrade to an unconstrained string.
func ToGenaiSchema(s schema.Schema) *genai.Schema {
	out := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(s)),
	}
	for _, key := range s.Keys() {
		field := s[key]
		prop := typeSchema(field.Type)
		prop.Description = field.Description
		out.Properties[key] = prop
		out.PropertyOrdering = append(out.PropertyOrdering, key)
	}
	out.Required = s.RequiredKeys()
	return out
}

func typeSchema(t schema.Type) *genai.Schema {
	switch typ := t.(type) {
	case *schema.EnumType:
		return &genai.Schema{Type: genai.TypeString, Enum: typ.Values()}
	case *schema.IntType:
		return &genai.Schema{Type: genai.TypeInteger, Minimum: typ.Min, Maximum: typ.Max}
	case *schema.FloatType:
		return &genai.Schema{Type: genai.TypeNumber, Minimum: typ.Min, Maximum: typ.Max}
	case *schema.BoolType:
		return &genai.Schema{Type: genai.TypeBoolean}
	case *schema.SliceType:
		return &genai.Schema{Type: genai.TypeArray, Items: typeSchema(typ.Elem())}
	case *schema.ObjectType:
		if len(typ.Fields()) == 0 {
			return &genai.Schema{Type: genai.TypeObject}
		}
		return ToGenaiSchema(typ.Fields())
	}
	return &genai.Schema{Type: genai.TypeString}
}
