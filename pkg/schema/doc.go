// Package schema provides the typed contracts that guard flow inputs and
// reasoning-service outputs.
//
// A Schema maps field names to Field declarations. Each field carries a Type
// (string, enum, int, float, bool, slices, nested objects or custom
// validators), whether it is optional, and an optional default.
//
// Basic usage:
//
//	in := schema.Schema{
//	    "query":  schema.Required(schema.String()),
//	    "budget": schema.Optional(schema.FloatMin(0)),
//	    "count":  schema.Optional(schema.IntRange(1, 10)).WithDefault(3),
//	}
//
//	normalized, err := schema.Normalize(in, map[string]any{"query": "tacos"})
//	// normalized == {"query": "tacos", "count": 3}
//
// Validation collects every failure into an *AggregateError of
// *ValidationError values, keyed with dotted paths for nested objects.
//
// Schemas can also be declared as data, which is how flow documents describe
// their inputs and outputs:
//
//	specs := []schema.FieldSpec{
//	    {Name: "intent", Type: "string", Required: true, Enum: []string{"plan", "chat"}},
//	    {Name: "preferences", Type: "[string]"},
//	}
//	s, err := schema.FromSpecs(specs)
//
// JSONSchema projects a Schema onto a JSON Schema document for tool and API
// descriptions.
package schema
