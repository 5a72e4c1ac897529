package http

import (
	"encoding/json"
	"fmt"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
	"github.com/getkin/kin-openapi/openapi3"
)

// BuildOpenAPI describes the catalog as an OpenAPI 3 document: one
// POST /flows/<name> operation per flow, with the flow's input schema as the
// request body and its output schema inside the success Outcome.
func BuildOpenAPI(catalog ports.FlowCatalog, version string) *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "Life Assistant API",
			Description: "Schema-validated prompt flows of the life assistant.",
			Version:     APIVersion,
			Extensions:  map[string]any{"x-app-version": version},
		},
		Paths: openapi3.NewPaths(),
	}

	doc.Paths.Set("/health", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "getHealth",
			Summary:     "Liveness probe",
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(200, &openapi3.ResponseRef{
					Value: openapi3.NewResponse().
						WithDescription("Service is up").
						WithJSONSchema(openapi3.NewObjectSchema().WithProperty("status", openapi3.NewStringSchema())),
				}),
			),
		},
	})

	if catalog == nil {
		return doc
	}
	for _, f := range catalog.List() {
		input, err := toOpenAPISchema(f.InputSchema)
		if err != nil {
			input = openapi3.NewObjectSchema()
		}
		output, err := toOpenAPISchema(f.OutputSchema)
		if err != nil {
			output = openapi3.NewObjectSchema()
		}

		success := openapi3.NewObjectSchema().
			WithProperty("ok", openapi3.NewBoolSchema()).
			WithProperty("flow", openapi3.NewStringSchema()).
			WithProperty("invocation_id", openapi3.NewStringSchema()).
			WithProperty("output", output)

		doc.Paths.Set("/flows/"+f.Name, &openapi3.PathItem{
			Post: &openapi3.Operation{
				OperationID: f.Name,
				Summary:     f.Description,
				Tags:        []string{"flows"},
				RequestBody: &openapi3.RequestBodyRef{
					Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(input),
				},
				Responses: openapi3.NewResponses(
					openapi3.WithStatus(200, &openapi3.ResponseRef{
						Value: openapi3.NewResponse().WithDescription("Validated output").WithJSONSchema(success),
					}),
					openapi3.WithStatus(400, &openapi3.ResponseRef{
						Value: openapi3.NewResponse().WithDescription("Input does not match the input schema").WithJSONSchema(failureSchema()),
					}),
					openapi3.WithStatus(502, &openapi3.ResponseRef{
						Value: openapi3.NewResponse().WithDescription("Reasoning service failed or answered off-schema").WithJSONSchema(failureSchema()),
					}),
				),
			},
		})
	}
	return doc
}

func failureSchema() *openapi3.Schema {
	body := openapi3.NewObjectSchema().
		WithProperty("kind", openapi3.NewStringSchema().WithEnum("unknown_flow", "invalid_input", "generation_failed", "invalid_output")).
		WithProperty("message", openapi3.NewStringSchema()).
		WithProperty("violations", openapi3.NewObjectSchema().WithAnyAdditionalProperties())
	return openapi3.NewObjectSchema().
		WithProperty("ok", openapi3.NewBoolSchema()).
		WithProperty("flow", openapi3.NewStringSchema()).
		WithProperty("error", body)
}

// toOpenAPISchema converts through the JSON Schema projection, which the
// OpenAPI schema object is a dialect of.
func toOpenAPISchema(s schema.Schema) (*openapi3.Schema, error) {
	data, err := json.Marshal(schema.JSONSchema(s))
	if err != nil {
		return nil, err
	}
	out := openapi3.NewSchema()
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("openapi schema: %w", err)
	}
	return out, nil
}
