// Package loam loads flow definitions from a directory of Markdown documents.
//
// Each document declares its name, schemas and generation settings in YAML
// frontmatter; the body is the prompt template:
//
//	---
//	name: summarizeDayFlow
//	input:
//	  - name: notes
//	    type: string
//	    required: true
//	output:
//	  - name: summary
//	    type: string
//	    required: true
//	---
//	Summarize the day described in these notes: {{notes}}
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/prompt"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
	"github.com/aretw0/loam"
)

// Loader adapts a Loam repository to ports.FlowSource.
type Loader struct {
	Repo *loam.TypedRepository[FlowMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[FlowMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only, strict Loam repository rooted at dir.
// Strict mode keeps numbers as json.Number so integer bounds and defaults
// survive decoding.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[FlowMetadata](repo)), nil
}

// LoadFlows implements ports.FlowSource. Documents are returned sorted by
// flow name; a name defined twice is an error.
func (l *Loader) LoadFlows(ctx context.Context) ([]*domain.Flow, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	out := make([]*domain.Flow, 0, len(docs))
	for _, listed := range docs {
		// List does not carry document bodies
		doc, err := l.Repo.Get(ctx, trimExtension(listed.ID))
		if err != nil {
			return nil, fmt.Errorf("loam get failed for %s: %w", listed.ID, err)
		}
		flow, err := buildFlow(doc.ID, doc.Data, doc.Content)
		if err != nil {
			return nil, fmt.Errorf("flow document %s: %w", doc.ID, err)
		}
		if existing, ok := seen[flow.Name]; ok {
			return nil, fmt.Errorf("collision detected: flow '%s' is defined in both '%s' and '%s'", flow.Name, existing, doc.ID)
		}
		seen[flow.Name] = doc.ID
		out = append(out, flow)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// LoadFlow loads a single document by ID (the file name with or without
// extension).
func (l *Loader) LoadFlow(ctx context.Context, id string) (*domain.Flow, error) {
	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
	}
	return buildFlow(doc.ID, doc.Data, doc.Content)
}

func buildFlow(docID string, meta FlowMetadata, body string) (*domain.Flow, error) {
	name := meta.Name
	if name == "" {
		name = trimExtension(docID)
	}

	input, err := schema.FromSpecs(meta.Input)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	output, err := schema.FromSpecs(meta.Output)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	tmpl, err := prompt.Parse(strings.TrimSpace(body))
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}

	flow := &domain.Flow{
		Name:         name,
		Description:  meta.Description,
		InputSchema:  input,
		OutputSchema: output,
		Prompt:       tmpl,
		Config: domain.GenerationConfig{
			Model:           meta.Model,
			MaxOutputTokens: int32(meta.MaxOutputTokens),
		},
	}
	if meta.Temperature != nil {
		t := float32(*meta.Temperature)
		flow.Config.Temperature = &t
	}
	if meta.System != "" {
		if flow.System, err = prompt.Parse(meta.System); err != nil {
			return nil, fmt.Errorf("system: %w", err)
		}
	}

	if err := flow.Validate(); err != nil {
		return nil, err
	}
	return flow, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
