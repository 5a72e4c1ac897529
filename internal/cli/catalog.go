package cli

import (
	"context"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/adapters/loam"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/flows"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/registry"
)

// LoadCatalog builds the sealed flow catalog (built-ins plus the documents
// in dir) without a reasoning service, for commands that only inspect flows.
func LoadCatalog(ctx context.Context, dir string) (*registry.Registry, error) {
	reg := registry.New()
	if err := flows.RegisterBuiltins(reg); err != nil {
		return nil, err
	}
	if dir != "" {
		loader, err := loam.Open(dir)
		if err != nil {
			return nil, err
		}
		loaded, err := loader.LoadFlows(ctx)
		if err != nil {
			return nil, err
		}
		for _, f := range loaded {
			if err := reg.Register(f); err != nil {
				return nil, err
			}
		}
	}
	reg.Seal()
	return reg, nil
}

// FlowReport describes one valid flow document.
type FlowReport struct {
	Name string
	// Undeclared lists template fields the input schema does not declare.
	Undeclared []string
}

// ValidateFlows loads every document in dir as the App would, including the
// check against built-in names, and reports each flow. Any document that
// would fail to load is an error.
func ValidateFlows(ctx context.Context, dir string) ([]FlowReport, error) {
	loader, err := loam.Open(dir)
	if err != nil {
		return nil, err
	}
	loaded, err := loader.LoadFlows(ctx)
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	if err := flows.RegisterBuiltins(reg); err != nil {
		return nil, err
	}

	reports := make([]FlowReport, 0, len(loaded))
	for _, f := range loaded {
		if err := reg.Register(f); err != nil {
			return nil, err
		}
		reports = append(reports, FlowReport{Name: f.Name, Undeclared: f.UndeclaredFields()})
	}
	return reports, nil
}
