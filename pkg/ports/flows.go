package ports

import (
	"context"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
)

// FlowInvoker runs a registered flow by name.
type FlowInvoker interface {
	Invoke(ctx context.Context, name string, input map[string]any) (*domain.Result, error)
}

// FlowCatalog exposes the registered flow definitions for introspection.
type FlowCatalog interface {
	Lookup(name string) (*domain.Flow, error)
	List() []*domain.Flow
}

// FlowSource loads flow definitions from an external medium.
type FlowSource interface {
	LoadFlows(ctx context.Context) ([]*domain.Flow, error)
}
