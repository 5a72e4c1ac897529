// Package middleware wraps a ProfileStore with cross-cutting behavior such as
// encryption at rest.
package middleware

import "github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"

// Middleware allows wrapping a ProfileStore to add behavior.
type Middleware func(ports.ProfileStore) ports.ProfileStore

// Chain applies middlewares so the first one is the outermost.
func Chain(store ports.ProfileStore, mws ...Middleware) ports.ProfileStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
