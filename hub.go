/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dispatch

import (
	"reflect"
	"sync"

	"github.com/suparena/dispatch/tag"
)

// Hub manages Registry instances for different result types, giving an
// application one injectable wiring point instead of a registry per result
// type threaded individually. A Hub is not a global; construct one and pass
// it where needed.
type Hub struct {
	mu         sync.RWMutex
	registries map[reflect.Type]interface{}
	recorder   Recorder
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithHubRecorder attaches a Recorder inherited by every registry the hub
// creates.
func WithHubRecorder(rec Recorder) HubOption {
	return func(h *Hub) {
		h.recorder = rec
	}
}

// NewHub creates a new Hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		registries: make(map[reflect.Type]interface{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegistryFor returns the hub's registry for result type Out, creating it if
// necessary. Repeated calls with the same Out return the same registry.
func RegistryFor[Out any](h *Hub) *Registry[Out] {
	h.mu.Lock()
	defer h.mu.Unlock()

	typ := reflect.TypeFor[Out]()

	if reg, exists := h.registries[typ]; exists {
		return reg.(*Registry[Out])
	}

	// Create new registry for this result type
	var opts []Option[Out]
	if h.recorder != nil {
		opts = append(opts, WithRecorder[Out](h.recorder))
	}
	newReg := NewRegistry[Out](opts...)
	h.registries[typ] = newReg
	return newReg
}

// Convenience functions for common operations

// RegisterHandler is a convenience function to bind fn under t in the hub's
// registry for Out.
func RegisterHandler[In, Out any](h *Hub, t tag.Tag[In], fn Handler[In, Out]) error {
	reg := RegistryFor[Out](h)
	return Register(reg, t, fn)
}

// DispatchAs is a convenience function to route v through the hub's registry
// for Out.
func DispatchAs[Out any](h *Hub, v tag.Value) (Out, error) {
	reg := RegistryFor[Out](h)
	return reg.Dispatch(v)
}

// RemoveHandler is a convenience function to unregister the handler bound to
// id in the hub's registry for Out.
func RemoveHandler[Out any](h *Hub, id tag.ID) error {
	reg := RegistryFor[Out](h)
	return reg.Remove(id)
}

// HandlerNames is a convenience function to list the registered tags in the
// hub's registry for Out.
func HandlerNames[Out any](h *Hub) []string {
	reg := RegistryFor[Out](h)
	return reg.Names()
}
