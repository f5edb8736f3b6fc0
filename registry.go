/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dispatch

import (
	"sort"
	"sync"
	"time"

	"github.com/suparena/dispatch/errors"
	"github.com/suparena/dispatch/tag"
)

// Handler consumes a payload of type In and produces a result of type Out.
// An error returned by a handler propagates to Dispatch callers unchanged.
type Handler[In, Out any] func(In) (Out, error)

// entry pairs the erased invocation closure with the diagnostic form of the
// tag it was registered under.
type entry[Out any] struct {
	name   string
	invoke func(tag.Value) (Out, error)
}

// Registry routes tagged values to handlers by tag identity. All handlers in
// a registry produce the same result type Out; each handler's payload type is
// fixed at registration and never re-checked at dispatch, because a map hit
// on the value's own tag ID guarantees the stored closure can unbox it.
type Registry[Out any] struct {
	mu       sync.RWMutex
	handlers map[tag.ID]entry[Out]
	recorder Recorder
}

// Option configures a Registry.
type Option[Out any] func(*Registry[Out])

// WithRecorder attaches a Recorder that observes every dispatch outcome.
func WithRecorder[Out any](rec Recorder) Option[Out] {
	return func(r *Registry[Out]) {
		r.recorder = rec
	}
}

// NewRegistry creates an empty registry producing results of type Out.
func NewRegistry[Out any](opts ...Option[Out]) *Registry[Out] {
	r := &Registry[Out]{
		handlers: make(map[tag.ID]entry[Out]),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds fn to the identity of t. Registering again under the same
// tag replaces the previous handler; registrations under distinct tags never
// collide, even when the tags share a name and payload type.
//
// Register is a package-level function because Go methods cannot introduce
// type parameters.
func Register[In, Out any](r *Registry[Out], t tag.Tag[In], fn Handler[In, Out]) error {
	if t.ID().IsZero() {
		return errors.ErrInvalidTag
	}
	if fn == nil {
		return errors.ErrNilHandler
	}

	invoke := func(v tag.Value) (Out, error) {
		return fn(t.Unbox(v))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[t.ID()] = entry[Out]{name: t.String(), invoke: invoke}
	return nil
}

// Dispatch routes v to the handler registered under v's tag.
//
// When no handler is registered for the tag (including for the zero Value),
// Dispatch returns the zero Out and a NoHandlerError. When a handler runs
// and fails, its error is returned unchanged, so callers can tell absence
// from failure with errors.IsNoHandler.
func (r *Registry[Out]) Dispatch(v tag.Value) (Out, error) {
	r.mu.RLock()
	e, ok := r.handlers[v.ID()]
	r.mu.RUnlock()

	if !ok {
		r.observe(v.TagName(), OutcomeNoHandler, 0)
		var zero Out
		return zero, errors.NewNoHandlerError(v.String())
	}

	// The handler runs outside the lock so a slow handler never blocks
	// registration or concurrent dispatches.
	start := time.Now()
	out, err := e.invoke(v)
	if err != nil {
		r.observe(v.TagName(), OutcomeHandlerError, time.Since(start))
		return out, err
	}
	r.observe(v.TagName(), OutcomeHandled, time.Since(start))
	return out, nil
}

// Remove unregisters the handler bound to id. It returns ErrInvalidTag for
// the zero ID and a NoHandlerError when nothing is registered under id.
func (r *Registry[Out]) Remove(id tag.ID) error {
	if id.IsZero() {
		return errors.ErrInvalidTag
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.handlers[id]; !ok {
		return errors.NewNoHandlerError(id.String())
	}
	delete(r.handlers, id)
	return nil
}

// Has reports whether a handler is registered under id.
func (r *Registry[Out]) Has(id tag.ID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.handlers[id]
	return ok
}

// Len returns the number of registered handlers.
func (r *Registry[Out]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.handlers)
}

// Names returns the diagnostic forms of all registered tags in sorted order.
func (r *Registry[Out]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for _, e := range r.handlers {
		names = append(names, e.name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry[Out]) observe(tagName string, outcome Outcome, d time.Duration) {
	if r.recorder != nil {
		r.recorder.Observe(tagName, outcome, d)
	}
}
