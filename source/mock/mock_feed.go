/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides a mock implementation of the source.Feed interface for testing
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/suparena/dispatch/source"
	"github.com/suparena/dispatch/tag"
)

// Feed is a mock implementation of source.Feed for testing
type Feed struct {
	mu         sync.RWMutex
	results    []source.Result
	setupErr   error
	delay      time.Duration
	eventsFunc func(ctx context.Context, opts ...source.Option) (<-chan source.Result, error)
}

// New creates a new mock Feed
func New() *Feed {
	return &Feed{}
}

// WithResults sets the results the feed will emit, in order
func (m *Feed) WithResults(results ...source.Result) *Feed {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, results...)
	return m
}

// WithValues appends one result per tagged value, numbering Meta.Index in
// emission order
func (m *Feed) WithValues(values ...tag.Value) *Feed {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range values {
		m.results = append(m.results, source.Result{
			Value:    v,
			WireName: v.TagName(),
			Meta:     Meta(len(m.results)),
		})
	}
	return m
}

// WithEventError appends a result carrying an event-level error
func (m *Feed) WithEventError(err error) *Feed {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, source.Result{
		Err:  err,
		Meta: Meta(len(m.results)),
	})
	return m
}

// WithSetupError makes Events fail before emitting anything
func (m *Feed) WithSetupError(err error) *Feed {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setupErr = err
	return m
}

// WithDelay inserts a pause before each emitted event, to exercise
// cancellation paths
func (m *Feed) WithDelay(d time.Duration) *Feed {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
	return m
}

// WithEventsFunc replaces the Events implementation entirely
func (m *Feed) WithEventsFunc(fn func(ctx context.Context, opts ...source.Option) (<-chan source.Result, error)) *Feed {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsFunc = fn
	return m
}

// Meta builds feed metadata for the i-th emitted event
func Meta(i int) source.Meta {
	return source.Meta{
		Index:     int64(i),
		Page:      1,
		Timestamp: time.Now(),
	}
}

// Events implements source.Feed
func (m *Feed) Events(ctx context.Context, opts ...source.Option) (<-chan source.Result, error) {
	m.mu.RLock()
	if m.eventsFunc != nil {
		fn := m.eventsFunc
		m.mu.RUnlock()
		return fn(ctx, opts...)
	}
	if m.setupErr != nil {
		err := m.setupErr
		m.mu.RUnlock()
		return nil, err
	}
	results := make([]source.Result, len(m.results))
	copy(results, m.results)
	delay := m.delay
	m.mu.RUnlock()

	options := source.ApplyOptions(opts...)
	ch := make(chan source.Result, options.BufferSize)

	go func() {
		defer close(ch)
		for _, r := range results {
			if delay > 0 {
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					return
				}
			}
			select {
			case ch <- r:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}
