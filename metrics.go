/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dispatch

import (
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Outcome classifies the result of a single dispatch.
type Outcome string

const (
	// OutcomeHandled marks a dispatch whose handler ran and returned nil.
	OutcomeHandled Outcome = "handled"

	// OutcomeNoHandler marks a dispatch that found no handler for the value's tag.
	OutcomeNoHandler Outcome = "no_handler"

	// OutcomeHandlerError marks a dispatch whose handler ran and returned an error.
	OutcomeHandlerError Outcome = "handler_error"
)

// Recorder observes dispatch outcomes. Implementations must be safe for
// concurrent use; Observe is called on the dispatching goroutine.
type Recorder interface {
	Observe(tag string, outcome Outcome, d time.Duration)
}

var expvarSeq uint64

// ExpvarRecorder aggregates dispatch outcomes and publishes them via expvar,
// for deployments that prefer process-local metrics without external
// dependencies. It maintains cumulative handler time in milliseconds and an
// outcome counter per tag name.
type ExpvarRecorder struct {
	name      string
	mu        sync.Mutex
	durations map[string]float64
	outcomes  map[string]map[Outcome]int64
}

// ExpvarSnapshot captures a read-only view of the recorded dispatch metrics.
type ExpvarSnapshot struct {
	DurationsMS map[string]float64           `json:"durations_ms_total"`
	Outcomes    map[string]map[Outcome]int64 `json:"outcomes_total"`
	RecordedAt  time.Time                    `json:"recorded_at"`
}

// NewExpvarRecorder constructs an expvar-backed recorder and publishes it
// under the supplied name. When name is empty, a unique identifier is
// generated; expvar panics on duplicate names, so reuse across recorders is
// the caller's responsibility.
func NewExpvarRecorder(name string) *ExpvarRecorder {
	if name == "" {
		id := atomic.AddUint64(&expvarSeq, 1)
		name = fmt.Sprintf("dispatch_metrics_%d", id)
	}
	rec := &ExpvarRecorder{
		name:      name,
		durations: make(map[string]float64),
		outcomes:  make(map[string]map[Outcome]int64),
	}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar export name associated with the recorder.
func (r *ExpvarRecorder) Name() string {
	return r.name
}

// Snapshot returns an immutable copy of the aggregated metrics.
func (r *ExpvarRecorder) Snapshot() ExpvarSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	durations := make(map[string]float64, len(r.durations))
	for tagName, total := range r.durations {
		durations[tagName] = total
	}

	outcomes := make(map[string]map[Outcome]int64, len(r.outcomes))
	for tagName, counts := range r.outcomes {
		cpy := make(map[Outcome]int64, len(counts))
		for outcome, count := range counts {
			cpy[outcome] = count
		}
		outcomes[tagName] = cpy
	}

	return ExpvarSnapshot{
		DurationsMS: durations,
		Outcomes:    outcomes,
		RecordedAt:  time.Now().UTC(),
	}
}

// Observe implements Recorder. Dispatches of the zero Value carry no tag
// name and are aggregated under "(unnamed)".
func (r *ExpvarRecorder) Observe(tag string, outcome Outcome, d time.Duration) {
	if tag == "" {
		tag = "(unnamed)"
	}
	ms := float64(d) / float64(time.Millisecond)

	r.mu.Lock()
	r.durations[tag] += ms
	if _, ok := r.outcomes[tag]; !ok {
		r.outcomes[tag] = make(map[Outcome]int64, 3)
	}
	r.outcomes[tag][outcome]++
	r.mu.Unlock()
}
