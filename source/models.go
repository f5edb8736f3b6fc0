/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package source

import (
	"time"

	"github.com/suparena/dispatch/tag"
)

// Result represents a single event emitted by a feed.
type Result struct {
	Value    tag.Value // Decoded, tagged payload (zero when Err is set)
	WireName string    // Wire name the event carried (like "RATING")
	Err      error     // Event-specific error, if any
	Meta     Meta      // Metadata about this event
}

// Meta contains metadata about a feed event.
type Meta struct {
	Index     int64     // Event index in the feed (0-based)
	Page      int       // Source page number (1-based)
	Timestamp time.Time // When the event was read
}

// Options configures feed behavior
type Options struct {
	BufferSize      int              // Channel buffer size (default: 100)
	MaxRetries      int              // Retry attempts for transient errors (default: 3)
	RetryBackoff    time.Duration    // Backoff between retries (default: 1s)
	PageSize        int32            // Events per source page (default: 100)
	ProgressHandler func(Progress)   // Optional progress callback
	ErrorHandler    func(error) bool // Return true to continue, false to stop
}

// Progress tracks feed progress
type Progress struct {
	ItemsProcessed int64     // Total events emitted
	PagesProcessed int       // Total pages read
	Errors         []error   // Accumulated non-fatal errors
	StartTime      time.Time // When the feed started
	CurrentRate    float64   // Events per second
}

// Option is a functional option for configuring a feed
type Option func(*Options)

// DefaultOptions returns default feed options
func DefaultOptions() Options {
	return Options{
		BufferSize:   100,
		MaxRetries:   3,
		RetryBackoff: time.Second,
		PageSize:     100,
	}
}

// ApplyOptions folds opts over the defaults.
func ApplyOptions(opts ...Option) Options {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}

// WithBufferSize sets the channel buffer size
func WithBufferSize(size int) Option {
	return func(opts *Options) {
		opts.BufferSize = size
	}
}

// WithMaxRetries sets the maximum retry attempts
func WithMaxRetries(retries int) Option {
	return func(opts *Options) {
		opts.MaxRetries = retries
	}
}

// WithRetryBackoff sets the retry backoff duration
func WithRetryBackoff(backoff time.Duration) Option {
	return func(opts *Options) {
		opts.RetryBackoff = backoff
	}
}

// WithPageSize sets the source page size
func WithPageSize(size int32) Option {
	return func(opts *Options) {
		opts.PageSize = size
	}
}

// WithProgressHandler sets a progress callback
func WithProgressHandler(handler func(Progress)) Option {
	return func(opts *Options) {
		opts.ProgressHandler = handler
	}
}

// WithErrorHandler sets an error handler that can decide whether to continue
func WithErrorHandler(handler func(error) bool) Option {
	return func(opts *Options) {
		opts.ErrorHandler = handler
	}
}
