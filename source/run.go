/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package source

import (
	"context"

	"github.com/suparena/dispatch"
	"github.com/suparena/dispatch/errors"
)

// Stats summarizes one Run over a feed.
type Stats struct {
	Dispatched    int64 // Events whose handler ran and returned nil
	NoHandler     int64 // Events whose tag had no registered handler
	HandlerErrors int64 // Events whose handler ran and failed
	DecodeErrors  int64 // Events that arrived broken from the feed
}

// Total returns the number of events the run consumed.
func (s Stats) Total() int64 {
	return s.Dispatched + s.NoHandler + s.HandlerErrors + s.DecodeErrors
}

// Run drains feed into reg and invokes sink with every successfully handled
// output. A nil sink discards outputs.
//
// Per-event problems are counted in Stats and, by default, do not stop the
// run; install an ErrorHandler option returning false to stop on a class of
// errors, in which case Run returns that error alongside the partial stats.
// A sink error always stops the run. Cancellation returns ctx.Err().
//
// Run is a package-level function because Go methods cannot introduce type
// parameters.
func Run[Out any](ctx context.Context, feed Feed, reg *dispatch.Registry[Out], sink func(Out) error, opts ...Option) (Stats, error) {
	options := ApplyOptions(opts...)

	events, err := feed.Events(ctx, opts...)
	if err != nil {
		return Stats{}, err
	}

	var stats Stats
	for {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		case res, ok := <-events:
			if !ok {
				return stats, nil
			}

			if res.Err != nil {
				stats.DecodeErrors++
				if !continueOn(options, res.Err) {
					return stats, res.Err
				}
				continue
			}

			out, derr := reg.Dispatch(res.Value)
			switch {
			case derr == nil:
				stats.Dispatched++
				if sink != nil {
					if serr := sink(out); serr != nil {
						return stats, serr
					}
				}
			case errors.IsNoHandler(derr):
				stats.NoHandler++
				if !continueOn(options, derr) {
					return stats, derr
				}
			default:
				stats.HandlerErrors++
				if !continueOn(options, derr) {
					return stats, derr
				}
			}
		}
	}
}

// continueOn consults the configured error handler; with none installed the
// run keeps going and the error is only accounted in Stats.
func continueOn(options Options, err error) bool {
	if options.ErrorHandler == nil {
		return true
	}
	return options.ErrorHandler(err)
}
