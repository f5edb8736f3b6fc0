/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package source

import (
	"context"
)

// Feed emits decoded, tagged events from some backing source until the
// source is exhausted or the context is canceled.
//
// Events returns an error only for setup failures; once the channel is open,
// event-level problems (a decoder failure on one item, a missing wire name)
// travel inside Result.Err so a single bad event never tears down the feed.
// Implementations close the channel when done and must honor ctx.
type Feed interface {
	Events(ctx context.Context, opts ...Option) (<-chan Result, error)
}
