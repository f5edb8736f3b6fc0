/*
Package source defines the feed abstraction that carries tagged events from
storage backends into dispatch registries.

A Feed emits Result values over a channel: each Result holds a decoded,
tagged payload (or an event-level error), the wire name it carried, and
positional metadata. Backends live in subpackages: ddb streams DynamoDB
query pages, sqlite replays a local event log, and mock fabricates feeds for
tests.

Feeds are configured through functional options:

	events, err := feed.Events(ctx,
	    source.WithBufferSize(500),
	    source.WithMaxRetries(5),
	    source.WithProgressHandler(func(p source.Progress) {
	        log.Printf("processed %d events (%.0f/s)", p.ItemsProcessed, p.CurrentRate)
	    }),
	)

Run connects a feed to a registry and accounts for every event:

	stats, err := source.Run(ctx, feed, reg, func(out Receipt) error {
	    return receipts.Append(out)
	})
	// stats.Dispatched, stats.NoHandler, stats.HandlerErrors, stats.DecodeErrors

By default Run keeps going past per-event problems and reports them in
Stats, matching how long pagination runs are expected to survive isolated
bad items. An ErrorHandler option turns chosen error classes fatal.
*/
package source
