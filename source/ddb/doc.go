/*
Package ddb streams tagged events out of DynamoDB and publishes them back.

A table following the single-table design holds events of many types side
by side. Each item carries its wire name in the EventType attribute; a
Feed reads items page by page and routes each one through a codec table,
so the channel it returns carries ready-to-dispatch tagged values.

Key Features:
  - Fluent query builder for main-table and GSI queries
  - Time-range helpers for RFC3339-keyed sort keys
  - Enhanced streaming with retry logic and progress reporting
  - Macro-based key expansion for publishing (e.g., "PLAYER#{PlayerId}")
  - Automatic EventType stamping and stripping

Reading:

	q := ddb.NewQuery("events").
	    WithPartitionKey("PLAYER#p-1").
	    InLast(24 * time.Hour).
	    Oldest()

	feed, err := q.Feed(client, codec.Default)
	if err != nil {
	    log.Fatal(err)
	}

	stats, err := source.Run(ctx, feed, reg, sink)

Publishing:

	pub := ddb.NewPublisher(client, "events", codec.Default, ddb.KeyMap{
	    "PK": "PLAYER#{PlayerId}",
	    "SK": "{RecordedAt}",
	})
	err := ddb.Publish(ctx, pub, ratingTag, event)

For live round-trip examples, see the integration tests.
*/
package ddb
