/*
Package sqlite provides a file-backed event journal built on SQLite.

The journal is append-only: each event is stored as a JSON blob together
with its wire name and a monotonically growing sequence number. Replaying
the journal routes every blob back through a codec table, so the channel
a Store emits carries ready-to-dispatch tagged values, exactly like the
DynamoDB feed.

Writing:

	store, err := sqlite.Open("events.db", codec.Default)
	if err != nil {
	    log.Fatal(err)
	}
	defer store.Close()

	seq, err := sqlite.Append(ctx, store, ratingTag, event)

Replaying everything through a registry:

	stats, err := source.Run(ctx, store.From(0), reg, sink)

Resuming where the previous run stopped:

	last, err := store.LastSeq(ctx)
	// ... later ...
	stats, err := source.Run(ctx, store.From(last), reg, sink)

The driver is modernc.org/sqlite, so the package stays pure Go and needs
no cgo toolchain.
*/
package sqlite
