/*
Package dispatch provides a type-safe, open dispatch registry for Go
applications, routing type-erased tagged values to statically typed handlers
by unforgeable tag identity.

The library follows a define → register → dispatch workflow:
  - Define: mint tags for the payload types that flow through the system
  - Register: bind a typed handler to each tag (at wiring time or later)
  - Dispatch: route opaque values to whichever handler owns their tag

Key Features:
  - Type-safe handlers using Go generics, no type switches at call sites
  - Identity-based routing: same-name, same-type tags never collide
  - Open registration: new payload kinds plug in without touching dispatch
  - Absence vs failure kept distinct (no-handler errors never shadow
    handler errors)
  - Wire decoding from DynamoDB items and JSON documents via codec tables
  - Streaming sources with retry logic and progress tracking
  - Process-local dispatch metrics via expvar
  - Semantic error types for better error handling
  - Thread-safe registries and comprehensive mock implementations

Basic Usage:

	// Mint tags for the payloads the system routes
	matchTag := tag.New[MatchRecorded]("match")
	scoreTag := tag.New[RatingAdjusted]("score")

	// Create a registry producing string results
	reg := dispatch.NewRegistry[string]()

	// Bind typed handlers; no casts, no type switches
	dispatch.Register(reg, matchTag, func(m MatchRecorded) (string, error) {
	    return "match " + m.MatchID, nil
	})
	dispatch.Register(reg, scoreTag, func(r RatingAdjusted) (string, error) {
	    return "rating " + r.PlayerID, nil
	})

	// Values travel type-erased and route by identity
	out, err := reg.Dispatch(matchTag.Box(MatchRecorded{MatchID: "m-17"}))

Applications that dispatch toward several result types can wire a Hub, which
lazily manages one registry per result type:

	hub := dispatch.NewHub()
	dispatch.RegisterHandler(hub, matchTag, persistMatch)   // Out = Receipt
	dispatch.RegisterHandler(hub, matchTag, describeMatch)  // Out = string

For more information, see the documentation at https://github.com/suparena/dispatch
*/
package dispatch
