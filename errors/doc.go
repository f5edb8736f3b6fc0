/*
Package errors provides semantic error types for the dispatch library.

The package defines the error kinds the library distinguishes, each with a
sentinel checkable through the standard errors.Is() function or a provided
helper.

Common Errors:

	var (
	    ErrNoHandler        = errors.New("no handler registered for tag")
	    ErrNilHandler       = errors.New("handler is nil")
	    ErrInvalidTag       = errors.New("invalid tag")
	    ErrNoDecoder        = errors.New("no decoder registered for name")
	    ErrDuplicateDecoder = errors.New("decoder already registered for name")
	    ErrDecodeFailed     = errors.New("decode failed")
	)

The central distinction is between absence and failure. A dispatch that finds
no handler for a value's tag reports ErrNoHandler; an error returned by a
handler that did run is NOT wrapped and propagates to the caller unchanged.
Callers can therefore rely on:

	out, err := reg.Dispatch(v)
	if err != nil {
	    if errors.IsNoHandler(err) {
	        // nothing was registered for v's tag; no handler ran
	    } else {
	        // a handler ran and failed; err is the handler's own error
	    }
	}

Decoder errors follow the same split: ErrNoDecoder means a wire name had no
registered decoder, while DecodeError wraps a decoder that ran and failed,
keeping the cause reachable through errors.Unwrap.

Usage:

	err := errors.NewNoDecoderError("RATING")
	err := errors.NewDecodeError("RATING", cause)
	if errors.IsNoDecoder(err) { ... }

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
