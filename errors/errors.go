/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNoHandler is returned when dispatch finds no handler for a value's tag
	ErrNoHandler = errors.New("no handler registered for tag")

	// ErrNilHandler is returned when registering a nil handler
	ErrNilHandler = errors.New("handler is nil")

	// ErrInvalidTag is returned when an operation receives the zero tag or zero tag ID
	ErrInvalidTag = errors.New("invalid tag")

	// ErrNoDecoder is returned when no decoder is registered for a wire name
	ErrNoDecoder = errors.New("no decoder registered for name")

	// ErrNilDecoder is returned when registering a nil decoder function
	ErrNilDecoder = errors.New("decoder function is nil")

	// ErrInvalidName is returned when a wire name is empty
	ErrInvalidName = errors.New("wire name must not be empty")

	// ErrDuplicateDecoder is returned when registering a decoder name twice
	ErrDuplicateDecoder = errors.New("decoder already registered for name")

	// ErrDecodeFailed is returned when a registered decoder fails on an item
	ErrDecodeFailed = errors.New("decode failed")
)

// NoHandlerError reports a dispatch that found no handler for the value's tag.
// Tag carries the diagnostic form of the tag that went unhandled.
type NoHandlerError struct {
	Tag string
}

func (e *NoHandlerError) Error() string {
	return fmt.Sprintf("no handler registered for %s", e.Tag)
}

func (e *NoHandlerError) Is(target error) bool {
	return target == ErrNoHandler
}

// NoDecoderError reports a wire name with no registered decoder.
type NoDecoderError struct {
	Name string
}

func (e *NoDecoderError) Error() string {
	return fmt.Sprintf("no decoder registered for name %q", e.Name)
}

func (e *NoDecoderError) Is(target error) bool {
	return target == ErrNoDecoder
}

// DuplicateDecoderError reports an attempt to register a wire name twice.
type DuplicateDecoderError struct {
	Name string
}

func (e *DuplicateDecoderError) Error() string {
	return fmt.Sprintf("decoder already registered for name %q", e.Name)
}

func (e *DuplicateDecoderError) Is(target error) bool {
	return target == ErrDuplicateDecoder
}

// DecodeError reports a decoder that failed on a concrete item. It wraps the
// decoder's own error, which remains reachable through errors.Unwrap.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Name, e.Err)
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecodeFailed
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors

// NewNoHandlerError creates a new NoHandlerError
func NewNoHandlerError(tag string) error {
	return &NoHandlerError{Tag: tag}
}

// NewNoDecoderError creates a new NoDecoderError
func NewNoDecoderError(name string) error {
	return &NoDecoderError{Name: name}
}

// NewDuplicateDecoderError creates a new DuplicateDecoderError
func NewDuplicateDecoderError(name string) error {
	return &DuplicateDecoderError{Name: name}
}

// NewDecodeError creates a new DecodeError wrapping err
func NewDecodeError(name string, err error) error {
	return &DecodeError{Name: name, Err: err}
}

// IsNoHandler checks if an error is a no handler error
func IsNoHandler(err error) bool {
	return errors.Is(err, ErrNoHandler)
}

// IsNoDecoder checks if an error is a no decoder error
func IsNoDecoder(err error) bool {
	return errors.Is(err, ErrNoDecoder)
}

// IsDuplicateDecoder checks if an error is a duplicate decoder error
func IsDuplicateDecoder(err error) bool {
	return errors.Is(err, ErrDuplicateDecoder)
}

// IsDecodeFailed checks if an error is a decode failure
func IsDecodeFailed(err error) bool {
	return errors.Is(err, ErrDecodeFailed)
}
