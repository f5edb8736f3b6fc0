/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tag

import (
	"fmt"

	"github.com/google/uuid"
)

// header is the identity record shared by a Tag and every Value boxed with
// it. Identity is the header pointer itself: two tags are the same tag only
// when they share a header, never because their names or payload types agree.
type header struct {
	name string
	uid  string
}

// Tag is a typed capability for boxing values of T and recovering them later.
//
// Tags are created with New and are unforgeable: a Value reveals the name and
// uid of the tag that boxed it, but only the original Tag (or a copy of it)
// can recover the payload. Copies of a Tag share identity with the original.
type Tag[T any] struct {
	h *header
}

// ID names a tag without granting unbox rights. IDs are comparable and safe
// to use as map keys. The zero ID identifies nothing.
type ID struct {
	h *header
}

// Value is a payload boxed by a Tag. The zero Value carries no tag and no
// payload: it matches no tag and unboxes to nothing.
type Value struct {
	h *header
	v any
}

// New creates a fresh tag with the given diagnostic name. Every call returns
// a distinct identity, so two tags created with the same name and type are
// unrelated and neither can unbox values boxed by the other.
func New[T any](name string) Tag[T] {
	return Tag[T]{h: &header{name: name, uid: uuid.NewString()}}
}

// ID returns the tag's identity.
func (t Tag[T]) ID() ID { return ID{h: t.h} }

// Name returns the diagnostic name the tag was created with.
func (t Tag[T]) Name() string {
	if t.h == nil {
		return ""
	}
	return t.h.name
}

// UID returns the tag's unique correlation string.
func (t Tag[T]) UID() string {
	if t.h == nil {
		return ""
	}
	return t.h.uid
}

// String returns a short diagnostic form such as "tag(match#1b9d6bcd)".
func (t Tag[T]) String() string {
	if t.h == nil {
		return "tag(zero)"
	}
	return fmt.Sprintf("tag(%s#%s)", t.h.name, shortUID(t.h.uid))
}

// Box pairs x with the tag's identity. Boxing the zero value of T is valid;
// boxing with the zero Tag is a programming error and panics.
func (t Tag[T]) Box(x T) Value {
	if t.h == nil {
		panic("tag: Box called on zero Tag")
	}
	return Value{h: t.h, v: x}
}

// Matches reports whether v was boxed with this tag.
func (t Tag[T]) Matches(v Value) bool {
	return t.h != nil && t.h == v.h
}

// Unbox recovers the payload of v. It panics when v was boxed with a
// different tag or is the zero Value; callers that cannot guarantee the
// pairing should use TryUnbox instead.
func (t Tag[T]) Unbox(v Value) T {
	if !t.Matches(v) {
		panic(fmt.Sprintf("tag: cannot unbox %s with %s", v, t))
	}
	x, _ := v.v.(T)
	return x
}

// TryUnbox recovers the payload of v when v was boxed with this tag. It
// returns the zero value of T and false otherwise, including for the zero
// Value.
func (t Tag[T]) TryUnbox(v Value) (T, bool) {
	if !t.Matches(v) {
		var zero T
		return zero, false
	}
	x, _ := v.v.(T)
	return x, true
}

// IsZero reports whether the ID identifies nothing.
func (id ID) IsZero() bool { return id.h == nil }

// Name returns the diagnostic name of the tag the ID belongs to.
func (id ID) Name() string {
	if id.h == nil {
		return ""
	}
	return id.h.name
}

// String returns a short diagnostic form such as "id(match#1b9d6bcd)".
func (id ID) String() string {
	if id.h == nil {
		return "id(zero)"
	}
	return fmt.Sprintf("id(%s#%s)", id.h.name, shortUID(id.h.uid))
}

// ID returns the identity of the tag that boxed v, or the zero ID for the
// zero Value.
func (v Value) ID() ID { return ID{h: v.h} }

// TagName returns the diagnostic name of the tag that boxed v.
func (v Value) TagName() string {
	if v.h == nil {
		return ""
	}
	return v.h.name
}

// IsZero reports whether v is the zero Value.
func (v Value) IsZero() bool { return v.h == nil }

// String returns a short diagnostic form such as "value(match#1b9d6bcd)".
func (v Value) String() string {
	if v.h == nil {
		return "value(zero)"
	}
	return fmt.Sprintf("value(%s#%s)", v.h.name, shortUID(v.h.uid))
}

func shortUID(uid string) string {
	if len(uid) > 8 {
		return uid[:8]
	}
	return uid
}
