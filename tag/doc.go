/*
Package tag provides unforgeable typed tags and the tagged Value container
they box payloads into.

A Tag[T] is a capability: it can box a T into an opaque Value and it is the
only thing that can get the T back out. Identity is by construction, not by
name or payload type: every call to New mints a distinct tag, so two tags
created with the same name and the same type are still unrelated:

	a := tag.New[int]("score")
	b := tag.New[int]("score")

	v := a.Box(42)
	a.Matches(v) // true
	b.Matches(v) // false: same name, same type, different tag

Values travel freely through code that knows nothing about their payload
type. Holders of a Value can read the tag's name and identity for routing
and diagnostics, but recovering the payload requires the original tag:

	if x, ok := a.TryUnbox(v); ok {
	    // x is an int, statically typed
	}

Unbox is the asserting form: it panics when the value was boxed with a
different tag, which indicates a programming error at the call site. Code
that merely tests membership should use Matches or TryUnbox.

The ID type names a tag without granting unbox rights. IDs are comparable
and usable as map keys, which is what the dispatch registry builds on.

The zero Value is inert: it matches no tag, TryUnbox reports false, and
Unbox panics. Boxing the zero value of the payload type is fully supported
and is distinct from the zero Value.
*/
package tag
