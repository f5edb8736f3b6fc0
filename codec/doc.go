/*
Package codec maps wire names to decoders that produce tagged values.

Items arriving from storage carry a wire name (the EntityType attribute on a
DynamoDB item, or the entity_type column of an event row) instead of a Go
type. A Table resolves that name to a decoder, and the decoder yields a
tag.Value ready for dispatch:

	v, err := table.DecodeItem("RATING", item) // DynamoDB attribute map
	v, err := table.DecodeJSON("RATING", data) // JSON document

Bindings are usually established by generated code at init time:

	var RatingTag = tag.New[RatingAdjusted]("RATING")

	func init() {
	    codec.MustBind(codec.Default, "RATING", RatingTag)
	}

MustBind registers typed decoders for both supported formats (restrict with
codec.FormatDDB or codec.FormatJSON) and records the reverse binding, so
encoders can recover the wire name for a tag with NameFor.

Hand-written decoders plug in through RegisterDDB and RegisterJSON when the
decode logic needs more than a plain unmarshal, such as schema migration or
attribute renaming.

Unknown names surface as NoDecoderError and a decoder that runs and fails
surfaces as DecodeError, mirroring the registry's distinction between absence
and failure.

The package-level Default table serves generated registrations; applications
remain free to construct and inject their own tables.
*/
package codec
