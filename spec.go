package ebml

// TagDataType is the closed set of payload interpretations an EBML leaf (or
// master) can carry. It is injected per tag ID by a Specification; this
// package never hard-codes which IDs map to which type.
type TagDataType int

const (
	// Master marks a tag whose payload is itself a sequence of tags.
	Master TagDataType = iota
	// UnsignedInt marks a 0-8 byte big-endian unsigned integer.
	UnsignedInt
	// Integer marks a 0-8 byte big-endian signed, sign-extended integer.
	Integer
	// Float marks a 0, 4, or 8 byte IEEE-754 float.
	Float
	// Utf8 marks a well-formed UTF-8 byte sequence.
	Utf8
	// Binary marks an opaque byte sequence (also used for date values,
	// which this package never decodes further).
	Binary
)

func (t TagDataType) String() string {
	switch t {
	case Master:
		return "Master"
	case UnsignedInt:
		return "UnsignedInt"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Utf8:
		return "Utf8"
	case Binary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// Specification maps a tag ID to its data type for one EBML dialect
// (Matroska, WebM, or any other). It is consulted only by Iterator; Writer
// trusts the caller's event stream and never looks up a specification.
//
// DataTypeOf reports whether id is known to the dialect. When it is not,
// the iterator treats the tag as Binary rather than failing.
type Specification interface {
	DataTypeOf(id uint64) (dataType TagDataType, known bool)
}

// TagBuilder is an optional capability a Specification may additionally
// implement to map between a dialect-specific strongly-typed tag
// representation and the generic Event stream. It is never required by
// Iterator or Writer; it exists purely so a dialect package can layer a
// typed API on top of this codec.
type TagBuilder interface {
	// BuildTag converts a generic Event into the dialect's typed
	// representation, or reports ok=false if ev's ID is not one the
	// dialect builds a typed representation for.
	BuildTag(ev Event) (tag any, ok bool)
	// DecomposeTag converts a dialect-specific typed tag back into a
	// generic Event, or reports ok=false if tag is not a type the dialect
	// recognizes.
	DecomposeTag(tag any) (ev Event, ok bool)
}

// SpecFunc adapts a plain function to the Specification interface.
type SpecFunc func(id uint64) (TagDataType, bool)

// DataTypeOf implements Specification.
func (f SpecFunc) DataTypeOf(id uint64) (TagDataType, bool) { return f(id) }

// MapSpecification is a Specification backed by a plain map, the simplest
// way to describe a small or ad hoc dialect.
type MapSpecification map[uint64]TagDataType

// DataTypeOf implements Specification.
func (m MapSpecification) DataTypeOf(id uint64) (TagDataType, bool) {
	t, ok := m[id]
	return t, ok
}
