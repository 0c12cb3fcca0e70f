// Package object implements the PDF value algebra: Number, Object,
// Dictionary, Array, Bytes, Reference, Stream, and Null, plus the typed
// navigation combinators used to walk them. Values carry no knowledge
// of how to resolve their own references; resolution is kept as an
// explicit external step (see the resolver package).
package object

import (
	"bytes"
	"fmt"
	"sort"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// Kind identifies the variant an Object holds.
type Kind int

const (
	Null Kind = iota
	NumberKind
	BoolKind
	NameKind
	DictKind
	ArrayKind
	BytesKind
	RefKind
	StreamKind
)

func (k Kind) String() string {
	switch k {
	case NumberKind:
		return "Number"
	case BoolKind:
		return "Boolean"
	case NameKind:
		return "Name"
	case DictKind:
		return "Dictionary"
	case ArrayKind:
		return "Array"
	case BytesKind:
		return "Bytes"
	case RefKind:
		return "Reference"
	case StreamKind:
		return "Stream"
	default:
		return "Null"
	}
}

// NumberKindTag distinguishes the two Number variants.
type NumberKindTag int

const (
	Integer NumberKindTag = iota
	Real
)

// Number is the tagged Integer/Real union. Equality is structural
// within the same tag: two Numbers are equal only if both are Integer
// with the same value, or both are Real with the same value.
type Number struct {
	tag NumberKindTag
	i   int64
	f   float64
}

// NewInteger constructs an Integer Number.
func NewInteger(v int64) Number { return Number{tag: Integer, i: v} }

// NewReal constructs a Real Number.
func NewReal(v float64) Number { return Number{tag: Real, f: v} }

// IsInteger reports whether n holds an Integer.
func (n Number) IsInteger() bool { return n.tag == Integer }

// Int64 returns n's value as an int64. For a Real, it truncates.
func (n Number) Int64() int64 {
	if n.tag == Integer {
		return n.i
	}
	return int64(n.f)
}

// Float64 returns n's value as a float64.
func (n Number) Float64() float64 {
	if n.tag == Integer {
		return float64(n.i)
	}
	return n.f
}

// Natural returns (value, true) only when n is an Integer.
func (n Number) Natural() (int64, bool) {
	if n.tag != Integer {
		return 0, false
	}
	return n.i, true
}

// Equal reports structural equality within the same tag.
func (n Number) Equal(o Number) bool {
	if n.tag != o.tag {
		return false
	}
	if n.tag == Integer {
		return n.i == o.i
	}
	return n.f == o.f
}

func (n Number) String() string {
	if n.tag == Integer {
		return fmt.Sprintf("%d", n.i)
	}
	return fmt.Sprintf("%g", n.f)
}

// Reference is a pointer-shaped (index, generation) pair that must be
// resolved through an xref table before use.
type Reference struct {
	Index      uint32
	Generation uint32
}

func (r Reference) String() string {
	return fmt.Sprintf("%d %d R", r.Index, r.Generation)
}

// Bytes is an arbitrary PDF byte string (the decoded contents of a
// literal or hex string token).
type Bytes []byte

// Text interprets b as a PDF "text string": if it starts with the
// UTF-16BE byte-order mark (0xFE 0xFF) and has an even length, it is
// decoded as UTF-16BE and normalized with NFKC. Otherwise the raw bytes
// are returned unchanged as a Go string; no PDFDocEncoding or Latin-1
// translation is applied.
func (b Bytes) Text() string {
	if len(b) >= 2 && b[0] == 0xfe && b[1] == 0xff && len(b)%2 == 0 {
		raw := b[2:]
		u := make([]uint16, 0, len(raw)/2)
		for i := 0; i+1 < len(raw); i += 2 {
			u = append(u, uint16(raw[i])<<8|uint16(raw[i+1]))
		}
		return norm.NFKC.String(string(utf16.Decode(u)))
	}
	return string(b)
}

// Name is a PDF name without its leading slash.
type Name string

// Dictionary maps name keys to Object values. Duplicate keys seen while
// parsing take the last occurrence; iteration order is not semantically
// meaningful (Keys sorts for determinism).
type Dictionary map[Name]Object

// Keys returns the dictionary's keys in sorted order.
func (d Dictionary) Keys() []Name {
	keys := make([]Name, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Array is an ordered sequence of Objects.
type Array []Object

// Stream pairs a stream dictionary with the byte offset, in the
// underlying tape, to the first byte after the "stream" keyword's EOL.
// Raw stream bytes are not materialized here; a caller slices them on
// demand using StreamPos and the dictionary's Length entry.
type Stream struct {
	Dict      Dictionary
	StreamPos int64
}

// Object is the tagged union of every PDF value kind. The zero Object
// (data == nil) is Null.
type Object struct {
	data any
}

// Definition is an indirect object body together with the reference it
// was parsed under ("N G obj ... endobj"). The resolver uses it to check
// the invariant that an in-use entry's offset points to the object its
// own reference names.
type Definition struct {
	Ref  Reference
	Body Object
}

// Nil is the Null Object.
var Nil = Object{}

func FromNumber(n Number) Object         { return Object{data: n} }
func FromBool(b bool) Object             { return Object{data: b} }
func FromName(n Name) Object             { return Object{data: n} }
func FromDictionary(d Dictionary) Object { return Object{data: d} }
func FromArray(a Array) Object           { return Object{data: a} }
func FromBytes(b Bytes) Object           { return Object{data: b} }
func FromReference(r Reference) Object   { return Object{data: r} }
func FromStream(s Stream) Object         { return Object{data: s} }

// Kind reports which variant o holds.
func (o Object) Kind() Kind {
	switch o.data.(type) {
	case Number:
		return NumberKind
	case bool:
		return BoolKind
	case Name:
		return NameKind
	case Dictionary:
		return DictKind
	case Array:
		return ArrayKind
	case Bytes:
		return BytesKind
	case Reference:
		return RefKind
	case Stream:
		return StreamKind
	default:
		return Null
	}
}

// IsNull reports whether o is Null.
func (o Object) IsNull() bool { return o.data == nil }

func (o Object) String() string {
	return objfmt(o.data)
}

func objfmt(x any) string {
	switch x := x.(type) {
	case nil:
		return "null"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case Number:
		return x.String()
	case Name:
		return "/" + string(x)
	case Bytes:
		return fmt.Sprintf("%q", string(x))
	case Dictionary:
		var buf bytes.Buffer
		buf.WriteString("<<")
		for i, k := range x.Keys() {
			if i > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString("/")
			buf.WriteString(string(k))
			buf.WriteString(" ")
			buf.WriteString(objfmt(x[k].data))
		}
		buf.WriteString(">>")
		return buf.String()
	case Array:
		var buf bytes.Buffer
		buf.WriteString("[")
		for i, e := range x {
			if i > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(objfmt(e.data))
		}
		buf.WriteString("]")
		return buf.String()
	case Reference:
		return x.String()
	case Stream:
		return fmt.Sprintf("%s@%d", objfmt(Dictionary(x.Dict)), x.StreamPos)
	default:
		return fmt.Sprint(x)
	}
}
