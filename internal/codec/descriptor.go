package codec

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Kind is the packed-info type tag of a field descriptor.
type Kind string

const (
	KindFixed   Kind = "fixed"
	KindAddress Kind = "address"
	KindByte    Kind = "byte"
	KindBytes   Kind = "bytes"
	KindString  Kind = "string"
	KindBase64  Kind = "base64"
	KindNumber  Kind = "number"
	KindUint    Kind = "uint"
	KindObject  Kind = "object"
	KindHash    Kind = "hash"
	KindArray   Kind = "array"
)

// Descriptor describes how one positional field is laid out on the wire.
// The set of implementations is closed: Fixed, Address, Byte, Bytes, Number,
// Object and Array.
type Descriptor interface {
	Kind() Kind
	sealed()
}

// Fixed is a literal byte sequence, given as hex.
type Fixed struct {
	ValueHex string
}

// Address is a 32-byte public key.
type Address struct{}

// Byte is a single raw byte.
type Byte struct{}

// Bytes is a byte string. Size 0 means the length is not fixed by the schema.
// Tag distinguishes the bytes, string and base64 spellings; it does not change
// the encoding.
type Bytes struct {
	Size int
	Tag  Kind
}

// Number is a big-endian unsigned integer of Size bytes (8 when zero).
type Number struct {
	Size int
	Tag  Kind
}

// Object is an ordered group of fields encoded as a tuple.
type Object struct {
	Fields Schema
	Tag    Kind
}

// Array is a variable-length sequence of Elem.
type Array struct {
	Elem Descriptor
}

func (Fixed) Kind() Kind   { return KindFixed }
func (Address) Kind() Kind { return KindAddress }
func (Byte) Kind() Kind    { return KindByte }
func (Array) Kind() Kind   { return KindArray }

func (b Bytes) Kind() Kind {
	if b.Tag == "" {
		return KindBytes
	}
	return b.Tag
}

func (n Number) Kind() Kind {
	if n.Tag == "" {
		return KindNumber
	}
	return n.Tag
}

func (o Object) Kind() Kind {
	if o.Tag == "" {
		return KindObject
	}
	return o.Tag
}

func (Fixed) sealed()   {}
func (Address) sealed() {}
func (Byte) sealed()    {}
func (Bytes) sealed()   {}
func (Number) sealed()  {}
func (Object) sealed()  {}
func (Array) sealed()   {}

// Width returns the byte width of the number, defaulting to 8.
func (n Number) Width() int {
	if n.Size <= 0 {
		return 8
	}
	return n.Size
}

// Len returns the byte length of the literal.
func (f Fixed) Len() int {
	return len(strings.TrimPrefix(f.ValueHex, "0x")) / 2
}

// Value decodes the literal.
func (f Fixed) Value() ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(f.ValueHex, "0x"))
}

// Field is a named descriptor.
type Field struct {
	Name       string
	Descriptor Descriptor
}

// Schema is an ordered list of fields. Order defines the positional encoding.
type Schema []Field

// String renders the schema for diagnostics.
func (s Schema) String() string {
	parts := make([]string, 0, len(s))
	for _, f := range s {
		parts = append(parts, f.Name+":"+describe(f.Descriptor))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func describe(d Descriptor) string {
	switch t := d.(type) {
	case nil:
		return "<nil>"
	case Fixed:
		return fmt.Sprintf("fixed(%s)", t.ValueHex)
	case Bytes:
		if t.Size > 0 {
			return fmt.Sprintf("%s(%d)", t.Kind(), t.Size)
		}
		return string(t.Kind())
	case Number:
		return fmt.Sprintf("%s(%d)", t.Kind(), t.Width())
	case Object:
		return string(t.Kind()) + t.Fields.String()
	case Array:
		return "array[" + describe(t.Elem) + "]"
	default:
		return string(d.Kind())
	}
}
