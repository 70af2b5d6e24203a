package codec

import (
	"encoding/binary"

	"requestScope/internal/chain"
)

// HeaderSize is the byte length of a decoded header.
const HeaderSize = 32 + 32 + 8

// Header is the common prefix of every binary request.
type Header struct {
	Target    string
	Lease     [32]byte
	LastValid uint64
}

// Value is one unpacked field.
type Value struct {
	Name  string
	Value interface{}
}

// Unpack walks schema over data from offset 0 and returns the decoded values in
// schema order together with the number of bytes read.
//
// Addresses decode to their Algorand display form, sized Bytes to a copy of the
// raw bytes, unsized Bytes read a 2-byte big-endian length first, and Numbers
// decode big-endian.
func Unpack(schema Schema, data []byte) ([]Value, int, error) {
	read := 0
	values := make([]Value, 0, len(schema))

	need := func(field string, n int) error {
		if len(data)-read < n {
			return &InsufficientDataError{
				Schema:    schema.String(),
				Field:     field,
				Need:      n,
				Remaining: len(data) - read,
			}
		}
		return nil
	}

	for _, field := range schema {
		var value interface{}
		switch d := field.Descriptor.(type) {
		case Address:
			if err := need(field.Name, chain.PublicKeySize); err != nil {
				return nil, read, err
			}
			addr, err := chain.AlgorandAddress(data[read : read+chain.PublicKeySize])
			if err != nil {
				return nil, read, err
			}
			value = addr
			read += chain.PublicKeySize
		case Byte:
			if err := need(field.Name, 1); err != nil {
				return nil, read, err
			}
			value = data[read]
			read++
		case Bytes:
			size := d.Size
			if size <= 0 {
				if err := need(field.Name, 2); err != nil {
					return nil, read, err
				}
				size = int(binary.BigEndian.Uint16(data[read : read+2]))
				read += 2
			}
			if err := need(field.Name, size); err != nil {
				return nil, read, err
			}
			raw := make([]byte, size)
			copy(raw, data[read:read+size])
			value = raw
			read += size
		case Number:
			width := d.Width()
			if width > 8 {
				return nil, read, &SchemaError{Field: field.Name, Kind: string(d.Kind())}
			}
			if err := need(field.Name, width); err != nil {
				return nil, read, err
			}
			var n uint64
			for _, b := range data[read : read+width] {
				n = n<<8 | uint64(b)
			}
			value = n
			read += width
		case Fixed, Object, Array:
			return nil, read, &SchemaError{Field: field.Name, Kind: string(d.Kind())}
		default:
			return nil, read, &SchemaError{Field: field.Name, Kind: kindName(field.Descriptor)}
		}
		values = append(values, Value{Name: field.Name, Value: value})
	}

	return values, read, nil
}

// UnpackHeader decodes the request header and returns it with the bytes consumed.
func UnpackHeader(data []byte) (Header, int, error) {
	values, read, err := Unpack(HeaderSchema(), data)
	if err != nil {
		return Header{}, read, err
	}

	var header Header
	for _, v := range values {
		switch v.Name {
		case "target":
			header.Target = v.Value.(string)
		case "lease":
			copy(header.Lease[:], v.Value.([]byte))
		case "lastValid":
			header.LastValid = v.Value.(uint64)
		}
	}
	return header, read, nil
}
