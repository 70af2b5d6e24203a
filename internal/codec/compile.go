package codec

import (
	"strconv"
	"strings"
)

// Compile turns a schema into its positional ABI tuple signature.
func Compile(schema Schema) (string, error) {
	parts, err := compileFields(schema)
	if err != nil {
		return "", err
	}
	return "(" + strings.Join(parts, ",") + ")", nil
}

func compileFields(schema Schema) ([]string, error) {
	parts := make([]string, 0, len(schema))
	for _, field := range schema {
		part, err := compileDescriptor(field.Name, field.Descriptor)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return parts, nil
}

func compileDescriptor(name string, d Descriptor) (string, error) {
	switch t := d.(type) {
	case Object:
		inner, err := compileFields(t.Fields)
		if err != nil {
			return "", err
		}
		return "(" + strings.Join(inner, ",") + ")", nil
	case Array:
		elem, err := compileDescriptor(name, t.Elem)
		if err != nil {
			return "", err
		}
		return elem + "[]", nil
	case Address:
		return "address", nil
	case Byte:
		return "byte", nil
	case Bytes:
		if t.Size > 0 {
			return "byte[" + strconv.Itoa(t.Size) + "]", nil
		}
		return "byte[]", nil
	case Number:
		return "uint" + strconv.Itoa(t.Width()*8), nil
	case Fixed:
		if value, err := t.Value(); err != nil || len(value) == 0 {
			return "", &SchemaError{Field: name, Kind: string(t.Kind())}
		}
		if t.Len() == 1 {
			return "byte", nil
		}
		return "byte[" + strconv.Itoa(t.Len()) + "]", nil
	default:
		return "", &SchemaError{Field: name, Kind: kindName(d)}
	}
}

func kindName(d Descriptor) string {
	if d == nil {
		return "<nil>"
	}
	return string(d.Kind())
}
