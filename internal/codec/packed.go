package codec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PackedField is the textual form of a field descriptor, as found in schema files.
type PackedField struct {
	Name     string        `yaml:"name" json:"name"`
	Type     string        `yaml:"type" json:"type"`
	Size     int           `yaml:"size,omitempty" json:"size,omitempty"`
	ValueHex string        `yaml:"valueHex,omitempty" json:"valueHex,omitempty"`
	Fields   []PackedField `yaml:"fields,omitempty" json:"fields,omitempty"`
	Elem     *PackedField  `yaml:"elem,omitempty" json:"elem,omitempty"`
}

// ParseSchema builds a Schema from packed fields. Unknown type tags yield a SchemaError.
func ParseSchema(fields []PackedField) (Schema, error) {
	schema := make(Schema, 0, len(fields))
	for _, f := range fields {
		d, err := ParseDescriptor(f)
		if err != nil {
			return nil, err
		}
		schema = append(schema, Field{Name: f.Name, Descriptor: d})
	}
	return schema, nil
}

// ParseDescriptor builds a single Descriptor from its packed form.
func ParseDescriptor(f PackedField) (Descriptor, error) {
	switch Kind(f.Type) {
	case KindFixed:
		if f.ValueHex == "" {
			return nil, fmt.Errorf("field %s: fixed requires valueHex", f.Name)
		}
		return Fixed{ValueHex: f.ValueHex}, nil
	case KindAddress:
		return Address{}, nil
	case KindByte:
		return Byte{}, nil
	case KindBytes, KindString, KindBase64:
		return Bytes{Size: f.Size, Tag: Kind(f.Type)}, nil
	case KindNumber, KindUint:
		return Number{Size: f.Size, Tag: Kind(f.Type)}, nil
	case KindObject, KindHash:
		children, err := ParseSchema(f.Fields)
		if err != nil {
			return nil, err
		}
		return Object{Fields: children, Tag: Kind(f.Type)}, nil
	case KindArray:
		if f.Elem == nil {
			return nil, fmt.Errorf("field %s: array requires elem", f.Name)
		}
		elem, err := ParseDescriptor(*f.Elem)
		if err != nil {
			return nil, err
		}
		return Array{Elem: elem}, nil
	default:
		return nil, &SchemaError{Field: f.Name, Kind: f.Type}
	}
}

// LoadSchemaFile reads a YAML (or JSON) list of packed fields.
func LoadSchemaFile(path string) (Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	var fields []PackedField
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return ParseSchema(fields)
}
