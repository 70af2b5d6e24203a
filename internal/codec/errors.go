package codec

import "fmt"

// SchemaError reports a field kind the compiler or unpacker cannot handle.
type SchemaError struct {
	Field string
	Kind  string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("type %s is not supported or recognized", e.Kind)
	}
	return fmt.Sprintf("field %s: type %s is not supported or recognized", e.Field, e.Kind)
}

// InsufficientDataError reports a buffer shorter than its schema requires.
type InsufficientDataError struct {
	Schema    string
	Field     string
	Need      int
	Remaining int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("unpack data length was not enough for the format provided: field %s needs %d bytes, %d remaining, format: %s",
		e.Field, e.Need, e.Remaining, e.Schema)
}
