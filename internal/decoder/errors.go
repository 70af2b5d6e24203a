package decoder

import (
	"errors"
	"fmt"

	"requestScope/internal/chain"
	"requestScope/internal/codec"
)

// UnknownOperationError reports an opcode outside the decoded operation set.
type UnknownOperationError struct {
	Opcode uint8
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation type: %d", e.Opcode)
}

// WelcomeParseError reports welcome text without a readable login token.
// Decode treats it as "no result" rather than a failure.
type WelcomeParseError struct {
	Reason string
}

func (e *WelcomeParseError) Error() string {
	return "welcome message: " + e.Reason
}

// TransportError reports a payload that is not valid base64 text.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("decode transport payload: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Error kinds reported by Kind.
const (
	KindSchema           = "schema"
	KindInsufficientData = "insufficient_data"
	KindUnknownOperation = "unknown_operation"
	KindWelcomeParse     = "welcome_parse"
	KindUnsupportedChain = "unsupported_chain"
	KindTransport        = "transport"
	KindInternal         = "internal"
)

// Kind returns a stable category for err, for callers that record failures.
func Kind(err error) string {
	var (
		schemaErr  *codec.SchemaError
		shortErr   *codec.InsufficientDataError
		unknownErr *UnknownOperationError
		welcomeErr *WelcomeParseError
		chainErr   *chain.UnsupportedChainError
		transport  *TransportError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &schemaErr):
		return KindSchema
	case errors.As(err, &shortErr):
		return KindInsufficientData
	case errors.As(err, &unknownErr):
		return KindUnknownOperation
	case errors.As(err, &welcomeErr):
		return KindWelcomeParse
	case errors.As(err, &chainErr):
		return KindUnsupportedChain
	case errors.As(err, &transport):
		return KindTransport
	default:
		return KindInternal
	}
}

// OpcodeOf extracts the opcode carried by an UnknownOperationError.
func OpcodeOf(err error) (uint8, bool) {
	var unknownErr *UnknownOperationError
	if errors.As(err, &unknownErr) {
		return unknownErr.Opcode, true
	}
	return 0, false
}
