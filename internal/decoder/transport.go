package decoder

import (
	"encoding/base64"
	"strings"
)

// TransportPrefixSize is the number of leading payload bytes that precede the header.
const TransportPrefixSize = 8

// unwrapTransport turns the raw message text into the binary request, without the
// transport prefix. The text is round-tripped through base64 once before the
// payload itself is decoded.
func unwrapTransport(raw string) ([]byte, error) {
	encoded := base64.StdEncoding.EncodeToString([]byte(raw))
	roundTrip, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	text := strings.ToValidUTF8(string(roundTrip), "\uFFFD")

	payload, err := decodeBase64Text(text)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if len(payload) < TransportPrefixSize {
		return payload[:0], nil
	}
	return payload[TransportPrefixSize:], nil
}

// decodeBase64Text decodes base64 the way browsers' atob does: ASCII whitespace
// is ignored and padding is optional.
func decodeBase64Text(text string) ([]byte, error) {
	compact := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			return -1
		}
		return r
	}, text)
	if len(compact)%4 == 0 {
		compact = strings.TrimSuffix(compact, "=")
		compact = strings.TrimSuffix(compact, "=")
	}
	return base64.RawStdEncoding.DecodeString(compact)
}

// decodeBase64Lenient decodes base64 the way Node's Buffer does: decoding stops
// at the first padding character and a dangling final character is dropped.
func decodeBase64Lenient(token string) []byte {
	if i := strings.IndexByte(token, '='); i >= 0 {
		token = token[:i]
	}
	if len(token)%4 == 1 {
		token = token[:len(token)-1]
	}
	out, err := base64.RawStdEncoding.DecodeString(token)
	if err != nil {
		return nil
	}
	return out
}
