package codec

import (
	"fmt"
	"math/big"

	"github.com/algorand/avm-abi/abi"
)

// DecodeTuple decodes data against an ABI tuple signature and returns the
// positional values. Static tuples ignore bytes past their encoded length.
func DecodeTuple(signature string, data []byte) ([]interface{}, error) {
	tupleType, err := abi.TypeOf(signature)
	if err != nil {
		return nil, fmt.Errorf("parse abi type %s: %w", signature, err)
	}

	if !tupleType.IsDynamic() {
		size, err := tupleType.ByteLen()
		if err != nil {
			return nil, fmt.Errorf("abi type %s length: %w", signature, err)
		}
		if len(data) < size {
			return nil, &InsufficientDataError{Schema: signature, Field: "tuple", Need: size, Remaining: len(data)}
		}
		data = data[:size]
	}

	decoded, err := tupleType.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode abi %s: %w", signature, err)
	}
	return AsTuple(decoded)
}

// AsTuple asserts a decoded tuple value.
func AsTuple(value interface{}) ([]interface{}, error) {
	values, ok := value.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unsupported tuple type %T", value)
	}
	return values, nil
}

// AsUint64 converts a decoded unsigned value.
func AsUint64(value interface{}) (uint64, error) {
	switch v := value.(type) {
	case uint8:
		return uint64(v), nil
	case uint16:
		return uint64(v), nil
	case uint32:
		return uint64(v), nil
	case uint64:
		return v, nil
	case *big.Int:
		if !v.IsUint64() {
			return 0, fmt.Errorf("uint64 overflow: %s", v.String())
		}
		return v.Uint64(), nil
	default:
		return 0, fmt.Errorf("unsupported uint type %T", value)
	}
}

// AsBigInt converts a decoded unsigned value to a big.Int.
func AsBigInt(value interface{}) (*big.Int, error) {
	if v, ok := value.(*big.Int); ok {
		return new(big.Int).Set(v), nil
	}
	n, err := AsUint64(value)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetUint64(n), nil
}

// AsByte converts a decoded byte value.
func AsByte(value interface{}) (byte, error) {
	n, err := AsUint64(value)
	if err != nil {
		return 0, err
	}
	if n > 0xff {
		return 0, fmt.Errorf("byte overflow: %d", n)
	}
	return byte(n), nil
}

// AsBytes converts a decoded address or static byte array.
func AsBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		out := make([]byte, len(v))
		copy(out, v)
		return out, nil
	case [32]byte:
		return v[:], nil
	case []interface{}:
		out := make([]byte, 0, len(v))
		for _, item := range v {
			b, err := AsByte(item)
			if err != nil {
				return nil, err
			}
			out = append(out, b)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported bytes type %T", value)
	}
}
