package chain

import (
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
)

// PublicKeySize is the width of an on-wire account key.
const PublicKeySize = 32

// Codec converts between a 32-byte public key and a chain's display address.
type Codec interface {
	AddressByPublicKey(publicKey []byte) (string, error)
	PublicKey(address string) ([]byte, error)
	IsValidAddress(address string) bool
}

// CodecFor returns the address codec of a chain.
func CodecFor(id ID) (Codec, error) {
	switch id {
	case Algorand:
		return algorandCodec{}, nil
	case Ethereum, Avalanche, BSC, Polygon, Arbitrum:
		return evmCodec{}, nil
	case Solana:
		return solanaCodec{}, nil
	default:
		return nil, &UnsupportedChainError{ChainID: id}
	}
}

// CodecForAddress finds the first supported chain whose codec accepts the address.
func CodecForAddress(address string) (ID, Codec, error) {
	for _, id := range Supported {
		codec, err := CodecFor(id)
		if err != nil {
			continue
		}
		if codec.IsValidAddress(address) {
			return id, codec, nil
		}
	}
	return 0, nil, fmt.Errorf("invalid address: %s", address)
}

// PublicKeyFromAddress resolves the chain of an address and returns its public key.
func PublicKeyFromAddress(address string) ([]byte, error) {
	_, codec, err := CodecForAddress(address)
	if err != nil {
		return nil, err
	}
	return codec.PublicKey(address)
}

// AlgorandAddress encodes a public key as an Algorand address.
func AlgorandAddress(publicKey []byte) (string, error) {
	return algorandCodec{}.AddressByPublicKey(publicKey)
}

type algorandCodec struct{}

func (algorandCodec) AddressByPublicKey(publicKey []byte) (string, error) {
	if len(publicKey) != PublicKeySize {
		return "", fmt.Errorf("algorand public key must be %d bytes, got %d", PublicKeySize, len(publicKey))
	}
	var addr types.Address
	copy(addr[:], publicKey)
	return addr.String(), nil
}

func (algorandCodec) PublicKey(address string) ([]byte, error) {
	addr, err := types.DecodeAddress(address)
	if err != nil {
		return nil, fmt.Errorf("decode algorand address: %w", err)
	}
	return addr[:], nil
}

func (algorandCodec) IsValidAddress(address string) bool {
	_, err := types.DecodeAddress(address)
	return err == nil
}

// evmCodec carries 20-byte addresses left-padded to the 32-byte key width.
type evmCodec struct{}

func (evmCodec) AddressByPublicKey(publicKey []byte) (string, error) {
	if len(publicKey) != PublicKeySize {
		return "", fmt.Errorf("evm public key must be %d bytes, got %d", PublicKeySize, len(publicKey))
	}
	return common.BytesToAddress(publicKey).Hex(), nil
}

func (evmCodec) PublicKey(address string) ([]byte, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid evm address: %s", address)
	}
	return common.LeftPadBytes(common.HexToAddress(address).Bytes(), PublicKeySize), nil
}

func (evmCodec) IsValidAddress(address string) bool {
	return common.IsHexAddress(address)
}

type solanaCodec struct{}

func (solanaCodec) AddressByPublicKey(publicKey []byte) (string, error) {
	if len(publicKey) != PublicKeySize {
		return "", fmt.Errorf("solana public key must be %d bytes, got %d", PublicKeySize, len(publicKey))
	}
	return base58.Encode(publicKey), nil
}

func (solanaCodec) PublicKey(address string) ([]byte, error) {
	key, err := base58.Decode(address)
	if err != nil {
		return nil, fmt.Errorf("decode solana address: %w", err)
	}
	if len(key) != PublicKeySize {
		return nil, fmt.Errorf("solana public key must be %d bytes, got %d", PublicKeySize, len(key))
	}
	return key, nil
}

func (c solanaCodec) IsValidAddress(address string) bool {
	_, err := c.PublicKey(address)
	return err == nil
}

// AlgorandPublicKey recovers the public key behind an Algorand address.
func AlgorandPublicKey(address string) ([]byte, error) {
	return algorandCodec{}.PublicKey(address)
}
