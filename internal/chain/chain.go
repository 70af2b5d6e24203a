package chain

import "fmt"

// ID is a Wormhole-style chain identifier.
type ID uint16

const (
	Solana    ID = 1
	Ethereum  ID = 2
	BSC       ID = 4
	Polygon   ID = 5
	Avalanche ID = 6
	Algorand  ID = 8
	Arbitrum  ID = 23
)

var names = map[ID]string{
	Solana:    "Solana",
	Ethereum:  "Ethereum",
	BSC:       "BSC",
	Polygon:   "Polygon",
	Avalanche: "Avalanche",
	Algorand:  "Algorand",
	Arbitrum:  "Arbitrum",
}

// Supported lists the chains with an address codec, in resolution order.
var Supported = []ID{Algorand, Ethereum, Avalanche, BSC, Polygon, Arbitrum, Solana}

// Name returns the display name of the chain, or "" when unknown.
func Name(id ID) string {
	return names[id]
}

func (id ID) String() string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("chain(%d)", uint16(id))
}

// UnsupportedChainError reports a chain id without an address codec.
type UnsupportedChainError struct {
	ChainID ID
}

func (e *UnsupportedChainError) Error() string {
	return fmt.Sprintf("unsupported chain id: %d", uint16(e.ChainID))
}
