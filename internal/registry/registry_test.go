package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"requestScope/internal/model"
)

func testRegistry() model.Registry {
	return model.Registry{
		{SlotID: 0, Instrument: model.Instrument{ID: "ALGO", Decimals: 6}},
		{SlotID: 1, Instrument: model.Instrument{ID: "USDC", Decimals: 6}},
		{SlotID: 1, Instrument: model.Instrument{ID: "SHADOWED", Decimals: 2}},
	}
}

func TestLookupFirstMatchWins(t *testing.T) {
	assert.Equal(t, "USDC", Lookup(1, testRegistry()).ID)
}

func TestLookupAbsentReturnsSentinel(t *testing.T) {
	inst := Lookup(42, testRegistry())
	assert.Equal(t, "", inst.ID)
	assert.Equal(t, uint8(0), inst.Decimals)
	assert.Equal(t, "", Lookup(0, nil).ID)
}

func TestParseList(t *testing.T) {
	entries, err := Parse([]byte(`
- slotId: 0
  instrument:
    id: ALGO
    asaId: 0
    asaName: Algorand
    asaUnitName: ALGO
    asaDecimals: 6
- slotId: 3
  instrument:
    id: WETH
    asaDecimals: 8
    chains:
      - chainId: 2
        tokenAddress: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
`))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Algorand", entries[0].Instrument.Name)
	assert.Equal(t, uint16(2), entries[1].Instrument.Chains[0].ChainID)
}

func TestParseWrappedJSON(t *testing.T) {
	entries, err := Parse([]byte(`{"instruments":[{"slotId":7,"instrument":{"id":"BTC","asaDecimals":8}}]}`))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, uint8(7), entries[0].SlotID)
}

func TestParseRejectsInvalidInstrument(t *testing.T) {
	_, err := Parse([]byte(`[{"slotId":1,"instrument":{"asaDecimals":6}}]`))
	assert.Error(t, err)

	_, err = Parse([]byte(`[{"slotId":1,"instrument":{"id":"X","asaDecimals":30}}]`))
	assert.Error(t, err)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- slotId: 2\n  instrument:\n    id: AVAX\n    asaDecimals: 8\n"), 0o644))

	entries, err := FileSource{Path: path}.LoadRegistry(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AVAX", Lookup(2, entries).ID)
}
