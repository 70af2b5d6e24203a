package decoder

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"requestScope/internal/chain"
	"requestScope/internal/codec"
	"requestScope/internal/model"
)

const (
	zeroAccountDisplay = "AAAAAAAA...AAY5HFKQ"
	onesDelegate       = "AEAQCAIB...A5RCDXMI"
	expirySeconds      = 1700000000
	expiryDisplay      = "11/14/2023, 10:13:20 PM"
)

func testInstruments() model.Registry {
	return model.Registry{
		{SlotID: 0, Instrument: model.Instrument{ID: "ALGO", Decimals: 6}},
		{SlotID: 1, Instrument: model.Instrument{ID: "BTC", Decimals: 8}},
		{SlotID: 2, Instrument: model.Instrument{ID: "USDC", Decimals: 6}},
	}
}

func newTestDecoder(t *testing.T) *Decoder {
	t.Helper()
	d, err := New(WithLocation(time.UTC), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	return d
}

func u64(v uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, v)
}

// wrapRequest builds the message text for an operation: transport prefix, header
// signed by the all-zero key, then the operation bytes, base64 encoded.
func wrapRequest(operation []byte) string {
	var buf bytes.Buffer
	buf.Write(bytes.Repeat([]byte{0xee}, TransportPrefixSize))
	buf.Write(make([]byte, 32))
	buf.Write(bytes.Repeat([]byte{0x5a}, 32))
	buf.Write(u64(123456))
	buf.Write(operation)
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func withdrawOp(slot byte, rawAmount uint64, chainID uint16, key []byte, maxBorrow uint64) []byte {
	op := []byte{byte(OpWithdraw), slot}
	op = append(op, u64(rawAmount)...)
	op = binary.BigEndian.AppendUint16(op, chainID)
	op = append(op, key...)
	op = append(op, u64(maxBorrow)...)
	return append(op, u64(0)...)
}

func evmKey() []byte {
	return append(make([]byte, 12), bytes.Repeat([]byte{0x11}, 20)...)
}

func TestDecodeWithdraw(t *testing.T) {
	d := newTestDecoder(t)

	msg, err := d.Decode(wrapRequest(withdrawOp(2, 1000000, uint16(chain.Ethereum), evmKey(), 0)), testInstruments())
	require.NoError(t, err)

	withdraw, ok := msg.(*model.Withdraw)
	require.True(t, ok, "decoded type %T", msg)
	assert.Equal(t, model.OpWithdraw, withdraw.OperationType())
	assert.Equal(t, "0x111111...11111111", withdraw.Target)
	assert.Equal(t, model.Chain{ChainID: 2, ChainName: "Ethereum"}, withdraw.Chain)
	assert.Equal(t, "USDC", withdraw.InstrumentName)
	assert.Equal(t, 1.0, withdraw.Amount)
	assert.Nil(t, withdraw.MaxBorrow)
	assert.Equal(t, zeroAccountDisplay, withdraw.Account)

	_, present := model.Lookup(msg, "maxBorrow")
	assert.False(t, present)
}

func TestDecodeWithdrawMaxBorrow(t *testing.T) {
	d := newTestDecoder(t)

	msg, err := d.Decode(wrapRequest(withdrawOp(2, 1000000, uint16(chain.Ethereum), evmKey(), 500000)), testInstruments())
	require.NoError(t, err)

	withdraw := msg.(*model.Withdraw)
	require.NotNil(t, withdraw.MaxBorrow)
	assert.Equal(t, 0.5, *withdraw.MaxBorrow)
}

func TestDecodeWithdrawReencodesForDestinationChain(t *testing.T) {
	d := newTestDecoder(t)

	msg, err := d.Decode(wrapRequest(withdrawOp(0, 3000000, uint16(chain.Algorand), bytes.Repeat([]byte{1}, 32), 0)), testInstruments())
	require.NoError(t, err)
	withdraw := msg.(*model.Withdraw)
	assert.Equal(t, onesDelegate, withdraw.Target)
	assert.Equal(t, "Algorand", withdraw.Chain.ChainName)
	assert.Equal(t, 3.0, withdraw.Amount)

	msg, err = d.Decode(wrapRequest(withdrawOp(0, 1, uint16(chain.Solana), make([]byte, 32), 0)), testInstruments())
	require.NoError(t, err)
	assert.Equal(t, "11111111...11111111", msg.(*model.Withdraw).Target)
}

func TestDecodeWithdrawUnsupportedChain(t *testing.T) {
	d := newTestDecoder(t)

	_, err := d.Decode(wrapRequest(withdrawOp(0, 1, 999, make([]byte, 32), 0)), testInstruments())
	var unsupported *chain.UnsupportedChainError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, KindUnsupportedChain, Kind(err))
}

func TestDecodeWithdrawUnknownSlotUsesSentinel(t *testing.T) {
	d := newTestDecoder(t)

	msg, err := d.Decode(wrapRequest(withdrawOp(77, 42, uint16(chain.Ethereum), evmKey(), 0)), testInstruments())
	require.NoError(t, err)
	withdraw := msg.(*model.Withdraw)
	assert.Equal(t, "", withdraw.InstrumentName)
	assert.Equal(t, 42.0, withdraw.Amount)
}

func poolMoveOp(slot byte, signed int64) []byte {
	op := []byte{byte(OpPoolMove), slot}
	return append(op, u64(uint64(signed))...)
}

func TestDecodePoolMoveSign(t *testing.T) {
	d := newTestDecoder(t)

	cases := []struct {
		signed int64
		opType string
		amount float64
	}{
		{2500000, model.OpSubscribe, 2.5},
		{-2500000, model.OpRedeem, 2.5},
		{0, model.OpRedeem, 0},
		{-1, model.OpRedeem, 0.000001},
	}
	for _, tc := range cases {
		msg, err := d.Decode(wrapRequest(poolMoveOp(0, tc.signed)), testInstruments())
		require.NoError(t, err, "signed %d", tc.signed)

		move, ok := msg.(*model.PoolMove)
		require.True(t, ok)
		assert.Equal(t, tc.opType, move.OperationType(), "signed %d", tc.signed)
		assert.Equal(t, tc.amount, move.Amount, "signed %d", tc.signed)
		assert.GreaterOrEqual(t, move.Amount, 0.0)
		assert.Equal(t, "ALGO", move.InstrumentName)
		assert.Equal(t, zeroAccountDisplay, move.Account)
	}
}

func settleOp() []byte {
	op := []byte{byte(OpSettle)}
	op = append(op, bytes.Repeat([]byte{0x33}, 32)...)
	op = append(op, u64(7)...)
	op = append(op, u64(expirySeconds)...)
	op = append(op, 0)
	op = append(op, u64(1500000)...)
	op = append(op, u64(250000)...)
	op = append(op, 1)
	op = append(op, u64(100000000)...)
	return append(op, u64(5000000)...)
}

func TestDecodeSettle(t *testing.T) {
	d := newTestDecoder(t)

	msg, err := d.Decode(wrapRequest(settleOp()), testInstruments())
	require.NoError(t, err)

	settle, ok := msg.(*model.Settle)
	require.True(t, ok, "decoded type %T", msg)
	assert.Equal(t, &model.Settle{
		Nonce:       7,
		ExpiresOn:   expiryDisplay,
		SellAssetID: "ALGO",
		SellAmount:  1.5,
		BuyAssetID:  "BTC",
		BuyAmount:   1,
		MaxBorrow:   0.25,
		MaxRepay:    0.05,
		Account:     zeroAccountDisplay,
	}, settle)
}

func delegateOp(nonce uint64) []byte {
	op := []byte{byte(OpDelegate)}
	op = append(op, bytes.Repeat([]byte{1}, 32)...)
	op = append(op, u64(nonce)...)
	return append(op, u64(expirySeconds)...)
}

func TestDecodeDelegate(t *testing.T) {
	d := newTestDecoder(t)

	msg, err := d.Decode(wrapRequest(delegateOp(9)), testInstruments())
	require.NoError(t, err)

	delegate, ok := msg.(*model.Delegate)
	require.True(t, ok, "decoded type %T", msg)
	assert.Equal(t, model.OpDelegate, delegate.OperationType())
	assert.Equal(t, onesDelegate, delegate.DelegateAddress)
	assert.Equal(t, uint64(9), delegate.Nonce)
	assert.Equal(t, expiryDisplay, delegate.ExpiresOn)
	assert.Equal(t, zeroAccountDisplay, delegate.Account)

	nonce, present := model.Lookup(msg, "nonce")
	assert.True(t, present)
	assert.Equal(t, uint64(9), nonce)
}

// withExpiry overwrites the expiry of a settle or delegate operation. Both carry
// it after the opcode, a 32-byte field and the nonce.
func withExpiry(op []byte, expiry uint64) []byte {
	out := append([]byte(nil), op...)
	binary.BigEndian.PutUint64(out[41:], expiry)
	return out
}

func TestDecodeExpiryOutOfRange(t *testing.T) {
	d := newTestDecoder(t)

	for _, expiry := range []uint64{math.MaxUint64, 1 << 63, 8_640_000_000_001} {
		msg, err := d.Decode(wrapRequest(withExpiry(delegateOp(9), expiry)), testInstruments())
		require.NoError(t, err)
		assert.Equal(t, InvalidDate, msg.(*model.Delegate).ExpiresOn, "delegate expiry %d", expiry)

		msg, err = d.Decode(wrapRequest(withExpiry(settleOp(), expiry)), testInstruments())
		require.NoError(t, err)
		assert.Equal(t, InvalidDate, msg.(*model.Settle).ExpiresOn, "settle expiry %d", expiry)
	}
}

func TestFormatTimestampBounds(t *testing.T) {
	assert.Equal(t, expiryDisplay, formatSeconds(expirySeconds, time.UTC))
	assert.Equal(t, expiryDisplay, formatMillis(expirySeconds*1000, time.UTC))

	assert.NotEqual(t, InvalidDate, formatSeconds(8_640_000_000_000, time.UTC))
	assert.Equal(t, InvalidDate, formatSeconds(8_640_000_000_001, time.UTC))

	assert.NotEqual(t, InvalidDate, formatMillis(-8_640_000_000_000_000, time.UTC))
	assert.Equal(t, InvalidDate, formatMillis(-8_640_000_000_000_001, time.UTC))
	assert.Equal(t, InvalidDate, formatMillis(math.MaxInt64, time.UTC))
}

func TestDecodeEphemeralKeyDelegate(t *testing.T) {
	d := newTestDecoder(t)

	msg, err := d.Decode(wrapRequest(delegateOp(0)), testInstruments())
	require.NoError(t, err)

	ephemeral, ok := msg.(*model.EphemeralKeyDelegate)
	require.True(t, ok, "decoded type %T", msg)
	assert.Equal(t, "Ephemeral Key Delegate", ephemeral.OperationType())
	assert.Equal(t, onesDelegate, ephemeral.DelegateAddress)

	_, present := model.Lookup(msg, "nonce")
	assert.False(t, present)
}

func TestDecodeUnknownOperation(t *testing.T) {
	d := newTestDecoder(t)

	for _, opcode := range []byte{0x00, 0x04, byte(OpAccountMove), 0x09, 0xff} {
		_, err := d.Decode(wrapRequest([]byte{opcode, 1, 2, 3}), testInstruments())

		var unknown *UnknownOperationError
		require.ErrorAs(t, err, &unknown, "opcode %d", opcode)
		assert.Equal(t, opcode, unknown.Opcode)
		assert.Equal(t, KindUnknownOperation, Kind(err))
	}
}

func TestDecodeShortHeader(t *testing.T) {
	d := newTestDecoder(t)

	payload := append(bytes.Repeat([]byte{0xee}, TransportPrefixSize), make([]byte, 40)...)
	_, err := d.Decode(base64.StdEncoding.EncodeToString(payload), testInstruments())

	var short *codec.InsufficientDataError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, KindInsufficientData, Kind(err))
}

func TestDecodeMissingOperation(t *testing.T) {
	d := newTestDecoder(t)

	_, err := d.Decode(wrapRequest(nil), testInstruments())
	var short *codec.InsufficientDataError
	require.ErrorAs(t, err, &short)
}

func TestDecodeTruncatedOperation(t *testing.T) {
	d := newTestDecoder(t)

	_, err := d.Decode(wrapRequest(delegateOp(1)[:20]), testInstruments())
	var short *codec.InsufficientDataError
	require.ErrorAs(t, err, &short)
}

func TestDecodeInvalidTransport(t *testing.T) {
	d := newTestDecoder(t)

	_, err := d.Decode("@@@@ not base64", testInstruments())
	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, KindTransport, Kind(err))
}

func TestDecodeIsPure(t *testing.T) {
	d := newTestDecoder(t)
	raw := wrapRequest(settleOp())

	first, err := d.Decode(raw, testInstruments())
	require.NoError(t, err)
	second, err := d.Decode(raw, testInstruments())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecodeLogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	d, err := New(WithLogger(zap.New(core)), WithLocation(time.UTC))
	require.NoError(t, err)

	_, err = d.Decode(wrapRequest([]byte{0x09}), testInstruments())
	require.Error(t, err)

	entries := logs.FilterMessage("decode message failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, uint64(9), uint64(entries[0].ContextMap()["opcode"].(uint8)))
}

func TestPackageDecode(t *testing.T) {
	msg, err := Decode(wrapRequest(poolMoveOp(2, 1000000)), testInstruments())
	require.NoError(t, err)
	assert.Equal(t, model.OpSubscribe, msg.OperationType())
}

func TestFormats(t *testing.T) {
	f := newTestDecoder(t).Formats()
	assert.Equal(t, codec.WithdrawFormat, f.Withdraw)
	assert.Equal(t, codec.PoolMoveFormat, f.PoolMove)
	assert.Equal(t, codec.DelegateFormat, f.Delegate)
}

func TestOpcodeString(t *testing.T) {
	assert.Equal(t, "Settle", OpSettle.String())
	assert.Equal(t, "Opcode(200)", Opcode(200).String())
}
