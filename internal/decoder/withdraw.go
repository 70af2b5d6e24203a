package decoder

import (
	"fmt"

	"requestScope/internal/amount"
	"requestScope/internal/chain"
	"requestScope/internal/codec"
	"requestScope/internal/model"
	"requestScope/internal/registry"
)

func (d *Decoder) decodeWithdraw(operation []byte, instruments model.Registry) (*model.Withdraw, error) {
	values, err := codec.DecodeTuple(d.formats.Withdraw, operation)
	if err != nil {
		return nil, err
	}
	if len(values) != 6 {
		return nil, fmt.Errorf("unexpected withdraw values: %d", len(values))
	}

	slotID, err := codec.AsByte(values[1])
	if err != nil {
		return nil, fmt.Errorf("slot id: %w", err)
	}
	rawAmount, err := codec.AsBigInt(values[2])
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}
	receiver, err := codec.AsTuple(values[3])
	if err != nil {
		return nil, fmt.Errorf("receiver: %w", err)
	}
	if len(receiver) != 2 {
		return nil, fmt.Errorf("unexpected receiver values: %d", len(receiver))
	}
	chainID, err := codec.AsUint64(receiver[0])
	if err != nil {
		return nil, fmt.Errorf("chain id: %w", err)
	}
	receiverKey, err := codec.AsBytes(receiver[1])
	if err != nil {
		return nil, fmt.Errorf("receiver address: %w", err)
	}
	rawMaxBorrow, err := codec.AsBigInt(values[4])
	if err != nil {
		return nil, fmt.Errorf("max borrow: %w", err)
	}

	target, err := receiverAddress(chain.ID(chainID), receiverKey)
	if err != nil {
		return nil, err
	}

	instrument := registry.Lookup(slotID, instruments)
	msg := &model.Withdraw{
		Target: chain.DisplayAddress(target),
		Chain: model.Chain{
			ChainID:   uint16(chainID),
			ChainName: chain.Name(chain.ID(chainID)),
		},
		InstrumentName: instrument.ID,
		Amount:         amount.FromContract(instrument.Decimals, rawAmount).Float64(),
	}
	if maxBorrow := amount.FromContract(instrument.Decimals, rawMaxBorrow).Float64(); maxBorrow > 0 {
		msg.MaxBorrow = &maxBorrow
	}
	return msg, nil
}

// receiverAddress renders the withdraw receiver for its destination chain. The key
// travels in Algorand address form whatever the destination, so it is read back
// through the Algorand codec before the destination codec encodes it.
func receiverAddress(id chain.ID, key []byte) (string, error) {
	wireAddress, err := chain.AlgorandAddress(key)
	if err != nil {
		return "", fmt.Errorf("receiver address: %w", err)
	}
	publicKey, err := chain.AlgorandPublicKey(wireAddress)
	if err != nil {
		return "", fmt.Errorf("receiver address: %w", err)
	}
	destination, err := chain.CodecFor(id)
	if err != nil {
		return "", err
	}
	return destination.AddressByPublicKey(publicKey)
}
