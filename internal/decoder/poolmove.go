package decoder

import (
	"fmt"

	"requestScope/internal/amount"
	"requestScope/internal/codec"
	"requestScope/internal/model"
	"requestScope/internal/registry"
)

func (d *Decoder) decodePoolMove(operation []byte, instruments model.Registry) (*model.PoolMove, error) {
	values, err := codec.DecodeTuple(d.formats.PoolMove, operation)
	if err != nil {
		return nil, err
	}
	if len(values) != 3 {
		return nil, fmt.Errorf("unexpected pool move values: %d", len(values))
	}

	slotID, err := codec.AsByte(values[1])
	if err != nil {
		return nil, fmt.Errorf("slot id: %w", err)
	}
	raw, err := codec.AsUint64(values[2])
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}

	// the amount is a two's-complement int64 on the wire
	signed := int64(raw)

	instrument := registry.Lookup(slotID, instruments)
	moved := amount.FromInt64(instrument.Decimals, signed)
	if moved.IsZeroOrLess() {
		moved = moved.Neg()
	}

	opType := model.OpRedeem
	if signed > 0 {
		opType = model.OpSubscribe
	}

	return &model.PoolMove{
		Type:           opType,
		InstrumentName: instrument.ID,
		Amount:         moved.Float64(),
	}, nil
}
