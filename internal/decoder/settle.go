package decoder

import (
	"fmt"

	"requestScope/internal/amount"
	"requestScope/internal/codec"
	"requestScope/internal/model"
	"requestScope/internal/registry"
)

func (d *Decoder) decodeSettle(operation []byte, instruments model.Registry) (*model.Settle, error) {
	values, err := codec.DecodeTuple(d.formats.Settle, operation)
	if err != nil {
		return nil, err
	}
	if len(values) != 10 {
		return nil, fmt.Errorf("unexpected settle values: %d", len(values))
	}

	var (
		nonce, expiresOn                        uint64
		sellSlot, buySlot                       byte
		sellAmount, maxBorrow, buyAmount, repay uint64
	)
	targets := []struct {
		name  string
		index int
		dst   *uint64
	}{
		{"nonce", 2, &nonce},
		{"expires on", 3, &expiresOn},
		{"sell amount", 5, &sellAmount},
		{"max borrow", 6, &maxBorrow},
		{"buy amount", 8, &buyAmount},
		{"max repay", 9, &repay},
	}
	for _, target := range targets {
		if *target.dst, err = codec.AsUint64(values[target.index]); err != nil {
			return nil, fmt.Errorf("%s: %w", target.name, err)
		}
	}
	if sellSlot, err = codec.AsByte(values[4]); err != nil {
		return nil, fmt.Errorf("sell slot id: %w", err)
	}
	if buySlot, err = codec.AsByte(values[7]); err != nil {
		return nil, fmt.Errorf("buy slot id: %w", err)
	}

	sellAsset := registry.Lookup(sellSlot, instruments)
	buyAsset := registry.Lookup(buySlot, instruments)

	return &model.Settle{
		Nonce:       nonce,
		ExpiresOn:   formatSeconds(expiresOn, d.location),
		SellAssetID: sellAsset.ID,
		SellAmount:  amount.FromUint64(sellAsset.Decimals, sellAmount).Float64(),
		BuyAssetID:  buyAsset.ID,
		BuyAmount:   amount.FromUint64(buyAsset.Decimals, buyAmount).Float64(),
		MaxBorrow:   amount.FromUint64(sellAsset.Decimals, maxBorrow).Float64(),
		MaxRepay:    amount.FromUint64(buyAsset.Decimals, repay).Float64(),
	}, nil
}
