package decoder

import (
	"fmt"

	"requestScope/internal/chain"
	"requestScope/internal/codec"
	"requestScope/internal/model"
)

// decodeDelegate returns a *model.Delegate, or a *model.EphemeralKeyDelegate when the
// nonce is zero.
func (d *Decoder) decodeDelegate(operation []byte) (model.AccountMessage, error) {
	values, err := codec.DecodeTuple(d.formats.Delegate, operation)
	if err != nil {
		return nil, err
	}
	if len(values) != 4 {
		return nil, fmt.Errorf("unexpected delegate values: %d", len(values))
	}

	key, err := codec.AsBytes(values[1])
	if err != nil {
		return nil, fmt.Errorf("delegate address: %w", err)
	}
	delegate, err := chain.AlgorandAddress(key)
	if err != nil {
		return nil, fmt.Errorf("delegate address: %w", err)
	}
	nonce, err := codec.AsUint64(values[2])
	if err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}
	expiresOn, err := codec.AsUint64(values[3])
	if err != nil {
		return nil, fmt.Errorf("expires on: %w", err)
	}

	delegateAddress := chain.DisplayAddress(delegate)
	expires := formatSeconds(expiresOn, d.location)
	if nonce == 0 {
		return &model.EphemeralKeyDelegate{
			DelegateAddress: delegateAddress,
			ExpiresOn:       expires,
		}, nil
	}
	return &model.Delegate{
		DelegateAddress: delegateAddress,
		ExpiresOn:       expires,
		Nonce:           nonce,
	}, nil
}
