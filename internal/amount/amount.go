package amount

import "math/big"

// Amount is a raw contract integer paired with the decimal precision of its instrument.
type Amount struct {
	raw      *big.Int
	decimals uint8
}

// FromContract wraps a raw on-chain integer.
func FromContract(decimals uint8, raw *big.Int) Amount {
	if raw == nil {
		raw = new(big.Int)
	}
	return Amount{raw: new(big.Int).Set(raw), decimals: decimals}
}

// FromUint64 wraps an unsigned raw integer.
func FromUint64(decimals uint8, raw uint64) Amount {
	return Amount{raw: new(big.Int).SetUint64(raw), decimals: decimals}
}

// FromInt64 wraps a signed raw integer.
func FromInt64(decimals uint8, raw int64) Amount {
	return Amount{raw: big.NewInt(raw), decimals: decimals}
}

func (a Amount) IsZeroOrLess() bool {
	return a.raw.Sign() <= 0
}

// Neg returns the amount with its sign flipped.
func (a Amount) Neg() Amount {
	return Amount{raw: new(big.Int).Neg(a.raw), decimals: a.decimals}
}

// Rat returns raw / 10^decimals.
func (a Amount) Rat() *big.Rat {
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(a.decimals)), nil)
	return new(big.Rat).SetFrac(a.raw, denom)
}

// Float64 returns the nearest float64 to the decimal value.
func (a Amount) Float64() float64 {
	f, _ := a.Rat().Float64()
	return f
}
