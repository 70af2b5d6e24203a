package codec

// Signatures of the operation payloads as they appear on the wire.
const (
	WithdrawFormat    = "(byte,uint8,uint64,(uint16,address),uint64,uint64)"
	PoolMoveFormat    = "(byte,uint8,uint64)"
	DelegateFormat    = "(byte,address,uint64,uint64)"
	AccountMoveFormat = "(byte,address,(uint8,uint64)[],(uint8,uint64)[])"
)

// OrderOperationHex is the fixed opcode literal leading an order payload.
const OrderOperationHex = "06"

// HeaderSchema is the layout common to every binary request, after the transport prefix.
func HeaderSchema() Schema {
	return Schema{
		{Name: "target", Descriptor: Address{}},
		{Name: "lease", Descriptor: Bytes{Size: 32}},
		{Name: "lastValid", Descriptor: Number{}},
	}
}

func WithdrawSchema() Schema {
	return Schema{
		{Name: "operation", Descriptor: Byte{}},
		{Name: "slotId", Descriptor: Number{Size: 1}},
		{Name: "amount", Descriptor: Number{}},
		{Name: "receiver", Descriptor: Object{Fields: Schema{
			{Name: "chainId", Descriptor: Number{Size: 2}},
			{Name: "address", Descriptor: Address{}},
		}}},
		{Name: "maxBorrow", Descriptor: Number{}},
		{Name: "maxFees", Descriptor: Number{}},
	}
}

func PoolMoveSchema() Schema {
	return Schema{
		{Name: "operation", Descriptor: Byte{}},
		{Name: "slotId", Descriptor: Number{Size: 1}},
		{Name: "amount", Descriptor: Number{}},
	}
}

func DelegateSchema() Schema {
	return Schema{
		{Name: "operation", Descriptor: Byte{}},
		{Name: "delegate", Descriptor: Address{}},
		{Name: "nonce", Descriptor: Number{}},
		{Name: "expiresOn", Descriptor: Number{}},
	}
}

// AccountMoveSchema is defined for completeness; no decoder consumes it.
func AccountMoveSchema() Schema {
	slotAmount := Object{Fields: Schema{
		{Name: "slotId", Descriptor: Number{Size: 1}},
		{Name: "amount", Descriptor: Number{}},
	}}
	return Schema{
		{Name: "operation", Descriptor: Byte{}},
		{Name: "target", Descriptor: Address{}},
		{Name: "collateral", Descriptor: Array{Elem: slotAmount}},
		{Name: "liabilities", Descriptor: Array{Elem: slotAmount}},
	}
}

// OrderSchema is the settle payload layout.
func OrderSchema() Schema {
	return Schema{
		{Name: "operation", Descriptor: Fixed{ValueHex: OrderOperationHex}},
		{Name: "account", Descriptor: Bytes{Size: 32, Tag: KindBase64}},
		{Name: "nonce", Descriptor: Number{}},
		{Name: "expiresOn", Descriptor: Number{}},
		{Name: "sellSlotId", Descriptor: Byte{}},
		{Name: "sellAmount", Descriptor: Number{Tag: KindUint}},
		{Name: "maxBorrow", Descriptor: Number{Tag: KindUint}},
		{Name: "buySlotId", Descriptor: Byte{}},
		{Name: "buyAmount", Descriptor: Number{Tag: KindUint}},
		{Name: "maxRepay", Descriptor: Number{Tag: KindUint}},
	}
}

// Formats holds the compiled signatures a decoder works from.
type Formats struct {
	Withdraw    string
	PoolMove    string
	Delegate    string
	AccountMove string
	Settle      string
}

// CompileFormats compiles every built-in operation schema.
func CompileFormats() (Formats, error) {
	var f Formats
	targets := []struct {
		dst    *string
		schema Schema
	}{
		{&f.Withdraw, WithdrawSchema()},
		{&f.PoolMove, PoolMoveSchema()},
		{&f.Delegate, DelegateSchema()},
		{&f.AccountMove, AccountMoveSchema()},
		{&f.Settle, OrderSchema()},
	}
	for _, target := range targets {
		sig, err := Compile(target.schema)
		if err != nil {
			return Formats{}, err
		}
		*target.dst = sig
	}
	return f, nil
}
