package model

import (
	"bytes"
	"encoding/json"
)

// Operation type labels.
const (
	OpLogin                = "Login"
	OpWithdraw             = "Withdraw"
	OpSubscribe            = "Subscribe"
	OpRedeem               = "Redeem"
	OpSettle               = "Settle"
	OpDelegate             = "Delegate"
	OpEphemeralKeyDelegate = "Ephemeral Key Delegate"
)

// Field is one key/value pair of a decoded message, in display order.
type Field struct {
	Key   string
	Value interface{}
}

// DecodedMessage is implemented by Login, Withdraw, PoolMove, Settle, Delegate
// and EphemeralKeyDelegate.
type DecodedMessage interface {
	OperationType() string
	Fields() []Field
	sealed()
}

// AccountMessage is a decoded message bound to the header's signing account.
type AccountMessage interface {
	DecodedMessage
	SetAccount(account string)
}

// Login is the decoded welcome message.
type Login struct {
	UserID       string
	CreationTime string
}

// Chain identifies a destination chain.
type Chain struct {
	ChainID   uint16 `json:"chainId"`
	ChainName string `json:"chainName"`
}

type Withdraw struct {
	Target         string
	Chain          Chain
	InstrumentName string
	Amount         float64
	MaxBorrow      *float64
	Account        string
}

// PoolMove is a subscribe or redeem against a lending pool; Type carries the sign.
type PoolMove struct {
	Type           string
	InstrumentName string
	Amount         float64
	Account        string
}

type Settle struct {
	Nonce       uint64
	ExpiresOn   string
	SellAssetID string
	SellAmount  float64
	BuyAssetID  string
	BuyAmount   float64
	MaxBorrow   float64
	MaxRepay    float64
	Account     string
}

type Delegate struct {
	DelegateAddress string
	ExpiresOn       string
	Nonce           uint64
	Account         string
}

// EphemeralKeyDelegate is a delegation signed with a zero nonce; it carries no nonce.
type EphemeralKeyDelegate struct {
	DelegateAddress string
	ExpiresOn       string
	Account         string
}

func (*Login) OperationType() string                { return OpLogin }
func (*Withdraw) OperationType() string             { return OpWithdraw }
func (m *PoolMove) OperationType() string           { return m.Type }
func (*Settle) OperationType() string               { return OpSettle }
func (*Delegate) OperationType() string             { return OpDelegate }
func (*EphemeralKeyDelegate) OperationType() string { return OpEphemeralKeyDelegate }

func (*Login) sealed()                {}
func (*Withdraw) sealed()             {}
func (*PoolMove) sealed()             {}
func (*Settle) sealed()               {}
func (*Delegate) sealed()             {}
func (*EphemeralKeyDelegate) sealed() {}

func (m *Withdraw) SetAccount(account string)             { m.Account = account }
func (m *PoolMove) SetAccount(account string)             { m.Account = account }
func (m *Settle) SetAccount(account string)               { m.Account = account }
func (m *Delegate) SetAccount(account string)             { m.Account = account }
func (m *EphemeralKeyDelegate) SetAccount(account string) { m.Account = account }

func (m *Login) Fields() []Field {
	return []Field{
		{"operationType", m.OperationType()},
		{"userID", m.UserID},
		{"creationTime", m.CreationTime},
	}
}

func (m *Withdraw) Fields() []Field {
	fields := []Field{
		{"operationType", m.OperationType()},
		{"target", m.Target},
		{"chain", m.Chain},
		{"instrumentName", m.InstrumentName},
		{"amount", m.Amount},
	}
	if m.MaxBorrow != nil {
		fields = append(fields, Field{"maxBorrow", *m.MaxBorrow})
	}
	return withAccount(fields, m.Account)
}

func (m *PoolMove) Fields() []Field {
	return withAccount([]Field{
		{"operationType", m.OperationType()},
		{"instrumentName", m.InstrumentName},
		{"amount", m.Amount},
	}, m.Account)
}

func (m *Settle) Fields() []Field {
	return withAccount([]Field{
		{"operationType", m.OperationType()},
		{"nonce", m.Nonce},
		{"expiresOn", m.ExpiresOn},
		{"sellAssetId", m.SellAssetID},
		{"sellAmount", m.SellAmount},
		{"buyAssetId", m.BuyAssetID},
		{"buyAmount", m.BuyAmount},
		{"maxBorrow", m.MaxBorrow},
		{"maxRepay", m.MaxRepay},
	}, m.Account)
}

func (m *Delegate) Fields() []Field {
	return withAccount([]Field{
		{"operationType", m.OperationType()},
		{"delegateAddress", m.DelegateAddress},
		{"expiresOn", m.ExpiresOn},
		{"nonce", m.Nonce},
	}, m.Account)
}

func (m *EphemeralKeyDelegate) Fields() []Field {
	return withAccount([]Field{
		{"operationType", m.OperationType()},
		{"delegateAddress", m.DelegateAddress},
		{"expiresOn", m.ExpiresOn},
	}, m.Account)
}

func withAccount(fields []Field, account string) []Field {
	if account == "" {
		return fields
	}
	return append(fields, Field{"account", account})
}

// FieldMap flattens a message into a key/value map.
func FieldMap(m DecodedMessage) map[string]interface{} {
	fields := m.Fields()
	out := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}

// Lookup returns the value of key in the message.
func Lookup(m DecodedMessage, key string) (interface{}, bool) {
	for _, f := range m.Fields() {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalFields encodes fields as a JSON object preserving their order.
func MarshalFields(fields []Field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *Login) MarshalJSON() ([]byte, error)                { return MarshalFields(m.Fields()) }
func (m *Withdraw) MarshalJSON() ([]byte, error)             { return MarshalFields(m.Fields()) }
func (m *PoolMove) MarshalJSON() ([]byte, error)             { return MarshalFields(m.Fields()) }
func (m *Settle) MarshalJSON() ([]byte, error)               { return MarshalFields(m.Fields()) }
func (m *Delegate) MarshalJSON() ([]byte, error)             { return MarshalFields(m.Fields()) }
func (m *EphemeralKeyDelegate) MarshalJSON() ([]byte, error) { return MarshalFields(m.Fields()) }
