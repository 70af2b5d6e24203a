package decoder

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"requestScope/internal/chain"
	"requestScope/internal/codec"
	"requestScope/internal/model"
)

// Opcode is the leading byte of an operation payload.
type Opcode uint8

const (
	OpDeposit Opcode = iota
	OpWithdraw
	OpPoolMove
	OpDelegate
	OpLiquidate
	OpAccountMove
	OpSettle
)

var opcodeNames = map[Opcode]string{
	OpDeposit:     "Deposit",
	OpWithdraw:    "Withdraw",
	OpPoolMove:    "PoolMove",
	OpDelegate:    "Delegate",
	OpLiquidate:   "Liquidate",
	OpAccountMove: "AccountMove",
	OpSettle:      "Settle",
}

func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Opcode(%d)", uint8(o))
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger used for decode diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithLocation sets the time zone timestamps are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(d *Decoder) {
		if loc != nil {
			d.location = loc
		}
	}
}

// Decoder turns signed request messages into decoded records. It holds no
// per-message state and is safe for concurrent use.
type Decoder struct {
	formats  codec.Formats
	logger   *zap.Logger
	location *time.Location
}

// New builds a Decoder with the built-in operation formats.
func New(opts ...Option) (*Decoder, error) {
	formats, err := codec.CompileFormats()
	if err != nil {
		return nil, fmt.Errorf("compile formats: %w", err)
	}

	d := &Decoder{
		formats:  formats,
		logger:   zap.NewNop(),
		location: time.Local,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Formats returns the compiled operation signatures.
func (d *Decoder) Formats() codec.Formats {
	return d.formats
}

// Decode decodes a raw message against an instrument registry snapshot.
//
// Welcome texts decode to *model.Login; when the welcome text carries no readable
// token Decode returns a nil message and a nil error. Binary requests decode to
// the operation record with the header account attached.
func (d *Decoder) Decode(raw string, instruments model.Registry) (model.DecodedMessage, error) {
	if IsWelcome(raw) {
		login, err := d.DecodeWelcome(raw)
		if err != nil {
			d.logger.Debug("welcome message not decoded", zap.Error(err))
			return nil, nil
		}
		return login, nil
	}

	msg, err := d.decodeRequest(raw, instruments)
	if err != nil {
		fields := []zap.Field{
			zap.Int("message_length", len(raw)),
			zap.String("kind", Kind(err)),
			zap.Error(err),
		}
		if opcode, ok := OpcodeOf(err); ok {
			fields = append(fields, zap.Uint8("opcode", opcode))
		}
		d.logger.Error("decode message failed", fields...)
		return nil, err
	}
	return msg, nil
}

func (d *Decoder) decodeRequest(raw string, instruments model.Registry) (model.AccountMessage, error) {
	payload, err := unwrapTransport(raw)
	if err != nil {
		return nil, err
	}

	header, read, err := codec.UnpackHeader(payload)
	if err != nil {
		return nil, fmt.Errorf("decode header: %w", err)
	}
	operation := payload[read:]
	if len(operation) == 0 {
		return nil, &codec.InsufficientDataError{Schema: "operation", Field: "opcode", Need: 1}
	}

	var msg model.AccountMessage
	switch op := Opcode(operation[0]); op {
	case OpWithdraw:
		msg, err = d.decodeWithdraw(operation, instruments)
	case OpPoolMove:
		msg, err = d.decodePoolMove(operation, instruments)
	case OpSettle:
		msg, err = d.decodeSettle(operation, instruments)
	case OpDelegate:
		msg, err = d.decodeDelegate(operation)
	default:
		return nil, &UnknownOperationError{Opcode: uint8(op)}
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", Opcode(operation[0]), err)
	}

	msg.SetAccount(chain.DisplayAddress(header.Target))
	return msg, nil
}

// Decode decodes a message with a default Decoder.
func Decode(raw string, instruments model.Registry) (model.DecodedMessage, error) {
	d, err := New()
	if err != nil {
		return nil, err
	}
	return d.Decode(raw, instruments)
}
