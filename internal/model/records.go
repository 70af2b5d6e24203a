package model

import "encoding/json"

// MessageRecord is one line of batch input.
type MessageRecord struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// DecodedRecord is one line of batch output.
type DecodedRecord struct {
	RunID         string          `json:"run_id"`
	ID            string          `json:"id"`
	OperationType string          `json:"operation_type"`
	Decoded       json.RawMessage `json:"decoded"`
	DecodedAt     string          `json:"decoded_at"`
}

// DecodeError records a decode failure for a batch line.
type DecodeError struct {
	RunID  string `json:"run_id"`
	ID     string `json:"id"`
	Line   int    `json:"line"`
	Kind   string `json:"kind"`
	Opcode *uint8 `json:"opcode,omitempty"`
	Error  string `json:"error"`
}
