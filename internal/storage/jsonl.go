package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"requestScope/internal/model"
)

// JsonlStorage appends records to a JSONL file.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// PutDecodedBatch appends a batch of decoded records as JSON lines.
func (s *JsonlStorage) PutDecodedBatch(_ context.Context, records []model.DecodedRecord) error {
	return appendLines(s, records)
}

// PutErrorBatch appends a batch of decode error records as JSON lines.
func (s *JsonlStorage) PutErrorBatch(records []model.DecodeError) error {
	return appendLines(s, records)
}

func appendLines[T any](s *JsonlStorage, records []T) error {
	if len(records) == 0 {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, record := range records {
		line, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

// MultiStorage fans a batch out to several sinks in order and stops at the first failure.
type MultiStorage []Storage

func (m MultiStorage) PutDecodedBatch(ctx context.Context, records []model.DecodedRecord) error {
	for _, sink := range m {
		if err := sink.PutDecodedBatch(ctx, records); err != nil {
			return err
		}
	}
	return nil
}
