package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// BatchConfig holds configuration for the batch command.
type BatchConfig struct {
	Common
	In        string
	Out       string
	Errors    string
	Store     bool
	BatchSize int

	Checkpoint        string
	CheckpointEnabled bool
	MaxRetries        int
	RetryBackoff      time.Duration
}

// LoadBatch merges config file, environment variables, and flags into BatchConfig.
func LoadBatch(cfgFile string, flags *pflag.FlagSet) (BatchConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"out":        "./data/decoded.jsonl",
		"errors":     "./data/decode_errors.jsonl",
		"store":      false,
		"batch-size": 500,

		"checkpoint":         "./data/batch_checkpoint.json",
		"checkpoint-enabled": true,
		"max-retries":        5,
		"retry-backoff":      500 * time.Millisecond,
	})
	if err != nil {
		return BatchConfig{}, err
	}

	cfg := BatchConfig{
		Common:    loadCommon(v),
		In:        v.GetString("in"),
		Out:       v.GetString("out"),
		Errors:    v.GetString("errors"),
		Store:     v.GetBool("store"),
		BatchSize: v.GetInt("batch-size"),

		Checkpoint:        v.GetString("checkpoint"),
		CheckpointEnabled: v.GetBool("checkpoint-enabled"),
		MaxRetries:        v.GetInt("max-retries"),
		RetryBackoff:      v.GetDuration("retry-backoff"),
	}
	if cfg.BatchSize <= 0 {
		return BatchConfig{}, fmt.Errorf("batch-size must be positive, got %d", cfg.BatchSize)
	}
	if cfg.Store && cfg.PGDSN == "" {
		return BatchConfig{}, fmt.Errorf("store requires pg-dsn")
	}
	return cfg, nil
}
