package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("batch", pflag.ContinueOnError)
	flags.String("in", "", "")
	flags.String("out", "./data/decoded.jsonl", "")
	flags.Bool("store", false, "")
	flags.String("pg-dsn", "", "")
	return flags
}

func TestLoadBatchDefaults(t *testing.T) {
	cfg, err := LoadBatch("", nil)
	require.NoError(t, err)
	assert.Equal(t, "./data/decoded.jsonl", cfg.Out)
	assert.Equal(t, "./data/decode_errors.jsonl", cfg.Errors)
	assert.Equal(t, 500, cfg.BatchSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Store)
}

func TestLoadBatchFlagsAndEnv(t *testing.T) {
	t.Setenv("DECODER_LOG_LEVEL", "debug")
	t.Setenv("DECODER_REGISTRY", "instruments.yaml")

	flags := batchFlags()
	require.NoError(t, flags.Parse([]string{"--in", "messages.jsonl", "--out", "out.jsonl"}))

	cfg, err := LoadBatch("", flags)
	require.NoError(t, err)
	assert.Equal(t, "messages.jsonl", cfg.In)
	assert.Equal(t, "out.jsonl", cfg.Out)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "instruments.yaml", cfg.Registry)
}

func TestLoadBatchStoreRequiresDSN(t *testing.T) {
	flags := batchFlags()
	require.NoError(t, flags.Parse([]string{"--store"}))

	_, err := LoadBatch("", flags)
	require.Error(t, err)
}

func TestLoadDecodeConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "decoder.yaml")
	require.NoError(t, os.WriteFile(path, []byte("registry: reg.yaml\ntimezone: UTC\njson: true\n"), 0o644))

	cfg, err := LoadDecode(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "reg.yaml", cfg.Registry)
	assert.True(t, cfg.JSON)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLocation(t *testing.T) {
	loc, err := Common{}.Location()
	require.NoError(t, err)
	assert.Equal(t, "Local", loc.String())

	_, err = Common{Timezone: "Not/AZone"}.Location()
	assert.Error(t, err)
}
