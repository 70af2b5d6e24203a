package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"requestScope/internal/config"
	"requestScope/internal/model"
	"requestScope/internal/registry"
	"requestScope/internal/storage/postgres"
)

func main() {
	root := &cobra.Command{
		Use:          "decoder",
		Short:        "C3 signed request decoder",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	decodeCmd := &cobra.Command{
		Use:   "decode [message]",
		Short: "Decode one signed request message",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDecode,
	}

	decodeCmd.Flags().String("message", "", "message to decode (base64 payload or welcome text, - for stdin)")
	decodeCmd.Flags().String("compare", "", "second message to show side by side")
	decodeCmd.Flags().Bool("hex", false, "messages are 0x-prefixed hex payloads")
	decodeCmd.Flags().Bool("url-param", false, "messages were taken from a URL query parameter")
	decodeCmd.Flags().Bool("json", false, "print JSON instead of labelled fields")
	addCommonFlags(decodeCmd)

	root.AddCommand(decodeCmd)

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Decode a JSONL file of messages",
		RunE:  runBatch,
	}

	batchCmd.Flags().String("in", "", `input JSONL of {"id","message"} lines`)
	batchCmd.Flags().String("out", "./data/decoded.jsonl", "output decoded records JSONL")
	batchCmd.Flags().String("errors", "./data/decode_errors.jsonl", "decode errors JSONL")
	batchCmd.Flags().Bool("store", false, "also write decoded records to Postgres")
	batchCmd.Flags().Int("batch-size", 500, "records per write")
	batchCmd.Flags().String("checkpoint", "./data/batch_checkpoint.json", "checkpoint file path")
	batchCmd.Flags().Bool("checkpoint-enabled", true, "resume from and update the checkpoint")
	batchCmd.Flags().Int("max-retries", 5, "maximum retry attempts for result writes")
	batchCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	addCommonFlags(batchCmd)

	root.AddCommand(batchCmd)

	signatureCmd := &cobra.Command{
		Use:   "signature",
		Short: "Print compiled operation signatures",
		RunE:  runSignature,
	}

	signatureCmd.Flags().String("schema", "", "compile a schema file instead of the built-in formats")

	root.AddCommand(signatureCmd)

	addressCmd := &cobra.Command{
		Use:   "address <address>",
		Short: "Resolve an address to its chain, public key and C3 address",
		Args:  cobra.ExactArgs(1),
		RunE:  runAddress,
	}

	root.AddCommand(addressCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("registry", "", "instrument registry file (YAML or JSON)")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN")
	cmd.Flags().String("timezone", "", "time zone for timestamps (default local)")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// loadRegistry reads the instrument snapshot from the registry file when one is
// configured, otherwise from Postgres. Without either the registry is empty and
// every slot resolves to the unknown instrument.
func loadRegistry(ctx context.Context, common config.Common, store *postgres.Store, logger *zap.Logger) (model.Registry, error) {
	var source registry.Source
	switch {
	case common.Registry != "":
		source = registry.FileSource{Path: common.Registry}
	case store != nil:
		source = store
	default:
		logger.Warn("no instrument registry configured")
		return nil, nil
	}

	entries, err := source.LoadRegistry(ctx)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	if err := registry.Validate(entries); err != nil {
		return nil, err
	}
	logger.Info("registry loaded", zap.Int("instruments", len(entries)))
	return entries, nil
}
