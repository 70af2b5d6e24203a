package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"requestScope/internal/config"
	"requestScope/internal/decoder"
	"requestScope/internal/model"
	"requestScope/internal/storage/postgres"
)

func runDecode(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadDecode(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	raw := cfg.Message
	if len(args) == 1 {
		raw = args[0]
	}
	if raw == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		raw = string(data)
	}
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("message is required")
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *postgres.Store
	if cfg.Registry == "" && cfg.PGDSN != "" {
		store, err = postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
	}

	instruments, err := loadRegistry(ctx, cfg.Common, store, logger)
	if err != nil {
		return err
	}

	dec, err := decoder.New(decoder.WithLogger(logger), decoder.WithLocation(loc))
	if err != nil {
		return err
	}

	msg, err := decodeInput(dec, raw, cfg, instruments)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Compare == "" {
		if cfg.JSON {
			return writeJSON(out, msg)
		}
		return renderFields(out, msg)
	}

	other, err := decodeInput(dec, cfg.Compare, cfg, instruments)
	if err != nil {
		return fmt.Errorf("compare: %w", err)
	}
	if cfg.JSON {
		return writeJSON(out, []model.DecodedMessage{msg, other})
	}
	return renderComparison(out, msg, other)
}

// decodeInput applies the input options to raw and decodes it. A welcome text
// without a readable token is reported as an error here, since the command has
// nothing to print.
func decodeInput(dec *decoder.Decoder, raw string, cfg config.DecodeConfig, instruments model.Registry) (model.DecodedMessage, error) {
	switch {
	case cfg.Hex:
		payload, err := hexutil.Decode(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("decode hex message: %w", err)
		}
		raw = base64.StdEncoding.EncodeToString(payload)
	case cfg.URLParam:
		raw = decoder.NormalizeURLParam(raw)
	}

	msg, err := dec.Decode(raw, instruments)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, fmt.Errorf("welcome message carries no login token")
	}
	return msg, nil
}

func writeJSON(w io.Writer, value interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
