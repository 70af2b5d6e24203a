package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"requestScope/internal/model"
	"requestScope/internal/registry"
	"requestScope/internal/storage"
)

var (
	_ registry.Source = (*Store)(nil)
	_ storage.Storage = (*Store)(nil)
)

// Schema creates the tables the store reads and writes.
const Schema = `
CREATE TABLE IF NOT EXISTS instruments (
	slot_id     SMALLINT NOT NULL,
	id          TEXT NOT NULL,
	asa_id      BIGINT NOT NULL DEFAULT 0,
	asa_name    TEXT NOT NULL DEFAULT '',
	asa_unit    TEXT NOT NULL DEFAULT '',
	decimals    SMALLINT NOT NULL,
	position    INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (slot_id, id)
);
CREATE TABLE IF NOT EXISTS instrument_chains (
	instrument_id TEXT NOT NULL,
	chain_id      INTEGER NOT NULL,
	token_address TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (instrument_id, chain_id)
);
CREATE TABLE IF NOT EXISTS decoded_messages (
	run_id         TEXT NOT NULL,
	message_id     TEXT NOT NULL,
	operation_type TEXT NOT NULL,
	decoded        JSONB NOT NULL,
	decoded_at     TIMESTAMPTZ NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (run_id, message_id)
);
`

// Store provides Postgres access to the instrument registry and decoded messages.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Migrate creates missing tables.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// LoadRegistry reads the instrument snapshot in slot order.
func (s *Store) LoadRegistry(ctx context.Context) (model.Registry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT slot_id, id, asa_id, asa_name, asa_unit, decimals
		FROM instruments
		ORDER BY position, slot_id, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query instruments: %w", err)
	}

	var (
		entries model.Registry
		index   = make(map[string][]int)
	)
	for rows.Next() {
		var (
			slotID, decimals int16
			assetID          int64
			entry            model.RegistryEntry
		)
		if err := rows.Scan(&slotID, &entry.Instrument.ID, &assetID, &entry.Instrument.Name, &entry.Instrument.Symbol, &decimals); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan instrument: %w", err)
		}
		entry.SlotID = uint8(slotID)
		entry.Instrument.ExternalAssetID = uint64(assetID)
		entry.Instrument.Decimals = uint8(decimals)
		index[entry.Instrument.ID] = append(index[entry.Instrument.ID], len(entries))
		entries = append(entries, entry)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read instruments: %w", err)
	}

	chains, err := s.pool.Query(ctx, `
		SELECT instrument_id, chain_id, token_address
		FROM instrument_chains
		ORDER BY instrument_id, chain_id
	`)
	if err != nil {
		return nil, fmt.Errorf("query instrument chains: %w", err)
	}
	defer chains.Close()

	for chains.Next() {
		var (
			instrumentID string
			chainID      int32
			address      string
		)
		if err := chains.Scan(&instrumentID, &chainID, &address); err != nil {
			return nil, fmt.Errorf("scan instrument chain: %w", err)
		}
		for _, i := range index[instrumentID] {
			entries[i].Instrument.Chains = append(entries[i].Instrument.Chains, model.InstrumentChain{
				ChainID:      uint16(chainID),
				TokenAddress: address,
			})
		}
	}
	if err := chains.Err(); err != nil {
		return nil, fmt.Errorf("read instrument chains: %w", err)
	}
	return entries, nil
}

// PutDecodedBatch inserts or updates decoded messages keyed by run and message id.
func (s *Store) PutDecodedBatch(ctx context.Context, records []model.DecodedRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, record := range records {
		decodedAt, err := time.Parse(time.RFC3339Nano, record.DecodedAt)
		if err != nil {
			return fmt.Errorf("record %s decoded_at: %w", record.ID, err)
		}
		batch.Queue(`
			INSERT INTO decoded_messages (
				run_id, message_id, operation_type, decoded, decoded_at, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, now(), now())
			ON CONFLICT (run_id, message_id)
			DO UPDATE SET
				operation_type = EXCLUDED.operation_type,
				decoded = EXCLUDED.decoded,
				decoded_at = EXCLUDED.decoded_at,
				updated_at = now()
		`,
			record.RunID,
			record.ID,
			record.OperationType,
			[]byte(record.Decoded),
			decodedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
