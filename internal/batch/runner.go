package batch

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"requestScope/internal/decoder"
	"requestScope/internal/model"
	"requestScope/internal/storage"
)

// RunConfig holds runtime settings for a batch run.
type RunConfig struct {
	Input             string
	BatchSize         int
	CheckpointPath    string
	CheckpointEnabled bool
	MaxRetries        int
	RetryBackoff      time.Duration
}

// ErrorSink receives records for lines that failed to decode.
type ErrorSink interface {
	PutErrorBatch(records []model.DecodeError) error
}

// Stats counts the lines a run handled. Resumed lines were committed by an earlier
// run with the same checkpoint and are not decoded again.
type Stats struct {
	RunID   string
	Total   int
	Decoded int
	Skipped int
	Failed  int
	Resumed int
}

// Runner decodes JSONL message lines and writes the results in batches. A line that
// fails to decode is recorded in the error sink and does not stop the run.
type Runner struct {
	cfg         RunConfig
	decoder     *decoder.Decoder
	instruments model.Registry
	storage     storage.Storage
	errors      ErrorSink
	logger      *zap.Logger
	checkpoint  *CheckpointStore
	now         func() time.Time

	runID      string
	pending    []model.DecodedRecord
	pendingErr []model.DecodeError
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg RunConfig, dec *decoder.Decoder, instruments model.Registry, sink storage.Storage, errSink ErrorSink, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:         cfg,
		decoder:     dec,
		instruments: instruments,
		storage:     sink,
		errors:      errSink,
		logger:      logger,
		checkpoint:  NewCheckpointStore(cfg.CheckpointPath, cfg.CheckpointEnabled),
		now:         time.Now,
	}
}

// Run reads input to the end, or until ctx is done.
func (r *Runner) Run(ctx context.Context, input io.Reader) (Stats, error) {
	if r.decoder == nil {
		return Stats{}, fmt.Errorf("decoder is nil")
	}
	if r.storage == nil || r.errors == nil {
		return Stats{}, fmt.Errorf("storage is nil")
	}
	if r.cfg.BatchSize <= 0 {
		return Stats{}, fmt.Errorf("batch size must be greater than zero")
	}

	r.runID = uuid.NewString()
	resumeAfter := 0
	cp, ok, err := r.checkpoint.Load()
	if err != nil {
		return Stats{}, err
	}
	if ok && cp.Input == r.cfg.Input && cp.RunID != "" {
		r.runID = cp.RunID
		resumeAfter = cp.LastLine
		r.logger.Info("resume from checkpoint", zap.String("run_id", cp.RunID), zap.Int("last_line", cp.LastLine))
	}

	stats := Stats{RunID: r.runID}
	scanner := bufio.NewScanner(input)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if lineNo <= resumeAfter {
			stats.Resumed++
			continue
		}
		stats.Total++

		var record model.MessageRecord
		if err := json.Unmarshal(line, &record); err != nil {
			stats.Failed++
			r.recordError(model.DecodeError{Line: lineNo, Kind: decoder.KindInternal, Error: fmt.Sprintf("parse line: %v", err)})
			continue
		}

		msg, err := r.decoder.Decode(record.Message, r.instruments)
		if err != nil {
			stats.Failed++
			r.recordError(decodeErrorFromRecord(record, lineNo, err))
			continue
		}
		if msg == nil {
			stats.Skipped++
			continue
		}

		decoded, err := json.Marshal(msg)
		if err != nil {
			return stats, fmt.Errorf("marshal %s: %w", record.ID, err)
		}
		r.pending = append(r.pending, model.DecodedRecord{
			RunID:         r.runID,
			ID:            record.ID,
			OperationType: msg.OperationType(),
			Decoded:       decoded,
			DecodedAt:     r.now().UTC().Format(time.RFC3339Nano),
		})
		stats.Decoded++

		if len(r.pending) >= r.cfg.BatchSize {
			if err := r.flush(ctx, lineNo); err != nil {
				return stats, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scan input: %w", err)
	}
	if err := r.flush(ctx, lineNo); err != nil {
		return stats, err
	}
	return stats, nil
}

func (r *Runner) recordError(record model.DecodeError) {
	record.RunID = r.runID
	r.pendingErr = append(r.pendingErr, record)
}

// flush writes pending records and then moves the checkpoint to lastLine.
func (r *Runner) flush(ctx context.Context, lastLine int) error {
	if len(r.pending) > 0 {
		err := withRetry(ctx, r.cfg.MaxRetries, r.cfg.RetryBackoff, r.warnRetry("store decoded batch"), func(ctx context.Context) error {
			return r.storage.PutDecodedBatch(ctx, r.pending)
		})
		if err != nil {
			return fmt.Errorf("store decoded batch: %w", err)
		}
		r.logger.Info("batch stored", zap.Int("records", len(r.pending)), zap.Int("last_line", lastLine))
		r.pending = nil
	}

	if len(r.pendingErr) > 0 {
		if err := r.errors.PutErrorBatch(r.pendingErr); err != nil {
			return fmt.Errorf("store error batch: %w", err)
		}
		r.pendingErr = nil
	}

	return r.checkpoint.Save(Checkpoint{RunID: r.runID, Input: r.cfg.Input, LastLine: lastLine})
}

func (r *Runner) warnRetry(op string) func(int, error) {
	return func(attempt int, err error) {
		r.logger.Warn(op+" failed", zap.Int("attempt", attempt), zap.Error(err))
	}
}

func decodeErrorFromRecord(record model.MessageRecord, line int, err error) model.DecodeError {
	out := model.DecodeError{
		ID:    record.ID,
		Line:  line,
		Kind:  decoder.Kind(err),
		Error: err.Error(),
	}
	if opcode, ok := decoder.OpcodeOf(err); ok {
		out.Opcode = &opcode
	}
	return out
}
