package storage

import (
	"context"

	"requestScope/internal/model"
)

// Storage defines a sink for decoded batch records.
type Storage interface {
	PutDecodedBatch(ctx context.Context, records []model.DecodedRecord) error
}
