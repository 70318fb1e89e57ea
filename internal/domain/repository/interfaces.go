package repository

import (
	"context"

	"PriceBoard/internal/domain/models"
)

// PriceStore is the persisted candle series, keyed by (symbol, day).
type PriceStore interface {
	// ReplaceAll atomically deletes every stored candle and inserts the new
	// set. An empty set is a no-op so a bad feed never wipes good data.
	ReplaceAll(ctx context.Context, candles []models.Candle) error
	// Series returns candles grouped by symbol, each list ascending by
	// timestamp. A non-empty symbol restricts to that symbol (exact match
	// after trimming).
	Series(ctx context.Context, symbol string) (map[string][]models.CandlePoint, error)
	// Symbols returns every distinct stored symbol in alphabetical order.
	Symbols(ctx context.Context) ([]string, error)
	Health(ctx context.Context) error
}

// PreferenceStore holds one opaque JSON payload per user.
type PreferenceStore interface {
	// Get returns the raw stored payload, or ErrNotFound.
	Get(ctx context.Context, userID string) (string, error)
	Upsert(ctx context.Context, userID, payload, updatedAt string) error
	Delete(ctx context.Context, userID string) error
}

// Metrics records ingestion observability signals.
type Metrics interface {
	RecordRowIngested(symbol string)
	RecordRowSkipped(reason string)
	RecordCandlesLoaded(n int)
	RecordIngestRun(outcome string, seconds float64)
}
