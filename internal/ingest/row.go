package ingest

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"PriceBoard/internal/domain/models"
)

var (
	// ErrMissingColumns fails the whole ingestion run before any row is read.
	ErrMissingColumns = errors.New("feed is missing required columns")

	// Row-local skip reasons; they never abort a run.
	ErrMissingSymbol = errors.New("missing symbol")
	ErrInvalidPrice  = errors.New("invalid price")
)

var requiredColumns = []string{"symbol", "publisheddate", "price"}

// CheckHeader verifies the required columns are present (case-insensitive).
func CheckHeader(header []string) error {
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		seen[strings.ToLower(strings.TrimSpace(name))] = true
	}

	var missing []string
	for _, col := range requiredColumns {
		if !seen[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

// NormalizeRow maps lower-cased, trimmed field names to trimmed values.
// Fields past the end of a short record come out empty.
func NormalizeRow(header, record []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, name := range header {
		value := ""
		if i < len(record) {
			value = strings.TrimSpace(record[i])
		}
		row[strings.ToLower(strings.TrimSpace(name))] = value
	}
	return row
}

// ValidateRow extracts an Observation from a normalized row, or reports why
// the row must be skipped.
func ValidateRow(row map[string]string) (models.Observation, error) {
	symbol := row["symbol"]
	if symbol == "" {
		return models.Observation{}, ErrMissingSymbol
	}

	timestampMs, dayKey, err := ParseDay(row["publisheddate"])
	if err != nil {
		return models.Observation{}, err
	}

	price, err := strconv.ParseFloat(row["price"], 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return models.Observation{}, fmt.Errorf("%w: %q", ErrInvalidPrice, row["price"])
	}

	return models.Observation{
		Symbol:      symbol,
		DayKey:      dayKey,
		TimestampMs: timestampMs,
		Close:       price,
	}, nil
}

// SkipReason classifies a ValidateRow error for diagnostics and metrics.
func SkipReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingSymbol):
		return "missing_symbol"
	case errors.Is(err, ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, ErrInvalidPrice):
		return "invalid_price"
	default:
		return "other"
	}
}
