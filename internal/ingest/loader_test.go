package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"PriceBoard/internal/domain/models"
	applogger "PriceBoard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	replaced [][]models.Candle
	err      error
}

func (f *fakeStore) ReplaceAll(_ context.Context, candles []models.Candle) error {
	if f.err != nil {
		return f.err
	}
	f.replaced = append(f.replaced, candles)
	return nil
}

func (f *fakeStore) Series(context.Context, string) (map[string][]models.CandlePoint, error) {
	return nil, nil
}

func (f *fakeStore) Symbols(context.Context) ([]string, error) { return nil, nil }

func (f *fakeStore) Health(context.Context) error { return nil }

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return l
}

func writeFeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoaderMissingFileIsNoOp(t *testing.T) {
	store := &fakeStore{}
	loader := NewLoader(filepath.Join(t.TempDir(), "absent.csv"), store, testLogger(t), nil)

	require.NoError(t, loader.Run(context.Background()))
	assert.Empty(t, store.replaced)
}

func TestLoaderEmptyFileIsNoOp(t *testing.T) {
	store := &fakeStore{}
	loader := NewLoader(writeFeed(t, ""), store, testLogger(t), nil)

	require.NoError(t, loader.Run(context.Background()))
	assert.Empty(t, store.replaced)
}

func TestLoaderHeaderOnlyIsNoOp(t *testing.T) {
	store := &fakeStore{}
	loader := NewLoader(writeFeed(t, "symbol,publisheddate,price\n"), store, testLogger(t), nil)

	require.NoError(t, loader.Run(context.Background()))
	assert.Empty(t, store.replaced)
}

func TestLoaderMissingColumnsFails(t *testing.T) {
	store := &fakeStore{}
	feed := "symbol,price\nAAPL,100\n"
	loader := NewLoader(writeFeed(t, feed), store, testLogger(t), nil)

	err := loader.Run(context.Background())
	require.ErrorIs(t, err, ErrMissingColumns)
	assert.Empty(t, store.replaced)
}

func TestLoaderAllRowsInvalidIsNoOp(t *testing.T) {
	store := &fakeStore{}
	feed := "symbol,publisheddate,price\n,2024-01-05,100\nAAPL,bogus,100\nAAPL,2024-01-05,notanumber\n"
	loader := NewLoader(writeFeed(t, feed), store, testLogger(t), nil)

	require.NoError(t, loader.Run(context.Background()))
	assert.Empty(t, store.replaced)
}

func TestLoaderSynthesizesAndReplaces(t *testing.T) {
	store := &fakeStore{}
	feed := "\ufeffSymbol,PublishedDate,Price,Source\n" +
		"MSFT,2024-01-06,210,feedB\n" +
		"AAPL,2024-01-05,100,feedA\n" +
		"AAPL,2024-01-06,110,feedA\n" +
		"MSFT,2024-01-05,200\n" +
		",2024-01-07,1,skipped\n" +
		"AAPL,2024-01-07,105,feedA\n"
	loader := NewLoader(writeFeed(t, feed), store, testLogger(t), nil)

	require.NoError(t, loader.Run(context.Background()))
	require.Len(t, store.replaced, 1)

	candles := store.replaced[0]
	require.Len(t, candles, 5)

	// Symbols come out alphabetically, each series in day order.
	assert.Equal(t, "AAPL", candles[0].Symbol)
	assert.Equal(t, "2024-01-05", candles[0].DayKey)
	assert.Equal(t, "2024-01-06", candles[1].DayKey)
	assert.Equal(t, "2024-01-07", candles[2].DayKey)
	assert.Equal(t, "MSFT", candles[3].Symbol)
	assert.Equal(t, "2024-01-05", candles[3].DayKey)

	// The open chain runs per symbol, not across the whole file.
	assert.Equal(t, 100.0, candles[1].Open)
	assert.Equal(t, 110.0, candles[1].Close)
	assert.Equal(t, 110.0, candles[2].Open)
	assert.Equal(t, 200.0, candles[3].Open)
	assert.Equal(t, 200.0, candles[4].Open)
	assert.Equal(t, 210.0, candles[4].Close)
}

func TestLoaderSameDayKeepsLastRow(t *testing.T) {
	store := &fakeStore{}
	feed := "symbol,publisheddate,price\n" +
		"AAPL,2024-01-05,100\n" +
		"AAPL,2024-01-05,102\n" +
		"AAPL,2024-01-06,110\n"
	loader := NewLoader(writeFeed(t, feed), store, testLogger(t), nil)

	require.NoError(t, loader.Run(context.Background()))
	require.Len(t, store.replaced, 1)

	candles := store.replaced[0]
	require.Len(t, candles, 2)
	assert.Equal(t, 102.0, candles[0].Close)
	assert.Equal(t, 102.0, candles[1].Open)
}

func TestLoaderIsIdempotent(t *testing.T) {
	store := &fakeStore{}
	feed := "symbol,publisheddate,price\nAAPL,2024-01-05,100\nAAPL,2024-01-06,110\n"
	loader := NewLoader(writeFeed(t, feed), store, testLogger(t), nil)

	require.NoError(t, loader.Run(context.Background()))
	require.NoError(t, loader.Run(context.Background()))

	require.Len(t, store.replaced, 2)
	assert.Equal(t, store.replaced[0], store.replaced[1])
}
