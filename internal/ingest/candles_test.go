package ingest

import (
	"testing"
	"time"

	"PriceBoard/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obs(symbol, day string, close float64) models.Observation {
	t, _ := time.Parse("2006-01-02", day)
	return models.Observation{
		Symbol:      symbol,
		DayKey:      day,
		TimestampMs: t.UnixMilli(),
		Close:       close,
	}
}

func TestSynthesizeEmpty(t *testing.T) {
	assert.Nil(t, Synthesize("AAPL", nil))
	assert.Nil(t, Synthesize("AAPL", []models.Observation{}))
}

func TestSynthesizeSingle(t *testing.T) {
	candles := Synthesize("AAPL", []models.Observation{obs("AAPL", "2024-01-05", 100)})
	require.Len(t, candles, 1)

	c := candles[0]
	assert.Equal(t, "AAPL", c.Symbol)
	assert.Equal(t, "2024-01-05", c.DayKey)
	assert.Equal(t, 100.0, c.Open)
	assert.Equal(t, 100.0, c.High)
	assert.Equal(t, 100.0, c.Low)
	assert.Equal(t, 100.0, c.Close)
}

func TestSynthesizeChain(t *testing.T) {
	candles := Synthesize("AAPL", []models.Observation{
		obs("AAPL", "2024-01-05", 100),
		obs("AAPL", "2024-01-06", 110),
		obs("AAPL", "2024-01-07", 105),
	})
	require.Len(t, candles, 3)

	// First candle is degenerate: open equals its own close.
	assert.Equal(t, 100.0, candles[0].Open)
	assert.Equal(t, 100.0, candles[0].Close)

	// Rising day: opens at the previous close, high is the close.
	assert.Equal(t, 100.0, candles[1].Open)
	assert.Equal(t, 110.0, candles[1].High)
	assert.Equal(t, 100.0, candles[1].Low)
	assert.Equal(t, 110.0, candles[1].Close)

	// Falling day: high is the open, low is the close.
	assert.Equal(t, 110.0, candles[2].Open)
	assert.Equal(t, 110.0, candles[2].High)
	assert.Equal(t, 105.0, candles[2].Low)
	assert.Equal(t, 105.0, candles[2].Close)
}

func TestSynthesizeInvariants(t *testing.T) {
	closes := []float64{50, 75.5, 75.5, 10, 200, 199.99}
	series := make([]models.Observation, 0, len(closes))
	for i, close := range closes {
		series = append(series, obs("X", time.Date(2024, 3, i+1, 0, 0, 0, 0, time.UTC).Format("2006-01-02"), close))
	}

	candles := Synthesize("X", series)
	require.Len(t, candles, len(closes))

	for i, c := range candles {
		assert.Equal(t, closes[i], c.Close)
		assert.LessOrEqual(t, c.Low, c.Open)
		assert.LessOrEqual(t, c.Low, c.Close)
		assert.GreaterOrEqual(t, c.High, c.Open)
		assert.GreaterOrEqual(t, c.High, c.Close)
		if i > 0 {
			assert.Equal(t, candles[i-1].Close, c.Open)
		}
	}
}
