package ingest

import (
	"math"

	"PriceBoard/internal/domain/models"
)

// Synthesize turns a chronologically sorted close-price series for one symbol
// into daily OHLC candles. The feed carries no intraday range, so each candle
// opens at the previous day's close and high/low span only the open/close
// pair. The first candle of a symbol opens at its own close.
func Synthesize(symbol string, observations []models.Observation) []models.Candle {
	if len(observations) == 0 {
		return nil
	}

	candles := make([]models.Candle, 0, len(observations))
	previousClose := observations[0].Close
	for i, obs := range observations {
		open := previousClose
		if i == 0 {
			open = obs.Close
		}

		candles = append(candles, models.Candle{
			Symbol:      symbol,
			DayKey:      obs.DayKey,
			TimestampMs: obs.TimestampMs,
			Open:        open,
			High:        math.Max(open, obs.Close),
			Low:         math.Min(open, obs.Close),
			Close:       obs.Close,
		})

		previousClose = obs.Close
	}
	return candles
}
