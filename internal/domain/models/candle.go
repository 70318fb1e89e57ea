package models

// Observation is one validated CSV row: a closing price for a symbol on a
// UTC calendar day. TimestampMs is always midnight UTC of DayKey.
type Observation struct {
	Symbol      string
	DayKey      string
	TimestampMs int64
	Close       float64
}

// Candle is one synthesized daily OHLC record for a symbol.
type Candle struct {
	Symbol      string  `json:"symbol"`
	DayKey      string  `json:"dayKey"`
	TimestampMs int64   `json:"timestamp"`
	Open        float64 `json:"open"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	Close       float64 `json:"close"`
}

// CandlePoint is the wire shape of a candle inside a per-symbol series.
type CandlePoint struct {
	TimestampMs int64   `json:"timestamp"`
	Open        float64 `json:"open"`
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	Close       float64 `json:"close"`
}

// SymbolInfo describes a symbol for chart frontends. The feed carries no
// metadata beyond the ticker, so every field derives from it.
type SymbolInfo struct {
	Ticker          string `json:"ticker"`
	ShortName       string `json:"shortName"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	PricePrecision  int    `json:"pricePrecision"`
	VolumePrecision int    `json:"volumePrecision"`
}

// NewSymbolInfo builds the SymbolInfo payload for a ticker.
func NewSymbolInfo(ticker string) SymbolInfo {
	return SymbolInfo{
		Ticker:          ticker,
		ShortName:       ticker,
		Name:            ticker,
		Type:            "custom",
		PricePrecision:  2,
		VolumePrecision: 0,
	}
}
