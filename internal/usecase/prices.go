package usecase

import (
	"context"
	"fmt"
	"sort"

	"PriceBoard/internal/domain/models"
	domrepo "PriceBoard/internal/domain/repository"
	"PriceBoard/internal/ingest"

	"github.com/samber/lo"
)

// PricesUseCase serves the persisted candle series and triggers re-ingestion.
type PricesUseCase struct {
	store  domrepo.PriceStore
	loader *ingest.Loader
}

func NewPricesUseCase(store domrepo.PriceStore, loader *ingest.Loader) *PricesUseCase {
	return &PricesUseCase{store: store, loader: loader}
}

// PricesResult is the GET /api/prices payload.
type PricesResult struct {
	Symbols []models.SymbolInfo             `json:"symbols"`
	Series  map[string][]models.CandlePoint `json:"series"`
}

// GetPrices returns the stored series grouped by symbol, optionally filtered
// to one symbol. The symbols list mirrors the series keys.
func (uc *PricesUseCase) GetPrices(ctx context.Context, symbol string) (*PricesResult, error) {
	series, err := uc.store.Series(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("get prices: %w", err)
	}

	keys := lo.Keys(series)
	sort.Strings(keys)

	symbols := make([]models.SymbolInfo, 0, len(keys))
	for _, key := range keys {
		symbols = append(symbols, models.NewSymbolInfo(key))
	}

	if series == nil {
		series = map[string][]models.CandlePoint{}
	}
	return &PricesResult{Symbols: symbols, Series: series}, nil
}

// ListSymbols returns every distinct stored symbol.
func (uc *PricesUseCase) ListSymbols(ctx context.Context) ([]models.SymbolInfo, error) {
	tickers, err := uc.store.Symbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("list symbols: %w", err)
	}

	symbols := make([]models.SymbolInfo, 0, len(tickers))
	for _, ticker := range tickers {
		symbols = append(symbols, models.NewSymbolInfo(ticker))
	}
	return symbols, nil
}

// Reload re-runs the ingestion pipeline.
func (uc *PricesUseCase) Reload(ctx context.Context) error {
	return uc.loader.Run(ctx)
}
