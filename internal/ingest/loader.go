package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"PriceBoard/internal/domain/models"
	domrepo "PriceBoard/internal/domain/repository"
	applogger "PriceBoard/pkg/logger"

	"github.com/samber/lo"
)

// Loader is the ingestion orchestrator: it reads the CSV feed, validates and
// normalizes rows, synthesizes per-symbol candle series, and commits the full
// set to the price store in one transaction. Safe to run repeatedly.
type Loader struct {
	csvPath string
	store   domrepo.PriceStore
	logger  *applogger.Logger
	metrics domrepo.Metrics
}

func NewLoader(csvPath string, store domrepo.PriceStore, logger *applogger.Logger, metrics domrepo.Metrics) *Loader {
	return &Loader{
		csvPath: csvPath,
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

// Run ingests the feed and atomically replaces the stored candle set.
// A missing feed and a feed with no usable rows both succeed with zero
// effect, so previously loaded data survives a bad or absent file.
func (l *Loader) Run(ctx context.Context) error {
	start := time.Now()
	err := l.run(ctx)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	if l.metrics != nil {
		l.metrics.RecordIngestRun(outcome, time.Since(start).Seconds())
	}
	return err
}

func (l *Loader) run(ctx context.Context) error {
	f, err := os.Open(l.csvPath)
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("price feed not found; prices not updated", applogger.String("path", l.csvPath))
		return nil
	}
	if err != nil {
		return fmt.Errorf("open feed: %w", err)
	}
	defer f.Close()

	l.logger.Info("loading price data", applogger.String("path", l.csvPath))

	observations, err := l.readObservations(f)
	if err != nil {
		return err
	}
	if len(observations) == 0 {
		l.logger.Warn("no price rows parsed from feed; prices table not updated",
			applogger.String("path", l.csvPath))
		return nil
	}

	grouped := lo.GroupBy(observations, func(o models.Observation) string { return o.Symbol })
	symbols := lo.Keys(grouped)
	sort.Strings(symbols)

	candles := make([]models.Candle, 0, len(observations))
	for _, symbol := range symbols {
		series := grouped[symbol]
		sort.SliceStable(series, func(i, j int) bool {
			return series[i].TimestampMs < series[j].TimestampMs
		})
		candles = append(candles, Synthesize(symbol, dedupeByDay(series))...)
	}

	if err := l.store.ReplaceAll(ctx, candles); err != nil {
		return fmt.Errorf("replace prices: %w", err)
	}

	if l.metrics != nil {
		l.metrics.RecordCandlesLoaded(len(candles))
	}
	l.logger.Info("price data loaded",
		applogger.Int("candles", len(candles)),
		applogger.Int("symbols", len(symbols)),
	)
	return nil
}

func (l *Loader) readObservations(r io.Reader) ([]models.Observation, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		l.logger.Warn("price feed missing header row; prices not updated")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		// utf-8-sig feeds carry a BOM on the first column name.
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	if err := CheckHeader(header); err != nil {
		return nil, err
	}

	var out []models.Observation
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			l.skip(line, "csv_parse", err, nil)
			continue
		}

		row := NormalizeRow(header, record)
		obs, err := ValidateRow(row)
		if err != nil {
			l.skip(line, SkipReason(err), err, row)
			continue
		}

		if l.metrics != nil {
			l.metrics.RecordRowIngested(obs.Symbol)
		}
		out = append(out, obs)
	}
	return out, nil
}

// skip reports a dropped row; advisory only, never affects the run outcome.
func (l *Loader) skip(line int, reason string, err error, row map[string]string) {
	l.logger.Debug("skipping feed row",
		applogger.Int("line", line),
		applogger.String("reason", reason),
		applogger.Error(err),
		applogger.Any("row", row),
	)
	if l.metrics != nil {
		l.metrics.RecordRowSkipped(reason)
	}
}

// dedupeByDay keeps only the last row for each day of an already sorted
// series, matching the store's (symbol, day) primary key so the open-price
// chain never walks through rows that storage would discard.
func dedupeByDay(series []models.Observation) []models.Observation {
	deduped := make([]models.Observation, 0, len(series))
	for _, obs := range series {
		if n := len(deduped); n > 0 && deduped[n-1].DayKey == obs.DayKey {
			deduped[n-1] = obs
			continue
		}
		deduped = append(deduped, obs)
	}
	return deduped
}
