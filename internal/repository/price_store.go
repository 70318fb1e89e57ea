package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"PriceBoard/internal/domain/models"
	applogger "PriceBoard/pkg/logger"
	pkgsqlite "PriceBoard/pkg/sqlite"
)

// SQLitePriceStore persists the synthesized candle series, keyed by
// (symbol, published_date).
type SQLitePriceStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewSQLitePriceStore(client *pkgsqlite.Client) *SQLitePriceStore {
	return &SQLitePriceStore{db: client.DB()}
}

// SetLogger injects a structured logger.
func (s *SQLitePriceStore) SetLogger(l *applogger.Logger) { s.l = l }

// ReplaceAll atomically deletes every stored candle and inserts the new set.
// An empty set is a no-op so a bad feed never wipes good data. On any failure
// the transaction rolls back and readers keep seeing the pre-call table.
func (s *SQLitePriceStore) ReplaceAll(ctx context.Context, candles []models.Candle) error {
	if len(candles) == 0 {
		return nil
	}
	start := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM prices`); err != nil {
		return fmt.Errorf("clear prices: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO prices (symbol, published_date, timestamp, open, high, low, close)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range candles {
		if _, err := stmt.ExecContext(ctx,
			c.Symbol, c.DayKey, c.TimestampMs, c.Open, c.High, c.Low, c.Close,
		); err != nil {
			return fmt.Errorf("insert candle %s/%s: %w", c.Symbol, c.DayKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}

	if s.l != nil {
		s.l.Info("prices replaced",
			applogger.Int("rows", len(candles)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

// Series returns candles grouped by symbol, each list ascending by timestamp.
// A non-empty symbol restricts the result to that symbol after trimming.
func (s *SQLitePriceStore) Series(ctx context.Context, symbol string) (map[string][]models.CandlePoint, error) {
	query := `SELECT symbol, timestamp, open, high, low, close FROM prices`
	var args []interface{}
	if trimmed := strings.TrimSpace(symbol); trimmed != "" {
		query += ` WHERE symbol = ?`
		args = append(args, trimmed)
	}
	query += ` ORDER BY symbol, timestamp`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query prices: %w", err)
	}
	defer rows.Close()

	series := make(map[string][]models.CandlePoint)
	for rows.Next() {
		var sym string
		var p models.CandlePoint
		if err := rows.Scan(&sym, &p.TimestampMs, &p.Open, &p.High, &p.Low, &p.Close); err != nil {
			return nil, fmt.Errorf("scan candle: %w", err)
		}
		series[sym] = append(series[sym], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return series, nil
}

// Symbols returns every distinct stored symbol in alphabetical order.
func (s *SQLitePriceStore) Symbols(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT symbol FROM prices ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("query symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, fmt.Errorf("scan symbol: %w", err)
		}
		symbols = append(symbols, strings.TrimSpace(sym))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return symbols, nil
}

func (s *SQLitePriceStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
