package ingest

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDate marks date text no supported format could parse.
var ErrInvalidDate = errors.New("invalid date")

// isoLayouts are tried first. RFC3339 covers explicit offsets and the
// trailing Z marker; the others cover zoneless datetime text, which is
// treated as already UTC.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// fallbackLayouts are tried in fixed priority order when no ISO layout
// matches. Non-padded layouts accept both "2024-1-5" and "2024-01-05";
// the two-digit year follows the stdlib century window (69..99 -> 19xx).
var fallbackLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"1/2/06",
}

// ParseDay parses free-form date text into the UTC-midnight millisecond
// timestamp and ISO day key of its calendar date. Time-of-day in the input
// is discarded after conversion to UTC.
func ParseDay(text string) (int64, string, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, "", fmt.Errorf("%w: empty value", ErrInvalidDate)
	}

	parsed, ok := tryLayouts(s, isoLayouts)
	if !ok {
		parsed, ok = tryLayouts(s, fallbackLayouts)
	}
	if !ok {
		return 0, "", fmt.Errorf("%w: unsupported format %q", ErrInvalidDate, s)
	}

	t := parsed.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.UnixMilli(), midnight.Format("2006-01-02"), nil
}

func tryLayouts(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
