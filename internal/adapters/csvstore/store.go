package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cryptoDashboard/internal/domain"
	"cryptoDashboard/internal/ports"
)

// timeLayout matches the timestamps written by the historical downloader.
const timeLayout = "2006-01-02 15:04:05"

var header = []string{"timestamp", "open", "high", "low", "close", "volume"}

// Store reads and writes candle CSV files laid out as <dir>/<btc_usd>/<timeframe>.csv.
type Store struct {
	dir    string
	logger ports.Logger
}

// New creates a store rooted at dir.
func New(dir string, logger ports.Logger) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: historical directory is required", ports.ErrConfigurationError)
	}
	if logger == nil {
		return nil, errors.New("logger is required for CSV store")
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Name identifies the source in logs.
func (s *Store) Name() string { return "csv" }

// SymbolDir maps "BTC/USD" to "btc_usd".
func SymbolDir(pair string) string {
	return strings.ReplaceAll(strings.ToLower(pair), "/", "_")
}

// Path returns the CSV file holding pair candles for timeframe. Pairs and
// timeframes that would leave the store directory are rejected.
func (s *Store) Path(pair, timeframe string) (string, error) {
	dir := SymbolDir(pair)
	for _, seg := range []string{dir, timeframe} {
		if !safeSegment(seg) {
			return "", fmt.Errorf("%w: unsafe candle path segment %q", ports.ErrInvalidRequest, seg)
		}
	}
	return filepath.Join(s.dir, dir, timeframe+".csv"), nil
}

func safeSegment(seg string) bool {
	return seg != "" && !strings.Contains(seg, "..") && !strings.ContainsAny(seg, "/\\\x00:")
}

// GetCandles implements ports.CandleSource. A missing file is ErrNotFound.
// A first row whose open column is not numeric is treated as a header, rows
// with fewer than five columns or unparseable prices are skipped.
func (s *Store) GetCandles(ctx context.Context, pair, timeframe string) ([]*domain.Kline, error) {
	path, err := s.Path(pair, timeframe)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: no candle file %s", ports.ErrNotFound, path)
		}
		return nil, fmt.Errorf("open candle file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read candle file %s: %w", path, err)
	}

	klines := make([]*domain.Kline, 0, len(records))
	skipped := 0
	for i, rec := range records {
		if len(rec) < 5 {
			skipped++
			continue
		}
		if i == 0 {
			if _, err := strconv.ParseFloat(rec[1], 64); err != nil {
				continue
			}
		}
		k, err := parseRecord(rec)
		if err != nil {
			skipped++
			continue
		}
		k.Symbol = pair
		k.Interval = timeframe
		klines = append(klines, k)
	}
	if skipped > 0 {
		s.logger.Debug(ctx, "Skipped malformed candle rows", map[string]interface{}{
			"path":    path,
			"skipped": skipped,
		})
	}
	return klines, nil
}

func parseRecord(rec []string) (*domain.Kline, error) {
	var prices [4]float64
	for i := range prices {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64)
		if err != nil {
			return nil, err
		}
		prices[i] = v
	}
	k := &domain.Kline{
		RawTime: rec[0],
		Open:    prices[0],
		High:    prices[1],
		Low:     prices[2],
		Close:   prices[3],
		IsFinal: true,
	}
	if len(rec) > 5 {
		k.Volume, _ = strconv.ParseFloat(strings.TrimSpace(rec[5]), 64)
	}
	if t, err := parseTime(rec[0]); err == nil {
		k.OpenTime = t
	}
	return k, nil
}

func parseTime(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, timeLayout, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", raw)
}

// WriteKlines overwrites the pair/timeframe file with klines.
func (s *Store) WriteKlines(pair, timeframe string, klines []*domain.Kline) error {
	path, err := s.Path(pair, timeframe)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create candle directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create candle file %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, k := range klines {
		if err := writer.Write([]string{
			k.OpenTime.UTC().Format(timeLayout),
			strconv.FormatFloat(k.Open, 'f', -1, 64),
			strconv.FormatFloat(k.High, 'f', -1, 64),
			strconv.FormatFloat(k.Low, 'f', -1, 64),
			strconv.FormatFloat(k.Close, 'f', -1, 64),
			strconv.FormatFloat(k.Volume, 'f', -1, 64),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
