// Package source loads the leaderboard CSV dataset from an HTTP URL or a
// local file and parses it into header-keyed rows.
package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/podiumlab/podium/internal/domain/model"
	"github.com/podiumlab/podium/pkg/logger"
	"github.com/podiumlab/podium/pkg/metrics"
)

const defaultTimeout = 10 * time.Second

// Fetcher loads and parses CSV datasets.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	log     logger.Logger
}

// New creates a Fetcher with default configuration.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  &http.Client{},
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.log == nil {
		f.log = logger.Get()
	}
	return f
}

// Load fetches the CSV at location (http(s) URL or filesystem path), parses
// it, and returns the rows that carry the schema's required name field.
// Row-level parse problems are logged and counted but never abort the load.
func (f *Fetcher) Load(ctx context.Context, location string, schema model.Schema) ([]model.Row, error) {
	start := time.Now()
	metrics.RecordFetch()

	text, err := f.read(ctx, location)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			metrics.RecordFetchError("status")
		} else {
			metrics.RecordFetchError("network")
		}
		return nil, err
	}

	rows, err := f.parse(ctx, text, schema)
	if err != nil {
		metrics.RecordFetchError("parse")
		return nil, err
	}

	metrics.ObserveFetchDuration(float64(time.Since(start).Milliseconds()))
	return rows, nil
}

// read resolves the location. Anything without an http(s) scheme is treated
// as a local file path, which keeps tests and static deployments simple.
func (f *Fetcher) read(ctx context.Context, location string) (string, error) {
	if !strings.HasPrefix(location, "http://") && !strings.HasPrefix(location, "https://") {
		b, err := os.ReadFile(location)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrFetch, err)
		}
		return string(b), nil
	}

	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, location, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetch, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &StatusError{Code: resp.StatusCode}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return string(b), nil
}

// parse reads the header then maps each record onto it. Records with a
// field-count mismatch or a csv-level error are logged and skipped; rows
// with a blank required name field are dropped and counted.
func (f *Fetcher) parse(ctx context.Context, text string, schema model.Schema) ([]model.Row, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []model.Row
	dropped := 0
	line := 1
	for {
		line++
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				f.log.Warn(ctx, "skipping malformed csv row",
					logger.Int("line", line),
					logger.Error(err),
				)
				metrics.RecordRowParseError()
				continue
			}
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}

		if len(record) != len(header) {
			f.log.Warn(ctx, "csv row field count mismatch",
				logger.Int("line", line),
				logger.Int("fields", len(record)),
				logger.Int("expected", len(header)),
			)
			metrics.RecordRowParseError()
		}

		cells := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(record) {
				cells[h] = record[i]
			}
		}
		if strings.TrimSpace(cells[schema.NameKey]) == "" {
			dropped++
			continue
		}
		rows = append(rows, model.Row{ID: uuid.NewString(), Cells: cells})
	}

	if dropped > 0 {
		metrics.RecordRowsDropped(dropped)
		f.log.Debug(ctx, "dropped rows missing required field",
			logger.String("field", schema.NameKey),
			logger.Int("dropped", dropped),
		)
	}
	return rows, nil
}
