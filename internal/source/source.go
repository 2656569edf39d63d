// Package source delivers the raw transaction and headcount tables to the
// dashboard service from Postgres, S3 or a local directory.
package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/guttosm/brokerpulse/internal/domain/models"
)

// ErrUnavailable wraps every failure to deliver a table.
var ErrUnavailable = errors.New("data source unavailable")

// DataSource hands out the raw tables. Implementations must not retry.
type DataSource interface {
	FetchTransactions(ctx context.Context) (models.Table, error)
	FetchHeadcounts(ctx context.Context) (models.Table, error)
	Ping(ctx context.Context) error
}

func unavailable(kind models.TableKind, err error) error {
	return fmt.Errorf("%w: fetch %s: %w", ErrUnavailable, kind, err)
}

// NewCSVReader returns a reader over an export and its header row. Quotes are
// parsed leniently, rows may have any number of cells, and the header loses
// a leading UTF-8 BOM and surrounding whitespace. An empty input returns
// io.EOF unwrapped.
func NewCSVReader(r io.Reader) (*csv.Reader, []string, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	return cr, header, nil
}

// ReadCSV reads a comma separated export with a header row into a Table.
// Cells are kept as strings; blank cells become nil. Rows shorter than the
// header leave the trailing columns nil.
func ReadCSV(r io.Reader) (models.Table, error) {
	cr, header, err := NewCSVReader(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return models.Table{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	out := models.Table{}
	line := 1
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read line after %d: %w", line, err)
		}
		line++

		row := make(models.Record, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(rec) && strings.TrimSpace(rec[i]) != "" {
				row[h] = rec[i]
			} else {
				row[h] = nil
			}
		}
		out = append(out, row)
	}
	return out, nil
}
