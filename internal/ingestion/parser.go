package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/guttosm/brokerpulse/internal/analytics"
	"github.com/guttosm/brokerpulse/internal/domain/models"
	"github.com/guttosm/brokerpulse/internal/source"
	"github.com/guttosm/brokerpulse/internal/storage"
)

// parseAndPersistFile opens one export, detects its kind from the header and
// replaces the rows previously loaded from it with its rows, inserted in
// batches. The replacement is atomic: a failure keeps the old rows.
//
// It fails on:
//   - a header that matches neither export kind
//   - rows with more cells than the header
//   - unrecoverable I/O or database errors
//
// Cell contents are stored verbatim; they are validated at query time.
func parseAndPersistFile(ctx context.Context, path string, repo storage.Repository, batch int) (models.TableKind, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r, header, err := source.NewCSVReader(f)
	if err != nil {
		return "", 0, fmt.Errorf("read header: %w", err)
	}
	kind, ok := analytics.DetectKind(header)
	if !ok {
		return "", 0, fmt.Errorf("unrecognised header %q", strings.Join(header, ","))
	}

	base := filepath.Base(path)
	total := 0
	err = repo.ReplaceFile(ctx, kind, base, func(w storage.RowWriter) error {
		sink := newBatcher(kind, w, batch)
		lineNumber := 1 // header already read

		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			rec, err := r.Read()
			if err != nil {
				if errors.Is(err, io.EOF) {
					break
				}
				return fmt.Errorf("read line after %d: %w", lineNumber, err)
			}
			lineNumber++

			if len(rec) > len(header) {
				return fmt.Errorf("invalid column count on line %d: expected at most %d got %d", lineNumber, len(header), len(rec))
			}

			row := make(models.Record, len(header))
			for i, cell := range rec {
				row[header[i]] = cell
			}
			if err := sink.add(ctx, row); err != nil {
				return fmt.Errorf("flush batch ending line %d: %w", lineNumber, err)
			}
			total++
		}

		if err := sink.flush(ctx); err != nil {
			return fmt.Errorf("final flush: %w", err)
		}
		return nil
	})
	if err != nil {
		return kind, 0, err
	}
	return kind, total, nil
}

// batcher buffers raw rows of one kind and writes them batch at a time.
type batcher struct {
	kind       models.TableKind
	w          storage.RowWriter
	size       int
	txs        []models.RawTransaction
	headcounts []models.RawHeadcount
}

func newBatcher(kind models.TableKind, w storage.RowWriter, size int) *batcher {
	if size < 1 {
		size = defaultBatchSize
	}
	return &batcher{kind: kind, w: w, size: size}
}

func (b *batcher) add(ctx context.Context, rec models.Record) error {
	if b.kind == models.KindHeadcounts {
		b.headcounts = append(b.headcounts, analytics.ToRawHeadcount(rec))
		if len(b.headcounts) < b.size {
			return nil
		}
	} else {
		b.txs = append(b.txs, analytics.ToRawTransaction(rec))
		if len(b.txs) < b.size {
			return nil
		}
	}
	return b.flush(ctx)
}

func (b *batcher) flush(ctx context.Context) error {
	switch {
	case len(b.txs) > 0:
		if err := b.w.InsertTransactions(ctx, b.txs); err != nil {
			return err
		}
		b.txs = b.txs[:0]
	case len(b.headcounts) > 0:
		if err := b.w.InsertHeadcounts(ctx, b.headcounts); err != nil {
			return err
		}
		b.headcounts = b.headcounts[:0]
	}
	return nil
}
