package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/guttosm/brokerpulse/internal/domain/models"
)

// FileSource reads the two exports from a local directory.
type FileSource struct {
	dir          string
	transactions string
	headcounts   string
}

// NewFileSource reads transactionsFile and headcountsFile under dir.
func NewFileSource(dir, transactionsFile, headcountsFile string) *FileSource {
	return &FileSource{dir: dir, transactions: transactionsFile, headcounts: headcountsFile}
}

func (s *FileSource) FetchTransactions(ctx context.Context) (models.Table, error) {
	return s.read(ctx, models.KindTransactions, s.transactions)
}

func (s *FileSource) FetchHeadcounts(ctx context.Context) (models.Table, error) {
	return s.read(ctx, models.KindHeadcounts, s.headcounts)
}

// Ping checks that the directory exists.
func (s *FileSource) Ping(context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}

func (s *FileSource) read(ctx context.Context, kind models.TableKind, name string) (models.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(kind, err)
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, unavailable(kind, err)
	}
	defer func() { _ = f.Close() }()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, unavailable(kind, fmt.Errorf("%s: %w", name, err))
	}
	return t, nil
}
