package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/brokerpulse/internal/logger"
	"github.com/guttosm/brokerpulse/internal/storage"
)

const (
	fileExt          = ".csv"
	maxParallel      = 8
	defaultBatchSize = 5000
)

// ProcessDirectory loads every CSV export found in dir into Postgres.
//
//   - dir:      directory containing transaction and headcount exports.
//   - repo:     destination repository.
//   - parallel: files loaded at once; <= 0 means min(8, NumCPU), capped at 8.
//   - force:    reload files even when the same content was already loaded.
//
// Behavior:
//   - The kind of each file is detected from its header; unknown files fail.
//   - A file whose name and SHA-256 already appear in the ingestion log is skipped.
//   - Rows previously loaded from a file are deleted before it is reloaded.
//   - If any file returns error, the rest are cancelled and that error is returned.
func ProcessDirectory(ctx context.Context, dir string, repo storage.Repository, parallel int, force bool) error {
	files, err := listExports(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files in %s", fileExt, dir)
	}

	workers := parallelism(parallel)
	log := logger.FromContext(ctx)
	log.Info().Int("files", len(files)).Str("dir", dir).Int("max_parallel", workers).Msg("ingestion start")

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, workers)

	for i, file := range files {
		idx := i
		f := file
		sem <- struct{}{}

		g.Go(func() error {
			defer func() { <-sem }()
			start := time.Now()
			base := filepath.Base(f)
			log.Info().Int("idx", idx+1).Int("total", len(files)).Str("file", base).Msg("file start")

			sum, err := checksum(f)
			if err != nil {
				return fmt.Errorf("file %s: checksum: %w", f, err)
			}

			exists, err := repo.HasIngestion(gctx, base, sum)
			if err != nil {
				log.Error().Str("file", base).Err(err).Msg("check ingestion log failed")
				return fmt.Errorf("file %s: check ingestion log: %w", f, err)
			}
			if exists && !force {
				log.Info().Int("idx", idx+1).Int("total", len(files)).Str("file", base).Bool("skipped", true).Msg("already ingested")
				return nil
			}

			kind, total, err := parseAndPersistFile(gctx, f, repo, defaultBatchSize)
			if err != nil {
				log.Error().Str("file", base).Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				return fmt.Errorf("file %s: %w", f, err)
			}
			if err := repo.UpsertIngestionLog(gctx, base, sum, kind, total); err != nil {
				log.Error().Str("file", base).Err(err).Msg("update ingestion log failed")
				return fmt.Errorf("file %s: upsert ingestion log: %w", f, err)
			}
			log.Info().Int("idx", idx+1).Int("total", len(files)).Str("file", base).Str("kind", string(kind)).
				Int("rows", total).Dur("elapsed", time.Since(start)).Bool("force", force).Msg("file done")
			return nil
		})
	}

	return g.Wait()
}

func listExports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), fileExt) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// parallelism clamps the requested worker count to 1..8, defaulting to
// min(8, NumCPU).
func parallelism(requested int) int {
	if requested > 0 {
		if requested > maxParallel {
			return maxParallel
		}
		return requested
	}
	if c := runtime.NumCPU(); c < maxParallel {
		return c
	}
	return maxParallel
}

func checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
