package ingestion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/guttosm/brokerpulse/internal/domain/models"
	"github.com/guttosm/brokerpulse/internal/storage"
)

// fakeRepo implements storage.Repository in memory.
type fakeRepo struct {
	mu         sync.Mutex
	logged     map[string]string // filename -> checksum
	kinds      map[string]models.TableKind
	txs        map[string]int
	headcounts map[string]int
	batches    int
	deleted    []string

	hasErr    error
	upsertErr error
	insertErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		logged:     map[string]string{},
		kinds:      map[string]models.TableKind{},
		txs:        map[string]int{},
		headcounts: map[string]int{},
	}
}

func (f *fakeRepo) InsertTransactions(_ context.Context, file string, rows []models.RawTransaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.txs[file] += len(rows)
	f.batches++
	return nil
}

func (f *fakeRepo) InsertHeadcounts(_ context.Context, file string, rows []models.RawHeadcount) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.headcounts[file] += len(rows)
	f.batches++
	return nil
}

func (f *fakeRepo) FetchTransactions(context.Context) (models.Table, error) { return nil, nil }
func (f *fakeRepo) FetchHeadcounts(context.Context) (models.Table, error)   { return nil, nil }

func (f *fakeRepo) HasIngestion(_ context.Context, filename, checksum string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hasErr != nil {
		return false, f.hasErr
	}
	return f.logged[filename] == checksum, nil
}

func (f *fakeRepo) UpsertIngestionLog(_ context.Context, filename, checksum string, kind models.TableKind, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.logged[filename] = checksum
	f.kinds[filename] = kind
	return nil
}

func (f *fakeRepo) DeleteByFile(_ context.Context, kind models.TableKind, filename string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, string(kind)+"/"+filename)
	switch kind {
	case models.KindTransactions:
		delete(f.txs, filename)
	case models.KindHeadcounts:
		delete(f.headcounts, filename)
	}
	return nil
}

// ReplaceFile stages the rows written by load and applies them, replacing
// the file's previous rows, only when load succeeds.
func (f *fakeRepo) ReplaceFile(_ context.Context, kind models.TableKind, filename string, load func(storage.RowWriter) error) error {
	f.mu.Lock()
	f.deleted = append(f.deleted, string(kind)+"/"+filename)
	f.mu.Unlock()

	w := &stagedWriter{repo: f}
	if err := load(w); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	switch kind {
	case models.KindTransactions:
		f.txs[filename] = w.rows
	case models.KindHeadcounts:
		f.headcounts[filename] = w.rows
	}
	f.batches += w.batches
	return nil
}

func (f *fakeRepo) Ping(context.Context) error { return nil }

type stagedWriter struct {
	repo    *fakeRepo
	rows    int
	batches int
}

func (w *stagedWriter) insert(n int) error {
	w.repo.mu.Lock()
	err := w.repo.insertErr
	w.repo.mu.Unlock()
	if err != nil {
		return err
	}
	w.rows += n
	w.batches++
	return nil
}

func (w *stagedWriter) InsertTransactions(_ context.Context, rows []models.RawTransaction) error {
	return w.insert(len(rows))
}

func (w *stagedWriter) InsertHeadcounts(_ context.Context, rows []models.RawHeadcount) error {
	return w.insert(len(rows))
}

func writeFile(t *testing.T, dir, name string, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

const (
	listingsCSV = "Listing ID,Sold Date,Sold Price,Listing Firm 1 - Office Name,Buyer Firm 1 - Office Name\n" +
		"1,01/10/2024,\"$100,000\",A,B\n" +
		"2,01/12/2024,200000,A,A\n"
	brokerageCSV = "Broker,Date,Value\n" +
		"A,2024-01-31,2\n"
)

func TestProcessDirectory_LoadsBothKinds(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "listings.csv", listingsCSV)
	writeFile(t, dir, "brokerage.CSV", brokerageCSV)
	writeFile(t, dir, "notes.txt", "ignored")

	repo := newFakeRepo()
	if err := ProcessDirectory(context.Background(), dir, repo, runtime.NumCPU(), false); err != nil {
		t.Fatalf("ProcessDirectory err: %v", err)
	}
	if repo.txs["listings.csv"] != 2 || repo.headcounts["brokerage.CSV"] != 1 {
		t.Fatalf("unexpected loads: tx=%v hc=%v", repo.txs, repo.headcounts)
	}
	if repo.kinds["listings.csv"] != models.KindTransactions || repo.kinds["brokerage.CSV"] != models.KindHeadcounts {
		t.Fatalf("unexpected kinds: %v", repo.kinds)
	}
	if _, ok := repo.logged["notes.txt"]; ok {
		t.Fatalf("non csv file should be ignored")
	}
}

func TestProcessDirectory_SkipIfAlreadyIngested(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "listings.csv", listingsCSV)
	repo := newFakeRepo()

	if err := ProcessDirectory(context.Background(), dir, repo, 1, false); err != nil {
		t.Fatalf("first run: %v", err)
	}
	batches := repo.batches
	if err := ProcessDirectory(context.Background(), dir, repo, 1, false); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if repo.batches != batches {
		t.Fatalf("expected no inserts when already ingested, got %d new batches", repo.batches-batches)
	}
}

func TestProcessDirectory_ForceReprocess(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "listings.csv", listingsCSV)
	repo := newFakeRepo()

	if err := ProcessDirectory(context.Background(), dir, repo, 1, false); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := ProcessDirectory(context.Background(), dir, repo, 1, true); err != nil {
		t.Fatalf("forced run: %v", err)
	}
	if len(repo.deleted) != 2 || repo.deleted[1] != "transactions/listings.csv" {
		t.Fatalf("expected delete before reload, got %v", repo.deleted)
	}
	if repo.txs["listings.csv"] != 2 {
		t.Fatalf("reload should replace rows, got %d", repo.txs["listings.csv"])
	}
}

func TestProcessDirectory_ChangedFileReloaded(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "listings.csv", listingsCSV)
	repo := newFakeRepo()
	if err := ProcessDirectory(context.Background(), dir, repo, 1, false); err != nil {
		t.Fatalf("first run: %v", err)
	}

	writeFile(t, dir, "listings.csv", listingsCSV+"3,02/02/2024,50,C,B\n")
	if err := ProcessDirectory(context.Background(), dir, repo, 1, false); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if repo.txs["listings.csv"] != 3 {
		t.Fatalf("changed file should be reloaded, got %d rows", repo.txs["listings.csv"])
	}
}

func TestProcessDirectory_Errors(t *testing.T) {
	cases := []struct {
		name    string
		files   map[string]string
		setup   func(r *fakeRepo)
		wantMsg string
	}{
		{name: "empty dir", wantMsg: "no .csv files"},
		{name: "unknown header", files: map[string]string{"x.csv": "foo,bar\n1,2\n"}, wantMsg: "unrecognised header"},
		{
			name:  "has ingestion error",
			files: map[string]string{"listings.csv": listingsCSV},
			setup: func(r *fakeRepo) { r.hasErr = context.DeadlineExceeded },
		},
		{
			name:  "upsert log error",
			files: map[string]string{"listings.csv": listingsCSV},
			setup: func(r *fakeRepo) { r.upsertErr = context.Canceled },
		},
		{
			name:    "insert error",
			files:   map[string]string{"listings.csv": listingsCSV},
			setup:   func(r *fakeRepo) { r.insertErr = errors.New("copy failed") },
			wantMsg: "copy failed",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tc.files {
				writeFile(t, dir, name, content)
			}
			repo := newFakeRepo()
			if tc.setup != nil {
				tc.setup(repo)
			}
			err := ProcessDirectory(context.Background(), dir, repo, 1, false)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.wantMsg != "" && !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error %q should mention %q", err, tc.wantMsg)
			}
		})
	}
}

func TestProcessDirectory_MissingDir(t *testing.T) {
	err := ProcessDirectory(context.Background(), filepath.Join(t.TempDir(), "nope"), newFakeRepo(), 1, false)
	if err == nil || !strings.Contains(err.Error(), "read dir") {
		t.Fatalf("expected read dir error, got %v", err)
	}
}

func TestParallelism(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{1, 1},
		{5, 5},
		{8, 8},
		{20, 8},
	}
	for _, tc := range cases {
		if got := parallelism(tc.in); got != tc.want {
			t.Fatalf("parallelism(%d)=%d want %d", tc.in, got, tc.want)
		}
	}
	if got := parallelism(0); got < 1 || got > maxParallel {
		t.Fatalf("default parallelism out of range: %d", got)
	}
}
