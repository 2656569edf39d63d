package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guttosm/brokerpulse/internal/cache/redis"
	"github.com/guttosm/brokerpulse/internal/domain/models"
)

const transactionsCSV = "\ufeffListing ID,Sold Date,Sold Price,Listing Firm 1 - Office Name,Buyer Firm 1 - Office Name\n" +
	"1,01/10/2024,\"$100,000\",A,B\n" +
	"2,01/12/2024,,A,A\n" +
	"3,02/02/2024,50\n"

func TestReadCSV(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(transactionsCSV))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(tbl) != 3 {
		t.Fatalf("rows: want 3 got %d", len(tbl))
	}
	if tbl[0]["Listing ID"] != "1" || tbl[0]["Sold Price"] != "$100,000" {
		t.Fatalf("row 0: %v", tbl[0])
	}
	if v, ok := tbl[1]["Sold Price"]; !ok || v != nil {
		t.Fatalf("blank cell should be nil, got %v", v)
	}
	if v, ok := tbl[2]["Buyer Firm 1 - Office Name"]; !ok || v != nil {
		t.Fatalf("short row should pad with nil, got %v", v)
	}
}

func TestReadCSV_Empty(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(""))
	if err != nil || tbl == nil || len(tbl) != 0 {
		t.Fatalf("want empty table, got %v err=%v", tbl, err)
	}
}

func TestNewCSVReader(t *testing.T) {
	cases := []struct {
		name       string
		in         string
		wantHeader []string
		wantCells  int
		wantEOF    bool
	}{
		{name: "bom and padding stripped", in: "\ufeff Broker , Date,Value\nA,2024-01-01,2\n", wantHeader: []string{"Broker", "Date", "Value"}, wantCells: 3},
		{name: "ragged rows allowed", in: "a,b\n1,2,3\n", wantHeader: []string{"a", "b"}, wantCells: 3},
		{name: "lazy quotes", in: "a,b\n1,say \"hi\"\n", wantHeader: []string{"a", "b"}, wantCells: 2},
		{name: "empty", in: "", wantEOF: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, header, err := NewCSVReader(strings.NewReader(tc.in))
			if tc.wantEOF {
				if !errors.Is(err, io.EOF) {
					t.Fatalf("want io.EOF got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewCSVReader: %v", err)
			}
			if strings.Join(header, "|") != strings.Join(tc.wantHeader, "|") {
				t.Fatalf("header: want %q got %q", tc.wantHeader, header)
			}
			rec, err := r.Read()
			if err != nil || len(rec) != tc.wantCells {
				t.Fatalf("row: %q err=%v", rec, err)
			}
		})
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "transactions.csv"), []byte(transactionsCSV), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	src := NewFileSource(dir, "transactions.csv", "headcounts.csv")

	if err := src.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	tbl, err := src.FetchTransactions(context.Background())
	if err != nil || len(tbl) != 3 {
		t.Fatalf("FetchTransactions: rows=%d err=%v", len(tbl), err)
	}
	if _, err := src.FetchHeadcounts(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("missing file should be unavailable, got %v", err)
	}
	if err := NewFileSource(filepath.Join(dir, "nope"), "a", "b").Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error for missing dir")
	}
}

type fakeObjects struct {
	objects map[string]string
	err     error
}

func (f fakeObjects) Get(_ context.Context, key string) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

type fakeHealth struct{ err error }

func (f fakeHealth) Health(context.Context) error { return f.err }

func TestS3Source(t *testing.T) {
	objs := fakeObjects{objects: map[string]string{
		"exports/transactions.csv": transactionsCSV,
		"exports/headcounts.csv":   "Broker,Date,Value\nA,2024-01-31,2\n",
	}}
	src := NewS3Source(objs, fakeHealth{}, "exports/transactions.csv", "exports/headcounts.csv")

	tx, err := src.FetchTransactions(context.Background())
	if err != nil || len(tx) != 3 {
		t.Fatalf("FetchTransactions: rows=%d err=%v", len(tx), err)
	}
	hc, err := src.FetchHeadcounts(context.Background())
	if err != nil || len(hc) != 1 || hc[0]["Broker"] != "A" {
		t.Fatalf("FetchHeadcounts: %v err=%v", hc, err)
	}
	if err := src.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	boom := errors.New("timeout")
	broken := NewS3Source(fakeObjects{err: boom}, fakeHealth{err: boom}, "t", "h")
	if _, err := broken.FetchTransactions(context.Background()); !errors.Is(err, ErrUnavailable) || !errors.Is(err, boom) {
		t.Fatalf("want wrapped upstream error, got %v", err)
	}
	if err := broken.Ping(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Ping: %v", err)
	}
}

type stubSource struct {
	tx, hc models.Table
	err    error
	calls  int
}

func (s *stubSource) FetchTransactions(context.Context) (models.Table, error) {
	s.calls++
	return s.tx, s.err
}

func (s *stubSource) FetchHeadcounts(context.Context) (models.Table, error) {
	s.calls++
	return s.hc, s.err
}

func (s *stubSource) Ping(context.Context) error { return s.err }

type memCache struct {
	tables  map[string]models.Table
	getErr  error
	setErr  error
	setKeys []string
}

func (m *memCache) Get(_ context.Context, name string) (models.Table, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	t, ok := m.tables[name]
	if !ok {
		return nil, redis.ErrMiss
	}
	return t, nil
}

func (m *memCache) Set(_ context.Context, name string, t models.Table) error {
	m.setKeys = append(m.setKeys, name)
	if m.setErr != nil {
		return m.setErr
	}
	m.tables[name] = t
	return nil
}

func TestCachedSource_ReadThrough(t *testing.T) {
	next := &stubSource{tx: models.Table{{"Sold Date": "01/10/2024"}}}
	cache := &memCache{tables: map[string]models.Table{}}
	src := NewCachedSource(next, cache)

	for i := 0; i < 3; i++ {
		tbl, err := src.FetchTransactions(context.Background())
		if err != nil || len(tbl) != 1 {
			t.Fatalf("fetch %d: %v err=%v", i, tbl, err)
		}
	}
	if next.calls != 1 {
		t.Fatalf("want one upstream call, got %d", next.calls)
	}
	if len(cache.setKeys) != 1 || cache.setKeys[0] != "transactions" {
		t.Fatalf("unexpected cache writes %v", cache.setKeys)
	}
}

func TestCachedSource_CacheFailuresBypassed(t *testing.T) {
	next := &stubSource{hc: models.Table{{"Broker": "A"}}}
	cache := &memCache{tables: map[string]models.Table{}, getErr: errors.New("conn refused"), setErr: errors.New("conn refused")}
	src := NewCachedSource(next, cache)

	tbl, err := src.FetchHeadcounts(context.Background())
	if err != nil || len(tbl) != 1 {
		t.Fatalf("cache failure must not fail the fetch: %v err=%v", tbl, err)
	}
}

func TestCachedSource_UpstreamFailure(t *testing.T) {
	boom := unavailable(models.KindTransactions, errors.New("db down"))
	cache := &memCache{tables: map[string]models.Table{}}
	src := NewCachedSource(&stubSource{err: boom}, cache)

	if _, err := src.FetchTransactions(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want upstream error, got %v", err)
	}
	if len(cache.setKeys) != 0 {
		t.Fatalf("failed fetch must not be cached")
	}
}
