package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/guttosm/brokerpulse/internal/domain/models"
	pq "github.com/lib/pq"
)

// Repository is the Postgres store of raw exports.
type Repository interface {
	InsertTransactions(ctx context.Context, sourceFile string, rows []models.RawTransaction) error
	InsertHeadcounts(ctx context.Context, sourceFile string, rows []models.RawHeadcount) error
	FetchTransactions(ctx context.Context) (models.Table, error)
	FetchHeadcounts(ctx context.Context) (models.Table, error)
	HasIngestion(ctx context.Context, filename, checksum string) (bool, error)
	UpsertIngestionLog(ctx context.Context, filename, checksum string, kind models.TableKind, rowCount int) error
	DeleteByFile(ctx context.Context, kind models.TableKind, filename string) error
	ReplaceFile(ctx context.Context, kind models.TableKind, filename string, load func(RowWriter) error) error
	Ping(ctx context.Context) error
}

// RowWriter inserts the rows of one file inside a ReplaceFile transaction.
type RowWriter interface {
	InsertTransactions(ctx context.Context, rows []models.RawTransaction) error
	InsertHeadcounts(ctx context.Context, rows []models.RawHeadcount) error
}

var transactionColumns = []string{
	"listing_id",
	"sold_date",
	"sold_price",
	"listing_firm",
	"buyer_firm",
	"listing_agent",
	"buyer_agent",
	"area_city",
	"community",
	"building_type",
	"property_class",
}

var headcountColumns = []string{
	"broker",
	"snapshot_date",
	"agent_count",
}

type repository struct {
	db *sql.DB
}

// NewRepository wraps db.
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// InsertTransactions bulk-loads rows with COPY in a single transaction.
func (r *repository) InsertTransactions(ctx context.Context, sourceFile string, rows []models.RawTransaction) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		return copyTransactions(ctx, tx, sourceFile, rows)
	})
}

// InsertHeadcounts bulk-loads rows with COPY in a single transaction.
func (r *repository) InsertHeadcounts(ctx context.Context, sourceFile string, rows []models.RawHeadcount) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		return copyHeadcounts(ctx, tx, sourceFile, rows)
	})
}

// ReplaceFile deletes the rows previously loaded from filename and runs load
// in the same transaction. Nothing is visible to readers until load returns
// nil; on any error the old rows are kept.
func (r *repository) ReplaceFile(ctx context.Context, kind models.TableKind, filename string, load func(RowWriter) error) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	return r.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE source_file = $1`, table), filename); err != nil {
			return fmt.Errorf("delete %s rows of %s: %w", table, filename, err)
		}
		return load(&txWriter{tx: tx, file: filename})
	})
}

type txWriter struct {
	tx   *sql.Tx
	file string
}

func (w *txWriter) InsertTransactions(ctx context.Context, rows []models.RawTransaction) error {
	return copyTransactions(ctx, w.tx, w.file, rows)
}

func (w *txWriter) InsertHeadcounts(ctx context.Context, rows []models.RawHeadcount) error {
	return copyHeadcounts(ctx, w.tx, w.file, rows)
}

func copyTransactions(ctx context.Context, tx *sql.Tx, sourceFile string, rows []models.RawTransaction) error {
	return copyIn(ctx, tx, string(models.KindTransactions), transactionColumns, len(rows), func(i int) []any {
		t := rows[i]
		return []any{
			nullable(t.ListingID),
			nullable(t.SoldDate),
			nullable(t.SoldPrice),
			nullable(t.ListingFirm),
			nullable(t.BuyerFirm),
			nullable(t.ListingAgent),
			nullable(t.BuyerAgent),
			nullable(t.AreaCity),
			nullable(t.Community),
			nullable(t.BuildingType),
			nullable(t.PropertyClass),
			sourceFile,
		}
	})
}

func copyHeadcounts(ctx context.Context, tx *sql.Tx, sourceFile string, rows []models.RawHeadcount) error {
	return copyIn(ctx, tx, string(models.KindHeadcounts), headcountColumns, len(rows), func(i int) []any {
		h := rows[i]
		return []any{nullable(h.Broker), nullable(h.Date), nullable(h.Value), sourceFile}
	})
}

// inTx runs fn in a transaction tuned for bulk loads, committing on success
// and rolling back otherwise.
func (r *repository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func copyIn(ctx context.Context, tx *sql.Tx, table string, columns []string, n int, row func(int) []any) error {
	cols := append(append([]string(nil), columns...), "source_file")
	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, cols...))
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, row(i)...); err != nil {
			_ = stmt.Close()
			return err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return err
	}
	return stmt.Close()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// FetchTransactions returns every stored transaction row, keyed by column name.
func (r *repository) FetchTransactions(ctx context.Context) (models.Table, error) {
	return r.fetch(ctx, string(models.KindTransactions), transactionColumns)
}

// FetchHeadcounts returns every stored headcount row, keyed by column name.
func (r *repository) FetchHeadcounts(ctx context.Context) (models.Table, error) {
	return r.fetch(ctx, string(models.KindHeadcounts), headcountColumns)
}

func (r *repository) fetch(ctx context.Context, table string, columns []string) (models.Table, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id`, strings.Join(columns, ", "), table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var out models.Table
	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		rec := make(models.Record, len(columns))
		for i, col := range columns {
			if values[i].Valid {
				rec[col] = values[i].String
			} else {
				rec[col] = nil
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}

// HasIngestion reports whether filename was already loaded with the same checksum.
func (r *repository) HasIngestion(ctx context.Context, filename, checksum string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE filename = $1 AND checksum = $2)`,
		filename, checksum,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or updates) the load of filename.
func (r *repository) UpsertIngestionLog(ctx context.Context, filename, checksum string, kind models.TableKind, rowCount int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ingestion_log (filename, checksum, kind, row_count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (filename)
		DO UPDATE SET checksum = EXCLUDED.checksum,
		              kind = EXCLUDED.kind,
		              row_count = EXCLUDED.row_count,
		              ingested_at = NOW()
	`, filename, checksum, string(kind), rowCount)
	return err
}

// DeleteByFile removes the rows previously loaded from filename.
func (r *repository) DeleteByFile(ctx context.Context, kind models.TableKind, filename string) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE source_file = $1`, table), filename)
	return err
}

func tableFor(kind models.TableKind) (string, error) {
	switch kind {
	case models.KindTransactions, models.KindHeadcounts:
		return string(kind), nil
	default:
		return "", fmt.Errorf("unknown table kind %q", kind)
	}
}

// Ping checks database connectivity.
func (r *repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
