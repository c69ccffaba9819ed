// Package storage is the SQLite-backed record store. The schema is owned
// by the embedded migrations; dates are stored as YYYY-MM-DD strings so
// every range query is a BETWEEN over the fixed-width text column.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/zayLatt25/receipt-app/internal/core"
	"github.com/zayLatt25/receipt-app/internal/store"
)

// ErrNotFound aliases the shared sentinel so callers holding only this
// package can still match it.
var ErrNotFound = store.ErrNotFound

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements store.RecordWriter.
func (r *SQLiteRepository) Append(ctx context.Context, e core.ExpenseRecord) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (description, amount_cents, category, expense_date) VALUES (?, ?, ?, ?)`,
		e.Description, e.Amount.Cents, e.Category, e.Date)
	if err != nil {
		return "", fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"description", e.Description,
		"amount_cents", e.Amount.Cents,
		"date", e.Date)

	return strconv.FormatInt(id, 10), nil
}

// Delete implements store.RecordDeleter. The deleted record is returned so
// the caller can invalidate the right month's cache entry.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) (core.ExpenseRecord, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("%w: bad id %q", ErrNotFound, id)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	var rec core.ExpenseRecord
	rec.ID = id
	err = tx.QueryRowContext(ctx,
		`SELECT description, amount_cents, category, expense_date FROM expenses WHERE id = ?`, numID).
		Scan(&rec.Description, &rec.Amount.Cents, &rec.Category, &rec.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ExpenseRecord{}, ErrNotFound
	}
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("load expense %s: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, numID); err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("delete expense %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("commit delete: %w", err)
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id, "date", rec.Date)
	return rec, nil
}

// ListByDate implements store.RecordReader.
func (r *SQLiteRepository) ListByDate(ctx context.Context, date string) ([]core.ExpenseRecord, error) {
	return r.list(ctx,
		`SELECT id, description, amount_cents, category, expense_date FROM expenses WHERE expense_date = ? ORDER BY id`,
		date)
}

// ListByRange implements store.RecordReader.
func (r *SQLiteRepository) ListByRange(ctx context.Context, start, end string) ([]core.ExpenseRecord, error) {
	return r.list(ctx,
		`SELECT id, description, amount_cents, category, expense_date FROM expenses
		 WHERE expense_date BETWEEN ? AND ? ORDER BY expense_date, id`,
		start, end)
}

// ListByMonth implements store.RecordReader.
func (r *SQLiteRepository) ListByMonth(ctx context.Context, monthKey string) ([]core.ExpenseRecord, error) {
	start, end, err := core.MonthRange(monthKey)
	if err != nil {
		return nil, fmt.Errorf("month key %q: %w", monthKey, err)
	}
	return r.ListByRange(ctx, start, end)
}

// ListAll implements store.RecordReader.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.ExpenseRecord, error) {
	return r.list(ctx,
		`SELECT id, description, amount_cents, category, expense_date FROM expenses ORDER BY expense_date, id`)
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]core.ExpenseRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var out []core.ExpenseRecord
	for rows.Next() {
		var (
			id  int64
			rec core.ExpenseRecord
		)
		if err := rows.Scan(&id, &rec.Description, &rec.Amount.Cents, &rec.Category, &rec.Date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		rec.ID = strconv.FormatInt(id, 10)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

// Categories implements store.TaxonomyReader.
func (r *SQLiteRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}

// AddCategory implements store.TaxonomyWriter. The NOCASE primary key in
// the schema backs the same case-insensitive dedupe the memory store does.
func (r *SQLiteRepository) AddCategory(ctx context.Context, name string) (string, error) {
	existing, err := r.Categories(ctx)
	if err != nil {
		return "", err
	}
	canonical, isNew := core.ResolveCategory(existing, name)
	if !isNew {
		return canonical, nil
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO categories (name, position) VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM categories))`,
		canonical)
	if err != nil {
		return "", fmt.Errorf("insert category: %w", err)
	}
	slog.InfoContext(ctx, "Category added", "name", canonical)
	return canonical, nil
}

// LoadGroceryList implements store.GroceryStore.
func (r *SQLiteRepository) LoadGroceryList(ctx context.Context) ([]core.GroceryItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, pieces, price_cents FROM grocery_items ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query grocery items: %w", err)
	}
	defer rows.Close()

	var out []core.GroceryItem
	for rows.Next() {
		var it core.GroceryItem
		if err := rows.Scan(&it.Name, &it.Pieces, &it.Price.Cents); err != nil {
			return nil, fmt.Errorf("scan grocery item: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate grocery items: %w", err)
	}
	return out, nil
}

// SaveGroceryList implements store.GroceryStore. The list is replaced
// wholesale inside one transaction, mirroring the document-style writes
// the mobile client performs.
func (r *SQLiteRepository) SaveGroceryList(ctx context.Context, items []core.GroceryItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin grocery save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM grocery_items`); err != nil {
		return fmt.Errorf("clear grocery items: %w", err)
	}
	for i, it := range items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO grocery_items (position, name, pieces, price_cents) VALUES (?, ?, ?, ?)`,
			i, it.Name, it.Pieces, it.Price.Cents)
		if err != nil {
			return fmt.Errorf("insert grocery item %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit grocery save: %w", err)
	}
	return nil
}
