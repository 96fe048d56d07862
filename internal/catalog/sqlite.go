package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"

	"invoice-matcher/internal/reconcile/model"
)

//go:embed schema.sql
var schemaSQL string

const selectProducts = `SELECT id, COALESCE(code, ''), COALESCE(barcode, ''), name, COALESCE(description, '')
FROM products ORDER BY name`

// SQLite — локальный каталог кассы.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite открывает базу и накатывает схему.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// одна запись за раз, иначе SQLITE_BUSY
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Upsert добавляет или обновляет товары по id одной транзакцией.
func (s *SQLite) Upsert(ctx context.Context, products ...model.CatalogProduct) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO products (id, code, barcode, name, description)
VALUES (?, NULLIF(?, ''), NULLIF(?, ''), ?, NULLIF(?, ''))
ON CONFLICT(id) DO UPDATE SET
    code = excluded.code,
    barcode = excluded.barcode,
    name = excluded.name,
    description = excluded.description,
    updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range products {
		if _, err := stmt.ExecContext(ctx, p.ID, p.Code, p.Barcode, p.Name, p.Description); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLite) GetAllProducts(ctx context.Context) ([]model.CatalogProduct, error) {
	rows, err := s.db.QueryContext(ctx, selectProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.CatalogProduct{}
	for rows.Next() {
		var p model.CatalogProduct
		if err := rows.Scan(&p.ID, &p.Code, &p.Barcode, &p.Name, &p.Description); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLite) Close() error { return s.db.Close() }
