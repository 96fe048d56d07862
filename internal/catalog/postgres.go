package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"invoice-matcher/internal/reconcile/model"
)

// Postgres — каталог в общей базе магазина (таблица products).
type Postgres struct {
	pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, dsn string, dialTimeout time.Duration) (*Postgres, error) {
	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pc.MaxConns = 4
	pc.MinConns = 0
	pc.MaxConnIdleTime = 30 * time.Minute
	pc.ConnConfig.RuntimeParams["application_name"] = "invoice-matcher"

	if dialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, dialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) GetAllProducts(ctx context.Context) ([]model.CatalogProduct, error) {
	rows, err := p.pool.Query(ctx, `SELECT id::text, COALESCE(code, ''), COALESCE(barcode, ''), name, COALESCE(description, '')
FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.CatalogProduct{}
	for rows.Next() {
		var c model.CatalogProduct
		if err := rows.Scan(&c.ID, &c.Code, &c.Barcode, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}
