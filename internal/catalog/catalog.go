// Package catalog — источники каталога товаров для сверки накладных.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"invoice-matcher/internal/config"
	"invoice-matcher/internal/fileio"
	"invoice-matcher/internal/reconcile/model"
)

var ErrUnknownSource = errors.New("unknown catalog source")

// Catalog — то, что нужно сервису сверки, плюс освобождение ресурсов.
type Catalog interface {
	GetAllProducts(ctx context.Context) ([]model.CatalogProduct, error)
	Close() error
}

// Open выбирает источник по CATALOG_DSN:
//
//	""                         демо-каталог
//	postgres://, postgresql:// Postgres
//	sqlite:path, *.db, *.sqlite SQLite
//	*.csv, *.xls, *.xlsx       таблица
func Open(ctx context.Context, cfg config.Config, logger zerolog.Logger) (Catalog, error) {
	dsn := strings.TrimSpace(cfg.CatalogDSN)
	lower := strings.ToLower(dsn)

	var (
		c    Catalog
		kind string
		err  error
	)
	switch {
	case dsn == "":
		c, kind = NewStatic(DemoProducts()), "static"
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		c, err = OpenPostgres(ctx, dsn, cfg.CatalogTimeout)
		kind = "postgres"
	case strings.HasPrefix(lower, "sqlite:"):
		c, err = OpenSQLite(ctx, dsn[len("sqlite:"):])
		kind = "sqlite"
	case strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"):
		c, err = OpenSQLite(ctx, dsn)
		kind = "sqlite"
	case fileio.IsTabular(dsn):
		c, kind = NewFile(dsn), "file"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, dsn)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s catalog: %w", kind, err)
	}

	logger.Info().Str("source", kind).Msg("catalog ready")
	return c, nil
}
