package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-matcher/internal/config"
	"invoice-matcher/internal/reconcile/model"
)

func TestStatic(t *testing.T) {
	s := NewStatic(DemoProducts())
	got, err := s.GetAllProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 11)
	assert.Equal(t, "PAPEL-A4", got[0].Code)

	got[0].Name = "changed"
	again, _ := s.GetAllProducts(context.Background())
	assert.Equal(t, "Papel bond carta 500 hojas", again[0].Name)
	assert.NoError(t, s.Close())
}

func TestSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate(ctx), "schema is idempotent")

	empty, err := db.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	require.NoError(t, db.Upsert(ctx,
		model.CatalogProduct{ID: "2", Code: "LAP-BIC", Name: "Lapicero Bic"},
		model.CatalogProduct{ID: "1", Code: "PAPEL-A4", Barcode: "7501001001001", Name: "Papel bond", Description: "Resma"},
	))
	require.NoError(t, db.Upsert(ctx, model.CatalogProduct{ID: "2", Code: "LAP-BIC", Name: "Boligrafo Bic"}))

	got, err := db.GetAllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// ORDER BY name
	assert.Equal(t, model.CatalogProduct{ID: "2", Code: "LAP-BIC", Name: "Boligrafo Bic"}, got[0])
	assert.Equal(t, "7501001001001", got[1].Barcode)
	assert.Equal(t, "Resma", got[1].Description)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogo.csv")
	data := "ID;Código;Código de barras;Nombre;Descripción;Unidad\n" +
		"10;USB-32GB;7501001001003;Memoria USB Kingston 32GB;USB 3.0;PZA\n" +
		";CABLE-HDMI;;Cable HDMI 1.8m;;PZA\n" +
		";;;;sin nombre;\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	got, err := NewFile(path).GetAllProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.CatalogProduct{
		ID: "10", Code: "USB-32GB", Barcode: "7501001001003",
		Name: "Memoria USB Kingston 32GB", Description: "USB 3.0",
	}, got[0])
	assert.Equal(t, "2", got[1].ID, "row number when id is missing")
	assert.Empty(t, got[1].Barcode)

	_, err = NewFile(filepath.Join(t.TempDir(), "missing.csv")).GetAllProducts(context.Background())
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	log := zerolog.Nop()

	t.Run("empty dsn is the demo catalog", func(t *testing.T) {
		c, err := Open(ctx, config.Config{}, log)
		require.NoError(t, err)
		assert.IsType(t, &Static{}, c)
	})

	t.Run("sqlite", func(t *testing.T) {
		c, err := Open(ctx, config.Config{CatalogDSN: "sqlite:" + filepath.Join(t.TempDir(), "pos.db")}, log)
		require.NoError(t, err)
		defer c.Close()
		assert.IsType(t, &SQLite{}, c)
	})

	t.Run("spreadsheet", func(t *testing.T) {
		c, err := Open(ctx, config.Config{CatalogDSN: "/srv/catalogo.xlsx"}, log)
		require.NoError(t, err)
		assert.IsType(t, &File{}, c)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Open(ctx, config.Config{CatalogDSN: "mysql://pos"}, log)
		assert.ErrorIs(t, err, ErrUnknownSource)
	})
}
