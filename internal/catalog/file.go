package catalog

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"invoice-matcher/internal/fileio"
	"invoice-matcher/internal/reconcile/model"
)

// File — каталог из выгрузки (csv/xls/xlsx). Читается заново на каждый
// запрос, так что правки файла видны без перезапуска.
type File struct {
	path      string
	headerRow int
}

func NewFile(path string) *File { return &File{path: path, headerRow: 1} }

func (f *File) GetAllProducts(ctx context.Context) ([]model.CatalogProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	maps, err := fileio.ReadAnyMaps(fh, f.path, f.headerRow)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	if len(maps) == 0 {
		return []model.CatalogProduct{}, nil
	}

	h := fileio.Headers(maps)
	nameK := fileio.ResolveKey(h, "nombre|name|producto|articulo")
	if nameK == "" {
		return nil, fmt.Errorf("read %s: no name column", f.path)
	}
	idK := exactHeader(h, "id")
	barK := fileio.ResolveKey(h, "codigo de barras|barcode|ean|upc|gtin", nameK, idK)
	codeK := fileio.ResolveKey(h, "codigo|code|sku|clave", nameK, idK, barK)
	descK := fileio.ResolveKey(h, "descripcion|description", nameK, idK, barK, codeK)

	out := make([]model.CatalogProduct, 0, len(maps))
	for i, rec := range maps {
		name := strings.TrimSpace(rec[nameK])
		if name == "" {
			continue
		}
		p := model.CatalogProduct{
			ID:          strings.TrimSpace(rec[idK]),
			Code:        strings.TrimSpace(rec[codeK]),
			Barcode:     strings.TrimSpace(rec[barK]),
			Name:        name,
			Description: strings.TrimSpace(rec[descK]),
		}
		if p.ID == "" {
			p.ID = strconv.Itoa(i + 1)
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *File) Close() error { return nil }

// exactHeader — только полное совпадение: "id" входит в слишком много слов.
func exactHeader(headers []string, want string) string {
	for _, h := range headers {
		if fileio.NormHeader(h) == want {
			return h
		}
	}
	return ""
}
