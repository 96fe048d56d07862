package catalog

import (
	"context"

	"invoice-matcher/internal/reconcile/model"
)

// Static — каталог в памяти (демо-режим и тесты).
type Static struct {
	products []model.CatalogProduct
}

func NewStatic(products []model.CatalogProduct) *Static {
	cp := make([]model.CatalogProduct, len(products))
	copy(cp, products)
	return &Static{products: cp}
}

// GetAllProducts отдаёт копию, чтобы вызывающий не испортил каталог.
func (s *Static) GetAllProducts(context.Context) ([]model.CatalogProduct, error) {
	out := make([]model.CatalogProduct, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *Static) Close() error { return nil }

// DemoProducts — образец ассортимента магазина канцтоваров и компьютерной техники.
func DemoProducts() []model.CatalogProduct {
	return []model.CatalogProduct{
		{ID: "1", Code: "PAPEL-A4", Barcode: "7501001001001", Name: "Papel bond carta 500 hojas", Description: "Resma de papel bond blanco tamaño carta"},
		{ID: "2", Code: "LAP-BIC", Barcode: "7501001001002", Name: "Lapicero Bic Cristal azul", Description: "Caja con 12 lapiceros"},
		{ID: "3", Code: "USB-32GB", Barcode: "7501001001003", Name: "Memoria USB Kingston 32GB", Description: "USB 3.0 alta velocidad"},
		{ID: "4", Code: "MOUSE-LOG", Barcode: "7501001001004", Name: "Mouse Logitech M170 inalámbrico", Description: "Mouse óptico inalámbrico con receptor USB"},
		{ID: "5", Code: "TECLADO-HP", Barcode: "7501001001005", Name: "Teclado HP USB español", Description: "Teclado alambrico USB layout español"},
		{ID: "6", Code: "RAM-8GB", Barcode: "7501001001006", Name: "Memoria RAM DDR4 8GB Kingston", Description: "RAM DDR4 2666MHz DIMM"},
		{ID: "7", Code: "HDD-1TB", Barcode: "7501001001007", Name: "Disco duro WD Blue 1TB", Description: `Disco duro interno 3.5" SATA 7200 RPM`},
		{ID: "8", Code: "SSD-240", Barcode: "7501001001008", Name: "SSD Kingston A400 240GB", Description: `Unidad de estado solido 2.5" SATA`},
		{ID: "9", Code: "CARCASA-ATX", Barcode: "7501001001009", Name: "Gabinete Thermaltake V200 negro", Description: "Carcasa ATX media torre con ventana"},
		{ID: "10", Code: "CUADERNO-100", Barcode: "7501001001010", Name: "Cuaderno profesional 100 hojas", Description: "Cuaderno raya francés"},
		{ID: "11", Code: "CABLE-HDMI", Barcode: "7501001001011", Name: "Cable HDMI 1.8m", Description: "Cable HDMI 2.0 alta velocidad"},
	}
}
