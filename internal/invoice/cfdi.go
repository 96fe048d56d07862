package invoice

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/ianaindex"

	"invoice-matcher/internal/reconcile/model"
	"invoice-matcher/internal/utils"
)

// parseCFDI читает CFDI потоком: Comprobante (folio), Emisor (поставщик),
// каждый Concepto — строка. Пространство имён и регистр не важны.
func parseCFDI(r io.Reader) (Invoice, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var (
		inv     Invoice
		concept *xml.StartElement
		text    strings.Builder
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Invoice{}, fmt.Errorf("%w: %w", ErrInvalidXML, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch strings.ToLower(t.Name.Local) {
			case "comprobante":
				if inv.Folio == "" {
					inv.Folio = attr(t, "Folio")
				}
			case "emisor":
				if inv.Supplier == "" {
					inv.Supplier = attr(t, "Nombre")
				}
			case "concepto":
				c := t.Copy()
				concept = &c
				text.Reset()
			}
		case xml.CharData:
			if concept != nil {
				text.Write(t)
			}
		case xml.EndElement:
			if concept != nil && strings.EqualFold(t.Name.Local, "concepto") {
				if it, ok := conceptItem(*concept, text.String()); ok {
					inv.Items = append(inv.Items, it)
				}
				concept = nil
			}
		}
	}
	return inv, nil
}

func conceptItem(el xml.StartElement, body string) (model.InvoiceLineItem, bool) {
	desc := attr(el, "Descripcion")
	if desc == "" {
		desc = strings.Join(strings.Fields(body), " ")
	}
	if desc == "" {
		return model.InvoiceLineItem{}, false
	}

	clave := attr(el, "NoIdentificacion")
	if clave == "" {
		clave = attr(el, "ClaveProdServ")
	}

	qty := decimal.NewFromInt(1)
	if q, ok := utils.ParseAmount(attr(el, "Cantidad")); ok && q.IsPositive() {
		qty = q
	}
	cost := decimal.Zero
	if v, ok := utils.ParseAmount(attr(el, "ValorUnitario")); ok {
		cost = v
	}

	return model.InvoiceLineItem{
		Name:        desc,
		Description: desc,
		Code:        clave,
		Barcode:     clave,
		Quantity:    qty,
		UnitCost:    cost,
	}, true
}

// attr — значение атрибута без учёта регистра и префикса.
func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if strings.EqualFold(a.Name.Local, name) {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

// старые CFDI бывают в ISO-8859-1 / windows-1252
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
