package fileio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func TestReadAnyMaps_CSV(t *testing.T) {
	t.Run("semicolon utf8 with bom", func(t *testing.T) {
		data := "\uFEFFCódigo;Descripción;Cantidad\nPAPEL-A4;Papel bond carta;10\n;;\nLAP-BIC;Lapicero Bic;2\n"
		rows, err := ReadAnyMaps(strings.NewReader(data), "factura.csv", 1)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "PAPEL-A4", rows[0]["Código"])
		assert.Equal(t, "Papel bond carta", rows[0]["Descripción"])
		assert.Equal(t, "2", rows[1]["Cantidad"])
	})

	t.Run("comma with header on second row", func(t *testing.T) {
		data := "Proveedor XYZ,,\nname,code,\nCuaderno,CUA-100,x\n"
		rows, err := ReadAnyMaps(strings.NewReader(data), "f.CSV", 2)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Cuaderno", rows[0]["name"])
		assert.Equal(t, "x", rows[0]["Column 3"])
	})

	t.Run("windows-1252", func(t *testing.T) {
		text := "Descripción;Cantidad;Precio unitario\n" +
			"Cuaderno profesional de 100 hojas raya;3;45,50\n" +
			"Lápiz adhesivo grande para niños;12;18,00\n" +
			"Papel bond tamaño carta, resma con quinientas hojas;5;85,00\n" +
			"Señalador fluorescente, paquete económico;4;32,00\n"
		enc, err := charmap.Windows1252.NewEncoder().String(text)
		require.NoError(t, err)

		rows, err := ReadAnyMaps(strings.NewReader(enc), "factura.csv", 1)
		require.NoError(t, err)
		require.Len(t, rows, 4)
		assert.Equal(t, "Lápiz adhesivo grande para niños", rows[1]["Descripción"])
	})

	t.Run("empty", func(t *testing.T) {
		rows, err := ReadAnyMaps(strings.NewReader(""), "f.csv", 1)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestReadAnyMaps_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Nombre", "Código", "Costo"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Memoria USB 32GB", "USB-32GB", 95.5}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{" Mouse óptico ", "", 120}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := ReadAnyMaps(&buf, "catalogo.xlsx", 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "USB-32GB", rows[0]["Código"])
	assert.Equal(t, "95.5", rows[0]["Costo"])
	assert.Equal(t, "Mouse óptico", rows[1]["Nombre"])
}

func TestReadAnyMaps_Unsupported(t *testing.T) {
	_, err := ReadAnyMaps(strings.NewReader("%PDF"), "factura.pdf", 1)
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.False(t, IsTabular("factura.pdf"))
	assert.True(t, IsTabular("FACTURA.XLSX"))
}

func TestSniffComma(t *testing.T) {
	assert.Equal(t, ';', sniffComma([]byte("a;b;c\n1;2;3")))
	assert.Equal(t, '\t', sniffComma([]byte("a\tb\tc\n1\t2\t3")))
	assert.Equal(t, ',', sniffComma([]byte("a,b\n1,2")))
	assert.Equal(t, ',', sniffComma([]byte("single")))
}
