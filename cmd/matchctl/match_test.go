package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const invoiceCSV = "Código;Descripción;Cantidad;Costo\n" +
	"PAPEL-A4;Papel bond carta 500 hojas;10;85,00\n" +
	";Mouse Logitech M170 inalambrico;2;190,00\n" +
	";Silla ergonomica de oficina;1;2500,00\n"

func TestMatchCommand_Table(t *testing.T) {
	t.Setenv("CATALOG_DSN", "")
	path := writeFile(t, "factura.csv", invoiceCSV)

	out, err := runCLI(t, "match", path)
	require.NoError(t, err)
	assert.Contains(t, out, "INVOICE ITEM")
	assert.Contains(t, out, "code_exact")
	assert.Contains(t, out, "Mouse Logitech M170 inalámbrico")
	assert.Contains(t, out, "3 lines: 2 matched, 1 new, 0 low confidence")
}

func TestMatchCommand_JSONAndReview(t *testing.T) {
	catalogCSV := writeFile(t, "catalogo.csv", "id,codigo,nombre\n"+
		"A1,SILLA-ERG,Silla ergonomica de oficina\n")
	invoicePath := writeFile(t, "factura.csv", invoiceCSV)
	review := filepath.Join(t.TempDir(), "revision.xlsx")

	out, err := runCLI(t, "match", "--catalog", catalogCSV, "--json", "--xlsx", review, invoicePath)
	require.NoError(t, err)

	var res struct {
		Items []struct {
			Action          string `json:"action"`
			SelectedProduct *struct {
				ID string `json:"id"`
			} `json:"selectedProduct"`
		} `json:"items"`
		Summary struct {
			Matched int `json:"matched"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Items, 3)
	assert.Equal(t, "new", res.Items[0].Action)
	require.NotNil(t, res.Items[2].SelectedProduct)
	assert.Equal(t, "A1", res.Items[2].SelectedProduct.ID)
	assert.Equal(t, 1, res.Summary.Matched)

	f, err := excelize.OpenFile(review)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows, 4+3)
}

func TestMatchCommand_Errors(t *testing.T) {
	_, err := runCLI(t, "match")
	assert.Error(t, err)

	_, err = runCLI(t, "match", filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)

	pdf := writeFile(t, "factura.pdf", "%PDF-1.7")
	_, err = runCLI(t, "match", pdf)
	assert.ErrorContains(t, err, "unsupported invoice format")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "matchctl dev\n", out)
}
