package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"invoice-matcher/internal/catalog"
	"invoice-matcher/internal/config"
	"invoice-matcher/internal/invoice"
	"invoice-matcher/internal/reconcile/model"
	"invoice-matcher/internal/reconcile/report"
	recSvc "invoice-matcher/internal/reconcile/service"
)

type matchOptions struct {
	catalog   string
	xlsxOut   string
	json      bool
	lang      string
	headerRow int
	nameCol   string
	codeCol   string
	qtyCol    string
	costCol   string
}

func newMatchCmd() *cobra.Command {
	var o matchOptions
	cmd := &cobra.Command{
		Use:   "match [flags] <invoice>",
		Short: "Match an invoice file against the catalog",
		Long: `Match an invoice file against the catalog.

Examples:
  matchctl match factura.xml
  matchctl match --catalog sqlite:pos.db --xlsx revision.xlsx factura.csv
  matchctl match --catalog catalogo.xlsx --json factura.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, o, args[0])
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.catalog, "catalog", "", "Catalog DSN or spreadsheet (default $CATALOG_DSN, demo catalog if empty)")
	f.StringVar(&o.xlsxOut, "xlsx", "", "Also write the review sheet to this file")
	f.BoolVar(&o.json, "json", false, "Output as JSON")
	f.StringVar(&o.lang, "lang", "", "Review sheet language: es or en (default $REVIEW_LANGUAGE)")
	f.IntVar(&o.headerRow, "header-row", 1, "Header row of tabular invoices (1-based)")
	f.StringVar(&o.nameCol, "name-col", "", "Name column, alternatives separated by |")
	f.StringVar(&o.codeCol, "code-col", "", "Code column")
	f.StringVar(&o.qtyCol, "qty-col", "", "Quantity column")
	f.StringVar(&o.costCol, "cost-col", "", "Unit cost column")
	return cmd
}

func runMatch(cmd *cobra.Command, o matchOptions, path string) error {
	cfg := config.Load()
	cfg.LogFile = ""
	cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	if o.catalog != "" {
		cfg.CatalogDSN = o.catalog
	}
	if o.lang != "" {
		cfg.ReviewLanguage = o.lang
	}
	logger := config.SetupLogger(cfg)
	ctx := cmd.Context()

	fh, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fh.Close()

	inv, err := invoice.Parse(fh, filepath.Base(path), invoice.Mapping{
		NameKey:   o.nameCol,
		CodeKey:   o.codeCol,
		QtyKey:    o.qtyCol,
		CostKey:   o.costCol,
		HeaderRow: o.headerRow,
	})
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	cat, err := catalog.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cat.Close()

	items, err := recSvc.NewMatcher(cat, logger).MatchInvoiceItems(ctx, inv.Items)
	if err != nil {
		return err
	}

	if o.xlsxOut != "" {
		if err := writeReviewFile(o.xlsxOut, inv, items, cfg.ReviewLanguage); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if o.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"supplier": inv.Supplier,
			"folio":    inv.Folio,
			"items":    items,
			"summary":  recSvc.Summarize(items),
		})
	}
	return printTable(out, inv, items)
}

func writeReviewFile(path string, inv invoice.Invoice, items []model.ReconciledItem, lang string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	opts := report.FormattingOptions{Language: lang, Colors: true}
	if err := report.WriteReview(f, report.Meta{Supplier: inv.Supplier, Folio: inv.Folio}, items, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func printTable(out io.Writer, inv invoice.Invoice, items []model.ReconciledItem) error {
	if inv.Supplier != "" || inv.Folio != "" {
		fmt.Fprintf(out, "Supplier: %s  Folio: %s\n\n", inv.Supplier, inv.Folio)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tINVOICE ITEM\tACTION\tPRODUCT\tSCORE\tMATCH\tCONFIDENCE")
	for i, it := range items {
		product, score, mt, conf := "-", "-", "-", "-"
		if s := it.Suggestion(); s != nil {
			product = s.Product.Name
			score = fmt.Sprintf("%.2f", s.Score)
			mt = string(s.MatchType)
			conf = string(s.Confidence)
		}
		action := string(it.Action)
		if it.LowConfidenceWarning {
			action += " (review)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", i+1, it.Name, action, product, score, mt, conf)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := recSvc.Summarize(items)
	_, err := fmt.Fprintf(out, "\n%d lines: %d matched, %d new, %d low confidence\n", s.Lines, s.Matched, s.New, s.LowConfidence)
	return err
}
