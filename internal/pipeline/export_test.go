package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"babette/internal"
)

func TestExportProductsToXLSX(t *testing.T) {
	products := []*internal.Product{{
		Reference: "A100",
		Name:      "Jurk bloemen - Rood",
		AgeGroup:  internal.AgeKids,
		Variants: []*internal.Variant{
			{Size: "4 jaar", RawSize: "4", Quantity: 2, Price: mustDec("12.50"), PriceSource: internal.PriceInline},
			{Size: "6 jaar", RawSize: "6", Quantity: 1, Price: mustDec("12.50"), PriceSource: internal.PriceInline},
		},
	}}
	warnings := []internal.Warning{
		{Kind: internal.WarnNoCategoryMatch, Reference: "A100", Detail: "no public category for Jurken", Count: 1},
	}

	out := filepath.Join(t.TempDir(), "review.xlsx")
	if err := ExportProductsToXLSX(products, warnings, out); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatal(err)
	}
	// Header plus one row per variant.
	if len(rows) != 3 {
		t.Fatalf("rows=%d", len(rows))
	}
	if rows[1][0] != "A100" || rows[1][5] != "4 jaar" || rows[1][10] != "12.5" {
		t.Fatalf("row=%v", rows[1])
	}

	warnRows, err := f.GetRows("warnings")
	if err != nil {
		t.Fatal(err)
	}
	if len(warnRows) != 2 || warnRows[1][0] != string(internal.WarnNoCategoryMatch) {
		t.Fatalf("warnings=%v", warnRows)
	}
}
