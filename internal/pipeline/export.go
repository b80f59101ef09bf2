package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"babette/internal"
)

// ExportProductsToXLSX writes the review workbook: one variant per row on
// the first sheet, run warnings on the second. This is what the buyer checks
// before anything goes near the catalog.
func ExportProductsToXLSX(products []*internal.Product, warnings []internal.Warning, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"reference", "name", "original_name", "color", "age_group",
		"size", "raw_size", "quantity", "ean", "sku",
		"price", "price_source", "rrp", "rrp_source",
		"material", "csv_category", "public_categories", "suggested_brand",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	r := 2
	for _, p := range products {
		for _, v := range p.Variants {
			set := func(col int, value any) {
				cell, _ := excelize.CoordinatesToCellName(col, r)
				_ = f.SetCellValue(sheet, cell, value)
			}
			set(1, p.Reference)
			set(2, p.Name)
			set(3, p.OriginalName)
			set(4, p.Color)
			set(5, string(p.AgeGroup))
			set(6, v.Size)
			set(7, v.RawSize)
			set(8, v.Quantity)
			set(9, v.EAN)
			set(10, v.SKU)
			set(11, v.Price.String())
			set(12, string(v.PriceSource))
			set(13, v.RRP.String())
			set(14, string(v.RRPSource))
			set(15, p.Material)
			set(16, p.CSVCategory)
			set(17, strings.Join(p.PublicCategories, ", "))
			set(18, p.SuggestedBrand)
			r++
		}
	}

	if len(warnings) > 0 {
		warnSheet := "warnings"
		if _, err := f.NewSheet(warnSheet); err == nil {
			for i, h := range []string{"kind", "reference", "detail", "count", "samples"} {
				cell, _ := excelize.CoordinatesToCellName(i+1, 1)
				_ = f.SetCellValue(warnSheet, cell, h)
			}
			for i, w := range warnings {
				row := i + 2
				set := func(col int, value any) {
					cell, _ := excelize.CoordinatesToCellName(col, row)
					_ = f.SetCellValue(warnSheet, cell, value)
				}
				set(1, string(w.Kind))
				set(2, w.Reference)
				set(3, w.Detail)
				set(4, w.Count)
				set(5, strings.Join(w.Samples, " || "))
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
