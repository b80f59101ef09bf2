package vendors

import (
	"fmt"
	"strings"

	"babette/internal"
	"babette/internal/reader"
	"babette/internal/util"
)

// headerScanLimit bounds how deep we look for the header row. Some vendors
// put a title row or a fixed-width preamble above it.
const headerScanLimit = 50

const skippedSampleLimit = 5

// ExtractRows maps read rows to RawLineItems for one spec. Fatal errors
// (empty source, missing columns) abort the file; rows missing a required
// value are skipped and reported through the returned warning.
func ExtractRows(spec *Spec, rows [][]string) ([]internal.RawLineItem, []internal.Warning, error) {
	if len(rows) < 2 {
		return nil, nil, &internal.EmptyOrInvalidSourceError{Vendor: spec.Vendor, Rows: len(rows)}
	}

	headerIdx, columns, err := locateHeader(spec, rows)
	if err != nil {
		return nil, nil, err
	}

	items := make([]internal.RawLineItem, 0, len(rows)-headerIdx-1)
	skipped := 0
	samples := []string{}

	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		item, ok := mapRow(spec, columns, row, i+1)
		if !ok {
			skipped++
			if len(samples) < skippedSampleLimit {
				samples = append(samples, strings.Join(row, " | "))
			}
			continue
		}
		items = append(items, item)
	}

	warnings := []internal.Warning{}
	if skipped > 0 {
		warnings = append(warnings, internal.Warning{
			Kind:    internal.WarnRowSkipped,
			Vendor:  spec.Vendor,
			Detail:  fmt.Sprintf("%d rows missing required values", skipped),
			Count:   skipped,
			Samples: samples,
		})
	}

	if len(items) == 0 {
		return nil, warnings, &internal.EmptyOrInvalidSourceError{Vendor: spec.Vendor, Rows: len(rows)}
	}

	return items, warnings, nil
}

func readRows(spec *Spec, raw []byte, filename string) ([][]string, error) {
	switch spec.Format {
	case FormatXLSX:
		return reader.ReadXLSX(raw)
	case FormatHTML:
		return reader.ReadHTMLTable(raw)
	default:
		// Several vendors ship ".xls" files that are HTML tables in
		// disguise; sniff before committing to the CSV path.
		if strings.HasSuffix(strings.ToLower(filename), ".xls") && reader.IsHTMLTable(raw) {
			return reader.ReadHTMLTable(raw)
		}
		return reader.Read(raw, spec.Dialect)
	}
}

// locateHeader finds the first row within the scan window that resolves all
// required columns. The row resolving the most required columns is the basis
// for the missing-columns error when none resolves everything.
func locateHeader(spec *Spec, rows [][]string) (int, map[Field]int, error) {
	bestIdx, bestCount := -1, -1
	var bestColumns map[Field]int

	limit := len(rows)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}

	for i := 0; i < limit; i++ {
		columns := resolveColumns(spec, rows[i])
		count := 0
		for _, f := range spec.Required {
			if _, ok := columns[f]; ok {
				count++
			}
		}
		if count > bestCount {
			bestIdx, bestCount, bestColumns = i, count, columns
		}
		if count == len(spec.Required) {
			return i, columns, nil
		}
	}

	missing := []string{}
	for _, f := range spec.Required {
		if _, ok := bestColumns[f]; !ok {
			missing = append(missing, spec.Columns[f][0])
		}
	}
	found := []string{}
	if bestIdx >= 0 {
		found = rows[bestIdx]
	}
	return 0, nil, &internal.MissingRequiredColumnsError{
		Vendor:  spec.Vendor,
		Missing: missing,
		Found:   found,
	}
}

func resolveColumns(spec *Spec, header []string) map[Field]int {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(util.NormalizeSpaces(h))
	}

	out := map[Field]int{}
	for field, aliases := range spec.Columns {
		for _, alias := range aliases {
			want := strings.ToLower(alias)
			for i, h := range normalized {
				if h == want {
					out[field] = i
					break
				}
			}
			if _, ok := out[field]; ok {
				break
			}
		}
	}
	return out
}

func mapRow(spec *Spec, columns map[Field]int, row []string, lineNo int) (internal.RawLineItem, bool) {
	cell := func(f Field) string {
		idx, ok := columns[f]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	item := internal.RawLineItem{
		LineNo:      lineNo,
		Reference:   cell(FieldReference),
		RawName:     cell(FieldName),
		NameCode:    cell(FieldNameCode),
		Color:       cell(FieldColor),
		Size:        cell(FieldSize),
		EAN:         cell(FieldEAN),
		SKU:         cell(FieldSKU),
		Composition: cell(FieldComposition),
		Description: cell(FieldDescription),
		CSVCategory: cell(FieldCategory),
	}

	for _, f := range requiredValues(spec) {
		if cell(f) == "" {
			return internal.RawLineItem{}, false
		}
	}

	if qty, ok := util.ParseQuantity(cell(FieldQuantity)); ok {
		item.Quantity = qty
	}
	item.UnitPrice = util.ParseMoneyPtr(cell(FieldPrice), spec.Decimal)
	item.RRP = util.ParseMoneyPtr(cell(FieldRRP), spec.Decimal)

	hook := spec.Hook
	if hook == nil {
		hook = defaultHook
	}
	hook(&item)
	if item.ProductName == "" {
		item.ProductName = util.SentenceCase(item.RawName)
	}

	return item, true
}

func requiredValues(spec *Spec) []Field {
	if len(spec.RequiredValues) > 0 {
		return spec.RequiredValues
	}
	// Reference and size are what grouping needs; they default as the
	// per-row requirement.
	return []Field{FieldReference, FieldSize}
}
