package pipeline

import (
	"fmt"
	"strings"

	"babette/internal"
	"babette/internal/util"
)

// GroupKeyFunc derives the grouping key for one source row. Vendors declare
// their own; most use reference+color.
type GroupKeyFunc func(item internal.RawLineItem) string

func KeyReference(item internal.RawLineItem) string {
	return util.NormalizeKey(item.Reference)
}

func KeyReferenceColor(item internal.RawLineItem) string {
	return util.NormalizeKey(item.Reference) + "|" + util.NormalizeKey(item.Color)
}

// KeyReferenceColorName is for vendors whose reference alone is not unique;
// the product name code disambiguates.
func KeyReferenceColorName(item internal.RawLineItem) string {
	return KeyReferenceColor(item) + "|" + util.NormalizeKey(item.NameCode)
}

// Group folds source rows into products in first-occurrence order of each
// key. The first row of a key creates the product; every row of the key
// appends a variant; descriptive fields are only filled when still empty.
func Group(items []internal.RawLineItem, keyFn GroupKeyFunc) []*internal.Product {
	byKey := map[string]*internal.Product{}
	order := []*internal.Product{}

	for _, item := range items {
		key := keyFn(item)
		product, seen := byKey[key]
		if !seen {
			product = &internal.Product{
				Reference:    strings.TrimSpace(item.Reference),
				Name:         item.ProductName,
				OriginalName: util.FirstNonEmpty(item.RawName, item.ProductName),
				Color:        item.Color,
			}
			byKey[key] = product
			order = append(order, product)
		}

		fillDescriptive(product, item)
		product.Variants = append(product.Variants, &internal.Variant{
			RawSize:     item.Size,
			Quantity:    item.Quantity,
			EAN:         item.EAN,
			SKU:         item.SKU,
			InlinePrice: item.UnitPrice,
			InlineRRP:   item.RRP,
		})
	}

	return order
}

func fillDescriptive(p *internal.Product, item internal.RawLineItem) {
	if p.Name == "" {
		p.Name = item.ProductName
	}
	if p.OriginalName == "" {
		p.OriginalName = util.FirstNonEmpty(item.RawName, item.ProductName)
	}
	if p.Color == "" {
		p.Color = item.Color
	}
	if p.Material == "" {
		p.Material = item.Composition
	}
	if p.EcommerceDescription == "" {
		p.EcommerceDescription = item.Description
	}
	if p.CSVCategory == "" {
		p.CSVCategory = item.CSVCategory
	}
}

// ApplySizes runs the size normalizer over every variant, assigns the
// product age group, and resolves duplicate canonical labels. Later rows for
// an already-present label are skipped, or quantity-merged for vendors that
// declare it.
func ApplySizes(vendor string, products []*internal.Product, hint SizeHint, mergeDuplicates bool) []internal.Warning {
	warnings := []internal.Warning{}

	for _, p := range products {
		ages := make([]internal.AgeGroup, 0, len(p.Variants))
		kept := make([]*internal.Variant, 0, len(p.Variants))
		byLabel := map[string]*internal.Variant{}

		for _, v := range p.Variants {
			label, age := NormalizeSize(v.RawSize, hint)
			v.Size = label
			ages = append(ages, age)

			existing, dup := byLabel[label]
			if !dup {
				byLabel[label] = v
				kept = append(kept, v)
				continue
			}
			if IsUnitSize(v.RawSize) && IsUnitSize(existing.RawSize) {
				// Unit rows stay separate here; the upload transform owns
				// the collapse so the review export still shows every row.
				kept = append(kept, v)
				continue
			}
			if mergeDuplicates {
				existing.Quantity += v.Quantity
				mergeFirstNonEmpty(existing, v)
			} else {
				warnings = append(warnings, internal.Warning{
					Kind:      internal.WarnDuplicateSizeLabel,
					Vendor:    vendor,
					Reference: p.Reference,
					Detail:    fmt.Sprintf("size %q repeated on %s, row dropped", label, p.Reference),
					Count:     1,
				})
			}
		}

		p.Variants = kept
		p.AgeGroup = ProductAge(ages, hint)
	}

	return warnings
}

func mergeFirstNonEmpty(dst, src *internal.Variant) {
	if dst.EAN == "" {
		dst.EAN = src.EAN
	}
	if dst.SKU == "" {
		dst.SKU = src.SKU
	}
	if dst.InlinePrice == nil {
		dst.InlinePrice = src.InlinePrice
	}
	if dst.InlineRRP == nil {
		dst.InlineRRP = src.InlineRRP
	}
}

// CollapseUnitVariants merges all unit-sized variants of one product into a
// single variant whose quantity is the sum and whose ean/sku/prices come from
// the first variant carrying a value. The catalog system cannot represent
// several zero-differentiated sizes on one product, so this is a correctness
// requirement, not tidying.
func CollapseUnitVariants(p *internal.Product) {
	var unit *internal.Variant
	kept := make([]*internal.Variant, 0, len(p.Variants))

	for _, v := range p.Variants {
		if !IsUnitSize(v.RawSize) && !IsUnitSize(v.Size) {
			kept = append(kept, v)
			continue
		}
		if unit == nil {
			unit = v
			kept = append(kept, v)
			continue
		}
		unit.Quantity += v.Quantity
		if unit.EAN == "" {
			unit.EAN = v.EAN
		}
		if unit.SKU == "" {
			unit.SKU = v.SKU
		}
		if unit.Price.IsZero() {
			unit.Price = v.Price
			unit.PriceSource = v.PriceSource
		}
		if unit.RRP.IsZero() {
			unit.RRP = v.RRP
			unit.RRPSource = v.RRPSource
		}
	}

	p.Variants = kept
}
