package pipeline

import (
	"github.com/shopspring/decimal"

	"babette/internal"
	"babette/internal/util"
)

// Engine runs the full transformation for one uploaded file. It holds no
// session: every invocation starts from freshly parsed records, and a second
// file for the same vendor re-enters through Reconcile/relookup with the
// previously produced products supplied by the caller.
type Engine struct {
	// DefaultMarkup applies when a vendor spec declares no factor of its
	// own. 2.5 is the house default; vendor contracts override it.
	DefaultMarkup decimal.Decimal
	// Vocabulary is the externally supplied public category list.
	Vocabulary []internal.CategoryRef
}

func NewEngine(defaultMarkup decimal.Decimal, vocabulary []internal.CategoryRef) *Engine {
	return &Engine{DefaultMarkup: defaultMarkup, Vocabulary: vocabulary}
}

// RunParams is everything vendor-declared the engine needs for one file,
// pre-resolved by the adapter layer so this package stays vendor-agnostic.
type RunParams struct {
	Vendor              string
	Filename            string
	KeyFn               GroupKeyFunc
	SizeHint            SizeHint
	MergeDuplicateSizes bool
	CostOrder           []internal.PriceSource
	MarkupFactor        decimal.Decimal
	Brands              []string
	Lookups             PriceLookups
}

type RunResult struct {
	Vendor   string
	Products []*internal.Product
	Warnings []internal.Warning
}

// Run takes mapped line items through grouping, size normalization, price
// resolution, category matching and brand suggestion. Deterministic: the
// same items yield the same products in the same order.
func (e *Engine) Run(items []internal.RawLineItem, params RunParams) RunResult {
	products := Group(items, params.KeyFn)

	warnings := ApplySizes(params.Vendor, products, params.SizeHint, params.MergeDuplicateSizes)
	warnings = append(warnings, ResolvePrices(params.Vendor, products, e.policy(params), params.Lookups)...)
	warnings = append(warnings, e.assignCategories(params.Vendor, products)...)

	SuggestBrands(products, params.Brands, params.Filename)

	return RunResult{Vendor: params.Vendor, Products: products, Warnings: warnings}
}

// Reprice re-resolves prices on an existing product set after new lookups
// arrived (a price list or an extracted invoice uploaded after the order).
func (e *Engine) Reprice(products []*internal.Product, params RunParams) []internal.Warning {
	return RepriceProducts(params.Vendor, products, e.policy(params), params.Lookups)
}

func (e *Engine) policy(params RunParams) PricePolicy {
	markup := params.MarkupFactor
	if !markup.IsPositive() {
		markup = e.DefaultMarkup
	}
	return PricePolicy{CostOrder: params.CostOrder, MarkupFactor: markup}
}

func (e *Engine) assignCategories(vendor string, products []*internal.Product) []internal.Warning {
	warnings := []internal.Warning{}
	for _, p := range products {
		if p.CSVCategory == "" {
			continue
		}
		matches := MatchCategories(p.CSVCategory, p.AgeGroup, e.Vocabulary)
		if len(matches) == 0 {
			warnings = append(warnings, internal.Warning{
				Kind:      internal.WarnNoCategoryMatch,
				Vendor:    vendor,
				Reference: p.Reference,
				Detail:    "no public category for " + p.CSVCategory,
				Count:     1,
			})
			continue
		}
		p.PublicCategories = p.PublicCategories[:0]
		for _, m := range matches {
			p.PublicCategories = append(p.PublicCategories, m.ID)
		}
	}
	return warnings
}

// BuildLookupsFromItems turns the rows of a price-list feed into resolver
// lookups. A row with a SKU feeds the cost list, a row with an EAN and a
// retail price feeds the TARIF list.
func BuildLookupsFromItems(items []internal.RawLineItem) PriceLookups {
	lookups := PriceLookups{
		PriceListBySKU: map[string]decimal.Decimal{},
		PriceListByEAN: map[string]decimal.Decimal{},
		TarifByEAN:     map[string]decimal.Decimal{},
	}
	for _, item := range items {
		if item.UnitPrice != nil {
			if item.SKU != "" {
				addLookup(lookups.PriceListBySKU, item.SKU, *item.UnitPrice)
			}
			if item.EAN != "" {
				addLookup(lookups.PriceListByEAN, item.EAN, *item.UnitPrice)
			}
		}
		if item.RRP != nil && item.EAN != "" {
			addLookup(lookups.TarifByEAN, item.EAN, *item.RRP)
		}
	}
	return lookups
}

func addLookup(m map[string]decimal.Decimal, key string, value decimal.Decimal) {
	norm := util.NormalizeKey(key)
	if norm == "" {
		return
	}
	if _, ok := m[norm]; !ok {
		m[norm] = value
	}
}
