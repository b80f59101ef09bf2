package pipeline

import (
	"fmt"

	"github.com/shopspring/decimal"

	"babette/internal"
	"babette/internal/util"
)

// PriceLookups are the external price sources for one run, handed in as
// plain maps. Keys are normalized through util.NormalizeKey.
type PriceLookups struct {
	PriceListBySKU map[string]decimal.Decimal
	PriceListByEAN map[string]decimal.Decimal
	InvoiceByCode  map[string]decimal.Decimal
	TarifByEAN     map[string]decimal.Decimal
}

// PricePolicy is the vendor-declared side of price resolution.
type PricePolicy struct {
	// CostOrder lists cost sources in precedence order. Resolution walks it
	// and stops at the first source that yields a value.
	CostOrder []internal.PriceSource
	// MarkupFactor turns a cost into a retail price when no explicit RRP
	// source exists. Vendor-declared; 2.5 is the documented default but not
	// universal.
	MarkupFactor decimal.Decimal
}

func DefaultCostOrder() []internal.PriceSource {
	return []internal.PriceSource{internal.PriceInline, internal.PricePriceList, internal.PriceInvoice}
}

// BuildInvoiceIndex folds extracted invoice rows into a code -> unit price
// map. First price per code wins; invoices repeat a code per size with the
// same unit price.
func BuildInvoiceIndex(rows []internal.InvoiceRow) map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{}
	for _, row := range rows {
		key := util.NormalizeKey(row.Code)
		if key == "" {
			continue
		}
		if _, ok := out[key]; !ok {
			out[key] = row.UnitPrice
		}
	}
	return out
}

// ResolvePrices computes cost and retail for every variant. Resolution is
// deterministic and total: a price is always produced, falling back to zero
// only when no source provides one, with a warning so the UI can highlight
// the variant.
func ResolvePrices(vendor string, products []*internal.Product, policy PricePolicy, lookups PriceLookups) []internal.Warning {
	return resolvePrices(vendor, products, policy, lookups, false)
}

// RepriceProducts re-resolves an already priced product set against newly
// arrived lookups. A later file can improve a price but never destroy one:
// when this run's sources yield nothing for a variant, the price an earlier
// feed resolved stays, and an RRP from an explicit source is never demoted
// back to a markup estimate.
func RepriceProducts(vendor string, products []*internal.Product, policy PricePolicy, lookups PriceLookups) []internal.Warning {
	return resolvePrices(vendor, products, policy, lookups, true)
}

func resolvePrices(vendor string, products []*internal.Product, policy PricePolicy, lookups PriceLookups, keepResolved bool) []internal.Warning {
	order := policy.CostOrder
	if len(order) == 0 {
		order = DefaultCostOrder()
	}

	warnings := []internal.Warning{}
	for _, p := range products {
		for _, v := range p.Variants {
			cost, source := resolveCost(p, v, order, lookups)
			keepCost := keepResolved && source == internal.PriceNone && costResolved(v.PriceSource)
			if !keepCost {
				v.Price = cost
				v.PriceSource = source
				if source == internal.PriceNone {
					warnings = append(warnings, internal.Warning{
						Kind:      internal.WarnNoPriceSource,
						Vendor:    vendor,
						Reference: p.Reference,
						Detail:    fmt.Sprintf("no cost price for %s size %s", p.Reference, util.FirstNonEmpty(v.Size, v.RawSize)),
						Count:     1,
					})
				}
			}

			rrp, rrpSource := resolveRRP(v, policy, lookups)
			keepRRP := keepResolved && rrpExplicit(v.RRPSource) && !rrpExplicit(rrpSource)
			if !keepRRP {
				v.RRP, v.RRPSource = rrp, rrpSource
			}
		}
	}
	return warnings
}

func costResolved(s internal.PriceSource) bool {
	return s != "" && s != internal.PriceNone
}

func rrpExplicit(s internal.PriceSource) bool {
	return s == internal.PriceInline || s == internal.PricePriceList
}

func resolveCost(p *internal.Product, v *internal.Variant, order []internal.PriceSource, lookups PriceLookups) (decimal.Decimal, internal.PriceSource) {
	for _, source := range order {
		switch source {
		case internal.PriceInline:
			if v.InlinePrice != nil {
				return *v.InlinePrice, internal.PriceInline
			}
		case internal.PricePriceList:
			if d, ok := lookupAny(lookups.PriceListBySKU, v.SKU); ok {
				return d, internal.PricePriceList
			}
			if d, ok := lookupAny(lookups.PriceListByEAN, v.EAN); ok {
				return d, internal.PricePriceList
			}
		case internal.PriceInvoice:
			if d, ok := lookupAny(lookups.InvoiceByCode, v.SKU); ok {
				return d, internal.PriceInvoice
			}
			if d, ok := lookupAny(lookups.InvoiceByCode, p.Reference); ok {
				return d, internal.PriceInvoice
			}
		}
	}
	return decimal.Zero, internal.PriceNone
}

func resolveRRP(v *internal.Variant, policy PricePolicy, lookups PriceLookups) (decimal.Decimal, internal.PriceSource) {
	if v.InlineRRP != nil {
		return *v.InlineRRP, internal.PriceInline
	}
	if d, ok := lookupAny(lookups.TarifByEAN, v.EAN); ok {
		return d, internal.PricePriceList
	}
	if !v.Price.IsZero() && policy.MarkupFactor.IsPositive() {
		return v.Price.Mul(policy.MarkupFactor).Round(2), internal.PriceMarkup
	}
	return decimal.Zero, internal.PriceNone
}

func lookupAny(m map[string]decimal.Decimal, key string) (decimal.Decimal, bool) {
	if len(m) == 0 {
		return decimal.Zero, false
	}
	norm := util.NormalizeKey(key)
	if norm == "" {
		return decimal.Zero, false
	}
	d, ok := m[norm]
	return d, ok
}
