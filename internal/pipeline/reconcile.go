package pipeline

import (
	"fmt"

	"github.com/shopspring/decimal"

	"babette/internal"
	"babette/internal/util"
)

// MatchFunc decides whether a secondary product belongs to a primary one.
type MatchFunc func(primary, secondary *internal.Product) bool

func MatchByReference(a, b *internal.Product) bool {
	return util.NormalizeKey(a.Reference) == util.NormalizeKey(b.Reference)
}

func MatchByReferenceColor(a, b *internal.Product) bool {
	return MatchByReference(a, b) &&
		util.NormalizeKey(a.Color) == util.NormalizeKey(b.Color)
}

// OverlayFields declares which variant fields the secondary file may
// overwrite. Everything else on the primary set is untouchable.
type OverlayFields struct {
	Price bool
	RRP   bool
}

// Reconcile merges a freshly parsed secondary product set (typically a price
// confirmation or TARIF file) into the already-grouped primary set. The
// primary set is authoritative for identity and every field outside the
// overlay. Variants are paired on size labels normalized on both sides, so
// label drift between the two files ("3/6m" vs "6 maand") still matches.
// Unmatched secondary products are ignored; no products are invented here.
func Reconcile(vendor string, primary, secondary []*internal.Product, matchFn MatchFunc, overlay OverlayFields, hint SizeHint) ([]*internal.Product, []internal.Warning) {
	warnings := []internal.Warning{}

	for _, p := range primary {
		match := findMatch(p, secondary, matchFn)
		if match == nil {
			// Prices stay as the resolver computed them (markup fallback
			// included); a missing confirmation line must not zero a price.
			warnings = append(warnings, internal.Warning{
				Kind:      internal.WarnReconcileNoMatch,
				Vendor:    vendor,
				Reference: p.Reference,
				Detail:    fmt.Sprintf("no secondary match for %s / %s", p.Reference, p.Color),
				Count:     1,
			})
			continue
		}

		p.ReconcileMatched = true
		overlayVariants(p, match, overlay, hint)
	}

	return primary, warnings
}

func findMatch(p *internal.Product, secondary []*internal.Product, matchFn MatchFunc) *internal.Product {
	for _, s := range secondary {
		if matchFn(p, s) {
			return s
		}
	}
	return nil
}

func overlayVariants(p, match *internal.Product, overlay OverlayFields, hint SizeHint) {
	secondaryBySize := map[string]*internal.Variant{}
	for _, sv := range match.Variants {
		label, _ := NormalizeSize(util.FirstNonEmpty(sv.Size, sv.RawSize), hint)
		if _, taken := secondaryBySize[label]; !taken {
			secondaryBySize[label] = sv
		}
	}

	avgPrice, avgRRP := variantAverages(match)

	for _, v := range p.Variants {
		label, _ := NormalizeSize(util.FirstNonEmpty(v.Size, v.RawSize), hint)
		sv, found := secondaryBySize[label]

		if overlay.Price {
			if found {
				v.Price = sv.Price
				v.PriceSource = sv.PriceSource
			} else {
				// One missing size on the confirmation file should not leave
				// that size unpriced; the product average degrades gracefully.
				v.Price = avgPrice
			}
		}
		if overlay.RRP {
			if found {
				v.RRP = sv.RRP
				v.RRPSource = sv.RRPSource
			} else {
				v.RRP = avgRRP
			}
		}
	}
}

func variantAverages(p *internal.Product) (decimal.Decimal, decimal.Decimal) {
	if len(p.Variants) == 0 {
		return decimal.Zero, decimal.Zero
	}
	sumPrice, sumRRP := decimal.Zero, decimal.Zero
	for _, v := range p.Variants {
		sumPrice = sumPrice.Add(v.Price)
		sumRRP = sumRRP.Add(v.RRP)
	}
	n := decimal.NewFromInt(int64(len(p.Variants)))
	return sumPrice.Div(n).Round(2), sumRRP.Div(n).Round(2)
}

// DropZeroQuantityVariants removes variants that ended a reconciled run with
// zero quantity. The product itself persists even when all its variants go.
func DropZeroQuantityVariants(products []*internal.Product) {
	for _, p := range products {
		kept := make([]*internal.Variant, 0, len(p.Variants))
		for _, v := range p.Variants {
			if v.Quantity > 0 {
				kept = append(kept, v)
			}
		}
		p.Variants = kept
	}
}
