package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"

	"babette/internal"
)

func mustDec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestResolvePricesPrecedence(t *testing.T) {
	lookups := PriceLookups{
		PriceListBySKU: map[string]decimal.Decimal{"SKU1": mustDec("8.00")},
		InvoiceByCode:  map[string]decimal.Decimal{"SKU1": mustDec("7.00")},
	}
	policy := PricePolicy{MarkupFactor: mustDec("2.5")}

	product := &internal.Product{Reference: "A100", Variants: []*internal.Variant{
		{SKU: "SKU1", InlinePrice: dp("9.50")},
	}}

	ResolvePrices("amira", []*internal.Product{product}, policy, lookups)
	v := product.Variants[0]
	if !v.Price.Equal(mustDec("9.50")) || v.PriceSource != internal.PriceInline {
		t.Fatalf("got %s from %s", v.Price, v.PriceSource)
	}

	// Same variant without the inline price falls through to the price list.
	v.InlinePrice = nil
	ResolvePrices("amira", []*internal.Product{product}, policy, lookups)
	if !v.Price.Equal(mustDec("8.00")) || v.PriceSource != internal.PricePriceList {
		t.Fatalf("got %s from %s", v.Price, v.PriceSource)
	}

	// And without the price list entry, to the invoice.
	lookups.PriceListBySKU = nil
	ResolvePrices("amira", []*internal.Product{product}, policy, lookups)
	if !v.Price.Equal(mustDec("7.00")) || v.PriceSource != internal.PriceInvoice {
		t.Fatalf("got %s from %s", v.Price, v.PriceSource)
	}
}

func TestResolvePricesSwappedOrder(t *testing.T) {
	lookups := PriceLookups{PriceListBySKU: map[string]decimal.Decimal{"SKU1": mustDec("8.00")}}
	policy := PricePolicy{
		CostOrder:    []internal.PriceSource{internal.PricePriceList, internal.PriceInline},
		MarkupFactor: mustDec("2.5"),
	}

	product := &internal.Product{Reference: "A100", Variants: []*internal.Variant{
		{SKU: "SKU1", InlinePrice: dp("9.50")},
	}}

	ResolvePrices("indigo", []*internal.Product{product}, policy, lookups)
	v := product.Variants[0]
	if !v.Price.Equal(mustDec("8.00")) || v.PriceSource != internal.PricePriceList {
		t.Fatalf("price list should win under swapped order, got %s from %s", v.Price, v.PriceSource)
	}
}

func TestResolvePricesZeroFallbackWarns(t *testing.T) {
	product := &internal.Product{Reference: "A100", Variants: []*internal.Variant{{Size: "4 jaar"}}}
	warnings := ResolvePrices("pip", []*internal.Product{product}, PricePolicy{MarkupFactor: mustDec("2.5")}, PriceLookups{})

	v := product.Variants[0]
	if !v.Price.IsZero() || v.PriceSource != internal.PriceNone {
		t.Fatalf("got %s from %s", v.Price, v.PriceSource)
	}
	if !v.RRP.IsZero() || v.RRPSource != internal.PriceNone {
		t.Fatalf("rrp got %s from %s", v.RRP, v.RRPSource)
	}
	if len(warnings) != 1 || warnings[0].Kind != internal.WarnNoPriceSource {
		t.Fatalf("warnings=%+v", warnings)
	}
}

func TestRepriceProductsKeepsResolvedPrices(t *testing.T) {
	policy := PricePolicy{MarkupFactor: mustDec("2.5")}

	// A stored variant as it comes back from the database: the cost was
	// resolved earlier, the transient inline value is gone.
	product := &internal.Product{Reference: "A100", Variants: []*internal.Variant{
		{EAN: "111", Price: mustDec("9.50"), PriceSource: internal.PriceInline,
			RRP: mustDec("23.75"), RRPSource: internal.PriceMarkup},
	}}

	// A TARIF file carries only retail prices. The cost must survive it.
	lookups := PriceLookups{TarifByEAN: map[string]decimal.Decimal{"111": mustDec("24.95")}}
	warnings := RepriceProducts("bobbi", []*internal.Product{product}, policy, lookups)

	v := product.Variants[0]
	if !v.Price.Equal(mustDec("9.50")) || v.PriceSource != internal.PriceInline {
		t.Fatalf("cost destroyed: got %s from %s", v.Price, v.PriceSource)
	}
	if !v.RRP.Equal(mustDec("24.95")) || v.RRPSource != internal.PricePriceList {
		t.Fatalf("rrp got %s from %s", v.RRP, v.RRPSource)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings=%+v", warnings)
	}

	// An invoice that does not list this article must not demote the TARIF
	// retail price back to a markup estimate.
	invoice := PriceLookups{InvoiceByCode: map[string]decimal.Decimal{"OTHER": mustDec("5.00")}}
	RepriceProducts("bobbi", []*internal.Product{product}, policy, invoice)
	if !v.Price.Equal(mustDec("9.50")) || v.PriceSource != internal.PriceInline {
		t.Fatalf("cost destroyed: got %s from %s", v.Price, v.PriceSource)
	}
	if !v.RRP.Equal(mustDec("24.95")) || v.RRPSource != internal.PricePriceList {
		t.Fatalf("rrp demoted: got %s from %s", v.RRP, v.RRPSource)
	}

	// A variant nothing ever priced still warns and still falls to zero.
	unpriced := &internal.Product{Reference: "B200", Variants: []*internal.Variant{
		{EAN: "222", PriceSource: internal.PriceNone},
	}}
	warnings = RepriceProducts("bobbi", []*internal.Product{unpriced}, policy, lookups)
	if len(warnings) != 1 || warnings[0].Kind != internal.WarnNoPriceSource {
		t.Fatalf("warnings=%+v", warnings)
	}
}

func TestResolveRRP(t *testing.T) {
	policy := PricePolicy{MarkupFactor: mustDec("2.4")}

	// Inline RRP wins over everything.
	product := &internal.Product{Reference: "A100", Variants: []*internal.Variant{
		{EAN: "111", InlinePrice: dp("10.00"), InlineRRP: dp("29.95")},
	}}
	lookups := PriceLookups{TarifByEAN: map[string]decimal.Decimal{"111": mustDec("27.50")}}
	ResolvePrices("bobbi", []*internal.Product{product}, policy, lookups)
	v := product.Variants[0]
	if !v.RRP.Equal(mustDec("29.95")) || v.RRPSource != internal.PriceInline {
		t.Fatalf("got %s from %s", v.RRP, v.RRPSource)
	}

	// TARIF beats markup.
	v.InlineRRP = nil
	ResolvePrices("bobbi", []*internal.Product{product}, policy, lookups)
	if !v.RRP.Equal(mustDec("27.50")) || v.RRPSource != internal.PricePriceList {
		t.Fatalf("got %s from %s", v.RRP, v.RRPSource)
	}

	// Markup is the last resort, rounded to cents.
	lookups.TarifByEAN = nil
	ResolvePrices("loulou", []*internal.Product{product}, policy, lookups)
	if !v.RRP.Equal(mustDec("24.00")) || v.RRPSource != internal.PriceMarkup {
		t.Fatalf("got %s from %s", v.RRP, v.RRPSource)
	}
}

func TestBuildInvoiceIndexFirstPriceWins(t *testing.T) {
	rows := []internal.InvoiceRow{
		{Code: "ab-100", UnitPrice: mustDec("12.50")},
		{Code: "AB100", UnitPrice: mustDec("99.00")},
		{Code: "", UnitPrice: mustDec("1.00")},
	}
	index := BuildInvoiceIndex(rows)
	if len(index) != 1 {
		t.Fatalf("len=%d", len(index))
	}
	if !index["AB100"].Equal(mustDec("12.50")) {
		t.Fatalf("got %s", index["AB100"])
	}
}

func TestBuildLookupsFromItems(t *testing.T) {
	items := []internal.RawLineItem{
		{SKU: "SKU1", EAN: "111", UnitPrice: dp("8.00"), RRP: dp("19.95")},
		{EAN: "222", UnitPrice: dp("5.00")},
	}
	lookups := BuildLookupsFromItems(items)
	if !lookups.PriceListBySKU["SKU1"].Equal(mustDec("8.00")) {
		t.Fatalf("sku lookup missing")
	}
	if !lookups.PriceListByEAN["222"].Equal(mustDec("5.00")) {
		t.Fatalf("ean lookup missing")
	}
	if !lookups.TarifByEAN["111"].Equal(mustDec("19.95")) {
		t.Fatalf("tarif lookup missing")
	}
	if _, ok := lookups.TarifByEAN["222"]; ok {
		t.Fatalf("row without rrp must not feed tarif")
	}
}
