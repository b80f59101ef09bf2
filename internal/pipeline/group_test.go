package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"

	"babette/internal"
)

func dp(v string) *decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return &d
}

func TestGroupKeepsFirstOccurrenceOrder(t *testing.T) {
	items := []internal.RawLineItem{
		{Reference: "A100", Color: "Rood", ProductName: "Jurk", Size: "4Y", Quantity: 2},
		{Reference: "B200", Color: "Blauw", ProductName: "Broek", Size: "6Y", Quantity: 1},
		{Reference: "A100", Color: "Rood", Size: "6Y", Quantity: 3, Composition: "100% katoen"},
	}

	products := Group(items, KeyReferenceColor)
	if len(products) != 2 {
		t.Fatalf("len=%d", len(products))
	}
	if products[0].Reference != "A100" || products[1].Reference != "B200" {
		t.Fatalf("order wrong: %s %s", products[0].Reference, products[1].Reference)
	}
	if len(products[0].Variants) != 2 {
		t.Fatalf("variants=%d", len(products[0].Variants))
	}
	// The later row fills material without touching the existing name.
	if products[0].Name != "Jurk" || products[0].Material != "100% katoen" {
		t.Fatalf("descriptive fill wrong: %q %q", products[0].Name, products[0].Material)
	}
}

func TestGroupSameReferenceDifferentColor(t *testing.T) {
	items := []internal.RawLineItem{
		{Reference: "A100", Color: "Rood", Size: "4Y"},
		{Reference: "A100", Color: "Blauw", Size: "4Y"},
	}
	if got := len(Group(items, KeyReferenceColor)); got != 2 {
		t.Fatalf("len=%d", got)
	}
	if got := len(Group(items, KeyReference)); got != 1 {
		t.Fatalf("len=%d", got)
	}
}

func TestApplySizesDuplicateLabelDropped(t *testing.T) {
	products := Group([]internal.RawLineItem{
		{Reference: "A100", Size: "6m", Quantity: 1},
		{Reference: "A100", Size: "06M", Quantity: 2},
	}, KeyReference)

	warnings := ApplySizes("amira", products, SizeHint{}, false)
	if len(products[0].Variants) != 1 {
		t.Fatalf("variants=%d", len(products[0].Variants))
	}
	if products[0].Variants[0].Quantity != 1 {
		t.Fatalf("qty=%d", products[0].Variants[0].Quantity)
	}
	if len(warnings) != 1 || warnings[0].Kind != internal.WarnDuplicateSizeLabel {
		t.Fatalf("warnings=%+v", warnings)
	}
}

func TestApplySizesDuplicateLabelMerged(t *testing.T) {
	products := Group([]internal.RawLineItem{
		{Reference: "A100", Size: "6m", Quantity: 1, EAN: "111"},
		{Reference: "A100", Size: "06M", Quantity: 2},
	}, KeyReference)

	warnings := ApplySizes("fauve", products, SizeHint{}, true)
	if len(warnings) != 0 {
		t.Fatalf("warnings=%+v", warnings)
	}
	v := products[0].Variants
	if len(v) != 1 || v[0].Quantity != 3 || v[0].EAN != "111" {
		t.Fatalf("merge wrong: %+v", v[0])
	}
}

func TestApplySizesSetsProductAge(t *testing.T) {
	products := Group([]internal.RawLineItem{
		{Reference: "A100", Size: "3m"},
		{Reference: "A100", Size: "6m"},
	}, KeyReference)
	ApplySizes("bobbi", products, SizeHint{}, false)
	if products[0].AgeGroup != internal.AgeBaby {
		t.Fatalf("age=%s", products[0].AgeGroup)
	}
}

func TestCollapseUnitVariants(t *testing.T) {
	p := &internal.Product{Reference: "A100", Variants: []*internal.Variant{
		{RawSize: "TU", Size: "TU", Quantity: 2, Price: decimal.RequireFromString("10")},
		{RawSize: "4Y", Size: "4 jaar", Quantity: 1},
		{RawSize: "TU", Size: "TU", Quantity: 3, EAN: "999"},
	}}

	CollapseUnitVariants(p)
	if len(p.Variants) != 2 {
		t.Fatalf("variants=%d", len(p.Variants))
	}
	unit := p.Variants[0]
	if unit.Quantity != 5 {
		t.Fatalf("qty=%d", unit.Quantity)
	}
	if unit.EAN != "999" {
		t.Fatalf("ean=%q", unit.EAN)
	}
	if !unit.Price.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("price=%s", unit.Price)
	}

	// Idempotent: a second collapse changes nothing.
	CollapseUnitVariants(p)
	if len(p.Variants) != 2 || p.Variants[0].Quantity != 5 {
		t.Fatalf("second collapse changed result")
	}
}
