package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"babette/internal"
)

func TestEngineRun(t *testing.T) {
	engine := NewEngine(mustDec("2.5"), testVocabulary)

	items := []internal.RawLineItem{
		{Reference: "A100", RawName: "JURK BLOEMEN", ProductName: "Jurk bloemen", Color: "Rood",
			Size: "4", Quantity: 2, UnitPrice: dp("12.50"), CSVCategory: "DRESSES"},
		{Reference: "A100", RawName: "JURK BLOEMEN", ProductName: "Jurk bloemen", Color: "Rood",
			Size: "6", Quantity: 1, UnitPrice: dp("12.50"), CSVCategory: "DRESSES"},
		{Reference: "B200", ProductName: "Muts", Size: "TU", Quantity: 4, CSVCategory: "GADGETS"},
	}

	result := engine.Run(items, RunParams{
		Vendor:   "marcel",
		Filename: "order.csv",
		KeyFn:    KeyReferenceColor,
		SizeHint: SizeHint{BareNumberIsYears: true},
		Brands:   []string{"Marcel"},
	})

	if len(result.Products) != 2 {
		t.Fatalf("products=%d", len(result.Products))
	}

	dress := result.Products[0]
	if dress.AgeGroup != internal.AgeKids {
		t.Fatalf("age=%s", dress.AgeGroup)
	}
	if len(dress.PublicCategories) != 1 || dress.PublicCategories[0] != "3" {
		t.Fatalf("categories=%v", dress.PublicCategories)
	}
	if !dress.Variants[0].RRP.Equal(mustDec("31.25")) {
		t.Fatalf("rrp=%s", dress.Variants[0].RRP)
	}

	// B200 has no price source and an unknown category.
	var sawNoPrice, sawNoCategory bool
	for _, w := range result.Warnings {
		switch w.Kind {
		case internal.WarnNoPriceSource:
			sawNoPrice = true
		case internal.WarnNoCategoryMatch:
			sawNoCategory = true
		}
	}
	if !sawNoPrice || !sawNoCategory {
		t.Fatalf("warnings=%+v", result.Warnings)
	}
}

func TestEngineRunDeterministic(t *testing.T) {
	engine := NewEngine(mustDec("2.5"), nil)
	items := []internal.RawLineItem{
		{Reference: "C1", Size: "4", Quantity: 1},
		{Reference: "A1", Size: "4", Quantity: 1},
		{Reference: "B1", Size: "4", Quantity: 1},
	}
	params := RunParams{Vendor: "marcel", KeyFn: KeyReference, SizeHint: SizeHint{BareNumberIsYears: true}}

	first := engine.Run(items, params)
	second := engine.Run(items, params)
	for i := range first.Products {
		if first.Products[i].Reference != second.Products[i].Reference {
			t.Fatalf("order differs at %d", i)
		}
	}
	if first.Products[0].Reference != "C1" {
		t.Fatalf("input order not preserved: %s", first.Products[0].Reference)
	}
}

func TestLoadVocabulary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.csv")
	content := "id;naam\n3;Jurken Meisjes\n4;Broeken Kids\n;leeg\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	vocab, err := LoadVocabulary(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(vocab) != 2 || vocab[0].ID != "3" || vocab[1].Name != "Broeken Kids" {
		t.Fatalf("vocab=%+v", vocab)
	}

	if _, err := LoadVocabulary(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSuggestBrands(t *testing.T) {
	products := []*internal.Product{
		{Reference: "A100", OriginalName: "LOULOU LOGO TEE"},
		{Reference: "B200", OriginalName: "PLAIN TEE"},
	}
	SuggestBrands(products, []string{"Loulou"}, "order_loulou.csv")
	if products[0].SuggestedBrand != "Loulou" {
		t.Fatalf("brand=%q", products[0].SuggestedBrand)
	}
	// The filename mentions the brand, so the plain product is tagged too.
	if products[1].SuggestedBrand != "Loulou" {
		t.Fatalf("brand=%q", products[1].SuggestedBrand)
	}
}
