package vendors

import (
	"errors"
	"testing"

	"babette/internal"
)

func TestExtractRowsBasic(t *testing.T) {
	vendor, err := Lookup("marcel")
	if err != nil {
		t.Fatal(err)
	}
	rows := [][]string{
		{"Referentie", "Artikel", "Kleur", "Maat", "EAN", "Aantal", "Prijs", "Groep"},
		{"A100", "JURK BLOEMEN", "rood", "4", "5400000000017", "2", "12,50", "Jurken"},
		{"A100", "JURK BLOEMEN", "rood", "6", "5400000000024", "1", "12,50", "Jurken"},
	}

	items, warnings, err := ExtractRows(vendor.Primary(), rows)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Fatalf("warnings=%+v", warnings)
	}
	if len(items) != 2 {
		t.Fatalf("items=%d", len(items))
	}

	item := items[0]
	if item.Reference != "A100" || item.Size != "4" || item.Quantity != 2 {
		t.Fatalf("item=%+v", item)
	}
	if item.UnitPrice == nil || item.UnitPrice.String() != "12.5" {
		t.Fatalf("price=%v", item.UnitPrice)
	}
	// Default hook: sentence-cased name joined with title-cased colour.
	if item.ProductName != "Jurk bloemen - Rood" {
		t.Fatalf("name=%q", item.ProductName)
	}
	if item.CSVCategory != "Jurken" {
		t.Fatalf("category=%q", item.CSVCategory)
	}
}

func TestExtractRowsHeaderBelowTitleRow(t *testing.T) {
	vendor, _ := Lookup("cavalo")
	rows := [][]string{
		{"ORDINE 2026/031 - CAVALO KIDS"},
		{""},
		{"Referenza", "Articolo", "Colore", "Taglia", "EAN", "Qta", "Prezzo", "Categoria"},
		{"CV-9", "GONNA", "blu", "8", "", "3", "15,00", "Gonne"},
	}

	items, _, err := ExtractRows(vendor.Primary(), rows)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Reference != "CV-9" {
		t.Fatalf("items=%+v", items)
	}
}

func TestExtractRowsSkipsIncompleteRows(t *testing.T) {
	vendor, _ := Lookup("marcel")
	rows := [][]string{
		{"Referentie", "Maat", "Aantal"},
		{"A100", "4", "2"},
		{"", "6", "1"},
		{"A100", "", "5"},
		{"Totaal", "", ""},
	}

	items, warnings, err := ExtractRows(vendor.Primary(), rows)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("items=%d", len(items))
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings=%+v", warnings)
	}
	w := warnings[0]
	if w.Kind != internal.WarnRowSkipped || w.Count != 3 || len(w.Samples) != 3 {
		t.Fatalf("warning=%+v", w)
	}
}

func TestExtractRowsEmptySource(t *testing.T) {
	vendor, _ := Lookup("marcel")

	_, _, err := ExtractRows(vendor.Primary(), nil)
	var emptyErr *internal.EmptyOrInvalidSourceError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("err=%v", err)
	}

	// A header with nothing but unusable rows is just as empty.
	_, _, err = ExtractRows(vendor.Primary(), [][]string{
		{"Referentie", "Maat"},
		{"", ""},
	})
	if !errors.As(err, &emptyErr) {
		t.Fatalf("err=%v", err)
	}
}

func TestExtractRowsMissingColumns(t *testing.T) {
	vendor, _ := Lookup("marcel")
	rows := [][]string{
		{"Referentie", "Kleur", "Aantal"},
		{"A100", "rood", "2"},
	}

	_, _, err := ExtractRows(vendor.Primary(), rows)
	var missingErr *internal.MissingRequiredColumnsError
	if !errors.As(err, &missingErr) {
		t.Fatalf("err=%v", err)
	}
	if len(missingErr.Missing) != 1 || missingErr.Missing[0] != "maat" {
		t.Fatalf("missing=%v", missingErr.Missing)
	}
}

func TestExtractRowsQuantityMissingColumn(t *testing.T) {
	// pip sends no quantity column at all; quantities default to zero.
	vendor, err := Lookup("pip")
	if err != nil {
		t.Fatal(err)
	}
	rows := [][]string{
		{"Artikelcode", "Artikelnaam", "Kleur", "Maat", "Inkoopprijs", "Adviesprijs"},
		{"PK-51", "Romper streep", "ecru", "4", "8,75", "19,95"},
	}

	items, _, err := ExtractRows(vendor.Primary(), rows)
	if err != nil {
		t.Fatal(err)
	}
	if items[0].Quantity != 0 {
		t.Fatalf("quantity=%d", items[0].Quantity)
	}
}
