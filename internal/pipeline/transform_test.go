package pipeline

import (
	"testing"

	"babette/internal"
)

func TestPrepareForUploadAdultSizes(t *testing.T) {
	p := &internal.Product{Reference: "A100", AgeGroup: internal.AgeAdult, Variants: []*internal.Variant{
		{Size: "S", Quantity: 1},
		{Size: "M", Quantity: 2},
		{Size: "XXL", Quantity: 1},
	}}

	PrepareForUpload([]*internal.Product{p})
	want := []string{"S - 36", "M - 38", "XXL - 44"}
	for i, v := range p.Variants {
		if v.Size != want[i] {
			t.Fatalf("size[%d]=%q want %q", i, v.Size, want[i])
		}
	}

	PrepareForUpload([]*internal.Product{p})
	for i, v := range p.Variants {
		if v.Size != want[i] {
			t.Fatalf("second run changed size[%d] to %q", i, v.Size)
		}
	}
}

func TestPrepareForUploadLeavesKidsSizes(t *testing.T) {
	p := &internal.Product{Reference: "A100", AgeGroup: internal.AgeKids, Variants: []*internal.Variant{
		{Size: "4 jaar", Quantity: 1},
	}}
	PrepareForUpload([]*internal.Product{p})
	if p.Variants[0].Size != "4 jaar" {
		t.Fatalf("size=%q", p.Variants[0].Size)
	}
}

func TestPrepareForUploadDropsZeroQuantity(t *testing.T) {
	p := &internal.Product{Reference: "A100", AgeGroup: internal.AgeKids, Variants: []*internal.Variant{
		{Size: "4 jaar", Quantity: 2},
		{Size: "6 jaar", Quantity: 0},
		{Size: "8 jaar", Quantity: 1},
	}}
	PrepareForUpload([]*internal.Product{p})
	if len(p.Variants) != 2 {
		t.Fatalf("variants=%d", len(p.Variants))
	}
	if p.Variants[0].Size != "4 jaar" || p.Variants[1].Size != "8 jaar" {
		t.Fatalf("kept %q and %q", p.Variants[0].Size, p.Variants[1].Size)
	}
}

func TestPrepareForUploadCollapsesUnits(t *testing.T) {
	p := &internal.Product{Reference: "A100", AgeGroup: internal.AgeKids, Variants: []*internal.Variant{
		{RawSize: "TU", Size: "TU", Quantity: 2},
		{RawSize: "TU", Size: "TU", Quantity: 4},
	}}
	PrepareForUpload([]*internal.Product{p})
	if len(p.Variants) != 1 || p.Variants[0].Quantity != 6 {
		t.Fatalf("variants=%+v", p.Variants[0])
	}
}
