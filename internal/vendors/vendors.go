// Package vendors declares one adapter spec per supplier. The specs are
// data: column aliases, dialect, grouping key, size hints, markup factor and
// the occasional row hook. The shared extraction code in adapter.go does the
// work for all of them.
package vendors

import (
	"github.com/shopspring/decimal"

	"babette/internal"
	"babette/internal/pipeline"
	"babette/internal/reader"
	"babette/internal/util"
)

type Field string

const (
	FieldReference   Field = "reference"
	FieldName        Field = "name"
	FieldNameCode    Field = "nameCode"
	FieldColor       Field = "color"
	FieldSize        Field = "size"
	FieldEAN         Field = "ean"
	FieldSKU         Field = "sku"
	FieldQuantity    Field = "quantity"
	FieldPrice       Field = "price"
	FieldRRP         Field = "rrp"
	FieldComposition Field = "composition"
	FieldDescription Field = "description"
	FieldCategory    Field = "category"
)

type SourceFormat string

const (
	FormatCSV  SourceFormat = "csv"
	FormatXLSX SourceFormat = "xlsx"
	FormatHTML SourceFormat = "html"
)

// RowHook lets a vendor adjust one mapped item at extraction time; display
// name derivation and other micro-transforms live here, not in the pipeline.
type RowHook func(item *internal.RawLineItem)

// Spec declares how one file shape of one vendor is read and mapped.
type Spec struct {
	Vendor string
	Kind   internal.FeedKind

	Format  SourceFormat
	Dialect reader.Dialect
	Decimal util.DecimalConvention

	// Columns maps logical fields to acceptable header aliases, matched
	// case-insensitively. Several vendors renamed columns over the years;
	// every spelling seen in the wild is listed.
	Columns map[Field][]string
	// Required columns must resolve or extraction fails for the whole file.
	Required []Field
	// RequiredValues are fields whose per-row value must be non-empty; rows
	// violating this are skipped and counted, never silently dropped.
	RequiredValues []Field

	// Signature tokens distinguish this shape from the vendor's other file
	// shapes during format detection.
	Signature []string

	KeyFn               pipeline.GroupKeyFunc
	SizeHint            pipeline.SizeHint
	MergeDuplicateSizes bool

	CostOrder    []internal.PriceSource
	MarkupFactor decimal.Decimal
	Overlay      pipeline.OverlayFields
	MatchFn      pipeline.MatchFunc

	Hook RowHook
}

// Vendor bundles the file shapes one supplier ships through a single upload
// entry point.
type Vendor struct {
	Name  string
	Label string
	// Specs in detection order; the first whose signature matches wins.
	Specs []*Spec
	// SecondaryKind names the companion file this vendor requires before a
	// usable product set exists, empty for single-file vendors.
	SecondaryKind internal.FeedKind
	// SenderDomains route mail intake attachments to this vendor.
	SenderDomains []string
	// Brands seeds suggested-brand detection for this supplier's products.
	Brands []string
}

// Primary is the vendor's order-file spec.
func (v *Vendor) Primary() *Spec {
	return v.Specs[0]
}

func defaultHook(item *internal.RawLineItem) {
	item.ProductName = util.DisplayName(util.SentenceCase(item.RawName), util.TitleCase(item.Color))
}
