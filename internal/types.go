package internal

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type AgeGroup string

const (
	AgeBaby  AgeGroup = "BABY"
	AgeKids  AgeGroup = "KIDS"
	AgeTeen  AgeGroup = "TEEN"
	AgeAdult AgeGroup = "ADULT"
)

type PriceSource string

const (
	PriceInline    PriceSource = "INLINE"
	PricePriceList PriceSource = "PRICE_LIST"
	PriceInvoice   PriceSource = "INVOICE"
	PriceMarkup    PriceSource = "MARKUP"
	PriceNone      PriceSource = "NONE"
)

// RawLineItem is one vendor source row after column mapping. It only lives
// between the adapter and the grouper.
type RawLineItem struct {
	LineNo      int
	Reference   string
	ProductName string
	RawName     string
	NameCode    string
	Color       string
	Size        string
	EAN         string
	SKU         string
	Quantity    int
	UnitPrice   *decimal.Decimal
	RRP         *decimal.Decimal
	Composition string
	Description string
	CSVCategory string
}

type Variant struct {
	Size        string
	RawSize     string
	Quantity    int
	EAN         string
	SKU         string
	Price       decimal.Decimal
	RRP         decimal.Decimal
	PriceSource PriceSource
	RRPSource   PriceSource

	// Raw row prices as the adapter extracted them; consumed by the price
	// resolver and not meaningful afterwards.
	InlinePrice *decimal.Decimal
	InlineRRP   *decimal.Decimal
}

type Product struct {
	Reference            string
	Name                 string
	OriginalName         string
	Color                string
	Material             string
	EcommerceDescription string
	CSVCategory          string
	AgeGroup             AgeGroup
	Variants             []*Variant
	SuggestedBrand       string
	SelectedCategory     *string
	PublicCategories     []string
	ProductTags          []string
	ReconcileMatched     bool
}

type CategoryRef struct {
	ID   string
	Name string
}

type WarningKind string

const (
	WarnRowSkipped         WarningKind = "ROW_SKIPPED"
	WarnNoPriceSource      WarningKind = "NO_PRICE_SOURCE"
	WarnNoCategoryMatch    WarningKind = "NO_CATEGORY_MATCH"
	WarnReconcileNoMatch   WarningKind = "RECONCILE_NO_MATCH"
	WarnDuplicateSizeLabel WarningKind = "DUPLICATE_SIZE_LABEL"
)

// Warning is a non-fatal condition accumulated during a run. The engine never
// aborts on one of these; the caller decides what to show the user.
type Warning struct {
	Kind      WarningKind
	Vendor    string
	Reference string
	Detail    string
	Count     int
	Samples   []string
}

func (w Warning) String() string {
	if w.Count > 1 {
		return fmt.Sprintf("%s vendor=%s %s (x%d)", w.Kind, w.Vendor, w.Detail, w.Count)
	}
	return fmt.Sprintf("%s vendor=%s %s", w.Kind, w.Vendor, w.Detail)
}

// Fatal errors stop the pipeline for one file. They carry enough context for
// a human to fix the uploaded file; there is no automatic retry.

type EmptyOrInvalidSourceError struct {
	Vendor string
	Rows   int
}

func (e *EmptyOrInvalidSourceError) Error() string {
	return fmt.Sprintf("vendor %s: source empty or invalid (%d usable rows)", e.Vendor, e.Rows)
}

type UnrecognizedFormatError struct {
	Vendor string
	Hint   string
}

func (e *UnrecognizedFormatError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("vendor %s: file format not recognized", e.Vendor)
	}
	return fmt.Sprintf("vendor %s: file format not recognized (%s)", e.Vendor, e.Hint)
}

type MissingRequiredColumnsError struct {
	Vendor  string
	Missing []string
	Found   []string
}

func (e *MissingRequiredColumnsError) Error() string {
	return fmt.Sprintf("vendor %s: missing required columns [%s], found [%s]",
		e.Vendor, strings.Join(e.Missing, ", "), strings.Join(e.Found, ", "))
}

// FeedKind tags what a stored source file contains.
type FeedKind string

const (
	FeedOrder        FeedKind = "order"
	FeedConfirmation FeedKind = "confirmation"
	FeedPriceList    FeedKind = "pricelist"
	FeedInvoice      FeedKind = "invoice"
)

type FeedRow struct {
	ID         int
	Vendor     string
	Kind       string
	Filename   string
	Sender     string
	ReceivedAt string
	Hash       string
	Status     string
	RawRef     string
}

type FetchedMailMessage struct {
	Provider   string
	MessageID  string
	Subject    string
	From       string
	ReceivedAt string
	Raw        []byte
}

// InvoiceRow is the structured output of PDF invoice extraction: one priced
// line of a supplier invoice.
type InvoiceRow struct {
	Code        string
	Description string
	Size        string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}
