package vendors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"babette/internal"
	"babette/internal/pipeline"
	"babette/internal/reader"
	"babette/internal/util"
)

// The house markup default lives in config; specs only carry a factor when
// the vendor contract deviates from it.

// Registry returns all known vendors keyed by name. The specs are the whole
// of each vendor's peculiarity: once a file is routed here, the shared
// pipeline takes over.
func Registry() map[string]*Vendor {
	vendors := []*Vendor{
		amira(), bobbi(), cavalo(), dapper(), enfin(), fauve(), gribou(),
		hopsa(), indigo(), juno(), kiko(), loulou(), marcel(), nino(),
		okapi(), pip(), quista(),
	}
	out := make(map[string]*Vendor, len(vendors))
	for _, v := range vendors {
		out[v.Name] = v
	}
	return out
}

// Lookup resolves a vendor by name.
func Lookup(name string) (*Vendor, error) {
	v, ok := Registry()[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown vendor: %s", name)
	}
	return v, nil
}

// Names lists registered vendor names, sorted.
func Names() []string {
	reg := Registry()
	out := make([]string, 0, len(reg))
	for name := range reg {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// BySenderDomain finds the vendor whose mail domain matches the sender
// address, for intake routing.
func BySenderDomain(sender string) (*Vendor, bool) {
	sender = strings.ToLower(sender)
	for _, v := range Registry() {
		for _, domain := range v.SenderDomains {
			if strings.Contains(sender, strings.ToLower(domain)) {
				return v, true
			}
		}
	}
	return nil, false
}

// amira ships adult basics in a Windows-1252 semicolon CSV with inline cost
// and advice price. Letter sizes throughout.
func amira() *Vendor {
	return &Vendor{
		Name:          "amira",
		Label:         "Amira Basics",
		SenderDomains: []string{"amirabasics.com"},
		Brands:        []string{"Amira"},
		Specs: []*Spec{{
			Vendor:  "amira",
			Kind:    internal.FeedOrder,
			Format:  FormatCSV,
			Dialect: reader.Dialect{Delimiter: ';', LazyQuotes: true, Encoding: reader.EncodingWindows1252},
			Decimal: util.DecimalComma,
			Columns: map[Field][]string{
				FieldReference: {"artikel", "artikelnummer", "art.nr"},
				FieldName:      {"omschrijving", "artikelomschrijving"},
				FieldColor:     {"kleur", "kleurnaam"},
				FieldSize:      {"maat"},
				FieldEAN:       {"ean", "ean code", "barcode"},
				FieldQuantity:  {"aantal", "besteld"},
				FieldPrice:     {"prijs", "nettoprijs"},
				FieldRRP:       {"adviesprijs", "vk prijs"},
				FieldCategory:  {"productgroep"},
			},
			Required:  []Field{FieldReference, FieldSize, FieldPrice},
			Signature: []string{"artikel", "maat"},
			KeyFn:     pipeline.KeyReferenceColor,
			SizeHint:  pipeline.SizeHint{DefaultAge: internal.AgeAdult},
		}},
	}
}

// bobbi is a baby brand: month sizes, comma CSV, and a companion TARIF file
// (EAN;adviesprijs) whose prices feed the retail lookup.
func bobbi() *Vendor {
	return &Vendor{
		Name:          "bobbi",
		Label:         "Bobbi Baby",
		SecondaryKind: internal.FeedPriceList,
		SenderDomains: []string{"bobbibaby.eu"},
		Brands:        []string{"Bobbi"},
		Specs: []*Spec{
			{
				Vendor:  "bobbi",
				Kind:    internal.FeedOrder,
				Format:  FormatCSV,
				Dialect: reader.Comma(),
				Decimal: util.DecimalDot,
				Columns: map[Field][]string{
					FieldReference:   {"style", "style no"},
					FieldName:        {"style name", "description"},
					FieldColor:       {"colour", "color"},
					FieldSize:        {"size"},
					FieldEAN:         {"ean", "gtin"},
					FieldQuantity:    {"qty", "quantity"},
					FieldPrice:       {"whs price", "wholesale"},
					FieldComposition: {"quality", "composition"},
					FieldCategory:    {"group"},
				},
				Required:  []Field{FieldReference, FieldSize, FieldEAN},
				Signature: []string{"style", "size"},
				KeyFn:     pipeline.KeyReferenceColor,
				SizeHint:  pipeline.SizeHint{DefaultAge: internal.AgeBaby},
			},
			{
				Vendor:  "bobbi",
				Kind:    internal.FeedPriceList,
				Format:  FormatCSV,
				Dialect: reader.Dialect{Delimiter: ';', LazyQuotes: true},
				Decimal: util.DecimalComma,
				Columns: map[Field][]string{
					FieldEAN: {"ean", "gtin"},
					FieldRRP: {"adviesprijs", "rrp", "tarif"},
				},
				Required:       []Field{FieldEAN, FieldRRP},
				RequiredValues: []Field{FieldEAN, FieldRRP},
				Signature:      []string{"ean", "adviesprijs"},
			},
		},
	}
}

// cavalo puts a marketing title row above the header and sizes in bare years.
func cavalo() *Vendor {
	return &Vendor{
		Name:          "cavalo",
		Label:         "Cavalo Kids",
		SenderDomains: []string{"cavalokids.it"},
		Brands:        []string{"Cavalo"},
		Specs: []*Spec{{
			Vendor:  "cavalo",
			Kind:    internal.FeedOrder,
			Format:  FormatCSV,
			Dialect: reader.Dialect{Delimiter: ';', LazyQuotes: true},
			Decimal: util.DecimalComma,
			Columns: map[Field][]string{
				FieldReference: {"referenza", "ref"},
				FieldName:      {"articolo", "descrizione"},
				FieldColor:     {"colore"},
				FieldSize:      {"taglia"},
				FieldEAN:       {"ean"},
				FieldQuantity:  {"qta", "pezzi"},
				FieldPrice:     {"prezzo"},
				FieldCategory:  {"categoria"},
			},
			Required:  []Field{FieldReference, FieldSize},
			Signature: []string{"referenza", "taglia"},
			KeyFn:     pipeline.KeyReferenceColor,
			SizeHint:  pipeline.SizeHint{BareNumberIsYears: true},
		}},
	}
}

// dapper shares one upload entry for two shapes: the order export and the
// order confirmation that adds confirmed pricing. Confirmation files merge
// into the grouped order set, overlaying both prices.
func dapper() *Vendor {
	base := map[Field][]string{
		FieldReference: {"article", "article no"},
		FieldName:      {"description"},
		FieldColor:     {"colour"},
		FieldSize:      {"size"},
		FieldQuantity:  {"ordered", "qty"},
	}
	confirm := map[Field][]string{
		FieldReference: {"article", "article no"},
		FieldName:      {"description"},
		FieldColor:     {"colour"},
		FieldSize:      {"size"},
		FieldQuantity:  {"confirmed", "qty"},
		FieldPrice:     {"confirmed price", "net price"},
		FieldRRP:       {"rrp", "srp"},
	}
	return &Vendor{
		Name:          "dapper",
		Label:         "Dapper & Zn.",
		SecondaryKind: internal.FeedConfirmation,
		SenderDomains: []string{"dapperzn.nl"},
		Brands:        []string{"Dapper"},
		Specs: []*Spec{
			{
				Vendor:   "dapper",
				Kind:     internal.FeedOrder,
				Format:   FormatCSV,
				Dialect:  reader.Semicolon(),
				Decimal:  util.DecimalComma,
				Columns:  base,
				Required: []Field{FieldReference, FieldSize},
				Signature: []string{
					"article", "ordered",
				},
				KeyFn:    pipeline.KeyReferenceColor,
				SizeHint: pipeline.SizeHint{BareNumberIsYears: true},
				Overlay:  pipeline.OverlayFields{Price: true, RRP: true},
				MatchFn:  pipeline.MatchByReferenceColor,
			},
			{
				Vendor:   "dapper",
				Kind:     internal.FeedConfirmation,
				Format:   FormatCSV,
				Dialect:  reader.Semicolon(),
				Decimal:  util.DecimalComma,
				Columns:  confirm,
				Required: []Field{FieldReference, FieldSize, FieldPrice},
				Signature: []string{
					"article", "confirmed price",
				},
				KeyFn:    pipeline.KeyReferenceColor,
				SizeHint: pipeline.SizeHint{BareNumberIsYears: true},
			},
		},
	}
}

// enfin sends orders without prices; cost comes from the companion PDF
// invoice matched by article code.
func enfin() *Vendor {
	return &Vendor{
		Name:          "enfin",
		Label:         "Enfin Paris",
		SecondaryKind: internal.FeedInvoice,
		SenderDomains: []string{"enfin-paris.fr"},
		Brands:        []string{"Enfin"},
		Specs: []*Spec{{
			Vendor:  "enfin",
			Kind:    internal.FeedOrder,
			Format:  FormatCSV,
			Dialect: reader.Semicolon(),
			Decimal: util.DecimalComma,
			Columns: map[Field][]string{
				FieldReference: {"reference", "réference", "ref"},
				FieldName:      {"designation", "désignation"},
				FieldColor:     {"coloris"},
				FieldSize:      {"taille"},
				FieldSKU:       {"code article", "sku"},
				FieldQuantity:  {"quantite", "quantité", "qte"},
				FieldCategory:  {"famille"},
			},
			Required:  []Field{FieldReference, FieldSize, FieldSKU},
			Signature: []string{"reference", "taille"},
			KeyFn:     pipeline.KeyReferenceColor,
			SizeHint: pipeline.SizeHint{
				BareNumberIsYears: true,
				RangeOverrides:    map[string]string{"1M/3M": "3 maand"},
			},
		}},
	}
}

// fauve sells accessories; nearly every row is the TU unit size, and repeat
// unit rows merge by quantity instead of being dropped.
func fauve() *Vendor {
	return &Vendor{
		Name:          "fauve",
		Label:         "Fauve Accessoires",
		SenderDomains: []string{"fauve.be"},
		Brands:        []string{"Fauve"},
		Specs: []*Spec{{
			Vendor:  "fauve",
			Kind:    internal.FeedOrder,
			Format:  FormatCSV,
			Dialect: reader.Semicolon(),
			Decimal: util.DecimalComma,
			Columns: map[Field][]string{
				FieldReference: {"ref", "referentie"},
				FieldName:      {"omschrijving", "artikel"},
				FieldColor:     {"kleur"},
				FieldSize:      {"maat"},
				FieldEAN:       {"ean"},
				FieldQuantity:  {"aantal"},
				FieldPrice:     {"aankoopprijs", "inkoop"},
				FieldRRP:       {"verkoopprijs", "adviesprijs"},
				FieldCategory:  {"soort"},
			},
			Required:            []Field{FieldReference, FieldSize},
			Signature:           []string{"ref", "maat"},
			KeyFn:               pipeline.KeyReferenceColor,
			MergeDuplicateSizes: true,
		}},
	}
}

// gribou reuses reference numbers across models, so the grouping key needs
// the model code on top of reference+colour.
func gribou() *Vendor {
	return &Vendor{
		Name:          "gribou",
		Label:         "Gribou",
		SenderDomains: []string{"gribou.fr"},
		Brands:        []string{"Gribou"},
		Specs: []*Spec{{
			Vendor:  "gribou",
			Kind:    internal.FeedOrder,
			Format:  FormatCSV,
			Dialect: reader.Comma(),
			Decimal: util.DecimalDot,
			Columns: map[Field][]string{
				FieldReference: {"reference"},
				FieldNameCode:  {"model", "model code"},
				FieldName:      {"name"},
				FieldColor:     {"color"},
				FieldSize:      {"size"},
				FieldEAN:       {"ean"},
				FieldQuantity:  {"units", "qty"},
				FieldPrice:     {"price"},
				FieldCategory:  {"type"},
			},
			Required:  []Field{FieldReference, FieldSize, FieldNameCode},
			Signature: []string{"reference", "model"},
			KeyFn:     pipeline.KeyReferenceColorName,
			SizeHint:  pipeline.SizeHint{BareNumberIsYears: true},
		}},
	}
}

// hopsa exports ".xls" files that are actually HTML tables.
func hopsa() *Vendor {
	return &Vendor{
		Name:          "hopsa",
		Label:         "Hopsa",
		SenderDomains: []string{"hopsa.de"},
		Brands:        []string{"Hopsa"},
		Specs: []*Spec{{
			Vendor:  "hopsa",
			Kind:    internal.FeedOrder,
			Format:  FormatHTML,
			Decimal: util.DecimalComma,
			Columns: map[Field][]string{
				FieldReference: {"artikelnr", "artikel-nr"},
				FieldName:      {"bezeichnung"},
				FieldColor:     {"farbe"},
				FieldSize:      {"größe", "grosse"},
				FieldEAN:       {"ean"},
				FieldQuantity:  {"menge"},
				FieldPrice:     {"ek", "ek-preis"},
				FieldRRP:       {"uvp"},
				FieldCategory:  {"warengruppe"},
			},
			Required:  []Field{FieldReference, FieldSize},
			Signature: []string{"artikelnr", "menge"},
			KeyFn:     pipeline.KeyReferenceColor,
			SizeHint:  pipeline.SizeHint{BareNumberIsYears: true},
		}},
	}
}

// indigo sends XLSX workbooks without inline cost; the separately uploaded
// price list by SKU outranks whatever the rows carry.
func indigo() *Vendor {
	return &Vendor{
		Name:          "indigo",
		Label:         "Indigo Junior",
		SecondaryKind: internal.FeedPriceList,
		SenderDomains: []string{"indigojunior.es"},
		Brands:        []string{"Indigo"},
		Specs: []*Spec{
			{
				Vendor:  "indigo",
				Kind:    internal.FeedOrder,
				Format:  FormatXLSX,
				Decimal: util.DecimalDot,
				Columns: map[Field][]string{
					FieldReference: {"referencia", "ref"},
					FieldName:      {"articulo", "descripcion"},
					FieldColor:     {"color"},
					FieldSize:      {"talla"},
					FieldSKU:       {"sku", "codigo"},
					FieldEAN:       {"ean"},
					FieldQuantity:  {"unidades", "cant"},
					FieldPrice:     {"precio"},
					FieldCategory:  {"familia"},
				},
				Required:  []Field{FieldReference, FieldSize, FieldSKU},
				Signature: []string{"referencia", "talla"},
				KeyFn:     pipeline.KeyReferenceColor,
				SizeHint:  pipeline.SizeHint{BareNumberIsYears: true},
				CostOrder: []internal.PriceSource{internal.PricePriceList, internal.PriceInline},
			},
			{
				Vendor:  "indigo",
				Kind:    internal.FeedPriceList,
				Format:  FormatXLSX,
				Decimal: util.DecimalDot,
				Columns: map[Field][]string{
					FieldSKU:   {"sku", "codigo"},
					FieldPrice: {"precio", "price"},
				},
				Required:       []Field{FieldSKU, FieldPrice},
				RequiredValues: []Field{FieldSKU, FieldPrice},
				Signature:      []string{"sku", "precio"},
			},
		},
	}
}

// juno writes size ranges and keeps its own opinion about which bound
// counts: the generic rule takes the upper bound, but the large ranges have
// explicit overrides.
func juno() *Vendor {
	return &Vendor{
		Name:          "juno",
		Label:         "Juno & Mae",
		SenderDomains: []string{"junoandmae.com"},
		Brands:        []string{"Juno & Mae"},
		Specs: []*Spec{{
			Vendor:  "juno",
			Kind:    internal.FeedOrder,
			Format:  FormatCSV,
			Dialect: reader.Comma(),
			Decimal: util.DecimalDot,
			Columns: map[Field][]string{
				FieldReference: {"style", "ref"},
				FieldName:      {"product"},
				FieldColor:     {"colour"},
				FieldSize:      {"age", "size"},
				FieldEAN:       {"barcode", "ean"},
				FieldQuantity:  {"qty"},
				FieldPrice:     {"unit cost"},
				FieldRRP:       {"rrp"},
				FieldCategory:  {"category"},
			},
			Required:  []Field{FieldReference, FieldSize},
			Signature: []string{"style", "age"},
			KeyFn:     pipeline.KeyReferenceColor,
			SizeHint: pipeline.SizeHint{
				BareNumberIsYears: true,
				RangeOverrides: map[string]string{
					"11/12": "12 jaar",
					"13/14": "14 jaar",
				},
			},
		}},
	}
}

// kiko packs multi-line feature blocks into a quoted description column;
// the reader's multi-line quoting handles it, the hook keeps the block as
// the e-commerce description.
func kiko() *Vendor {
	return &Vendor{
		Name:          "kiko",
		Label:         "Kiko Label",
		SenderDomains: []string{"kikolabel.dk"},
		Brands:        []string{"Kiko"},
		Specs: []*Spec{{
			Vendor:  "kiko",
			Kind:    internal.FeedOrder,
			Format:  FormatCSV,
			Dialect: reader.Comma(),
			Decimal: util.DecimalDot,
			Columns: map[Field][]string{
				FieldReference:   {"item no", "item"},
				FieldName:        {"item name"},
				FieldColor:       {"colour name", "colour"},
				FieldSize:        {"size"},
				FieldEAN:         {"ean"},
				FieldQuantity:    {"pcs", "qty"},
				FieldPrice:       {"price dkk", "price eur", "price"},
				FieldRRP:         {"rec. retail", "rrp"},
				FieldDescription: {"features", "description"},
				FieldComposition: {"material"},
				FieldCategory:    {"product group"},
			},
			Required:  []Field{FieldReference, FieldSize},
			Signature: []string{"item no", "size"},
			KeyFn:     pipeline.KeyReferenceColor,
			SizeHint:  pipeline.SizeHint{BareNumberIsYears: true},
			Hook: func(item *internal.RawLineItem) {
				defaultHook(item)
				item.Description = strings.TrimSpace(item.Description)
			},
		}},
	}
}

// loulou declares its own markup; 2.4 per the purchase agreement, not the
// house default.
func loulou() *Vendor {
	return &Vendor{
		Name:          "loulou",
		Label:         "Loulou",
		SenderDomains: []string{"louloukids.fr"},
		Brands:        []string{"Loulou"},
		Specs: []*Spec{{
			Vendor:  "loulou",
			Kind:    internal.FeedOrder,
			Format:  FormatCSV,
			Dialect: reader.Semicolon(),
			Decimal: util.DecimalComma,
			Columns: map[Field][]string{
				FieldReference: {"reference"},
				FieldName:      {"modele", "modèle"},
				FieldColor:     {"couleur"},
				FieldSize:      {"taille"},
				FieldEAN:       {"gencod", "ean"},
				FieldQuantity:  {"qte", "quantite"},
				FieldPrice:     {"pa ht", "prix achat"},
				FieldCategory:  {"rayon"},
			},
			Required:     []Field{FieldReference, FieldSize},
			Signature:    []string{"reference", "taille"},
			KeyFn:        pipeline.KeyReferenceColor,
			SizeHint:     pipeline.SizeHint{BareNumberIsYears: true},
			MarkupFactor: decimal.NewFromFloat(2.4),
		}},
	}
}

// marcel is the plainest vendor in the roster and rides every default.
func marcel() *Vendor {
	return &Vendor{
		Name:          "marcel",
		Label:         "Marcel & Fils",
		SenderDomains: []string{"marceletfils.be"},
		Brands:        []string{"Marcel"},
		Specs: []*Spec{{
			Vendor:  "marcel",
			Kind:    internal.FeedOrder,
			Format:  FormatCSV,
			Dialect: reader.Semicolon(),
			Decimal: util.DecimalComma,
			Columns: map[Field][]string{
				FieldReference: {"referentie", "ref"},
				FieldName:      {"artikel"},
				FieldColor:     {"kleur"},
				FieldSize:      {"maat"},
				FieldEAN:       {"ean"},
				FieldQuantity:  {"aantal"},
				FieldPrice:     {"prijs"},
				FieldCategory:  {"groep"},
			},
			Required:  []Field{FieldReference, FieldSize},
			Signature: []string{"referentie", "maat"},
			KeyFn:     pipeline.KeyReferenceColor,
			SizeHint:  pipeline.SizeHint{BareNumberIsYears: true},
		}},
	}
}

// nino prefixes every amount with a euro sign and groups thousands with
// dots.
func nino() *Vendor {
	return &Vendor{
		Name:          "nino",
		Label:         "Nino",
		SenderDomains: []string{"nino-moda.it"},
		Brands:        []string{"Nino"},
		Specs: []*Spec{{
			Vendor:  "nino",
			Kind:    internal.FeedOrder,
			Format:  FormatCSV,
			Dialect: reader.Semicolon(),
			Decimal: util.DecimalComma,
			Columns: map[Field][]string{
				FieldReference: {"codice", "cod"},
				FieldName:      {"articolo"},
				FieldColor:     {"colore"},
				FieldSize:      {"taglia"},
				FieldEAN:       {"ean"},
				FieldQuantity:  {"qta"},
				FieldPrice:     {"prezzo netto", "prezzo"},
				FieldRRP:       {"prezzo consigliato"},
				FieldCategory:  {"linea"},
			},
			Required:  []Field{FieldReference, FieldSize, FieldPrice},
			Signature: []string{"codice", "taglia"},
			KeyFn:     pipeline.KeyReferenceColor,
			SizeHint:  pipeline.SizeHint{BareNumberIsYears: true},
		}},
	}
}

// okapi confirms orders with a separate price file matched on
// reference+colour; prices overlay, everything else stays from the order.
func okapi() *Vendor {
	return &Vendor{
		Name:          "okapi",
		Label:         "Okapi",
		SecondaryKind: internal.FeedConfirmation,
		SenderDomains: []string{"okapi-knits.no"},
		Brands:        []string{"Okapi"},
		Specs: []*Spec{
			{
				Vendor:  "okapi",
				Kind:    internal.FeedOrder,
				Format:  FormatCSV,
				Dialect: reader.Comma(),
				Decimal: util.DecimalDot,
				Columns: map[Field][]string{
					FieldReference:   {"style no", "style"},
					FieldName:        {"style name"},
					FieldColor:       {"colour"},
					FieldSize:        {"size"},
					FieldEAN:         {"ean"},
					FieldQuantity:    {"qty"},
					FieldComposition: {"quality"},
					FieldCategory:    {"group"},
				},
				Required:  []Field{FieldReference, FieldSize},
				Signature: []string{"style no", "qty"},
				KeyFn:     pipeline.KeyReferenceColor,
				SizeHint:  pipeline.SizeHint{BareNumberIsYears: true},
				Overlay:   pipeline.OverlayFields{Price: true, RRP: true},
				MatchFn:   pipeline.MatchByReferenceColor,
			},
			{
				Vendor:  "okapi",
				Kind:    internal.FeedConfirmation,
				Format:  FormatCSV,
				Dialect: reader.Comma(),
				Decimal: util.DecimalDot,
				Columns: map[Field][]string{
					FieldReference: {"style no", "style"},
					FieldColor:     {"colour"},
					FieldSize:      {"size"},
					FieldPrice:     {"net", "net price"},
					FieldRRP:       {"retail", "rrp"},
				},
				Required:  []Field{FieldReference, FieldSize, FieldPrice},
				Signature: []string{"style no", "net"},
				KeyFn:     pipeline.KeyReferenceColor,
				SizeHint:  pipeline.SizeHint{BareNumberIsYears: true},
			},
		},
	}
}

// pip confirms stock later; quantity is absent from the order export and
// every variant starts at zero.
func pip() *Vendor {
	return &Vendor{
		Name:          "pip",
		Label:         "Pip & Ko",
		SenderDomains: []string{"pipenko.nl"},
		Brands:        []string{"Pip & Ko"},
		Specs: []*Spec{{
			Vendor:  "pip",
			Kind:    internal.FeedOrder,
			Format:  FormatCSV,
			Dialect: reader.Semicolon(),
			Decimal: util.DecimalComma,
			Columns: map[Field][]string{
				FieldReference: {"artikelcode"},
				FieldName:      {"artikelnaam"},
				FieldColor:     {"kleur"},
				FieldSize:      {"maat"},
				FieldEAN:       {"ean"},
				FieldPrice:     {"inkoopprijs"},
				FieldRRP:       {"adviesprijs"},
				FieldCategory:  {"categorie"},
			},
			Required:  []Field{FieldReference, FieldSize},
			Signature: []string{"artikelcode", "maat"},
			KeyFn:     pipeline.KeyReferenceColor,
			SizeHint:  pipeline.SizeHint{BareNumberIsYears: true},
		}},
	}
}

// quista's exports are the least disciplined of the roster; rows regularly
// miss the reference or size and are skipped with a count.
func quista() *Vendor {
	return &Vendor{
		Name:          "quista",
		Label:         "Quista",
		SenderDomains: []string{"quista.pt"},
		Brands:        []string{"Quista"},
		Specs: []*Spec{{
			Vendor:  "quista",
			Kind:    internal.FeedOrder,
			Format:  FormatCSV,
			Dialect: reader.Semicolon(),
			Decimal: util.DecimalComma,
			Columns: map[Field][]string{
				FieldReference: {"ref", "referencia"},
				FieldName:      {"descricao", "descrição"},
				FieldColor:     {"cor"},
				FieldSize:      {"tam", "tamanho"},
				FieldEAN:       {"ean"},
				FieldQuantity:  {"qtd"},
				FieldPrice:     {"preco", "preço"},
				FieldCategory:  {"seccao"},
			},
			Required:  []Field{FieldReference, FieldSize},
			Signature: []string{"ref", "tam"},
			KeyFn:     pipeline.KeyReferenceColor,
			SizeHint:  pipeline.SizeHint{BareNumberIsYears: true},
		}},
	}
}
