package reader

import (
	"bytes"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"

	"babette/internal"
	"babette/internal/util"
)

var (
	reInvoiceLine = regexp.MustCompile(`^(\S+)\s+(.+?)\s+(\d+)\s+([\d.,]+)\s+([\d.,]+)$`)
	reSizeToken   = regexp.MustCompile(`(?i)^(\d{1,2}[MY]|\d{1,2}/\d{1,2}[MY]?|XXS|XS|S|M|L|XL|XXL|TU|U)$`)
	reArticleCode = regexp.MustCompile(`^[A-Z0-9][A-Z0-9./-]{2,}$`)
)

// ReadInvoicePDF extracts priced invoice lines from a supplier PDF. Only
// lines shaped like "<code> <description...> [size] <qty> <unit> <total>"
// survive; headers, totals and address blocks fall through silently.
func ReadInvoicePDF(content []byte) ([]internal.InvoiceRow, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	out := []internal.InvoiceRow{}
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		for _, line := range splitPDFLines(text) {
			if row, ok := parseInvoiceLine(line); ok {
				out = append(out, row)
			}
		}
	}
	return out, nil
}

func parseInvoiceLine(line string) (internal.InvoiceRow, bool) {
	m := reInvoiceLine.FindStringSubmatch(line)
	if m == nil {
		return internal.InvoiceRow{}, false
	}

	code := strings.ToUpper(m[1])
	if !reArticleCode.MatchString(code) {
		return internal.InvoiceRow{}, false
	}

	qty, ok := util.ParseQuantity(m[3])
	if !ok {
		return internal.InvoiceRow{}, false
	}
	unitPrice, err := util.ParseMoney(m[4], util.DecimalAuto)
	if err != nil {
		return internal.InvoiceRow{}, false
	}
	total, err := util.ParseMoney(m[5], util.DecimalAuto)
	if err != nil {
		return internal.InvoiceRow{}, false
	}

	desc := m[2]
	size := ""
	words := strings.Fields(desc)
	if len(words) > 1 {
		if last := words[len(words)-1]; reSizeToken.MatchString(last) {
			size = strings.ToUpper(last)
			desc = strings.Join(words[:len(words)-1], " ")
		}
	}

	return internal.InvoiceRow{
		Code:        code,
		Description: util.NormalizeSpaces(desc),
		Size:        size,
		Quantity:    qty,
		UnitPrice:   unitPrice,
		Total:       total,
	}, true
}

func splitPDFLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = normalizeCell(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
