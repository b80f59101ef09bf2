package reader

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var reWS = regexp.MustCompile(`\s+`)

// ReadHTMLTable handles vendors whose ".xls" export is actually an HTML page
// with a single <table>. The largest table wins; each <tr> becomes a row.
func ReadHTMLTable(content []byte) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	var best [][]string
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := [][]string{}
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			cells := []string{}
			tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, normalizeCell(cell.Text()))
			})
			if !rowEmpty(cells) {
				rows = append(rows, cells)
			}
		})
		if len(rows) > len(best) {
			best = rows
		}
	})
	return best, nil
}

// IsHTMLTable sniffs the pseudo-xls case: file named .xls but starting with
// markup.
func IsHTMLTable(content []byte) bool {
	head := strings.ToLower(string(bytes.TrimSpace(content[:min(len(content), 512)])))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") ||
		strings.Contains(head, "<table")
}

func normalizeCell(input string) string {
	return strings.TrimSpace(reWS.ReplaceAllString(strings.ReplaceAll(input, " ", " "), " "))
}
