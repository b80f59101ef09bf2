package reader

import "testing"

func TestReadSemicolonQuoted(t *testing.T) {
	raw := []byte("Ref;Kleur;Omschrijving\n1001;Navy;\"Sweater; ronde hals\"\n;;\n1002;Ecru;\"Zegt \"\"hoi\"\"\"\n")
	rows, err := Read(raw, Semicolon())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("len=%d", len(rows))
	}
	if rows[1][2] != "Sweater; ronde hals" {
		t.Fatalf("quoted delimiter lost: %q", rows[1][2])
	}
	if rows[2][2] != `Zegt "hoi"` {
		t.Fatalf("escaped quote: %q", rows[2][2])
	}
}

func TestReadMultilineQuotedField(t *testing.T) {
	raw := []byte("Ref,Features\n1001,\"- 100% katoen\n- ronde hals\n- rib aan zoom\"\n")
	rows, err := Read(raw, Comma())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("len=%d", len(rows))
	}
	if rows[1][1] != "- 100% katoen\n- ronde hals\n- rib aan zoom" {
		t.Fatalf("multiline field: %q", rows[1][1])
	}
}

func TestReadLatin1(t *testing.T) {
	// "Bébé" in ISO-8859-1.
	raw := []byte{'R', 'e', 'f', ';', 'N', 'a', 'a', 'm', '\n', '1', ';', 'B', 0xE9, 'b', 0xE9, '\n'}
	rows, err := Read(raw, Dialect{Delimiter: ';', LazyQuotes: true, Encoding: EncodingLatin1})
	if err != nil {
		t.Fatal(err)
	}
	if rows[1][1] != "Bébé" {
		t.Fatalf("got %q", rows[1][1])
	}
}

func TestReadDropsBOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Ref;Naam\n1;x\n")...)
	rows, err := Read(raw, Semicolon())
	if err != nil {
		t.Fatal(err)
	}
	if rows[0][0] != "Ref" {
		t.Fatalf("BOM leaked into header: %q", rows[0][0])
	}
}

func TestReadHTMLTable(t *testing.T) {
	html := []byte(`<html><body><table>
<tr><th>Ref</th><th>Size</th></tr>
<tr><td>1001</td><td>4Y</td></tr>
</table></body></html>`)
	if !IsHTMLTable(html) {
		t.Fatal("not sniffed as html")
	}
	rows, err := ReadHTMLTable(html)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1][0] != "1001" {
		t.Fatalf("rows=%v", rows)
	}
}

func TestParseInvoiceLine(t *testing.T) {
	cases := []struct {
		line string
		ok   bool
		code string
		size string
		qty  int
	}{
		{line: "B123-45 JONGENS SWEATER NAVY 8Y 4 12,50 50,00", ok: true, code: "B123-45", size: "8Y", qty: 4},
		{line: "TOTAAL 1.250,00", ok: false},
		{line: "K900 MUTS WOL TU 12 4,95 59,40", ok: true, code: "K900", size: "TU", qty: 12},
		{line: "Factuurdatum: 01/09/2026", ok: false},
	}
	for _, tc := range cases {
		row, ok := parseInvoiceLine(tc.line)
		if ok != tc.ok {
			t.Fatalf("%q: ok=%v", tc.line, ok)
		}
		if !ok {
			continue
		}
		if row.Code != tc.code || row.Size != tc.size || row.Quantity != tc.qty {
			t.Fatalf("%q: %+v", tc.line, row)
		}
	}
}
