package util

import "testing"

func TestParseMoney(t *testing.T) {
	cases := []struct {
		name  string
		input string
		conv  DecimalConvention
		want  string
	}{
		{name: "plain dot", input: "12.50", conv: DecimalAuto, want: "12.5"},
		{name: "plain comma", input: "12,50", conv: DecimalAuto, want: "12.5"},
		{name: "euro prefix", input: "€ 12,50", conv: DecimalAuto, want: "12.5"},
		{name: "euro suffix", input: "12.50 EUR", conv: DecimalAuto, want: "12.5"},
		{name: "thousands dot decimal comma", input: "1.234,56", conv: DecimalAuto, want: "1234.56"},
		{name: "thousands comma decimal dot", input: "1,234.56", conv: DecimalAuto, want: "1234.56"},
		{name: "comma convention grouped", input: "1.234,56", conv: DecimalComma, want: "1234.56"},
		{name: "dot convention grouped", input: "1,234.56", conv: DecimalDot, want: "1234.56"},
		{name: "negative", input: "-3,20", conv: DecimalComma, want: "-3.2"},
		{name: "nbsp and spaces", input: "  8,95 ", conv: DecimalAuto, want: "8.95"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseMoney(tc.input, tc.conv)
			if err != nil {
				t.Fatal(err)
			}
			if got.String() != tc.want {
				t.Fatalf("got %s want %s", got, tc.want)
			}
		})
	}
}

func TestParseMoneyEmpty(t *testing.T) {
	if _, err := ParseMoney("  ", DecimalAuto); err == nil {
		t.Fatal("expected error for empty input")
	}
	if p := ParseMoneyPtr("", DecimalAuto); p != nil {
		t.Fatalf("expected nil, got %v", p)
	}
	if p := ParseMoneyPtr("n/a", DecimalAuto); p != nil {
		t.Fatalf("expected nil for garbage, got %v", p)
	}
}

func TestParseQuantity(t *testing.T) {
	if q, ok := ParseQuantity("12,00"); !ok || q != 12 {
		t.Fatalf("got %d ok=%v", q, ok)
	}
	if _, ok := ParseQuantity("-3"); ok {
		t.Fatal("negative quantity accepted")
	}
	if _, ok := ParseQuantity(""); ok {
		t.Fatal("empty quantity accepted")
	}
}

func TestNormalizeKey(t *testing.T) {
	if NormalizeKey(" Bleu Ciel ") != NormalizeKey("BLEU-CIEL") {
		t.Fatal("keys differ")
	}
	if NormalizeKey("ref 1001/A") != "REF1001A" {
		t.Fatalf("got %q", NormalizeKey("ref 1001/A"))
	}
}

func TestSentenceCase(t *testing.T) {
	if got := SentenceCase("  JONGENS T-SHIRT  STREEP"); got != "Jongens t-shirt streep" {
		t.Fatalf("got %q", got)
	}
	if got := TitleCase("bleu ciel"); got != "Bleu Ciel" {
		t.Fatalf("got %q", got)
	}
}
