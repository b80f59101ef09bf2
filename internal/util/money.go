package util

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// DecimalConvention declares how a vendor writes amounts. Comma vendors write
// "1.234,56", dot vendors "1,234.56". Auto guesses from the token itself.
type DecimalConvention int

const (
	DecimalAuto DecimalConvention = iota
	DecimalComma
	DecimalDot
)

var (
	reCurrency     = regexp.MustCompile(`(?i)(€|eur\.?|euro)`)
	reThousandsDot = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+(?:,\d+)?$`)
	reThousandsCom = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+(?:\.\d+)?$`)
)

// ParseMoney turns a vendor amount string into a decimal. Currency symbols,
// spaces and NBSPs are stripped first; thousands separators are removed
// before the decimal separator is converted, so "1.234,56" never becomes
// 1234.56 by a naive replace hitting the wrong separator.
func ParseMoney(input string, conv DecimalConvention) (decimal.Decimal, error) {
	s := strings.ReplaceAll(input, " ", " ")
	s = reCurrency.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return decimal.Zero, fmt.Errorf("empty amount %q", input)
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	switch conv {
	case DecimalComma:
		s = stripGroupSeparators(s, '.')
		s = strings.ReplaceAll(s, ",", ".")
	case DecimalDot:
		s = stripGroupSeparators(s, ',')
	default:
		s = autoNormalize(s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", input, err)
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// ParseMoneyPtr is ParseMoney for optional columns: empty input and garbage
// both yield nil instead of an error.
func ParseMoneyPtr(input string, conv DecimalConvention) *decimal.Decimal {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	d, err := ParseMoney(input, conv)
	if err != nil {
		return nil
	}
	return &d
}

func stripGroupSeparators(s string, sep rune) string {
	return strings.ReplaceAll(s, string(sep), "")
}

func autoNormalize(s string) string {
	switch {
	case reThousandsDot.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
		return strings.ReplaceAll(s, ",", ".")
	case reThousandsCom.MatchString(s):
		return strings.ReplaceAll(s, ",", "")
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		// Both present without a grouped pattern: last separator wins as the
		// decimal point.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			return strings.ReplaceAll(s, ",", ".")
		}
		return strings.ReplaceAll(s, ",", "")
	case strings.Contains(s, ","):
		return strings.ReplaceAll(s, ",", ".")
	default:
		return s
	}
}

// ParseQuantity accepts "12", "12,0", "12.00" and returns a non-negative int.
func ParseQuantity(input string) (int, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, false
	}
	d, err := ParseMoney(s, DecimalAuto)
	if err != nil {
		return 0, false
	}
	if d.IsNegative() {
		return 0, false
	}
	return int(d.IntPart()), true
}
