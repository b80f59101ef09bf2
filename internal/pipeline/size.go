package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"babette/internal"
)

// SizeHint carries the vendor-declared pieces of the size dialect that cannot
// be guessed from the token alone.
type SizeHint struct {
	// BareNumberIsYears treats a plain 2..18 as an age in years.
	BareNumberIsYears bool
	// RangeLowerBound keeps the lower bound of a range instead of the upper.
	RangeLowerBound bool
	// RangeOverrides wins over the generic range rule; keys are compact
	// uppercase tokens ("11/12"), values final labels ("12 jaar").
	RangeOverrides map[string]string
	// DefaultAge replaces the Kids fallback for unrecognized tokens.
	DefaultAge internal.AgeGroup
}

var (
	reLetterSize = regexp.MustCompile(`^(XXS|XS|S|M|L|XL|XXL)$`)
	reMonths     = regexp.MustCompile(`^(\d{1,2})\s*(?:M|MND|MAAND)$`)
	reYears      = regexp.MustCompile(`^(\d{1,2})\s*(?:Y|J|JR|JAAR)$`)
	reRange      = regexp.MustCompile(`^(\d{1,2})\s*(M|Y)?\s*[/-]\s*(\d{1,2})\s*(M|Y)?$`)
	reBareNumber = regexp.MustCompile(`^\d{1,2}$`)
)

var unitSizeTokens = map[string]struct{}{"UNIT": {}, "U": {}, "TU": {}}

// IsUnitSize reports whether a raw token is a vendor "one size fits all"
// marker.
func IsUnitSize(raw string) bool {
	_, ok := unitSizeTokens[strings.ToUpper(strings.TrimSpace(raw))]
	return ok
}

// NormalizeSize rewrites a raw size token into its canonical display label
// and the product age group it implies. Total: any input, however malformed,
// yields a label and a valid age group. A bad size must never abort a file;
// the label stays user-correctable downstream.
func NormalizeSize(raw string, hint SizeHint) (string, internal.AgeGroup) {
	fallbackAge := hint.DefaultAge
	if fallbackAge == "" {
		fallbackAge = internal.AgeKids
	}

	token := strings.ToUpper(strings.TrimSpace(raw))
	if token == "" {
		return "", fallbackAge
	}

	if IsUnitSize(token) {
		return "TU", fallbackAge
	}

	if reLetterSize.MatchString(token) {
		return token, internal.AgeAdult
	}

	if m := reMonths.FindStringSubmatch(token); m != nil {
		return monthLabel(m[1]), internal.AgeBaby
	}

	if m := reYears.FindStringSubmatch(token); m != nil {
		return yearLabelAndAge(m[1])
	}

	if m := reRange.FindStringSubmatch(token); m != nil {
		if label, age, ok := normalizeRange(m, hint); ok {
			return label, age
		}
	}

	if hint.BareNumberIsYears && reBareNumber.MatchString(token) {
		if n, err := strconv.Atoi(token); err == nil && n >= 2 && n <= 18 {
			return yearLabelAndAge(token)
		}
	}

	// Unknown dialect: pass through unchanged so a human can fix it later.
	return strings.TrimSpace(raw), fallbackAge
}

func normalizeRange(m []string, hint SizeHint) (string, internal.AgeGroup, bool) {
	compact := m[1] + m[2] + "/" + m[3] + m[4]
	for _, key := range []string{compact, m[1] + "/" + m[3]} {
		if label, ok := hint.RangeOverrides[key]; ok {
			return label, ageForLabel(label, hint), true
		}
	}

	chosen, unit := m[3], m[4]
	if hint.RangeLowerBound {
		chosen, unit = m[1], m[2]
	}
	if unit == "" {
		unit = m[2] + m[4] // whichever bound carried one
	}

	switch unit {
	case "M":
		return monthLabel(chosen), internal.AgeBaby, true
	case "Y":
		label, age := yearLabelAndAge(chosen)
		return label, age, true
	default:
		if hint.BareNumberIsYears {
			label, age := yearLabelAndAge(chosen)
			return label, age, true
		}
		return "", "", false
	}
}

func monthLabel(n string) string {
	return fmt.Sprintf("%s maand", trimLeadingZeros(n))
}

func yearLabelAndAge(n string) (string, internal.AgeGroup) {
	trimmed := trimLeadingZeros(n)
	age := internal.AgeKids
	if v, err := strconv.Atoi(trimmed); err == nil && v >= 10 {
		age = internal.AgeTeen
	}
	return fmt.Sprintf("%s jaar", trimmed), age
}

func trimLeadingZeros(n string) string {
	trimmed := strings.TrimLeft(n, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

func ageForLabel(label string, hint SizeHint) internal.AgeGroup {
	l := strings.ToLower(label)
	if strings.Contains(l, "maand") {
		return internal.AgeBaby
	}
	if strings.Contains(l, "jaar") {
		if n, err := strconv.Atoi(strings.Fields(l)[0]); err == nil && n >= 10 {
			return internal.AgeTeen
		}
		return internal.AgeKids
	}
	if hint.DefaultAge != "" {
		return hint.DefaultAge
	}
	return internal.AgeKids
}

// ProductAge picks the product-level age group attribute from its variants:
// the first variant that normalizes to something other than the fallback
// decides, otherwise the fallback stands. Exactly one attribute per product.
func ProductAge(ages []internal.AgeGroup, hint SizeHint) internal.AgeGroup {
	fallback := hint.DefaultAge
	if fallback == "" {
		fallback = internal.AgeKids
	}
	best := fallback
	for _, a := range ages {
		if a == internal.AgeBaby || a == internal.AgeAdult {
			return a
		}
		if a == internal.AgeTeen {
			best = a
		}
	}
	return best
}
