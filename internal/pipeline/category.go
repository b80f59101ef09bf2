package pipeline

import (
	"strings"

	"github.com/kljensen/snowball"

	"babette/internal"
	"babette/internal/util"
)

// categoryStems translates vendor category labels to Dutch keyword stems.
// Lookup is case-insensitive exact; unknown labels simply match nothing.
var categoryStems = map[string][]string{
	"SKIRTS":      {"rok"},
	"ROKJES":      {"rok"},
	"DRESSES":     {"jurk"},
	"JURKEN":      {"jurk"},
	"TROUSERS":    {"broek"},
	"PANTS":       {"broek"},
	"BROEKEN":     {"broek"},
	"SHORTS":      {"short", "broek"},
	"T-SHIRTS":    {"t-shirt", "shirt"},
	"TEES":        {"t-shirt", "shirt"},
	"SHIRTS":      {"shirt", "hemd"},
	"BLOUSES":     {"blouse"},
	"SWEATERS":    {"sweater", "trui"},
	"KNITWEAR":    {"trui", "gebreid"},
	"CARDIGANS":   {"cardigan", "vest"},
	"JACKETS":     {"jas", "vest"},
	"COATS":       {"jas", "mantel"},
	"BODYSUITS":   {"body", "romper"},
	"ROMPERS":     {"romper"},
	"PYJAMAS":     {"pyjama"},
	"NIGHTWEAR":   {"pyjama", "nacht"},
	"JUMPSUITS":   {"jumpsuit", "pak"},
	"LEGGINGS":    {"legging"},
	"SWIMWEAR":    {"zwem", "bikini"},
	"ACCESSORIES": {"accessoire", "muts", "sjaal"},
	"HATS":        {"muts", "hoed"},
	"BEANIES":     {"muts"},
	"SOCKS":       {"sok", "kous"},
	"TIGHTS":      {"maillot", "kous"},
}

var (
	babyKeywords  = []string{"baby"}
	kidsKeywords  = []string{"kinder", "kids", "jongens", "meisjes"}
	adultKeywords = []string{"dames", "heren", "women", "men"}
)

// MatchCategories maps a free-text vendor category plus the product age
// group to the matching public categories. Category assignment is an
// enrichment: an unknown label yields an empty set, never an error.
func MatchCategories(csvCategory string, age internal.AgeGroup, vocabulary []internal.CategoryRef) []internal.CategoryRef {
	stems, ok := categoryStems[strings.ToUpper(util.NormalizeSpaces(csvCategory))]
	if !ok {
		return nil
	}

	out := []internal.CategoryRef{}
	for _, candidate := range vocabulary {
		if !stemsMatch(candidate.Name, stems) {
			continue
		}
		if !ageAllows(candidate.Name, age) {
			continue
		}
		out = append(out, candidate)
	}
	return out
}

func stemsMatch(candidateName string, stems []string) bool {
	name := strings.ToLower(candidateName)
	tokens := strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '/' || r == ',' || r == '&'
	})

	for _, stem := range stems {
		stem = strings.ToLower(stem)
		if strings.Contains(name, stem) {
			return true
		}
		for _, token := range tokens {
			if stemDutch(token) == stemDutch(stem) {
				return true
			}
		}
	}
	return false
}

// stemDutch collapses plural and diminutive forms so "Rokken" still matches
// the stem "rok".
func stemDutch(word string) string {
	stemmed, err := snowball.Stem(word, "dutch", true)
	if err != nil {
		return strings.ToLower(word)
	}
	return stemmed
}

func ageAllows(candidateName string, age internal.AgeGroup) bool {
	name := strings.ToLower(candidateName)

	switch age {
	case internal.AgeBaby:
		return containsAny(name, babyKeywords) && !containsAny(name, adultKeywords)
	case internal.AgeKids, internal.AgeTeen:
		return containsAny(name, kidsKeywords) && !containsAny(name, adultKeywords)
	default:
		return true
	}
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
