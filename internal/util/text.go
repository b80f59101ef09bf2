package util

import (
	"regexp"
	"strings"
)

var (
	reSpaces    = regexp.MustCompile(`\s+`)
	reNonAlnum  = regexp.MustCompile(`[^A-Z0-9]+`)
	reRefSuffix = regexp.MustCompile(`[\s/\\-]+$`)
)

func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// NormalizeKey folds a reference or color into a grouping/matching key:
// uppercase, no punctuation, no spaces. "Bleu Ciel " and "BLEU-CIEL" collide
// on purpose.
func NormalizeKey(input string) string {
	s := strings.ToUpper(strings.TrimSpace(input))
	s = reRefSuffix.ReplaceAllString(s, "")
	return reNonAlnum.ReplaceAllString(s, "")
}

// SentenceCase lowercases a shouted vendor name and capitalizes the first
// letter. Words that are all digits or short codes are left alone.
func SentenceCase(input string) string {
	s := NormalizeSpaces(input)
	if s == "" {
		return ""
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}

// TitleCase capitalizes each word; used for colors ("bleu ciel" -> "Bleu Ciel").
func TitleCase(input string) string {
	words := strings.Fields(strings.ToLower(NormalizeSpaces(input)))
	for i, w := range words {
		r := []rune(w)
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// DisplayName joins the non-empty parts with " - " after shaping each one.
func DisplayName(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = NormalizeSpaces(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, " - ")
}

func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
