package pipeline

import (
	"strings"

	"babette/internal"
	"babette/internal/util"
)

// SuggestBrands fills Product.SuggestedBrand when a known brand name occurs
// in the product name or the source filename. Detection only; the caller may
// override or clear the suggestion.
func SuggestBrands(products []*internal.Product, knownBrands []string, filename string) {
	if len(knownBrands) == 0 {
		return
	}
	fileKey := util.NormalizeKey(filename)

	for _, p := range products {
		if p.SuggestedBrand != "" {
			continue
		}
		nameKey := util.NormalizeKey(p.OriginalName)
		for _, brand := range knownBrands {
			brandKey := util.NormalizeKey(brand)
			if brandKey == "" {
				continue
			}
			if strings.Contains(nameKey, brandKey) || strings.Contains(fileKey, brandKey) {
				p.SuggestedBrand = brand
				break
			}
		}
	}
}
