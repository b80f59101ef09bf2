package pipeline

import (
	"fmt"
	"strings"

	"babette/internal"
)

// adultEUSizes maps letter sizes to the numeric European size shown next to
// them on adult products.
var adultEUSizes = map[string]int{
	"XXS": 32,
	"XS":  34,
	"S":   36,
	"M":   38,
	"L":   40,
	"XL":  42,
	"XXL": 44,
}

// PrepareForUpload is the last transformation before records leave the
// engine for the catalog API client: variants nothing was ordered of are
// dropped, unit-size variants collapse into one, and adult letter sizes get
// their European size appended ("S" -> "S - 36"). Running it twice changes
// nothing.
func PrepareForUpload(products []*internal.Product) {
	DropZeroQuantityVariants(products)
	for _, p := range products {
		CollapseUnitVariants(p)
		if p.AgeGroup == internal.AgeAdult {
			relabelAdultSizes(p)
		}
	}
}

func relabelAdultSizes(p *internal.Product) {
	for _, v := range p.Variants {
		letter := strings.ToUpper(strings.TrimSpace(v.Size))
		if eu, ok := adultEUSizes[letter]; ok {
			v.Size = fmt.Sprintf("%s - %d", letter, eu)
		}
	}
}
