package vendors

import (
	"strings"

	"babette/internal"
	"babette/internal/util"
)

// detectScanLimit mirrors the header scan: signatures must surface within
// the first rows of the file.
const detectScanLimit = 50

// DetectSpec routes an already-read row sequence to the right file shape of
// a vendor. Several vendors share one upload entry point for two distinct
// shapes (order vs order confirmation); the distinguishing column tokens
// decide. Specs are tried most-specific first, so a confirmation signature
// that is a superset of the order signature is checked before the order one.
func DetectSpec(vendor *Vendor, rows [][]string) (*Spec, error) {
	for _, spec := range specsBySignatureLength(vendor) {
		if signatureMatches(spec, rows) {
			return spec, nil
		}
	}

	return nil, &internal.UnrecognizedFormatError{
		Vendor: vendor.Name,
		Hint:   "no known column signature in the first rows",
	}
}

// Detect is DetectSpec for raw bytes. Each spec reads the file with its own
// dialect before the signature check; a vendor whose TARIF file uses another
// delimiter than its order file still routes correctly.
func Detect(vendor *Vendor, raw []byte, filename string) (*Spec, [][]string, error) {
	for _, spec := range specsBySignatureLength(vendor) {
		rows, err := readRows(spec, raw, filename)
		if err != nil || len(rows) == 0 {
			continue
		}
		if signatureMatches(spec, rows) {
			return spec, rows, nil
		}
	}

	return nil, nil, &internal.UnrecognizedFormatError{
		Vendor: vendor.Name,
		Hint:   "no known column signature in the first rows",
	}
}

// specsBySignatureLength orders longer signatures first; a shape with more
// distinguishing tokens must not lose to a subset shape.
func specsBySignatureLength(vendor *Vendor) []*Spec {
	specs := make([]*Spec, len(vendor.Specs))
	copy(specs, vendor.Specs)
	for i := 1; i < len(specs); i++ {
		for j := i; j > 0 && len(specs[j].Signature) > len(specs[j-1].Signature); j-- {
			specs[j], specs[j-1] = specs[j-1], specs[j]
		}
	}
	return specs
}

func signatureMatches(spec *Spec, rows [][]string) bool {
	if len(spec.Signature) == 0 {
		return true
	}

	limit := len(rows)
	if limit > detectScanLimit {
		limit = detectScanLimit
	}

	for i := 0; i < limit; i++ {
		if rowCarriesTokens(rows[i], spec.Signature) {
			return true
		}
	}
	return false
}

func rowCarriesTokens(row []string, tokens []string) bool {
	cells := make([]string, len(row))
	for i, c := range row {
		cells[i] = strings.ToLower(util.NormalizeSpaces(c))
	}

	for _, token := range tokens {
		want := strings.ToLower(token)
		found := false
		for _, c := range cells {
			if c == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
