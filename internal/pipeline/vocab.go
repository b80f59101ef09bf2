package pipeline

import (
	"fmt"
	"os"

	"babette/internal"
	"babette/internal/reader"
)

// LoadVocabulary reads the public category list exported from the shop
// backend: a semicolon CSV of id;name with a header row.
func LoadVocabulary(path string) ([]internal.CategoryRef, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rows, err := reader.Read(raw, reader.Semicolon())
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("category vocabulary %s has no data rows", path)
	}

	out := make([]internal.CategoryRef, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 2 || row[0] == "" || row[1] == "" {
			continue
		}
		out = append(out, internal.CategoryRef{ID: row[0], Name: row[1]})
	}
	return out, nil
}
