package reader

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX flattens every sheet of a workbook into one row sequence, sheet
// order preserved. Empty rows are dropped the same way Read drops them.
func ReadXLSX(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := [][]string{}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		for _, row := range rows {
			trimmed := make([]string, len(row))
			for i, cell := range row {
				trimmed[i] = normalizeCell(cell)
			}
			if rowEmpty(trimmed) {
				continue
			}
			out = append(out, trimmed)
		}
	}
	return out, nil
}
