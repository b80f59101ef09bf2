// Package reader turns raw vendor files into ordered row sequences. It knows
// nothing about vendors; dialects are declared by the caller.
package reader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type Encoding int

const (
	EncodingUTF8 Encoding = iota
	EncodingLatin1
	EncodingWindows1252
)

// Dialect declares how one vendor delimits and quotes its rows. Quoted fields
// may contain the delimiter and may span physical lines; "" inside a quoted
// field decodes to a literal quote.
type Dialect struct {
	Delimiter  rune
	LazyQuotes bool
	Encoding   Encoding
}

func Semicolon() Dialect { return Dialect{Delimiter: ';', LazyQuotes: true} }
func Comma() Dialect     { return Dialect{Delimiter: ',', LazyQuotes: true} }

// Read parses raw bytes into logical rows. Entirely empty rows are dropped;
// ragged row lengths are allowed. Returns the rows in file order.
func Read(raw []byte, dialect Dialect) ([][]string, error) {
	decoded, err := decode(raw, dialect.Encoding)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(decoded))
	r.Comma = dialect.Delimiter
	r.LazyQuotes = dialect.LazyQuotes
	r.FieldsPerRecord = -1

	out := [][]string{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read delimited row: %w", err)
		}
		if rowEmpty(record) {
			continue
		}
		for i := range record {
			record[i] = strings.TrimSpace(strings.ReplaceAll(record[i], " ", " "))
		}
		out = append(out, record)
	}
	return out, nil
}

func decode(raw []byte, enc Encoding) ([]byte, error) {
	// Strip a UTF-8 BOM; several vendors export one.
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})

	switch enc {
	case EncodingLatin1:
		return transformBytes(raw, charmap.ISO8859_1)
	case EncodingWindows1252:
		return transformBytes(raw, charmap.Windows1252)
	default:
		return raw, nil
	}
}

func transformBytes(raw []byte, cm *charmap.Charmap) ([]byte, error) {
	decoded, _, err := transform.Bytes(cm.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("decode charset: %w", err)
	}
	return decoded, nil
}

func rowEmpty(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
