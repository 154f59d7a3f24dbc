package schematic

import (
	"strconv"
	"strings"

	"github.com/kiosk404/vibecraft/internal/vibecraft/verrors"
)

// decodeRowString expands the compact row-string grammar into a
// row-major 2D array of palette symbols. Rows are separated by "|";
// within a row, tokens are separated by spaces. A bare token places one
// block; "S*N" repeats symbol S N times horizontally; a trailing "~N"
// on the row repeats the whole preceding row N times vertically, going
// south.
func decodeRowString(s string) ([][]string, error) {
	rawRows := strings.Split(s, "|")
	grid := make([][]string, 0, len(rawRows))
	width := -1

	for _, raw := range rawRows {
		symbols, vertRepeat, err := decodeRow(raw)
		if err != nil {
			return nil, err
		}
		if width == -1 {
			width = len(symbols)
		} else if len(symbols) != width {
			return nil, verrors.SchematicMalformed("grid shape inconsistent: compact rows have differing lengths")
		}
		for i := 0; i < vertRepeat; i++ {
			row := make([]string, len(symbols))
			copy(row, symbols)
			grid = append(grid, row)
		}
	}

	return grid, nil
}

func decodeRow(raw string) ([]string, int, error) {
	row := strings.TrimSpace(raw)
	vertRepeat := 1

	if idx := strings.LastIndex(row, "~"); idx != -1 {
		if n, err := strconv.Atoi(strings.TrimSpace(row[idx+1:])); err == nil {
			vertRepeat = n
			row = strings.TrimSpace(row[:idx])
		}
	}
	if vertRepeat < 1 {
		return nil, 0, verrors.SchematicMalformed("row vertical repeat count must be >= 1")
	}

	var symbols []string
	for _, tok := range strings.Fields(row) {
		sym, n, hasRepeat := splitHorizontalRepeat(tok)
		if hasRepeat {
			if n < 0 {
				return nil, 0, verrors.SchematicMalformed("row horizontal repeat count must be >= 0")
			}
			for i := 0; i < n; i++ {
				symbols = append(symbols, sym)
			}
			continue
		}
		symbols = append(symbols, tok)
	}

	return symbols, vertRepeat, nil
}

func splitHorizontalRepeat(tok string) (symbol string, count int, ok bool) {
	idx := strings.Index(tok, "*")
	if idx == -1 {
		return "", 0, false
	}
	n, err := strconv.Atoi(tok[idx+1:])
	if err != nil {
		return "", 0, false
	}
	return tok[:idx], n, true
}
