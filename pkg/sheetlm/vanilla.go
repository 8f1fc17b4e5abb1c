package sheetlm

import (
	"errors"
	"os"
	"strings"

	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/loader"
)

// VanillaEncode produces the uncompressed markdown-like encoding: one line
// per row, cells rendered as "<ref>,<value>" and joined with "|". It keeps
// every position, empty or not, and exists as a baseline for the
// compressed encoding.
func VanillaEncode(path string) (map[string]string, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, ErrFileNotFound
	}

	sheets, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(sheets))
	for _, sheet := range sheets {
		g := sheet.Grid
		lines := make([]string, 0, g.NRows)
		for r := 1; r <= g.NRows; r++ {
			fields := make([]string, 0, g.NCols)
			for c := 1; c <= g.NCols; c++ {
				fields = append(fields, cellRef(r, c)+","+g.Cell(r, c).Value)
			}
			lines = append(lines, strings.Join(fields, "|"))
		}
		out[sheet.Name] = strings.Join(lines, "\n")
	}
	return out, nil
}
