package compress

import (
	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/models"
	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/semtype"
)

// set stores one cell, inferring its semantic type from value and format.
func set(g *models.Grid, r, c int, value, numFmt string) {
	st, _ := semtype.Detect(value, numFmt)
	g.Set(r, c, models.Cell{Value: value, Type: st, NumFmt: numFmt})
}

// buildGrid creates a grid from string rows with General formats. Empty
// strings leave the position empty.
func buildGrid(rows [][]string) *models.Grid {
	nCols := 0
	for _, row := range rows {
		if len(row) > nCols {
			nCols = len(row)
		}
	}
	g := models.NewGrid(len(rows), nCols)
	for i, row := range rows {
		for j, v := range row {
			if v != "" {
				set(g, i+1, j+1, v, "General")
			}
		}
	}
	return g
}

// coveredPositions expands all ranges of a rendered map into a position
// multiset keyed by (row, col).
func coveredPositions(m map[models.FormatKey][]models.Range) map[pos]int {
	out := make(map[pos]int)
	for _, ranges := range m {
		for _, rng := range ranges {
			for r := rng.R1; r <= rng.R2; r++ {
				for c := rng.C1; c <= rng.C2; c++ {
					out[pos{r, c}]++
				}
			}
		}
	}
	return out
}
