package compress

import (
	"sort"

	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/models"
)

// pos is a 1-based cell position.
type pos struct {
	r, c int
}

// BuildIndex produces the inverted index: a mapping from distinct cell
// content to the minimal set of address ranges covering every occurrence.
// rows and cols restrict the scan to the retained view; pass nil for the
// full axis. Empty cells are never represented, and no returned range
// covers a position that was empty or held different content.
func BuildIndex(g *models.Grid, rows, cols []int) map[string][]models.Range {
	if rows == nil {
		rows = fullAxis(g.NRows)
	}
	if cols == nil {
		cols = fullAxis(g.NCols)
	}

	byValue := make(map[string][]pos)
	for _, r := range rows {
		for _, c := range cols {
			cell := g.Cell(r, c)
			if cell.IsEmpty() {
				continue
			}
			byValue[cell.Value] = append(byValue[cell.Value], pos{r, c})
		}
	}

	index := make(map[string][]models.Range, len(byValue))
	for value, positions := range byValue {
		index[value] = coverRanges(positions)
	}
	return index
}

// coverRanges merges cell positions into axis-aligned ranges that exactly
// cover them: scanning row-major, each uncovered position grows a maximal
// horizontal run, which is then extended downward while complete rows of
// the same span remain available. Every input position ends up in exactly
// one range and no range covers a position outside the input.
func coverRanges(positions []pos) []models.Range {
	present := make(map[pos]struct{}, len(positions))
	for _, p := range positions {
		present[p] = struct{}{}
	}

	sorted := make([]pos, len(positions))
	copy(sorted, positions)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].r != sorted[j].r {
			return sorted[i].r < sorted[j].r
		}
		return sorted[i].c < sorted[j].c
	})

	covered := make(map[pos]struct{}, len(positions))
	var out []models.Range

	for _, p := range sorted {
		if _, done := covered[p]; done {
			continue
		}

		width := 1
		for {
			next := pos{p.r, p.c + width}
			if _, ok := present[next]; !ok {
				break
			}
			if _, done := covered[next]; done {
				break
			}
			width++
		}

		height := 1
		for {
			complete := true
			for w := 0; w < width; w++ {
				next := pos{p.r + height, p.c + w}
				if _, ok := present[next]; !ok {
					complete = false
					break
				}
				if _, done := covered[next]; done {
					complete = false
					break
				}
			}
			if !complete {
				break
			}
			height++
		}

		out = append(out, models.Range{R1: p.r, C1: p.c, R2: p.r + height - 1, C2: p.c + width - 1})
		for dr := 0; dr < height; dr++ {
			for dw := 0; dw < width; dw++ {
				covered[pos{p.r + dr, p.c + dw}] = struct{}{}
			}
		}
	}
	return out
}

func fullAxis(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
