package compress

import (
	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/models"
)

// Aggregation is the output of format-aware region aggregation. For any
// grid position, at most one of the two maps covers it: numeric runs are
// routed away from the general map so token estimates never double-count.
type Aggregation struct {
	// Formats maps a format key to the address ranges of every connected
	// region sharing that key.
	Formats map[models.FormatKey][]models.Range
	// NumericRanges maps a format key to ranges of contiguous numeric runs
	// at least MinRunLength long on one axis.
	NumericRanges map[models.FormatKey][]models.Range
}

// Aggregate discovers maximal connected regions of cells sharing one
// (semantic type, number format) key, using 4-connectivity over the full
// grid. Components are decomposed into exactly-covering rectangles.
// Numeric-typed components whose bounding extent reaches minRun on at
// least one axis are emitted as numeric ranges instead of general format
// regions.
func Aggregate(g *models.Grid, minRun int) Aggregation {
	agg := Aggregation{
		Formats:       make(map[models.FormatKey][]models.Range),
		NumericRanges: make(map[models.FormatKey][]models.Range),
	}
	if g.NRows <= 0 || g.NCols <= 0 {
		return agg
	}

	// Row-major visited bitmap; traversal uses an explicit stack so deep
	// components cannot exhaust the call stack.
	visited := make([]bool, g.NRows*g.NCols)
	idx := func(p pos) int { return (p.r-1)*g.NCols + (p.c - 1) }

	for r := 1; r <= g.NRows; r++ {
		for c := 1; c <= g.NCols; c++ {
			start := pos{r, c}
			if visited[idx(start)] {
				continue
			}
			cell := g.Cell(r, c)
			if cell.IsEmpty() {
				continue
			}

			key := models.FormatKey{Type: cell.Type, NumFmt: cell.NumFmt}
			component := collectComponent(g, start, key, visited, idx)

			ranges := coverRanges(component)
			if isNumericRun(key, component, minRun) {
				agg.NumericRanges[key] = append(agg.NumericRanges[key], ranges...)
			} else {
				agg.Formats[key] = append(agg.Formats[key], ranges...)
			}
		}
	}
	return agg
}

// collectComponent gathers the connected component of start among cells
// sharing key, marking members visited.
func collectComponent(g *models.Grid, start pos, key models.FormatKey, visited []bool, idx func(pos) int) []pos {
	var component []pos
	stack := []pos{start}
	visited[idx(start)] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		component = append(component, p)

		for _, n := range [4]pos{{p.r - 1, p.c}, {p.r + 1, p.c}, {p.r, p.c - 1}, {p.r, p.c + 1}} {
			if n.r < 1 || n.r > g.NRows || n.c < 1 || n.c > g.NCols {
				continue
			}
			if visited[idx(n)] {
				continue
			}
			cell := g.Cell(n.r, n.c)
			if cell.IsEmpty() || cell.Type != key.Type || cell.NumFmt != key.NumFmt {
				continue
			}
			visited[idx(n)] = true
			stack = append(stack, n)
		}
	}
	return component
}

// isNumericRun decides the routing policy: numeric semantic type and a
// bounding-box extent of at least minRun on one axis.
func isNumericRun(key models.FormatKey, component []pos, minRun int) bool {
	if !key.Type.IsNumeric() || len(component) == 0 {
		return false
	}
	minR, maxR := component[0].r, component[0].r
	minC, maxC := component[0].c, component[0].c
	for _, p := range component[1:] {
		minR = min(minR, p.r)
		maxR = max(maxR, p.r)
		minC = min(minC, p.c)
		maxC = max(maxC, p.c)
	}
	return maxR-minR+1 >= minRun || maxC-minC+1 >= minRun
}
