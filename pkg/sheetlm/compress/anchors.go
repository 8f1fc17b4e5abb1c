// Package compress implements the SheetLM compression core: structural
// anchor detection, lossless content inversion, and format-aware region
// aggregation.
package compress

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/models"
)

// AnchorParams holds the tunables for structural anchor detection.
type AnchorParams struct {
	// K is the neighborhood distance around each anchor. Must be >= 0.
	K int
	// SparsityCutoff discards candidate rectangles whose empty-cell
	// fraction exceeds it.
	SparsityCutoff float64
	// IoUThreshold is the overlap above which non-maximum suppression
	// keeps only the higher-scored candidate.
	IoUThreshold float64
}

// DefaultAnchorParams returns the default detection parameters.
func DefaultAnchorParams() AnchorParams {
	return AnchorParams{
		K:              2,
		SparsityCutoff: 0.9,
		IoUThreshold:   0.8,
	}
}

// candidate is a rectangular table candidate, 1-based inclusive bounds.
type candidate struct {
	r1, c1, r2, c2 int
}

func (b candidate) area() int {
	return (b.r2 - b.r1 + 1) * (b.c2 - b.c1 + 1)
}

// FindAnchors detects the rows and columns where the grid's shape changes
// and expands them by the ±K neighborhood. The result is sorted,
// duplicate-free, and fully within grid bounds. Identical inputs always
// produce identical output.
func FindAnchors(g *models.Grid, p AnchorParams) models.AnchorSet {
	if g.Len() == 0 {
		return models.AnchorSet{Rows: []int{}, Cols: []int{}}
	}

	rowBounds, colBounds := boundaryCandidates(g)
	filled := newFilledCounts(g)

	var cands []candidate
	for i := 0; i < len(rowBounds); i++ {
		for j := i + 1; j < len(rowBounds); j++ {
			for k := 0; k < len(colBounds); k++ {
				for l := k + 1; l < len(colBounds); l++ {
					c := candidate{rowBounds[i], colBounds[k], rowBounds[j], colBounds[l]}
					if keepCandidate(c, filled, p.SparsityCutoff) {
						cands = append(cands, c)
					}
				}
			}
		}
	}

	cands = suppressOverlaps(cands, filled, p.IoUThreshold)

	if len(cands) == 0 {
		// No boundary structure detected: treat the occupied bounding box
		// as the single candidate.
		if bbox, ok := occupiedBBox(g); ok {
			cands = []candidate{bbox}
		}
	}

	rowSet := make(map[int]struct{})
	colSet := make(map[int]struct{})
	for _, c := range cands {
		rowSet[c.r1] = struct{}{}
		rowSet[c.r2] = struct{}{}
		colSet[c.c1] = struct{}{}
		colSet[c.c2] = struct{}{}
	}

	return models.AnchorSet{
		Rows: expandNeighborhood(rowSet, p.K, g.NRows),
		Cols: expandNeighborhood(colSet, p.K, g.NCols),
	}
}

// boundaryCandidates returns the row and column indices at which the
// per-axis cell signature changes, plus the edges of merged regions.
func boundaryCandidates(g *models.Grid) (rows, cols []int) {
	rowSigs := make([]string, g.NRows+1)
	for r := 1; r <= g.NRows; r++ {
		rowSigs[r] = axisSignature(g, r, true)
	}
	colSigs := make([]string, g.NCols+1)
	for c := 1; c <= g.NCols; c++ {
		colSigs[c] = axisSignature(g, c, false)
	}

	rowSet := make(map[int]struct{})
	for r := 1; r < g.NRows; r++ {
		if rowSigs[r] != rowSigs[r+1] {
			rowSet[r] = struct{}{}
			rowSet[r+1] = struct{}{}
		}
	}
	colSet := make(map[int]struct{})
	for c := 1; c < g.NCols; c++ {
		if colSigs[c] != colSigs[c+1] {
			colSet[c] = struct{}{}
			colSet[c+1] = struct{}{}
		}
	}
	for _, m := range g.Merged {
		rowSet[m.R1] = struct{}{}
		rowSet[m.R2] = struct{}{}
		colSet[m.C1] = struct{}{}
		colSet[m.C2] = struct{}{}
	}

	return sortedKeys(rowSet), sortedKeys(colSet)
}

// axisSignature builds a comparable signature of one row (byRow) or one
// column from each cell's emptiness, semantic type, style key, and
// merged-region membership.
func axisSignature(g *models.Grid, idx int, byRow bool) string {
	var sb strings.Builder
	n := g.NCols
	if !byRow {
		n = g.NRows
	}
	for i := 1; i <= n; i++ {
		r, c := idx, i
		if !byRow {
			r, c = i, idx
		}
		cell := g.Cell(r, c)
		fmt.Fprintf(&sb, "%t\x1f%s\x1f%s\x1f%t\x1e",
			cell.IsEmpty(), cell.Type, cell.StyleKey, g.InMerged(r, c))
	}
	return sb.String()
}

// filledCounts is a 2-D prefix sum of non-empty cells, for O(1) fill
// counting per candidate rectangle.
type filledCounts struct {
	sums  [][]int
	nRows int
	nCols int
}

func newFilledCounts(g *models.Grid) *filledCounts {
	f := &filledCounts{nRows: g.NRows, nCols: g.NCols}
	f.sums = make([][]int, g.NRows+1)
	f.sums[0] = make([]int, g.NCols+1)
	for r := 1; r <= g.NRows; r++ {
		f.sums[r] = make([]int, g.NCols+1)
		for c := 1; c <= g.NCols; c++ {
			filled := 0
			if !g.Cell(r, c).IsEmpty() {
				filled = 1
			}
			f.sums[r][c] = filled + f.sums[r-1][c] + f.sums[r][c-1] - f.sums[r-1][c-1]
		}
	}
	return f
}

// count returns the number of non-empty cells inside the candidate.
func (f *filledCounts) count(b candidate) int {
	return f.sums[b.r2][b.c2] - f.sums[b.r1-1][b.c2] - f.sums[b.r2][b.c1-1] + f.sums[b.r1-1][b.c1-1]
}

// keepCandidate applies the minimum-size and sparsity filters.
func keepCandidate(b candidate, filled *filledCounts, sparsityCutoff float64) bool {
	if b.r2-b.r1 < 1 || b.c2-b.c1 < 1 {
		return false
	}
	emptyFrac := 1 - float64(filled.count(b))/float64(b.area())
	return emptyFrac <= sparsityCutoff
}

// suppressOverlaps runs IoU non-maximum suppression: candidates are ranked
// by filled-cell count (ties broken by smaller top-left, then bottom-right)
// and any candidate overlapping a kept one above the threshold is dropped.
func suppressOverlaps(cands []candidate, filled *filledCounts, iouThreshold float64) []candidate {
	if len(cands) == 0 {
		return nil
	}

	sorted := make([]candidate, len(cands))
	copy(sorted, cands)
	sort.Slice(sorted, func(i, j int) bool {
		si, sj := filled.count(sorted[i]), filled.count(sorted[j])
		if si != sj {
			return si > sj
		}
		a, b := sorted[i], sorted[j]
		if a.r1 != b.r1 {
			return a.r1 < b.r1
		}
		if a.c1 != b.c1 {
			return a.c1 < b.c1
		}
		if a.r2 != b.r2 {
			return a.r2 < b.r2
		}
		return a.c2 < b.c2
	})

	var kept []candidate
	for _, c := range sorted {
		suppressed := false
		for _, k := range kept {
			if iou(c, k) > iouThreshold {
				suppressed = true
				break
			}
		}
		if !suppressed {
			kept = append(kept, c)
		}
	}
	return kept
}

// iou computes intersection-over-union of two candidate rectangles.
func iou(a, b candidate) float64 {
	ir1 := max(a.r1, b.r1)
	ic1 := max(a.c1, b.c1)
	ir2 := min(a.r2, b.r2)
	ic2 := min(a.c2, b.c2)

	interArea := max(0, ir2-ir1+1) * max(0, ic2-ic1+1)
	unionArea := a.area() + b.area() - interArea
	if unionArea <= 0 {
		return 0
	}
	return float64(interArea) / float64(unionArea)
}

// occupiedBBox returns the bounding box of all non-empty cells.
func occupiedBBox(g *models.Grid) (candidate, bool) {
	cells := g.NonEmpty()
	if len(cells) == 0 {
		return candidate{}, false
	}
	b := candidate{r1: cells[0].Row, c1: cells[0].Col, r2: cells[0].Row, c2: cells[0].Col}
	for _, cell := range cells[1:] {
		b.r1 = min(b.r1, cell.Row)
		b.c1 = min(b.c1, cell.Col)
		b.r2 = max(b.r2, cell.Row)
		b.c2 = max(b.c2, cell.Col)
	}
	return b, true
}

// expandNeighborhood unions [a-k, a+k] around every anchor, clamped to
// [1, maxIdx], and returns the sorted distinct result.
func expandNeighborhood(anchors map[int]struct{}, k, maxIdx int) []int {
	expanded := make(map[int]struct{})
	for a := range anchors {
		lo := max(1, a-k)
		hi := min(maxIdx, a+k)
		for i := lo; i <= hi; i++ {
			expanded[i] = struct{}{}
		}
	}
	return sortedKeys(expanded)
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
