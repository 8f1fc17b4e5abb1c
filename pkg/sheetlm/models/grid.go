package models

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidGrid indicates inconsistent grid dimensions or out-of-bounds
// content.
var ErrInvalidGrid = errors.New("invalid grid")

// Cell is an immutable per-position record. Row and Col are 1-based.
type Cell struct {
	// Value is the cell's textual content ("" for an empty cell).
	Value string
	// Type is the inferred semantic type.
	Type SemanticType
	// NumFmt is the raw number format string (e.g. "0.00%").
	NumFmt string
	// StyleKey is an opaque signature of border/fill/font styling,
	// supplied by the loader. Equal keys mean visually identical styling.
	StyleKey string
	// Row is the 1-based row index.
	Row int
	// Col is the 1-based column index.
	Col int
}

// IsEmpty reports whether the cell holds no content.
func (c Cell) IsEmpty() bool {
	return c.Value == ""
}

// MergedRegion is a rectangular span of cells sharing one anchor value.
// Bounds are 1-based and inclusive.
type MergedRegion struct {
	R1, C1, R2, C2 int
}

// Grid is a sparse container of cells for one sheet. It is populated once
// via Set and treated as read-only by the compression pipeline.
type Grid struct {
	// NRows is the number of rows (1-based indices run 1..NRows).
	NRows int
	// NCols is the number of columns (1-based indices run 1..NCols).
	NCols int
	// Merged lists the sheet's merged regions.
	Merged []MergedRegion

	cells map[coord]Cell
}

type coord struct{ r, c int }

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(nRows, nCols int) *Grid {
	return &Grid{
		NRows: nRows,
		NCols: nCols,
		cells: make(map[coord]Cell),
	}
}

// Set stores a cell at (r, c) during grid construction. Empty values are
// not stored; positions without a stored cell read back as empty.
func (g *Grid) Set(r, c int, cell Cell) {
	if cell.Value == "" {
		return
	}
	cell.Row, cell.Col = r, c
	if cell.Type == "" {
		cell.Type = TypeText
	}
	g.cells[coord{r, c}] = cell
}

// Cell returns the cell at (r, c). Positions never set read back as an
// empty cell with TypeEmpty.
func (g *Grid) Cell(r, c int) Cell {
	if cell, ok := g.cells[coord{r, c}]; ok {
		return cell
	}
	return Cell{Type: TypeEmpty, Row: r, Col: c}
}

// NonEmpty returns all stored cells in row-major order.
func (g *Grid) NonEmpty() []Cell {
	out := make([]Cell, 0, len(g.cells))
	for _, cell := range g.cells {
		out = append(out, cell)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Len returns the number of non-empty cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// InMerged reports whether (r, c) lies inside any merged region.
func (g *Grid) InMerged(r, c int) bool {
	for _, m := range g.Merged {
		if r >= m.R1 && r <= m.R2 && c >= m.C1 && c <= m.C2 {
			return true
		}
	}
	return false
}

// Validate checks dimensional consistency. It returns an error wrapping
// ErrInvalidGrid when dimensions are negative, a cell lies outside the
// declared bounds, or a merged region is ragged or out of bounds.
func (g *Grid) Validate() error {
	if g.NRows < 0 || g.NCols < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidGrid, g.NRows, g.NCols)
	}
	for pos := range g.cells {
		if pos.r < 1 || pos.r > g.NRows || pos.c < 1 || pos.c > g.NCols {
			return fmt.Errorf("%w: cell (%d,%d) outside %dx%d grid", ErrInvalidGrid, pos.r, pos.c, g.NRows, g.NCols)
		}
	}
	for _, m := range g.Merged {
		if m.R1 > m.R2 || m.C1 > m.C2 {
			return fmt.Errorf("%w: ragged merged region %+v", ErrInvalidGrid, m)
		}
		if m.R1 < 1 || m.C1 < 1 || m.R2 > g.NRows || m.C2 > g.NCols {
			return fmt.Errorf("%w: merged region %+v outside %dx%d grid", ErrInvalidGrid, m, g.NRows, g.NCols)
		}
	}
	return nil
}
