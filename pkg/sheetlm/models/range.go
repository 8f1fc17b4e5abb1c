package models

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Range is a rectangular span of cells. Bounds are 1-based and inclusive;
// R1 <= R2 and C1 <= C2 always hold. A single cell has R1 == R2 and
// C1 == C2.
type Range struct {
	R1, C1, R2, C2 int
}

// SingleCell reports whether the range covers exactly one cell.
func (r Range) SingleCell() bool {
	return r.R1 == r.R2 && r.C1 == r.C2
}

// Area returns the number of cells covered.
func (r Range) Area() int {
	return (r.R2 - r.R1 + 1) * (r.C2 - r.C1 + 1)
}

// Contains reports whether (row, col) lies inside the range.
func (r Range) Contains(row, col int) bool {
	return row >= r.R1 && row <= r.R2 && col >= r.C1 && col <= r.C2
}

// String renders the range in A1 notation: "A1:C3", or the plain cell form
// "B2" for a single cell.
func (r Range) String() string {
	start, _ := excelize.CoordinatesToCellName(r.C1, r.R1)
	if r.SingleCell() {
		return start
	}
	end, _ := excelize.CoordinatesToCellName(r.C2, r.R2)
	return fmt.Sprintf("%s:%s", start, end)
}

// FormatKey identifies a (semantic type, number format) grouping used by
// the format aggregator.
type FormatKey struct {
	Type   SemanticType
	NumFmt string
}

// String renders the key as "type|numfmt", a stable map key for
// serialization.
func (k FormatKey) String() string {
	return fmt.Sprintf("%s|%s", k.Type, k.NumFmt)
}
