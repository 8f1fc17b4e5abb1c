package models

// AnchorSet holds the structural anchor rows and columns of one sheet.
// Both slices are sorted ascending and duplicate-free; every element lies
// within the grid bounds.
type AnchorSet struct {
	// Rows are the 1-based anchor row indices.
	Rows []int `json:"rows"`
	// Cols are the 1-based anchor column indices.
	Cols []int `json:"columns"`
}

// StructuralAnchors is the serialized form of an AnchorSet: rows stay
// numeric, columns are rendered as letters.
type StructuralAnchors struct {
	// Rows are the 1-based anchor row indices.
	Rows []int `json:"rows"`
	// Columns are the anchor columns as letters (A, B, ...).
	Columns []string `json:"columns"`
}

// SheetEncoding is the compressed representation of one sheet.
type SheetEncoding struct {
	// StructuralAnchors marks rows/columns where the sheet's shape changes.
	StructuralAnchors StructuralAnchors `json:"structural_anchors"`
	// Cells maps distinct cell content to its covering address ranges.
	Cells map[string][]string `json:"cells"`
	// Formats maps a format key to the address ranges sharing it.
	Formats map[string][]string `json:"formats"`
	// NumericRanges maps a format key to contiguous numeric run ranges.
	NumericRanges map[string][]string `json:"numeric_ranges"`
}

// SheetMetrics holds per-sheet token accounting. Ratio pointers are nil
// when the stage denominator was zero (undefined, not an error).
type SheetMetrics struct {
	// OriginalTokens estimates the raw grid's serialized size.
	OriginalTokens int `json:"original_tokens"`
	// AfterAnchorTokens estimates the anchor-retained view's size.
	AfterAnchorTokens int `json:"after_anchor_tokens"`
	// AfterIndexTokens estimates the inverted index's size.
	AfterIndexTokens int `json:"after_inverted_index_tokens"`
	// AfterFormatTokens estimates the format aggregation's size.
	AfterFormatTokens int `json:"after_format_tokens"`
	// FinalTokens estimates the assembled encoding's size.
	FinalTokens int `json:"final_tokens"`

	AnchorRatio  *float64 `json:"anchor_ratio"`
	IndexRatio   *float64 `json:"inverted_index_ratio"`
	FormatRatio  *float64 `json:"format_ratio"`
	OverallRatio *float64 `json:"overall_ratio"`
}

// Metrics aggregates token accounting across sheets.
type Metrics struct {
	// Sheets maps sheet name to its metrics.
	Sheets map[string]SheetMetrics `json:"sheets"`
	// Overall sums the per-sheet counts and derives workbook-level ratios.
	Overall SheetMetrics `json:"overall"`
}

// WorkbookEncoding is the top-level output for one workbook.
type WorkbookEncoding struct {
	// FileName is the workbook file name (no path).
	FileName string `json:"file_name"`
	// Sheets maps sheet name to its compressed encoding.
	Sheets map[string]SheetEncoding `json:"sheets"`
	// CompressionMetrics reports the token accounting for every stage.
	CompressionMetrics Metrics `json:"compression_metrics"`
}
