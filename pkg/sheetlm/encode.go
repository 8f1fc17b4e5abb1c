package sheetlm

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/compress"
	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/loader"
	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/models"
)

// Encode compresses every sheet of an xlsx workbook. A failure in one
// sheet is logged and skipped; sibling sheets are still processed.
func Encode(path string, opts Options) (*models.WorkbookEncoding, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log := opts.logger()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, ErrFileNotFound
	}

	sheets, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	log.Infow("loaded workbook", "file", path, "sheets", len(sheets))

	wb := &models.WorkbookEncoding{
		FileName: filepath.Base(path),
		Sheets:   make(map[string]models.SheetEncoding),
		CompressionMetrics: models.Metrics{
			Sheets: make(map[string]models.SheetMetrics),
		},
	}
	var overall models.SheetMetrics

	for _, sheet := range sheets {
		if sheet.ClassificationWarnings > 0 {
			log.Warnw("cells fell back to text classification",
				"sheet", sheet.Name, "cells", sheet.ClassificationWarnings)
		}

		enc, m, err := EncodeGrid(sheet.Name, sheet.Grid, opts)
		if err != nil {
			log.Warnw("skipping sheet", "sheet", sheet.Name, "error", err)
			continue
		}

		wb.Sheets[sheet.Name] = *enc
		wb.CompressionMetrics.Sheets[sheet.Name] = *m
		overall.OriginalTokens += m.OriginalTokens
		overall.AfterAnchorTokens += m.AfterAnchorTokens
		overall.AfterIndexTokens += m.AfterIndexTokens
		overall.AfterFormatTokens += m.AfterFormatTokens
		overall.FinalTokens += m.FinalTokens
	}

	overall.AnchorRatio = compress.Ratio(overall.OriginalTokens, overall.AfterAnchorTokens)
	overall.IndexRatio = compress.Ratio(overall.OriginalTokens, overall.AfterIndexTokens)
	overall.FormatRatio = compress.Ratio(overall.OriginalTokens, overall.AfterFormatTokens)
	overall.OverallRatio = compress.Ratio(overall.OriginalTokens, overall.FinalTokens)
	wb.CompressionMetrics.Overall = overall

	return wb, nil
}

// EncodeGrid runs the full compression pipeline on one sheet's grid: anchor
// detection, anchor-retained inverted indexing, format aggregation over the
// full grid, and token accounting. It is a pure function of its inputs;
// sheets are independent and may be processed in parallel by the caller.
func EncodeGrid(name string, g *models.Grid, opts Options) (*models.SheetEncoding, *models.SheetMetrics, error) {
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, nil, NewSheetError(name, "load", err)
	}
	log := opts.logger()

	rawCells := make(map[string]string)
	for _, cell := range g.NonEmpty() {
		rawCells[cellRef(cell.Row, cell.Col)] = cell.Value
	}
	rawTokens := tokensOf(len(rawCells), rawCells)

	anchors := compress.FindAnchors(g, compress.AnchorParams{
		K:              opts.K,
		SparsityCutoff: opts.SparsityCutoff,
		IoUThreshold:   opts.IoUThreshold,
	})
	log.Infow("found structural anchors", "sheet", name,
		"rows", len(anchors.Rows), "columns", len(anchors.Cols))

	keptRows, keptCols := anchors.Rows, anchors.Cols
	if opts.PruneHomogeneous {
		keptRows, keptCols = pruneHomogeneous(g, keptRows, keptCols)
	}

	anchorCells := make(map[string]string)
	for _, r := range keptRows {
		for _, c := range keptCols {
			if cell := g.Cell(r, c); !cell.IsEmpty() {
				anchorCells[cellRef(r, c)] = cell.Value
			}
		}
	}
	anchorTokens := tokensOf(len(anchorCells), anchorCells)

	index := compress.BuildIndex(g, keptRows, keptCols)
	cells := renderIndex(index)
	indexTokens := tokensOf(len(cells), cells)

	agg := compress.Aggregate(g, opts.MinRunLength)
	formats := renderFormats(agg.Formats)
	numeric := renderFormats(agg.NumericRanges)
	formatTokens := tokensOf(len(formats)+len(numeric), [2]any{formats, numeric})

	enc := &models.SheetEncoding{
		StructuralAnchors: models.StructuralAnchors{
			Rows:    anchors.Rows,
			Columns: columnLetters(anchors.Cols),
		},
		Cells:         cells,
		Formats:       formats,
		NumericRanges: numeric,
	}
	finalTokens := tokensOf(len(cells)+len(formats)+len(numeric)+len(anchors.Rows)+len(anchors.Cols), enc)

	m := compress.NewSheetMetrics(rawTokens, anchorTokens, indexTokens, formatTokens, finalTokens)
	log.Infow("compressed sheet", "sheet", name,
		"original_tokens", m.OriginalTokens, "final_tokens", m.FinalTokens)
	return enc, &m, nil
}

// tokensOf returns the token estimate for v, or 0 when the underlying
// collection is empty so that empty stages report undefined ratios.
func tokensOf(n int, v any) int {
	if n == 0 {
		return 0
	}
	return compress.TokenCount(v)
}

// pruneHomogeneous drops retained rows and columns whose kept cells are
// uniform in value and number format; they carry no structure worth
// indexing.
func pruneHomogeneous(g *models.Grid, rows, cols []int) ([]int, []int) {
	uniform := func(cells []models.Cell) bool {
		for _, cell := range cells[1:] {
			if cell.Value != cells[0].Value || cell.NumFmt != cells[0].NumFmt {
				return false
			}
		}
		return true
	}

	var keptRows []int
	for _, r := range rows {
		line := make([]models.Cell, 0, len(cols))
		for _, c := range cols {
			line = append(line, g.Cell(r, c))
		}
		if len(line) == 0 || !uniform(line) {
			keptRows = append(keptRows, r)
		}
	}

	var keptCols []int
	for _, c := range cols {
		line := make([]models.Cell, 0, len(rows))
		for _, r := range rows {
			line = append(line, g.Cell(r, c))
		}
		if len(line) == 0 || !uniform(line) {
			keptCols = append(keptCols, c)
		}
	}
	return keptRows, keptCols
}

func renderIndex(index map[string][]models.Range) map[string][]string {
	out := make(map[string][]string, len(index))
	for value, ranges := range index {
		out[value] = renderRanges(ranges)
	}
	return out
}

func renderFormats(m map[models.FormatKey][]models.Range) map[string][]string {
	out := make(map[string][]string, len(m))
	for key, ranges := range m {
		out[key.String()] = renderRanges(ranges)
	}
	return out
}

func renderRanges(ranges []models.Range) []string {
	out := make([]string, len(ranges))
	for i, r := range ranges {
		out[i] = r.String()
	}
	return out
}

func cellRef(r, c int) string {
	return models.Range{R1: r, C1: c, R2: r, C2: c}.String()
}

func columnLetters(cols []int) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		name, _ := excelize.ColumnNumberToName(c)
		out[i] = name
	}
	return out
}
