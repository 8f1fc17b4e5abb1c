// Package loader builds compression grids from xlsx workbooks via
// excelize. It supplies the cell values, raw number-format strings, style
// signatures, and merged-region spans the compression core needs.
package loader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/models"
	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/semtype"
)

// builtInNumFmt maps the common built-in numFmtId values to their format
// strings (ECMA-376 §18.8.30). Custom formats override the table.
var builtInNumFmt = map[int]string{
	0:  "General",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	9:  "0%",
	10: "0.00%",
	11: "0.00E+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm AM/PM",
	19: "h:mm:ss AM/PM",
	20: "hh:mm",
	21: "hh:mm:ss",
	22: "m/d/yy hh:mm",
	37: `(#,##0_);(#,##0)`,
	38: `(#,##0_);[Red](#,##0)`,
	39: `(#,##0.00_);(#,##0.00)`,
	40: `(#,##0.00_);[Red](#,##0.00)`,
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mmss.0",
	48: "##0.0E+0",
	49: "@",
}

// Sheet pairs a sheet name with its loaded grid.
type Sheet struct {
	// Name is the sheet name.
	Name string
	// Grid holds the sheet's cells.
	Grid *models.Grid
	// ClassificationWarnings counts cells whose semantic type fell back
	// to text because no inference rule matched.
	ClassificationWarnings int
}

// Load opens an xlsx workbook and builds a grid per sheet, preserving the
// workbook's sheet order.
func Load(path string) ([]Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		g, warnings, err := LoadSheet(f, name)
		if err != nil {
			return nil, fmt.Errorf("loading sheet %q: %w", name, err)
		}
		sheets = append(sheets, Sheet{Name: name, Grid: g, ClassificationWarnings: warnings})
	}
	return sheets, nil
}

// LoadSheet builds the grid for one sheet: formatted values, raw number
// formats, style keys, inferred semantic types, and merged regions. The
// second return counts cells whose classification fell back to text.
func LoadSheet(f *excelize.File, sheetName string) (*models.Grid, int, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, err
	}

	nRows := len(rows)
	nCols := 0
	for _, row := range rows {
		if len(row) > nCols {
			nCols = len(row)
		}
	}

	g := models.NewGrid(nRows, nCols)
	warnings := 0

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			if value == "" {
				continue
			}
			r, c := rowIdx+1, colIdx+1
			numFmt, styleKey := cellStyle(f, sheetName, r, c)
			semType, confident := semtype.Detect(value, numFmt)
			if !confident {
				warnings++
			}
			g.Set(r, c, models.Cell{
				Value:    value,
				Type:     semType,
				NumFmt:   numFmt,
				StyleKey: styleKey,
			})
		}
	}

	merged, err := f.GetMergeCells(sheetName)
	if err != nil {
		return nil, 0, err
	}
	for _, m := range merged {
		c1, r1, err := excelize.CellNameToCoordinates(m.GetStartAxis())
		if err != nil {
			continue
		}
		c2, r2, err := excelize.CellNameToCoordinates(m.GetEndAxis())
		if err != nil {
			continue
		}
		region := models.MergedRegion{R1: r1, C1: c1, R2: r2, C2: c2}
		g.Merged = append(g.Merged, region)
		fillMergedValue(g, region)
	}

	if err := g.Validate(); err != nil {
		return nil, 0, err
	}
	return g, warnings, nil
}

// cellStyle resolves the raw number format string and an opaque style key
// for one cell. Cells with equal style IDs share identical styling.
func cellStyle(f *excelize.File, sheetName string, r, c int) (numFmt, styleKey string) {
	cellName, err := excelize.CoordinatesToCellName(c, r)
	if err != nil {
		return "General", ""
	}
	styleID, err := f.GetCellStyle(sheetName, cellName)
	if err != nil {
		return "General", ""
	}
	styleKey = fmt.Sprintf("s%d", styleID)

	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return "General", styleKey
	}
	if style.CustomNumFmt != nil && *style.CustomNumFmt != "" {
		return *style.CustomNumFmt, styleKey
	}
	if s, ok := builtInNumFmt[style.NumFmt]; ok {
		return s, styleKey
	}
	return "General", styleKey
}

// fillMergedValue copies the merged region's anchor cell into every empty
// covered position so downstream passes see the shared value everywhere.
func fillMergedValue(g *models.Grid, m models.MergedRegion) {
	anchor := g.Cell(m.R1, m.C1)
	if anchor.IsEmpty() {
		return
	}
	for r := m.R1; r <= m.R2; r++ {
		for c := m.C1; c <= m.C2; c++ {
			if g.Cell(r, c).IsEmpty() {
				g.Set(r, c, models.Cell{
					Value:    anchor.Value,
					Type:     anchor.Type,
					NumFmt:   anchor.NumFmt,
					StyleKey: anchor.StyleKey,
				})
			}
		}
	}
}
