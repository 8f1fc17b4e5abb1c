package sheetlm

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/models"
	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/output"
	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/semtype"
)

// setCell stores one cell, inferring its semantic type.
func setCell(g *models.Grid, r, c int, value, numFmt string) {
	st, _ := semtype.Detect(value, numFmt)
	g.Set(r, c, models.Cell{Value: value, Type: st, NumFmt: numFmt})
}

func headerGrid() *models.Grid {
	g := models.NewGrid(3, 3)
	setCell(g, 1, 1, "Name", "General")
	setCell(g, 1, 2, "Score", "General")
	setCell(g, 1, 3, "Date", "General")
	setCell(g, 2, 1, "Alice", "General")
	setCell(g, 2, 2, "42", "General")
	setCell(g, 2, 3, "2024-01-01", "General")
	return g
}

func TestEncodeGridHeader(t *testing.T) {
	enc, m, err := EncodeGrid("Sheet1", headerGrid(), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, enc.StructuralAnchors.Rows)
	assert.Equal(t, []string{"A", "B", "C"}, enc.StructuralAnchors.Columns)

	want := map[string][]string{
		"Name":       {"A1"},
		"Score":      {"B1"},
		"Date":       {"C1"},
		"Alice":      {"A2"},
		"42":         {"B2"},
		"2024-01-01": {"C2"},
	}
	assert.Equal(t, want, enc.Cells)

	// The lone integer is below the minimum run length: general map only.
	assert.Empty(t, enc.NumericRanges)
	assert.Equal(t, []string{"B2"}, enc.Formats["integer|General"])
	assert.Equal(t, []string{"A1:C1", "A2", "C2"}, enc.Formats["text|General"])

	require.NotNil(t, m.OverallRatio)
	assert.Positive(t, m.OriginalTokens)
	assert.Positive(t, m.FinalTokens)
}

func TestEncodeGridNumericColumn(t *testing.T) {
	g := models.NewGrid(10, 1)
	for r := 1; r <= 10; r++ {
		setCell(g, r, 1, "5.00%", "0.00%")
	}

	enc, _, err := EncodeGrid("Sheet1", g, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"A1:A10"}, enc.NumericRanges["percentage|0.00%"])
	assert.NotContains(t, enc.Formats, "percentage|0.00%")
}

func TestEncodeGridEmptySheet(t *testing.T) {
	enc, m, err := EncodeGrid("Sheet1", models.NewGrid(3, 3), DefaultOptions())
	require.NoError(t, err)

	assert.Empty(t, enc.StructuralAnchors.Rows)
	assert.Empty(t, enc.StructuralAnchors.Columns)
	assert.Empty(t, enc.Cells)
	assert.Empty(t, enc.Formats)
	assert.Empty(t, enc.NumericRanges)

	assert.Zero(t, m.OriginalTokens)
	assert.Nil(t, m.AnchorRatio)
	assert.Nil(t, m.IndexRatio)
	assert.Nil(t, m.FormatRatio)
	assert.Nil(t, m.OverallRatio)
}

func TestEncodeGridIdempotent(t *testing.T) {
	opts := DefaultOptions()

	first, m1, err := EncodeGrid("Sheet1", headerGrid(), opts)
	require.NoError(t, err)
	second, m2, err := EncodeGrid("Sheet1", headerGrid(), opts)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("encodings differ between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(m1, m2); diff != "" {
		t.Errorf("metrics differ between runs (-first +second):\n%s", diff)
	}

	j1, err := output.SheetToJSON(first, false)
	require.NoError(t, err)
	j2, err := output.SheetToJSON(second, false)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(j1, j2), "serialized output must be byte-identical")
}

func TestEncodeGridInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.K = -1

	_, _, err := EncodeGrid("Sheet1", headerGrid(), opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestEncodeGridInvalidGrid(t *testing.T) {
	g := models.NewGrid(2, 2)
	setCell(g, 5, 5, "oops", "General")

	_, _, err := EncodeGrid("Sheet1", g, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidGrid)

	var sheetErr *SheetError
	require.ErrorAs(t, err, &sheetErr)
	assert.Equal(t, "Sheet1", sheetErr.SheetName)
}

func TestPruneHomogeneous(t *testing.T) {
	// Row 2 and column 3 are uniform in value and format across the kept
	// view and get pruned; the rest survives.
	g := models.NewGrid(3, 3)
	setCell(g, 1, 1, "a", "General")
	setCell(g, 1, 2, "b", "General")
	setCell(g, 1, 3, "z", "General")
	setCell(g, 2, 1, "z", "General")
	setCell(g, 2, 2, "z", "General")
	setCell(g, 2, 3, "z", "General")
	setCell(g, 3, 1, "c", "General")
	setCell(g, 3, 2, "d", "General")
	setCell(g, 3, 3, "z", "General")

	rows, cols := pruneHomogeneous(g, []int{1, 2, 3}, []int{1, 2, 3})
	assert.Equal(t, []int{1, 3}, rows)
	assert.Equal(t, []int{1, 2}, cols)
}

func writeFixture(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	require.NoError(t, f.SetCellValue(sheet, "A1", "Name"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "Score"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "Alice"))
	require.NoError(t, f.SetCellValue(sheet, "B2", 42))
	require.NoError(t, f.SetCellValue(sheet, "A3", "Bob"))
	require.NoError(t, f.SetCellValue(sheet, "B3", 7))

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestEncodeWorkbook(t *testing.T) {
	path := writeFixture(t)

	wb, err := Encode(path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "fixture.xlsx", wb.FileName)
	require.Contains(t, wb.Sheets, "Sheet1")

	enc := wb.Sheets["Sheet1"]
	assert.Equal(t, []string{"A1"}, enc.Cells["Name"])
	assert.Equal(t, []string{"A2"}, enc.Cells["Alice"])
	assert.Equal(t, []string{"B2"}, enc.Cells["42"])

	// B2:B3 is a vertical integer run of length 2.
	assert.Equal(t, []string{"B2:B3"}, enc.NumericRanges["integer|General"])

	m := wb.CompressionMetrics
	require.Contains(t, m.Sheets, "Sheet1")
	assert.Equal(t, m.Sheets["Sheet1"].OriginalTokens, m.Overall.OriginalTokens)
	require.NotNil(t, m.Overall.OverallRatio)
}

func TestEncodeFileNotFound(t *testing.T) {
	_, err := Encode(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestVanillaEncode(t *testing.T) {
	path := writeFixture(t)

	sheets, err := VanillaEncode(path)
	require.NoError(t, err)
	require.Contains(t, sheets, "Sheet1")

	want := "A1,Name|B1,Score\nA2,Alice|B2,42\nA3,Bob|B3,7"
	assert.Equal(t, want, sheets["Sheet1"])
}
