package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/models"
)

func TestToJSON(t *testing.T) {
	wb := &models.WorkbookEncoding{
		FileName: "book.xlsx",
		Sheets:   map[string]models.SheetEncoding{},
	}

	compact, err := ToJSON(wb, false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if strings.Contains(string(compact), "\n") {
		t.Error("compact output should not contain newlines")
	}

	pretty, err := ToJSON(wb, true)
	if err != nil {
		t.Fatalf("ToJSON pretty failed: %v", err)
	}
	if !strings.Contains(string(pretty), "\n  ") {
		t.Error("pretty output should be indented")
	}

	var round models.WorkbookEncoding
	if err := json.Unmarshal(pretty, &round); err != nil {
		t.Fatalf("pretty output is not valid JSON: %v", err)
	}
	if round.FileName != "book.xlsx" {
		t.Errorf("round-tripped file name = %q", round.FileName)
	}
}

func TestVanillaToText(t *testing.T) {
	got := VanillaToText(map[string]string{
		"Zeta":  "A1,z",
		"Alpha": "A1,a",
	})

	want := "## Alpha\nA1,a\n\n## Zeta\nA1,z"
	if got != want {
		t.Errorf("VanillaToText = %q, expected %q", got, want)
	}
}
