// Package output serializes compression results to JSON and text.
package output

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/models"
)

// ToJSON serializes a workbook encoding.
func ToJSON(wb *models.WorkbookEncoding, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(wb, "", "  ")
	}
	return json.Marshal(wb)
}

// SheetToJSON serializes a single sheet encoding.
func SheetToJSON(enc *models.SheetEncoding, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(enc, "", "  ")
	}
	return json.Marshal(enc)
}

// VanillaToText renders the per-sheet vanilla encodings as one document,
// sheets in name order under "## <name>" headers.
func VanillaToText(sheets map[string]string) string {
	names := make([]string, 0, len(sheets))
	for name := range sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "## %s\n%s", name, sheets[name])
	}
	return sb.String()
}
