package semtype

import (
	"testing"

	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/models"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		value     string
		numFmt    string
		expected  models.SemanticType
		confident bool
	}{
		{"", "General", models.TypeEmpty, true},
		{"hello", "General", models.TypeText, true},
		{"42", "General", models.TypeInteger, true},
		{"-100", "", models.TypeInteger, true},
		{"3.14", "General", models.TypeFloat, true},
		{"TRUE", "General", models.TypeBoolean, true},
		{"FALSE", "", models.TypeBoolean, true},
		{"alice@example.com", "General", models.TypeEmail, true},
		{"alice@example.com", "0.00%", models.TypeEmail, true},
		{"50.00%", "0.00%", models.TypePercentage, true},
		{"10%", "0%", models.TypePercentage, true},
		{"$1,234", "$#,##0", models.TypeCurrency, true},
		{"1.23E+05", "0.00E+00", models.TypeScientific, true},
		{"2024-01-01", "yyyy-mm-dd", models.TypeDate, true},
		{"01/15/24", "mm-dd-yy", models.TypeDate, true},
		{"2024", "yyyy", models.TypeYear, true},
		{"12:30", "hh:mm", models.TypeTime, true},
		{"12:30:45", "hh:mm:ss", models.TypeTime, true},
		{"5", "0", models.TypeInteger, true},
		{"1,234", "#,##0", models.TypeInteger, true},
		{"1.50", "0.00", models.TypeFloat, true},
		{"abc", "@", models.TypeText, true},
		// Non-generic format with no recognizable tokens: text fallback,
		// flagged as a partial classification.
		{"abc", `"label"`, models.TypeText, false},
	}

	for _, tt := range tests {
		got, confident := Detect(tt.value, tt.numFmt)
		if got != tt.expected || confident != tt.confident {
			t.Errorf("Detect(%q, %q) = (%s, %v), expected (%s, %v)",
				tt.value, tt.numFmt, got, confident, tt.expected, tt.confident)
		}
	}
}

func TestIsGeneric(t *testing.T) {
	for _, nf := range []string{"", "General", "general", "@", "text", "Text"} {
		if !isGeneric(nf) {
			t.Errorf("isGeneric(%q) = false, expected true", nf)
		}
	}
	for _, nf := range []string{"0.00", "yyyy-mm-dd", "0%"} {
		if isGeneric(nf) {
			t.Errorf("isGeneric(%q) = true, expected false", nf)
		}
	}
}
