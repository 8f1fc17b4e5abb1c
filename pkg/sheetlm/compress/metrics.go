package compress

import (
	"encoding/json"

	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/models"
)

// TokenCount estimates the token cost of v as the byte length of its JSON
// serialization. The estimate is only used for observational metrics and
// never drives control flow.
func TokenCount(v any) int {
	b, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	return len(b)
}

// Ratio returns raw/stage, or nil when the stage estimate is zero (an
// undefined ratio is reported as absent, never as an arithmetic error).
func Ratio(raw, stage int) *float64 {
	if stage == 0 {
		return nil
	}
	r := float64(raw) / float64(stage)
	return &r
}

// NewSheetMetrics assembles the per-stage token counts and their ratios.
func NewSheetMetrics(raw, anchor, index, format, final int) models.SheetMetrics {
	return models.SheetMetrics{
		OriginalTokens:    raw,
		AfterAnchorTokens: anchor,
		AfterIndexTokens:  index,
		AfterFormatTokens: format,
		FinalTokens:       final,
		AnchorRatio:       Ratio(raw, anchor),
		IndexRatio:        Ratio(raw, index),
		FormatRatio:       Ratio(raw, format),
		OverallRatio:      Ratio(raw, final),
	}
}
