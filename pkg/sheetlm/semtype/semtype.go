// Package semtype infers the semantic type of a cell from its raw number
// format string and, when the format is generic, from the value itself.
// Format-string parsing is delegated to [github.com/xuri/nfp]; this package
// only classifies the resulting token stream.
package semtype

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/nfp"

	"github.com/ukaji3/sheetlm-go/pkg/sheetlm/models"
)

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// currencySymbols are matched inside literal format tokens.
const currencySymbols = "$€£¥"

// Detect classifies a cell. The format string is consulted first; generic
// formats fall back to inspecting the value. The second return is false
// when no rule matched and the text default was a guess; callers should
// record the fallback but keep processing.
func Detect(value, numFmt string) (models.SemanticType, bool) {
	if value == "" {
		return models.TypeEmpty, true
	}
	if emailRE.MatchString(value) {
		return models.TypeEmail, true
	}
	if t, ok := fromFormat(numFmt); ok {
		return t, true
	}

	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return models.TypeInteger, true
	}
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return models.TypeFloat, true
	}
	if value == "TRUE" || value == "FALSE" {
		return models.TypeBoolean, true
	}
	if isGeneric(numFmt) {
		return models.TypeText, true
	}
	// A non-generic format we could not interpret: default to text and let
	// the caller log the partial classification.
	return models.TypeText, false
}

// isGeneric reports whether the format string carries no type information.
func isGeneric(numFmt string) bool {
	return numFmt == "" ||
		strings.EqualFold(numFmt, "general") ||
		numFmt == "@" ||
		strings.EqualFold(numFmt, "text")
}

// fromFormat classifies a number format string by walking its nfp token
// stream. It returns ok=false for generic or unrecognized formats.
func fromFormat(numFmt string) (models.SemanticType, bool) {
	if isGeneric(numFmt) {
		return "", false
	}

	upper := strings.ToUpper(numFmt)
	if strings.Contains(upper, "E+") || strings.Contains(upper, "E-") {
		return models.TypeScientific, true
	}

	parser := nfp.NumberFormatParser()
	sections := parser.Parse(numFmt)
	if len(sections) == 0 {
		return "", false
	}

	var (
		hasPercent  bool
		hasCurrency bool
		hasDecimal  bool
		hasDigits   bool
		hasDatePart bool
		hasTimePart bool
		hasYear     bool
		hasMonthDay bool
		dtTokens    []string
	)
	// The first section governs positive values; that is enough for
	// classification.
	for _, tok := range sections[0].Items {
		switch tok.TType {
		case nfp.TokenTypePercent:
			hasPercent = true
		case nfp.TokenTypeCurrencyLanguage:
			hasCurrency = true
		case nfp.TokenTypeLiteral:
			if strings.ContainsAny(tok.TValue, currencySymbols) {
				hasCurrency = true
			}
		case nfp.TokenTypeDecimalPoint:
			hasDecimal = true
		case nfp.TokenTypeZeroPlaceHolder, nfp.TokenTypeHashPlaceHolder:
			hasDigits = true
		case nfp.TokenTypeDateTimes, nfp.TokenTypeElapsedDateTimes:
			dtTokens = append(dtTokens, strings.ToUpper(tok.TValue))
		}
	}
	for _, u := range dtTokens {
		switch {
		case strings.Contains(u, "Y"):
			hasYear = true
			hasDatePart = true
		case strings.Contains(u, "D"):
			hasMonthDay = true
			hasDatePart = true
		case u == "AM/PM" || u == "A/P" || strings.Contains(u, "H") || strings.Contains(u, "S"):
			hasTimePart = true
		}
	}
	// M is ambiguous between month and minute: treat it as a minute when
	// an hour/second token is present, as a month otherwise.
	if !hasTimePart {
		for _, u := range dtTokens {
			if !strings.ContainsAny(u, "YDHS") && strings.Contains(u, "M") {
				hasMonthDay = true
				hasDatePart = true
			}
		}
	}

	switch {
	case hasPercent:
		return models.TypePercentage, true
	case hasCurrency:
		return models.TypeCurrency, true
	case hasDatePart && hasYear && !hasMonthDay && !hasTimePart:
		return models.TypeYear, true
	case hasDatePart:
		return models.TypeDate, true
	case hasTimePart:
		return models.TypeTime, true
	case hasDecimal && hasDigits:
		return models.TypeFloat, true
	case hasDigits:
		return models.TypeInteger, true
	}
	return "", false
}
