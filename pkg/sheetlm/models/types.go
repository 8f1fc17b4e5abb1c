// Package models defines data structures for spreadsheet compression.
package models

// SemanticType is the inferred content category of a cell.
type SemanticType string

const (
	// TypeEmpty marks a cell with no value.
	TypeEmpty SemanticType = "empty"
	// TypeText is the default category for string content.
	TypeText SemanticType = "text"
	// TypeInteger is a whole number, by value or by format.
	TypeInteger SemanticType = "integer"
	// TypeFloat is a decimal number, by value or by format.
	TypeFloat SemanticType = "float"
	// TypePercentage is a number rendered with a percent format.
	TypePercentage SemanticType = "percentage"
	// TypeCurrency is a number rendered with a currency format.
	TypeCurrency SemanticType = "currency"
	// TypeScientific is a number rendered in scientific notation.
	TypeScientific SemanticType = "scientific"
	// TypeDate is a calendar date.
	TypeDate SemanticType = "date"
	// TypeTime is a time of day or duration.
	TypeTime SemanticType = "time"
	// TypeYear is a date format carrying only a year component.
	TypeYear SemanticType = "year"
	// TypeEmail is a string matching an email address pattern.
	TypeEmail SemanticType = "email"
	// TypeBoolean is a TRUE/FALSE value.
	TypeBoolean SemanticType = "boolean"
)

// IsNumeric reports whether the type participates in numeric-range
// clustering.
func (t SemanticType) IsNumeric() bool {
	switch t {
	case TypeInteger, TypeFloat, TypePercentage, TypeCurrency, TypeScientific:
		return true
	}
	return false
}
