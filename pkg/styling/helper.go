package styling

import (
	"errors"
	"fmt"
	"slices"
)

// Direction is a single-letter side code used by spacing, border and offset utilities.
type Direction string

const (
	Top    Direction = "t"
	Right  Direction = "r"
	Bottom Direction = "b"
	Left   Direction = "l"
)

var (
	// ErrInvalidUnit is returned when a unit suffix is outside ValidUnits
	ErrInvalidUnit = errors.New("invalid unit")

	// ErrUnsupportedShorthand is returned when a style shorthand has no property mapping
	ErrUnsupportedShorthand = errors.New("unsupported style shorthand")
)

// Sides maps direction codes to CSS side names
var Sides = map[Direction]string{
	Top:    "top",
	Left:   "left",
	Bottom: "bottom",
	Right:  "right",
}

// ValidUnits is the closed set of unit suffixes accepted in utility names
var ValidUnits = []string{"px", "p", "vh", "vw", "rem", "em", "dvh", "dvw"}

var propertyMappings = map[string]string{
	"m": "margin",
	"p": "padding",
	"t": "top",
	"l": "left",
	"b": "bottom",
	"r": "right",
}

// MapUnit returns the canonical CSS unit for a utility unit suffix.
// An empty suffix means px. "p" is shorthand for percent.
func MapUnit(unit string) (string, error) {
	if unit == "" {
		return "px", nil
	}
	if slices.Contains(ValidUnits, unit) {
		if unit == "p" {
			return "%", nil
		}
		return unit, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidUnit, unit)
}

// MapProperty returns the full CSS property name for a style shorthand
func MapProperty(style string) (string, error) {
	property, ok := propertyMappings[style]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedShorthand, style)
	}
	return property, nil
}

// side returns the CSS side name for a captured direction code.
// Callers only pass codes captured by a (t|r|b|l) group.
func side(code string) string {
	return Sides[Direction(code)]
}

// dimension joins a numeric capture with its normalized unit
func dimension(value, unit string) (string, error) {
	u, err := MapUnit(unit)
	if err != nil {
		return "", err
	}
	return value + u, nil
}
