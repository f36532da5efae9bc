// Package units validates CSS unit suffixes against the set a field allows.
//
// Validation is lenient on purpose: a unit outside the allowed set is dropped
// and the bare number kept, matching what the builder has always written into
// saved content. Nothing in this package returns an error.
package units

import (
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
)

// Common unit sets used by builder fields.
var (
	Length  = []string{"px", "%", "em", "rem", "vw", "vh", "pt"}
	Pixels  = []string{"px"}
	Percent = []string{"%"}
	Angle   = []string{"deg", "rad", "turn"}
	Time    = []string{"ms", "s"}
)

var named = map[string][]string{
	"length":  Length,
	"pixels":  Pixels,
	"percent": Percent,
	"angle":   Angle,
	"time":    Time,
}

// Set returns a copy of the named unit set (length, pixels, percent, angle,
// time).
func Set(name string) ([]string, bool) {
	set, ok := named[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return append([]string(nil), set...), true
}

// Dimension is a value split into its numeric and unit parts.
type Dimension struct {
	Number string
	Unit   string
}

// Split parses value as a single CSS dimension. ok is false when value is not
// exactly one number with an optional unit (keywords, lists, calc()).
func Split(value string) (Dimension, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Dimension{}, false
	}
	num, unit := parse.Dimension([]byte(trimmed))
	if num == 0 || num+unit != len(trimmed) {
		return Dimension{}, false
	}
	return Dimension{Number: trimmed[:num], Unit: trimmed[num:]}, true
}

// Allowed reports whether unit belongs to allowed, ignoring case.
func Allowed(unit string, allowed []string) bool {
	for _, candidate := range allowed {
		if strings.EqualFold(strings.TrimSpace(candidate), unit) {
			return true
		}
	}
	return false
}

// Validate returns value with any unit outside allowed stripped. Unit-less
// numbers and non-dimension values pass through unchanged; whitespace-only
// input yields "".
func Validate(value string, allowed []string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	dim, ok := Split(trimmed)
	if !ok || dim.Unit == "" {
		return trimmed
	}
	if Allowed(dim.Unit, allowed) {
		return trimmed
	}
	return dim.Number
}

// Strip validates value against allowed and returns its numeric part. ok is
// false when value is not a number after validation.
func Strip(value string, allowed []string) (float64, bool) {
	validated := Validate(value, allowed)
	dim, ok := Split(validated)
	if !ok {
		return 0, false
	}
	number, err := strconv.ParseFloat(dim.Number, 64)
	if err != nil {
		return 0, false
	}
	return number, true
}

// Format renders n in its shortest decimal form ("20", "1.5", "-4").
func Format(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
