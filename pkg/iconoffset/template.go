// Package iconoffset computes the negative margins behind "show icon on
// hover" effects. The icon's size plus an increment is substituted into a
// template such as "0 -#px 0 0" at its single '#' placeholder.
package iconoffset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-stylegen/pkg/units"
)

// Placeholder marks where the computed number goes in a template.
const Placeholder = "#"

var (
	// ErrPlaceholder is returned for templates without exactly one
	// placeholder.
	ErrPlaceholder = errors.New("iconoffset: template must contain exactly one placeholder")
	// ErrSize is returned when a size is not numeric after unit validation.
	ErrSize = errors.New("iconoffset: size is not numeric")
)

// Substitute replaces the single placeholder in template with the shortest
// decimal form of n.
func Substitute(template string, n float64) (string, error) {
	if count := strings.Count(template, Placeholder); count != 1 {
		return "", fmt.Errorf("%w: %q has %d", ErrPlaceholder, template, count)
	}
	return strings.Replace(template, Placeholder, units.Format(n), 1), nil
}

// Compute strips the allowed units from size, adds increment, and
// substitutes the result into template.
func Compute(size string, increment float64, allowed []string, template string) (string, error) {
	n, ok := units.Strip(size, allowed)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrSize, size)
	}
	return Substitute(template, n+increment)
}
