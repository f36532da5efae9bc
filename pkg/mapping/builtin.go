package mapping

import (
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/mazznoer/csscolorparser"
)

// Names of the built-in mappings.
const (
	NameColorHex     = "color-hex"
	NameTextAlign    = "text-align"
	NameOnOffDisplay = "on-off-display"
	NameFontWeight   = "font-weight"
)

// ColorHex normalises any CSS colour csscolorparser understands into its hex
// form. Values it cannot parse (var(), currentColor, gradients) pass through.
func ColorHex() Mapping {
	return Named(NameColorHex, FromFunc(func(value string) string {
		trimmed := strings.TrimSpace(value)
		color, err := csscolorparser.Parse(trimmed)
		if err != nil {
			return value
		}
		return color.HexString()
	}))
}

// TextAlign maps builder alignment choices onto text-align keywords.
func TextAlign() Mapping {
	return Named(NameTextAlign, FromTable(map[string]string{
		"left":      "left",
		"center":    "center",
		"right":     "right",
		"justified": "justify",
		"justify":   "justify",
	}))
}

// OnOffDisplay maps the builder's yes/no toggles onto display values.
func OnOffDisplay() Mapping {
	return Named(NameOnOffDisplay, FromTable(map[string]string{
		"on":  "block",
		"off": "none",
	}))
}

// FontWeight maps named weights to their numeric form.
func FontWeight() Mapping {
	return Named(NameFontWeight, FromTable(map[string]string{
		"thin":       "100",
		"extralight": "200",
		"light":      "300",
		"normal":     "400",
		"medium":     "500",
		"semibold":   "600",
		"bold":       "700",
		"extrabold":  "800",
		"black":      "900",
	}))
}

// Tokens resolves design-token names through a go-theme manifest. Values that
// are not token names pass through unchanged. A nil manifest yields the
// identity mapping.
func Tokens(manifest *theme.Manifest) Mapping {
	if manifest == nil || len(manifest.Tokens) == 0 {
		return None()
	}
	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	name := "tokens"
	if manifest.Name != "" {
		name = "tokens:" + manifest.Name
	}
	return Named(name, FromFunc(func(value string) string {
		if resolved, ok := tokens[strings.TrimSpace(value)]; ok {
			return resolved
		}
		return value
	}))
}
