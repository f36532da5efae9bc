package declaration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mazznoer/csscolorparser"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ErrUnsafeValue marks a property or value rejected by the strict policy.
var ErrUnsafeValue = errors.New("declaration: unsafe value")

// Policy selects how much the builder trusts attribute values.
type Policy int

const (
	// PolicyLenient emits values as stored. Saved content relies on this.
	PolicyLenient Policy = iota
	// PolicyStrict rejects values that could break out of a declaration.
	PolicyStrict
)

func (p Policy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "lenient"
}

// ParsePolicy parses "lenient" or "strict"; the empty string is lenient.
func ParsePolicy(raw string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "lenient":
		return PolicyLenient, nil
	case "strict":
		return PolicyStrict, nil
	default:
		return PolicyLenient, fmt.Errorf("declaration: unknown policy %q", raw)
	}
}

// Builder renders declarations under a Policy.
type Builder struct {
	Policy Policy
}

// New returns a Builder for policy.
func New(policy Policy) Builder {
	return Builder{Policy: policy}
}

// Build renders a declaration, vetting property and value first when the
// policy is strict.
func (b Builder) Build(property, value string, important bool) (string, error) {
	if b.Policy == PolicyStrict {
		if err := CheckProperty(property); err != nil {
			return "", err
		}
		if err := CheckValue(value); err != nil {
			return "", err
		}
	}
	return Build(property, value, important), nil
}

// CheckColor vets a value destined for a colour property. Lenient builders
// accept anything.
func (b Builder) CheckColor(value string) error {
	if b.Policy != PolicyStrict {
		return nil
	}
	return CheckColor(value)
}

// CheckProperty accepts plain and custom property names only.
func CheckProperty(property string) error {
	name := strings.TrimSpace(property)
	if name == "" {
		return fmt.Errorf("%w: empty property", ErrUnsafeValue)
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r == '-':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return fmt.Errorf("%w: property %q", ErrUnsafeValue, property)
		}
	}
	return nil
}

// CheckValue rejects control characters, block or declaration terminators,
// markup openers, and unterminated strings or urls.
func CheckValue(value string) error {
	for _, r := range value {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("%w: control character in %q", ErrUnsafeValue, value)
		}
	}

	lexer := css.NewLexer(parse.NewInputString(value))
	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return nil
		case css.LeftBraceToken, css.RightBraceToken, css.SemicolonToken,
			css.BadStringToken, css.BadURLToken, css.CDOToken, css.CDCToken:
			return fmt.Errorf("%w: %q", ErrUnsafeValue, value)
		case css.StringToken:
			if !terminated(data) {
				return fmt.Errorf("%w: unterminated string in %q", ErrUnsafeValue, value)
			}
		case css.DelimToken:
			if len(data) == 1 && (data[0] == '<' || data[0] == '>' || data[0] == '\\') {
				return fmt.Errorf("%w: %q", ErrUnsafeValue, value)
			}
		}
	}
}

var cssWideColors = map[string]struct{}{
	"inherit":      {},
	"initial":      {},
	"unset":        {},
	"revert":       {},
	"currentcolor": {},
	"transparent":  {},
}

// CheckColor accepts CSS-wide keywords, var() references, and anything
// csscolorparser can parse.
func CheckColor(value string) error {
	trimmed := strings.TrimSpace(value)
	if _, ok := cssWideColors[strings.ToLower(trimmed)]; ok {
		return nil
	}
	if strings.HasPrefix(strings.ToLower(trimmed), "var(") {
		return CheckValue(trimmed)
	}
	if _, err := csscolorparser.Parse(trimmed); err != nil {
		return fmt.Errorf("%w: colour %q", ErrUnsafeValue, value)
	}
	return nil
}

func terminated(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	quote := data[0]
	if quote != '"' && quote != '\'' {
		return true
	}
	return data[len(data)-1] == quote && data[len(data)-2] != '\\'
}
