package stylesheet

import (
	"strings"

	"github.com/goliatone/go-stylegen/pkg/model"
)

// Render serialises rules into CSS text. Rules without a media query are
// written directly; consecutive rules sharing a media query are grouped
// under one @media block, so the relative order of rules is preserved.
func Render(rules []model.StyleRule) string {
	var b strings.Builder
	var open model.MediaQuery

	closeBlock := func() {
		if open != model.MediaNone {
			b.WriteString("}\n")
			open = model.MediaNone
		}
	}

	for _, rule := range rules {
		if rule.MediaQuery != open {
			closeBlock()
			if prelude := rule.MediaQuery.CSS(); prelude != "" {
				b.WriteString(prelude)
				b.WriteString(" {\n")
				open = rule.MediaQuery
			}
		}
		if open != model.MediaNone {
			b.WriteString("\t")
		}
		b.WriteString(rule.Selector)
		b.WriteString(" { ")
		b.WriteString(rule.Declaration)
		b.WriteString(" }\n")
	}
	closeBlock()

	return b.String()
}
