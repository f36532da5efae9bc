package render

import (
	"context"

	"github.com/goliatone/go-stylegen/pkg/model"
	"github.com/goliatone/go-stylegen/pkg/stylesheet"
)

// NameCSS identifies the plain stylesheet renderer.
const NameCSS = "css"

// CSS renders rules as a bare stylesheet.
type CSS struct{}

// NewCSS returns the plain stylesheet renderer.
func NewCSS() *CSS { return &CSS{} }

func (*CSS) Name() string        { return NameCSS }
func (*CSS) ContentType() string { return "text/css; charset=utf-8" }

func (*CSS) Render(ctx context.Context, _ string, rules []model.StyleRule) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []byte(stylesheet.Render(rules)), nil
}
