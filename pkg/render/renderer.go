package render

import (
	"context"

	"github.com/goliatone/go-stylegen/pkg/model"
)

// Renderer serialises the rules flushed for one render slug (plain CSS, an
// inline <style> tag, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, slug string, rules []model.StyleRule) ([]byte, error)
}
