package render

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-stylegen/pkg/model"
	"github.com/goliatone/go-stylegen/pkg/stylesheet"
)

// NameStyleTag identifies the inline <style> renderer.
const NameStyleTag = "style-tag"

const defaultStyleTemplate = "style.tpl"

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS returns the bundled style templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}

// StyleTagOption configures the style-tag renderer.
type StyleTagOption func(*styleTagConfig)

type styleTagConfig struct {
	templates fs.FS
	name      string
}

// WithTemplates loads templates from fsys instead of the bundled set.
func WithTemplates(fsys fs.FS) StyleTagOption {
	return func(cfg *styleTagConfig) {
		if fsys != nil {
			cfg.templates = fsys
		}
	}
}

// WithTemplateName selects the template file rendered for each slug.
func WithTemplateName(name string) StyleTagOption {
	return func(cfg *styleTagConfig) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}

// StyleTag wraps the rendered stylesheet in a <style id="<slug>-styles">
// element using a pongo2 template. Empty rule lists render nothing.
type StyleTag struct {
	tmpl *pongo2.Template
}

// NewStyleTag parses the style template once; rendering is safe for
// concurrent use.
func NewStyleTag(options ...StyleTagOption) (*StyleTag, error) {
	cfg := &styleTagConfig{name: defaultStyleTemplate}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.templates == nil {
		cfg.templates = TemplatesFS()
	}

	set := pongo2.NewSet("stylegen", pongo2.NewFSLoader(cfg.templates))
	tmpl, err := set.FromFile(cfg.name)
	if err != nil {
		return nil, fmt.Errorf("render: load template %q: %w", cfg.name, err)
	}
	return &StyleTag{tmpl: tmpl}, nil
}

func (*StyleTag) Name() string        { return NameStyleTag }
func (*StyleTag) ContentType() string { return "text/html; charset=utf-8" }

func (s *StyleTag) Render(ctx context.Context, slug string, rules []model.StyleRule) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.tmpl == nil {
		return nil, errors.New("render: style-tag renderer is not initialised")
	}
	if len(rules) == 0 {
		return nil, nil
	}

	data := pongo2.Context{
		"id":  StyleID(slug),
		"css": neutraliseClosingTags(stylesheet.Render(rules)),
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteWriter(data, &buf); err != nil {
		return nil, fmt.Errorf("render: execute style template: %w", err)
	}
	return buf.Bytes(), nil
}

// StyleID is the element id given to a slug's <style> tag.
func StyleID(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "stylegen-styles"
	}
	return slug + "-styles"
}

// neutraliseClosingTags keeps stored values from closing the style element
// early. "<\/" is equivalent inside CSS strings and invalid elsewhere.
func neutraliseClosingTags(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
