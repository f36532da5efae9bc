package stylegen

import (
	"io/fs"

	"github.com/goliatone/go-stylegen/pkg/descriptor"
	"github.com/goliatone/go-stylegen/pkg/render"
)

// EmbeddedModules exposes the bundled module descriptors so callers can
// extend them without importing the descriptor package directly.
func EmbeddedModules() fs.FS {
	return descriptor.EmbeddedFS()
}

// EmbeddedTemplates exposes the style-tag renderer templates.
func EmbeddedTemplates() fs.FS {
	return render.TemplatesFS()
}
