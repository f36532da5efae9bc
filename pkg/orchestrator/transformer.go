package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-stylegen/pkg/model"
)

// Transformer rewrites a module's attribute bag before it is compiled.
// Implementations can migrate legacy keys or fill site-wide presets.
type Transformer interface {
	Transform(ctx context.Context, module model.Module, bag model.Attributes) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, module model.Module, bag model.Attributes) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, module model.Module, bag model.Attributes) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, module, bag)
}

// PresetTransformer fills attributes from a declarative preset document. The
// document maps module names to attribute values, plus an optional "rename"
// table applied first:
//
//	modules:
//	  button:
//	    button_text_size: 20px
//	rename:
//	  button_font_size: button_text_size
//
// Presets never overwrite a key the bag already holds.
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Modules map[string]map[string]string `json:"modules" yaml:"modules"`
	Rename  map[string]string            `json:"rename" yaml:"rename"`
}

// NewPresetTransformer constructs a transformer from raw JSON or YAML bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		if err := yaml.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("preset transformer: parse document: %w", err)
		}
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform renames legacy keys and then fills missing module presets.
func (t *PresetTransformer) Transform(ctx context.Context, module model.Module, bag model.Attributes) error {
	if bag == nil {
		return errors.New("preset transformer: attribute bag is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for from, to := range t.document.Rename {
		value, ok := bag[from]
		if !ok {
			continue
		}
		delete(bag, from)
		if _, exists := bag[to]; !exists {
			bag[to] = value
		}
	}

	for key, value := range t.document.Modules[module.Name] {
		if _, exists := bag[key]; !exists {
			bag[key] = value
		}
	}
	return nil
}
