package descriptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-stylegen/pkg/iconoffset"
	"github.com/goliatone/go-stylegen/pkg/mapping"
	"github.com/goliatone/go-stylegen/pkg/model"
	"github.com/goliatone/go-stylegen/pkg/units"
)

// LoadFS walks fsys and parses every JSON/YAML descriptor file. Named mappings
// are looked up in registry (the built-in registry when nil). Each loaded
// module is passed through decorators in order.
//
// Problems are collected across all files and returned together; the store is
// nil whenever an error is returned. A nil fsys yields an empty store.
func LoadFS(fsys fs.FS, registry *mapping.Registry, decorators ...model.Decorator) (*Store, error) {
	store := &Store{
		modules: make(map[string]model.Module),
		sources: make(map[string]string),
	}
	if fsys == nil {
		return store, nil
	}
	if registry == nil {
		registry = mapping.NewRegistry()
	}

	var errs error
	walkErr := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDescriptorFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("descriptor: read %s: %w", path, err))
			return nil
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			errs = multierr.Append(errs, err)
			return nil
		}

		names := make([]string, 0, len(doc.Modules))
		for name := range doc.Modules {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, raw := range names {
			name := strings.TrimSpace(raw)
			if name == "" {
				errs = multierr.Append(errs, fmt.Errorf("descriptor: file %s defines an empty module name", path))
				continue
			}
			if prev, exists := store.sources[name]; exists {
				errs = multierr.Append(errs, fmt.Errorf("descriptor: duplicate module %q (files %s and %s)", name, prev, path))
				continue
			}

			module, err := normaliseModule(doc.Modules[raw], name, path, registry)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			if err := decorate(&module, decorators); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("descriptor: decorate module %q (file %s): %w", name, path, err))
				continue
			}
			store.modules[name] = module
			store.sources[name] = path
		}
		return nil
	})
	errs = multierr.Append(errs, walkErr)
	if errs != nil {
		return nil, errs
	}
	return store, nil
}

func decorate(module *model.Module, decorators []model.Decorator) error {
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(module); err != nil {
			return err
		}
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("descriptor: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("descriptor: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return doc, nil
}

func normaliseModule(raw moduleFile, name, source string, registry *mapping.Registry) (model.Module, error) {
	module := model.Module{Name: name}
	var errs error

	seen := make(map[string]struct{}, len(raw.Fields))
	for idx, fieldRaw := range raw.Fields {
		field, err := normaliseField(fieldRaw, registry)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("descriptor: module %q (file %s) field %d: %w", name, source, idx, err))
			continue
		}
		if _, dup := seen[field.Name]; dup {
			errs = multierr.Append(errs, fmt.Errorf("descriptor: module %q (file %s) defines duplicate field %q", name, source, field.Name))
			continue
		}
		seen[field.Name] = struct{}{}
		module.Fields = append(module.Fields, field)
	}

	for idx, offsetRaw := range raw.IconOffsets {
		offset, err := normaliseIconOffset(offsetRaw)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("descriptor: module %q (file %s) icon offset %d: %w", name, source, idx, err))
			continue
		}
		module.IconOffsets = append(module.IconOffsets, offset)
	}

	if errs != nil {
		return model.Module{}, errs
	}
	return module, nil
}

func normaliseField(raw fieldFile, registry *mapping.Registry) (model.FieldDescriptor, error) {
	field := model.FieldDescriptor{
		Name:          strings.TrimSpace(raw.Name),
		CSSProperty:   strings.TrimSpace(raw.CSSProperty),
		Selector:      strings.TrimSpace(raw.Selector),
		HoverSelector: strings.TrimSpace(raw.HoverSelector),
		Type:          model.FieldType(strings.ToLower(strings.TrimSpace(raw.Type))),
		Important:     raw.Important,
		DesktopOnly:   raw.DesktopOnly,
	}
	if raw.DefaultUnitValue != nil {
		value := *raw.DefaultUnitValue
		field.DefaultUnitValue = &value
	}

	switch {
	case field.Name == "":
		return field, errors.New("missing name")
	case field.CSSProperty == "":
		return field, fmt.Errorf("field %q: missing cssProperty", field.Name)
	case field.Selector == "":
		return field, fmt.Errorf("field %q: missing selector", field.Name)
	}
	if field.Type == "" {
		field.Type = model.FieldTypeInput
	}
	if !field.Type.Valid() {
		return field, fmt.Errorf("field %q: unknown type %q", field.Name, raw.Type)
	}

	allowed, err := parseUnits(raw.AllowedUnits)
	if err != nil {
		return field, fmt.Errorf("field %q: %w", field.Name, err)
	}
	field.AllowedUnits = allowed

	m, err := parseMapping(raw.Mapping, registry)
	if err != nil {
		return field, fmt.Errorf("field %q: %w", field.Name, err)
	}
	field.Mapping = m
	return field, nil
}

func normaliseIconOffset(raw iconOffsetFile) (model.IconOffsetDescriptor, error) {
	offset := model.IconOffsetDescriptor{
		Name:         strings.TrimSpace(raw.Name),
		TriggerField: strings.TrimSpace(raw.TriggerField),
		SizeField:    strings.TrimSpace(raw.SizeField),
		Increment:    raw.Increment,
		Template:     raw.Template,
		CSSProperty:  strings.TrimSpace(raw.CSSProperty),
		Selector:     strings.TrimSpace(raw.Selector),
		Important:    raw.Important,
	}
	switch {
	case offset.Name == "":
		return offset, errors.New("missing name")
	case offset.TriggerField == "":
		return offset, fmt.Errorf("icon offset %q: missing triggerField", offset.Name)
	case offset.CSSProperty == "" || offset.Selector == "":
		return offset, fmt.Errorf("icon offset %q: missing cssProperty or selector", offset.Name)
	}
	if _, err := iconoffset.Substitute(offset.Template, 0); err != nil {
		return offset, fmt.Errorf("icon offset %q: %w", offset.Name, err)
	}

	if len(raw.DefaultSizes) > 0 {
		offset.DefaultSizes = make(map[string]string, len(raw.DefaultSizes))
		for key, value := range raw.DefaultSizes {
			offset.DefaultSizes[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
	}

	allowed, err := parseUnits(raw.AllowedUnits)
	if err != nil {
		return offset, fmt.Errorf("icon offset %q: %w", offset.Name, err)
	}
	offset.AllowedUnits = allowed
	return offset, nil
}

// parseUnits accepts a unit set name ("pixels") or an explicit list.
func parseUnits(raw any) ([]string, error) {
	switch value := raw.(type) {
	case nil:
		return nil, nil
	case string:
		set, ok := units.Set(value)
		if !ok {
			return nil, fmt.Errorf("unknown unit set %q", value)
		}
		return set, nil
	case []any:
		out := make([]string, 0, len(value))
		for idx, entry := range value {
			unit := strings.TrimSpace(fmt.Sprint(entry))
			if unit == "" {
				return nil, fmt.Errorf("allowedUnits contains an empty entry at index %d", idx)
			}
			out = append(out, unit)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("allowedUnits must be a list or a set name, got %T", raw)
	}
}

// parseMapping accepts a registered mapping name or an inline lookup table.
func parseMapping(raw any, registry *mapping.Registry) (mapping.Mapping, error) {
	switch value := raw.(type) {
	case nil:
		return mapping.None(), nil
	case string:
		if strings.TrimSpace(value) == "" {
			return mapping.None(), nil
		}
		return registry.Get(value)
	case map[string]any:
		table := make(map[string]string, len(value))
		for key, entry := range value {
			table[key] = fmt.Sprint(entry)
		}
		return tableMapping(table)
	case map[any]any:
		table := make(map[string]string, len(value))
		for key, entry := range value {
			table[fmt.Sprint(key)] = fmt.Sprint(entry)
		}
		return tableMapping(table)
	default:
		return mapping.Mapping{}, fmt.Errorf("mapping must be a name or a table, got %T", raw)
	}
}

func tableMapping(table map[string]string) (mapping.Mapping, error) {
	if len(table) == 0 {
		return mapping.Mapping{}, errors.New("mapping table is empty")
	}
	return mapping.FromTable(table), nil
}

func isDescriptorFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
