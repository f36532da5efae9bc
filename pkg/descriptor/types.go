package descriptor

import (
	"sort"

	"github.com/goliatone/go-stylegen/pkg/model"
)

// Store holds the modules loaded from a filesystem.
type Store struct {
	modules map[string]model.Module
	sources map[string]string
}

// Module returns the module registered under name.
func (s *Store) Module(name string) (model.Module, bool) {
	if s == nil {
		return model.Module{}, false
	}
	module, ok := s.modules[name]
	return module, ok
}

// Source reports the file a module was loaded from.
func (s *Store) Source(name string) string {
	if s == nil {
		return ""
	}
	return s.sources[name]
}

// Names returns the loaded module names, sorted.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.modules))
	for name := range s.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds any modules.
func (s *Store) Empty() bool {
	return s == nil || len(s.modules) == 0
}

type documentFile struct {
	Modules map[string]moduleFile `json:"modules" yaml:"modules"`
}

type moduleFile struct {
	Fields      []fieldFile      `json:"fields" yaml:"fields"`
	IconOffsets []iconOffsetFile `json:"iconOffsets" yaml:"iconOffsets"`
}

type fieldFile struct {
	Name          string `json:"name" yaml:"name"`
	CSSProperty   string `json:"cssProperty" yaml:"cssProperty"`
	Selector      string `json:"selector" yaml:"selector"`
	HoverSelector string `json:"hoverSelector" yaml:"hoverSelector"`
	Type          string `json:"type" yaml:"type"`
	// AllowedUnits is a unit list or the name of a unit set.
	AllowedUnits     any  `json:"allowedUnits" yaml:"allowedUnits"`
	Mapping          any  `json:"mapping" yaml:"mapping"`
	Important        bool `json:"important" yaml:"important"`
	DefaultUnitValue *int `json:"defaultUnitValue" yaml:"defaultUnitValue"`
	DesktopOnly      bool `json:"desktopOnly" yaml:"desktopOnly"`
}

type iconOffsetFile struct {
	Name         string            `json:"name" yaml:"name"`
	TriggerField string            `json:"triggerField" yaml:"triggerField"`
	SizeField    string            `json:"sizeField" yaml:"sizeField"`
	DefaultSizes map[string]string `json:"defaultSizes" yaml:"defaultSizes"`
	Increment    float64           `json:"increment" yaml:"increment"`
	AllowedUnits any               `json:"allowedUnits" yaml:"allowedUnits"`
	Template     string            `json:"template" yaml:"template"`
	CSSProperty  string            `json:"cssProperty" yaml:"cssProperty"`
	Selector     string            `json:"selector" yaml:"selector"`
	Important    bool              `json:"important" yaml:"important"`
}
