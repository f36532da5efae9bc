package model

import (
	"strings"

	"github.com/goliatone/go-stylegen/pkg/mapping"
)

// FieldType enumerates the builder control kinds that carry styling.
type FieldType string

const (
	FieldTypeInput   FieldType = "input"
	FieldTypeRange   FieldType = "range"
	FieldTypeMargin  FieldType = "margin"
	FieldTypePadding FieldType = "padding"
	FieldTypeColor   FieldType = "color"
	FieldTypeAlign   FieldType = "align"
	FieldTypeGrid    FieldType = "grid"
	FieldTypeStyle   FieldType = "style"
)

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeInput, FieldTypeRange, FieldTypeMargin, FieldTypePadding,
		FieldTypeColor, FieldTypeAlign, FieldTypeGrid, FieldTypeStyle:
		return true
	default:
		return false
	}
}

// IsShorthand reports whether values of this type use the pipe-delimited
// four-side format.
func (t FieldType) IsShorthand() bool {
	return t == FieldTypeMargin || t == FieldTypePadding
}

// Device identifies a responsive breakpoint.
type Device string

const (
	DeviceNone    Device = ""
	DeviceDesktop Device = "desktop"
	DeviceTablet  Device = "tablet"
	DevicePhone   Device = "phone"
)

// Devices lists the breakpoints in emission order.
var Devices = []Device{DeviceDesktop, DeviceTablet, DevicePhone}

// ParseDevice normalises a device name; unknown names yield DeviceNone.
func ParseDevice(raw string) Device {
	switch Device(strings.ToLower(strings.TrimSpace(raw))) {
	case DeviceDesktop:
		return DeviceDesktop
	case DeviceTablet:
		return DeviceTablet
	case DevicePhone:
		return DevicePhone
	default:
		return DeviceNone
	}
}

// MediaQuery tags the media condition a rule is scoped to. The empty value
// means the rule is emitted without a wrapper.
type MediaQuery string

const (
	MediaNone        MediaQuery = ""
	MediaMinWidth981 MediaQuery = "min_width_981"
	MediaMaxWidth980 MediaQuery = "max_width_980"
	MediaMaxWidth767 MediaQuery = "max_width_767"
)

// CSS returns the @media prelude for the tag, or "" for MediaNone.
func (m MediaQuery) CSS() string {
	switch m {
	case MediaMinWidth981:
		return "@media only screen and (min-width: 981px)"
	case MediaMaxWidth980:
		return "@media only screen and (max-width: 980px)"
	case MediaMaxWidth767:
		return "@media only screen and (max-width: 767px)"
	default:
		return ""
	}
}

// MediaFor maps a breakpoint onto its media query. Desktop values carry no
// media query unless desktopOnly is set, in which case they are scoped to
// screens wider than the tablet breakpoint.
func MediaFor(device Device, desktopOnly bool) MediaQuery {
	switch device {
	case DeviceTablet:
		return MediaMaxWidth980
	case DevicePhone:
		return MediaMaxWidth767
	case DeviceDesktop:
		if desktopOnly {
			return MediaMinWidth981
		}
	}
	return MediaNone
}

// FieldDescriptor describes how one module field turns into CSS. Descriptors
// are defined once per module and never mutated by the compiler.
type FieldDescriptor struct {
	Name          string
	CSSProperty   string
	Selector      string
	HoverSelector string
	Type          FieldType
	AllowedUnits  []string
	Mapping       mapping.Mapping
	Important     bool
	// DefaultUnitValue is the field's numeric default. In single mode a value
	// whose number equals it is not emitted.
	DefaultUnitValue *int
	// DesktopOnly scopes responsive desktop values to min_width_981.
	DesktopOnly bool
}

// IconOffsetDescriptor configures the hover-reveal margin derived from an
// icon's size: the size for the active trigger value plus Increment is
// substituted into Template at its '#' placeholder.
type IconOffsetDescriptor struct {
	Name         string
	TriggerField string
	SizeField    string
	DefaultSizes map[string]string
	Increment    float64
	AllowedUnits []string
	Template     string
	CSSProperty  string
	Selector     string
	Important    bool
}

// Module is the styling schema of one builder module.
type Module struct {
	Name        string
	Fields      []FieldDescriptor
	IconOffsets []IconOffsetDescriptor
}

// Field returns the descriptor named name.
func (m Module) Field(name string) (FieldDescriptor, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldDescriptor{}, false
}

// PropertyValue holds the raw variants of one field as stored by the host
// builder. Values are opaque strings that already include unit suffixes.
type PropertyValue struct {
	Default          string
	Tablet           string
	Phone            string
	LastEditedDevice Device
	HoverValue       string
}

// ForDevice returns the raw value stored for device.
func (pv PropertyValue) ForDevice(device Device) string {
	switch device {
	case DeviceTablet:
		return pv.Tablet
	case DevicePhone:
		return pv.Phone
	default:
		return pv.Default
	}
}

// StyleRule is one emitted declaration block.
type StyleRule struct {
	Selector    string     `json:"selector" yaml:"selector"`
	Declaration string     `json:"declaration" yaml:"declaration"`
	MediaQuery  MediaQuery `json:"mediaQuery,omitempty" yaml:"mediaQuery,omitempty"`
}

// Attributes is the string-keyed attribute bag supplied by the host builder.
type Attributes map[string]string
