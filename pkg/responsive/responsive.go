// Package responsive decides whether a property is in single or responsive
// mode and yields the effective value per breakpoint.
//
// The decision is a binary switch rather than a merge: once the builder has
// recorded a last-edited device and any breakpoint holds a value, only the
// per-breakpoint values are emitted and the plain default is never emitted on
// its own. Without a last-edited device the tablet and phone values are stale
// editor state and are ignored.
package responsive

import (
	"github.com/goliatone/go-stylegen/pkg/mapping"
	"github.com/goliatone/go-stylegen/pkg/model"
)

// Mode is the resolution outcome.
type Mode int

const (
	ModeSingle Mode = iota
	ModeResponsive
)

func (m Mode) String() string {
	if m == ModeResponsive {
		return "responsive"
	}
	return "single"
}

// Breakpoints holds the mapped value of each device.
type Breakpoints struct {
	Desktop string
	Tablet  string
	Phone   string
}

// Get returns the value for device.
func (b Breakpoints) Get(device model.Device) string {
	switch device {
	case model.DeviceTablet:
		return b.Tablet
	case model.DevicePhone:
		return b.Phone
	default:
		return b.Desktop
	}
}

// Result is the resolved value set. Value is only meaningful in single mode
// and PerBreakpoint only in responsive mode.
type Result struct {
	Mode          Mode
	Value         string
	PerBreakpoint *Breakpoints
}

// Scoped is one non-empty value bound to the media query it is emitted under.
type Scoped struct {
	Device     model.Device
	MediaQuery model.MediaQuery
	Value      string
}

// Scoped lists the non-empty values of r in desktop, tablet, phone order.
// Single mode yields at most one entry without a media query.
func (r Result) Scoped(desktopOnly bool) []Scoped {
	if r.Mode == ModeSingle || r.PerBreakpoint == nil {
		if r.Value == "" {
			return nil
		}
		return []Scoped{{Device: model.DeviceDesktop, MediaQuery: model.MediaNone, Value: r.Value}}
	}
	out := make([]Scoped, 0, len(model.Devices))
	for _, device := range model.Devices {
		value := r.PerBreakpoint.Get(device)
		if value == "" {
			continue
		}
		out = append(out, Scoped{
			Device:     device,
			MediaQuery: model.MediaFor(device, desktopOnly),
			Value:      value,
		})
	}
	return out
}

// Empty reports whether r produces no value at all.
func (r Result) Empty() bool {
	return len(r.Scoped(false)) == 0
}

// IsResponsive reports whether pv selects responsive mode.
func IsResponsive(pv model.PropertyValue) bool {
	if pv.LastEditedDevice == model.DeviceNone {
		return false
	}
	return pv.Default != "" || pv.Tablet != "" || pv.Phone != ""
}

// Resolve applies m to the values selected by the mode switch.
func Resolve(pv model.PropertyValue, m mapping.Mapping) Result {
	return ResolveWith(pv, m.Apply)
}

// ResolveWith is Resolve with an arbitrary value transform, letting callers
// chain unit validation ahead of the mapping. A nil transform is the
// identity.
func ResolveWith(pv model.PropertyValue, transform func(string) string) Result {
	if transform == nil {
		transform = identity
	}
	if !IsResponsive(pv) {
		return Result{Mode: ModeSingle, Value: transform(pv.Default)}
	}
	return Result{
		Mode: ModeResponsive,
		PerBreakpoint: &Breakpoints{
			Desktop: transform(pv.Default),
			Tablet:  transform(pv.Tablet),
			Phone:   transform(pv.Phone),
		},
	}
}

func identity(value string) string {
	return value
}
