package iconoffset

import (
	"errors"
	"strings"

	"github.com/goliatone/go-stylegen/pkg/attrs"
	"github.com/goliatone/go-stylegen/pkg/model"
	"github.com/goliatone/go-stylegen/pkg/responsive"
)

// Resolve computes desc's offset for every breakpoint the trigger (or size)
// property selects. Each breakpoint resolves on its own: its trigger value
// picks a default size, which the size field's value at that breakpoint
// overrides. A field in single mode contributes its desktop value to every
// breakpoint. Breakpoints without a trigger or a numeric size yield nothing.
// Only template errors are returned.
func Resolve(desc model.IconOffsetDescriptor, bag model.Attributes) ([]responsive.Scoped, error) {
	trigger := attrs.Property(bag, desc.TriggerField)
	var size model.PropertyValue
	if desc.SizeField != "" {
		size = attrs.Property(bag, desc.SizeField)
	}

	devices := []model.Device{model.DeviceDesktop}
	if responsive.IsResponsive(trigger) || responsive.IsResponsive(size) {
		devices = model.Devices
	}

	out := make([]responsive.Scoped, 0, len(devices))
	triggers := effective(trigger)
	sizes := effective(size)
	for _, device := range devices {
		current := triggers.Get(device)
		if current == "" {
			continue
		}
		sizeValue := sizes.Get(device)
		if sizeValue == "" {
			sizeValue = desc.DefaultSizes[current]
		}
		if sizeValue == "" {
			continue
		}
		value, err := Compute(sizeValue, desc.Increment, desc.AllowedUnits, desc.Template)
		if errors.Is(err, ErrSize) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, responsive.Scoped{
			Device:     device,
			MediaQuery: model.MediaFor(device, false),
			Value:      value,
		})
	}
	return out, nil
}

// effective runs pv through the mode switch, spreading a single-mode value
// over all breakpoints.
func effective(pv model.PropertyValue) responsive.Breakpoints {
	result := responsive.ResolveWith(pv, strings.TrimSpace)
	if result.Mode == responsive.ModeSingle || result.PerBreakpoint == nil {
		return responsive.Breakpoints{Desktop: result.Value, Tablet: result.Value, Phone: result.Value}
	}
	return *result.PerBreakpoint
}
