// Package attrs reads field variants out of the host builder's attribute
// bag.
//
// For a field "divider_weight" the bag may hold:
//
//	divider_weight                  desktop value
//	divider_weight_tablet           tablet value
//	divider_weight_phone            phone value
//	divider_weight_last_edited      "on|tablet", "off|desktop" or a bare device
//	divider_weight__hover           hover value
//	divider_weight__hover_enabled   "on|hover" / "off|desktop"
package attrs

import (
	"strings"

	"github.com/goliatone/go-stylegen/pkg/model"
)

// Key suffixes used by the builder.
const (
	SuffixTablet       = "_tablet"
	SuffixPhone        = "_phone"
	SuffixLastEdited   = "_last_edited"
	SuffixHover        = "__hover"
	SuffixHoverEnabled = "__hover_enabled"
)

// Key returns the attribute key holding field's value for device.
func Key(field string, device model.Device) string {
	switch device {
	case model.DeviceTablet:
		return field + SuffixTablet
	case model.DevicePhone:
		return field + SuffixPhone
	default:
		return field
	}
}

// Property extracts the PropertyValue of field from bag.
func Property(bag model.Attributes, field string) model.PropertyValue {
	pv := model.PropertyValue{
		Default:          bag[Key(field, model.DeviceDesktop)],
		Tablet:           bag[Key(field, model.DeviceTablet)],
		Phone:            bag[Key(field, model.DevicePhone)],
		LastEditedDevice: LastEdited(bag[field+SuffixLastEdited]),
	}
	if HoverEnabled(bag, field) {
		pv.HoverValue = bag[field+SuffixHover]
	}
	return pv
}

// LastEdited parses a last-edited marker. A leading "off" segment disables
// responsive mode; "on" without a device means desktop.
func LastEdited(raw string) model.Device {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return model.DeviceNone
	}
	head, tail, hasTail := strings.Cut(trimmed, "|")
	switch strings.ToLower(strings.TrimSpace(head)) {
	case "off":
		return model.DeviceNone
	case "on":
		if !hasTail {
			return model.DeviceDesktop
		}
		if device := model.ParseDevice(tail); device != model.DeviceNone {
			return device
		}
		return model.DeviceDesktop
	}
	return model.ParseDevice(head)
}

// HoverEnabled reports whether field's hover value should be honoured. A
// missing enable marker leaves the hover value in effect.
func HoverEnabled(bag model.Attributes, field string) bool {
	marker, ok := bag[field+SuffixHoverEnabled]
	if !ok {
		return true
	}
	head, _, _ := strings.Cut(strings.TrimSpace(marker), "|")
	return strings.EqualFold(strings.TrimSpace(head), "on")
}

// Set stores pv into bag under field's keys, omitting empty variants. It is
// the inverse of Property and is used by tooling that assembles bags.
func Set(bag model.Attributes, field string, pv model.PropertyValue) {
	if bag == nil {
		return
	}
	put := func(key, value string) {
		if value != "" {
			bag[key] = value
		}
	}
	for _, device := range model.Devices {
		put(Key(field, device), pv.ForDevice(device))
	}
	if pv.LastEditedDevice != model.DeviceNone {
		bag[field+SuffixLastEdited] = "on|" + string(pv.LastEditedDevice)
	}
	if pv.HoverValue != "" {
		bag[field+SuffixHover] = pv.HoverValue
		bag[field+SuffixHoverEnabled] = "on|hover"
	}
}
