package prompt

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-stylegen/pkg/attrs"
	"github.com/goliatone/go-stylegen/pkg/mapping"
	"github.com/goliatone/go-stylegen/pkg/model"
)

const unsetOption = "(unset)"

// Option configures Collect.
type Option func(*collector)

// WithoutResponsive skips the tablet/phone questions.
func WithoutResponsive() Option {
	return func(c *collector) {
		c.responsive = false
	}
}

// WithoutHover skips the hover questions.
func WithoutHover() Option {
	return func(c *collector) {
		c.hover = false
	}
}

// WithInitial seeds answers with an existing attribute bag; its values are
// offered as prompt defaults and kept when a field is left unanswered.
func WithInitial(bag model.Attributes) Option {
	return func(c *collector) {
		for key, value := range bag {
			c.bag[key] = value
		}
	}
}

type collector struct {
	driver     Driver
	bag        model.Attributes
	responsive bool
	hover      bool
}

// Collect walks module's fields and icon offset triggers, asking driver for
// each value, and returns the resulting attribute bag. Fields left blank are
// omitted. Answering tablet or phone values marks the field as edited on the
// last breakpoint given, which switches it to responsive mode.
func Collect(ctx context.Context, driver Driver, module model.Module, options ...Option) (model.Attributes, error) {
	if driver == nil {
		return nil, fmt.Errorf("prompt: driver is required")
	}
	c := &collector{
		driver:     driver,
		bag:        make(model.Attributes),
		responsive: true,
		hover:      true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if err := driver.Info(ctx, fmt.Sprintf("Configuring %s", module.Name)); err != nil {
		return nil, err
	}
	for _, field := range module.Fields {
		if err := c.field(ctx, field); err != nil {
			return nil, fmt.Errorf("prompt: field %q: %w", field.Name, err)
		}
	}
	for _, offset := range module.IconOffsets {
		if err := c.iconOffset(ctx, offset); err != nil {
			return nil, fmt.Errorf("prompt: icon offset %q: %w", offset.Name, err)
		}
	}
	return c.bag, nil
}

func (c *collector) field(ctx context.Context, field model.FieldDescriptor) error {
	current := attrs.Property(c.bag, field.Name)
	value, err := c.ask(ctx, field, field.Name, current.Default)
	if err != nil || value == "" {
		return err
	}
	pv := model.PropertyValue{Default: value}

	if c.responsive {
		ok, err := c.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Set tablet/phone values for %s?", field.Name),
			Default: current.LastEditedDevice != model.DeviceNone,
		})
		if err != nil {
			return err
		}
		if ok {
			if pv.Tablet, err = c.ask(ctx, field, attrs.Key(field.Name, model.DeviceTablet), current.Tablet); err != nil {
				return err
			}
			if pv.Phone, err = c.ask(ctx, field, attrs.Key(field.Name, model.DevicePhone), current.Phone); err != nil {
				return err
			}
			switch {
			case pv.Phone != "":
				pv.LastEditedDevice = model.DevicePhone
			case pv.Tablet != "":
				pv.LastEditedDevice = model.DeviceTablet
			}
		}
	}

	if c.hover && field.HoverSelector != "" {
		ok, err := c.driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Set a hover value for %s?", field.Name),
			Default: current.HoverValue != "",
		})
		if err != nil {
			return err
		}
		if ok {
			if pv.HoverValue, err = c.ask(ctx, field, field.Name+attrs.SuffixHover, current.HoverValue); err != nil {
				return err
			}
		}
	}

	clearField(c.bag, field.Name)
	attrs.Set(c.bag, field.Name, pv)
	return nil
}

func (c *collector) iconOffset(ctx context.Context, desc model.IconOffsetDescriptor) error {
	if _, seen := c.bag[desc.TriggerField]; seen || len(desc.DefaultSizes) == 0 {
		return nil
	}
	options := []string{unsetOption}
	for key := range desc.DefaultSizes {
		options = append(options, key)
	}
	sort.Strings(options[1:])

	idx, err := c.driver.Select(ctx, SelectConfig{
		Message: desc.TriggerField,
		Options: options,
	})
	if err != nil {
		return err
	}
	if idx > 0 && idx < len(options) {
		c.bag[desc.TriggerField] = options[idx]
	}
	return nil
}

// ask prompts for one value. Fields with a lookup table offer its keys as a
// select list; everything else is free text.
func (c *collector) ask(ctx context.Context, field model.FieldDescriptor, key, current string) (string, error) {
	if field.Mapping.Kind() == mapping.KindTable {
		return c.choose(ctx, field, key, current)
	}
	value, err := c.driver.Input(ctx, InputConfig{
		Message: key,
		Default: current,
		Help:    help(field),
	})
	return strings.TrimSpace(value), err
}

func (c *collector) choose(ctx context.Context, field model.FieldDescriptor, key, current string) (string, error) {
	keys := make([]string, 0)
	for k := range field.Mapping.Table() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	options := append([]string{unsetOption}, keys...)

	defaultIndex := 0
	for i, option := range options {
		if option == current {
			defaultIndex = i
		}
	}
	idx, err := c.driver.Select(ctx, SelectConfig{
		Message:      key,
		Options:      options,
		DefaultIndex: defaultIndex,
		Help:         help(field),
	})
	if err != nil || idx <= 0 || idx >= len(options) {
		return "", err
	}
	return options[idx], nil
}

func help(field model.FieldDescriptor) string {
	parts := []string{field.CSSProperty}
	if field.Type.IsShorthand() {
		parts = append(parts, "top|right|bottom|left")
	}
	if len(field.AllowedUnits) > 0 {
		parts = append(parts, "units: "+strings.Join(field.AllowedUnits, ", "))
	}
	return strings.Join(parts, "; ")
}

func clearField(bag model.Attributes, field string) {
	for _, suffix := range []string{"", attrs.SuffixTablet, attrs.SuffixPhone, attrs.SuffixLastEdited, attrs.SuffixHover, attrs.SuffixHoverEnabled} {
		delete(bag, field+suffix)
	}
}
