package compiler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-stylegen/pkg/declaration"
	"github.com/goliatone/go-stylegen/pkg/mapping"
	"github.com/goliatone/go-stylegen/pkg/model"
	"github.com/goliatone/go-stylegen/pkg/stylesheet"
	"github.com/goliatone/go-stylegen/pkg/units"
)

const slug = "et_pb_divider_0"

func dividerWeight() model.FieldDescriptor {
	return model.FieldDescriptor{
		Name:         "divider_weight",
		CSSProperty:  "border-top-width",
		Selector:     "%%order_class%%:before",
		Type:         model.FieldTypeRange,
		AllowedUnits: units.Pixels,
	}
}

func TestField_ResponsiveModeWinsButEmptiesSkip(t *testing.T) {
	bag := model.Attributes{
		"divider_weight":             "3px",
		"divider_weight_tablet":      "",
		"divider_weight_phone":       "",
		"divider_weight_last_edited": "tablet",
	}

	got := New().Field(slug, dividerWeight(), bag)

	want := []model.StyleRule{{
		Selector:    ".et_pb_divider_0:before",
		Declaration: "border-top-width: 3px;",
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
	for _, rule := range got {
		if rule.MediaQuery == model.MediaMaxWidth980 || rule.MediaQuery == model.MediaMaxWidth767 {
			t.Fatalf("empty breakpoint emitted a rule: %+v", rule)
		}
	}
}

func TestField_SingleModeIgnoresStaleBreakpoints(t *testing.T) {
	bag := model.Attributes{
		"divider_weight":        "3px",
		"divider_weight_tablet": "9px",
		"divider_weight_phone":  "8px",
	}

	got := New().Field(slug, dividerWeight(), bag)
	if len(got) != 1 || got[0].MediaQuery != model.MediaNone || got[0].Declaration != "border-top-width: 3px;" {
		t.Fatalf("single mode must only emit the default, got %+v", got)
	}
}

func TestField_ResponsiveBreakpoints(t *testing.T) {
	bag := model.Attributes{
		"divider_weight":             "3px",
		"divider_weight_tablet":      "2vw",
		"divider_weight_phone":       "1px",
		"divider_weight_last_edited": "on|phone",
	}

	got := New().Field(slug, dividerWeight(), bag)
	want := []model.StyleRule{
		{Selector: ".et_pb_divider_0:before", Declaration: "border-top-width: 3px;"},
		{Selector: ".et_pb_divider_0:before", Declaration: "border-top-width: 2;", MediaQuery: model.MediaMaxWidth980},
		{Selector: ".et_pb_divider_0:before", Declaration: "border-top-width: 1px;", MediaQuery: model.MediaMaxWidth767},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
}

func TestField_HoverRule(t *testing.T) {
	field := model.FieldDescriptor{
		Name:          "button_text_color",
		CSSProperty:   "color",
		Selector:      "%%order_class%%.et_pb_button",
		HoverSelector: "%%order_class%%.et_pb_button:hover",
		Type:          model.FieldTypeColor,
		Important:     true,
	}
	bag := model.Attributes{
		"button_text_color":                "#000",
		"button_text_color__hover":         "#fff",
		"button_text_color__hover_enabled": "on|hover",
	}

	got := New().Field("et_pb_button_0", field, bag)
	want := []model.StyleRule{
		{Selector: ".et_pb_button_0.et_pb_button", Declaration: "color: #000 !important;"},
		{Selector: ".et_pb_button_0.et_pb_button:hover", Declaration: "color: #fff !important;"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
}

func TestField_ShorthandPadding(t *testing.T) {
	field := model.FieldDescriptor{
		Name:          "custom_padding",
		CSSProperty:   "padding",
		Selector:      "%%order_class%%",
		HoverSelector: "%%order_class%%:hover",
		Type:          model.FieldTypePadding,
		AllowedUnits:  units.Pixels,
	}
	bag := model.Attributes{
		"custom_padding":             "10px|20px|10px|20px",
		"custom_padding_phone":       "5px||5vw|",
		"custom_padding_last_edited": "on|phone",
		"custom_padding__hover":      "1px|1px|1px|1px|on|on",
	}

	got := New().Field("row_1", field, bag)
	want := []model.StyleRule{
		{Selector: ".row_1", Declaration: "padding: 10px 20px 10px 20px;"},
		{Selector: ".row_1", Declaration: "padding-top: 5px; padding-bottom: 5;", MediaQuery: model.MediaMaxWidth767},
		{Selector: ".row_1:hover", Declaration: "padding: 1px 1px 1px 1px !important;"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
}

func TestField_MappingMissSkips(t *testing.T) {
	field := model.FieldDescriptor{
		Name:        "text_orientation",
		CSSProperty: "text-align",
		Selector:    "%%order_class%%",
		Type:        model.FieldTypeAlign,
		Mapping:     mapping.TextAlign(),
	}

	if got := New().Field(slug, field, model.Attributes{"text_orientation": "diagonal"}); len(got) != 0 {
		t.Fatalf("unknown mapping key must not emit, got %+v", got)
	}
	got := New().Field(slug, field, model.Attributes{"text_orientation": "justified"})
	if len(got) != 1 || got[0].Declaration != "text-align: justify;" {
		t.Fatalf("mapped value not emitted: %+v", got)
	}
}

func TestField_DefaultValueSkipped(t *testing.T) {
	one := 1
	field := dividerWeight()
	field.DefaultUnitValue = &one

	if got := New().Field(slug, field, model.Attributes{"divider_weight": "1px"}); len(got) != 0 {
		t.Fatalf("default value must not emit in single mode, got %+v", got)
	}

	bag := model.Attributes{"divider_weight": "1px", "divider_weight_phone": "1px", "divider_weight_last_edited": "on|phone"}
	if got := New().Field(slug, field, bag); len(got) != 2 {
		t.Fatalf("responsive mode keeps default-equal values, got %+v", got)
	}
}

func TestField_IncompleteDescriptor(t *testing.T) {
	field := dividerWeight()
	field.Selector = ""
	if got := New().Field(slug, field, model.Attributes{"divider_weight": "3px"}); got != nil {
		t.Fatalf("incomplete descriptor should not emit, got %+v", got)
	}
}

func TestField_StrictPolicySkipsUnsafeValues(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := New(WithPolicy(declaration.PolicyStrict), WithLogger(zap.New(core)))

	field := model.FieldDescriptor{
		Name:        "title_color",
		CSSProperty: "color",
		Selector:    "%%order_class%% h2",
		Type:        model.FieldTypeColor,
	}
	if got := c.Field(slug, field, model.Attributes{"title_color": "red;} body{display:none"}); len(got) != 0 {
		t.Fatalf("strict policy must skip unsafe values, got %+v", got)
	}
	if got := c.Field(slug, field, model.Attributes{"title_color": "notacolour"}); len(got) != 0 {
		t.Fatalf("strict policy must skip unparseable colours, got %+v", got)
	}
	if logs.FilterField(zap.String("reason", reasonUnsafe)).Len() != 2 {
		t.Fatalf("expected two unsafe skips logged, got %d", logs.FilterField(zap.String("reason", reasonUnsafe)).Len())
	}

	lenient := New()
	if got := lenient.Field(slug, field, model.Attributes{"title_color": "notacolour"}); len(got) != 1 {
		t.Fatalf("lenient policy keeps values as stored, got %+v", got)
	}
	if c.Policy() != declaration.PolicyStrict || lenient.Policy() != declaration.PolicyLenient {
		t.Fatalf("unexpected policies")
	}
}

func TestField_Idempotent(t *testing.T) {
	c := New()
	bag := model.Attributes{"divider_weight": "3px"}
	first := c.Field(slug, dividerWeight(), bag)
	second := c.Field(slug, dividerWeight(), bag)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("compilation not deterministic (-first +second):\n%s", diff)
	}
}

func TestCompileModule_AppendsToSheet(t *testing.T) {
	module := model.Module{
		Name: "button",
		Fields: []model.FieldDescriptor{
			{
				Name:        "button_text_size",
				CSSProperty: "font-size",
				Selector:    "%%order_class%%",
				Type:        model.FieldTypeRange,
			},
		},
		IconOffsets: []model.IconOffsetDescriptor{{
			Name:         "icon_offset",
			TriggerField: "button_icon",
			DefaultSizes: map[string]string{"arrow": "16px"},
			Increment:    4,
			AllowedUnits: units.Pixels,
			Template:     "0 -#px 0 0",
			CSSProperty:  "margin",
			Selector:     "%%order_class%%:hover:after",
		}},
	}
	bag := model.Attributes{"button_text_size": "20px", "button_icon": "arrow"}

	sheet := stylesheet.New()
	emitted := New().CompileModule(sheet, "et_pb_button_0", module, bag)
	New().CompileField(sheet, "et_pb_text_0", model.FieldDescriptor{
		Name: "x", CSSProperty: "color", Selector: "%%order_class%%",
	}, model.Attributes{"x": "red"})

	want := []model.StyleRule{
		{Selector: ".et_pb_button_0", Declaration: "font-size: 20px;"},
		{Selector: ".et_pb_button_0:hover:after", Declaration: "margin: 0 -20px 0 0;"},
	}
	if diff := cmp.Diff(want, emitted); diff != "" {
		t.Fatalf("emitted mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, sheet.Flush("et_pb_button_0")); diff != "" {
		t.Fatalf("sheet mismatch (-want +got):\n%s", diff)
	}
	if n := sheet.Len("et_pb_text_0"); n != 1 {
		t.Fatalf("other slug should keep its rule, got %d", n)
	}
}

func TestIconOffset_TemplateErrorLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := New(WithLogger(zap.New(core)))
	desc := model.IconOffsetDescriptor{
		Name:         "bad",
		TriggerField: "icon",
		DefaultSizes: map[string]string{"a": "1px"},
		Template:     "no placeholder",
		CSSProperty:  "margin",
		Selector:     ".x",
	}
	if got := c.IconOffset(slug, desc, model.Attributes{"icon": "a"}); got != nil {
		t.Fatalf("expected no rules, got %+v", got)
	}
	if logs.FilterMessage("Skipping icon offset").Len() != 1 {
		t.Fatalf("expected template error to be logged")
	}
}

func TestSelector(t *testing.T) {
	if got := Selector(" %%order_class%% .a, %%order_class%%:hover ", "s_0"); got != ".s_0 .a, .s_0:hover" {
		t.Fatalf("Selector: got %q", got)
	}
	if got := Selector("%%order_class%%", ""); got != "%%order_class%%" {
		t.Fatalf("empty slug must leave selector untouched, got %q", got)
	}
}

func TestField_BlankMappingResultSkips(t *testing.T) {
	cases := []struct {
		name  string
		field model.FieldDescriptor
		bag   model.Attributes
	}{
		{
			name: "Value",
			field: model.FieldDescriptor{
				Name:          "vis",
				CSSProperty:   "display",
				Selector:      ".a",
				HoverSelector: ".a:hover",
				Type:          model.FieldTypeStyle,
				Mapping:       mapping.FromTable(map[string]string{"off": " "}),
			},
			bag: model.Attributes{"vis": "off", "vis__hover": "off"},
		},
		{
			name: "Shorthand",
			field: model.FieldDescriptor{
				Name:          "gap",
				CSSProperty:   "padding",
				Selector:      ".a",
				HoverSelector: ".a:hover",
				Type:          model.FieldTypePadding,
				Mapping:       mapping.FromFunc(func(string) string { return "\t " }),
			},
			bag: model.Attributes{"gap": "1px|1px|1px|1px", "gap__hover": "2px|2px|2px|2px"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := New().Field(slug, tc.field, tc.bag); len(got) != 0 {
				t.Fatalf("blank mapping result must not emit, got %+v", got)
			}
		})
	}
}

func TestField_StrictHoverMappingMissIsEmpty(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	c := New(WithPolicy(declaration.PolicyStrict), WithLogger(zap.New(core)))

	field := model.FieldDescriptor{
		Name:          "accent",
		CSSProperty:   "color",
		Selector:      "%%order_class%%",
		HoverSelector: "%%order_class%%:hover",
		Type:          model.FieldTypeColor,
		Mapping:       mapping.FromTable(map[string]string{"brand": "#123456"}),
	}
	got := c.Field(slug, field, model.Attributes{"accent": "brand", "accent__hover": "missing"})

	want := []model.StyleRule{{Selector: "." + slug, Declaration: "color: #123456;"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
	if n := logs.FilterField(zap.String("reason", reasonUnsafe)).Len(); n != 0 {
		t.Fatalf("mapping miss logged as unsafe %d times", n)
	}
	if n := logs.FilterMessage("Skipping hover").FilterField(zap.String("reason", reasonEmpty)).Len(); n != 1 {
		t.Fatalf("expected one empty hover skip, got %d", n)
	}
}
