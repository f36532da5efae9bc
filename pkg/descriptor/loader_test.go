package descriptor_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/multierr"

	"github.com/goliatone/go-stylegen/pkg/defaults"
	"github.com/goliatone/go-stylegen/pkg/descriptor"
	"github.com/goliatone/go-stylegen/pkg/mapping"
	"github.com/goliatone/go-stylegen/pkg/model"
)

func TestLoadFS_YAML(t *testing.T) {
	fsys := fstest.MapFS{
		"divider.yaml": {Data: []byte(`
modules:
  divider:
    fields:
      - name: divider_weight
        cssProperty: border-top-width
        selector: "%%order_class%%:before"
        type: range
        allowedUnits: pixels
        defaultUnitValue: 1
      - name: color
        cssProperty: border-top-color
        selector: "%%order_class%%:before"
        type: color
        mapping: color-hex
`)},
	}

	store, err := descriptor.LoadFS(fsys, nil)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if diff := cmp.Diff([]string{"divider"}, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	module, ok := store.Module("divider")
	if !ok {
		t.Fatalf("divider not loaded")
	}
	if got := len(module.Fields); got != 2 {
		t.Fatalf("expected 2 fields, got %d", got)
	}
	weight := module.Fields[0]
	if weight.Name != "divider_weight" || weight.Type != model.FieldTypeRange {
		t.Fatalf("field order or type lost: %+v", weight)
	}
	if diff := cmp.Diff([]string{"px"}, weight.AllowedUnits); diff != "" {
		t.Fatalf("units mismatch (-want +got):\n%s", diff)
	}
	if weight.DefaultUnitValue == nil || *weight.DefaultUnitValue != 1 {
		t.Fatalf("default unit value not parsed: %v", weight.DefaultUnitValue)
	}
	if got := module.Fields[1].Mapping.Name(); got != mapping.NameColorHex {
		t.Fatalf("named mapping not resolved: %q", got)
	}
	if store.Source("divider") != "divider.yaml" {
		t.Fatalf("source mismatch: %q", store.Source("divider"))
	}
}

func TestLoadFS_JSONInlineTable(t *testing.T) {
	fsys := fstest.MapFS{
		"text.json": {Data: []byte(`{"modules":{"text":{"fields":[
			{"name":"show","cssProperty":"display","selector":".a","mapping":{"on":"block","off":"none"}}
		]}}}`)},
	}

	store, err := descriptor.LoadFS(fsys, nil)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	module, _ := store.Module("text")
	field := module.Fields[0]
	if field.Type != model.FieldTypeInput {
		t.Fatalf("missing type should default to input, got %q", field.Type)
	}
	if diff := cmp.Diff(map[string]string{"on": "block", "off": "none"}, field.Mapping.Table()); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_Decorators(t *testing.T) {
	fsys := fstest.MapFS{
		"text.yaml": {Data: []byte(`
modules:
  text:
    fields:
      - name: text_orientation
        cssProperty: text-align
        selector: "%%order_class%%"
        type: align
`)},
	}

	var seen []string
	record := model.DecoratorFunc(func(module *model.Module) error {
		seen = append(seen, module.Name)
		return nil
	})

	store, err := descriptor.LoadFS(fsys, nil, defaults.NewRegistry(), nil, record)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	module, _ := store.Module("text")
	if got := module.Fields[0].Mapping.Apply("justified"); got != "justify" {
		t.Fatalf("defaults decorator not applied, got %q", got)
	}
	if diff := cmp.Diff([]string{"text"}, seen); diff != "" {
		t.Fatalf("decorator calls mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_AggregatesErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte(`
modules:
  broken:
    fields:
      - name: ""
        cssProperty: color
        selector: ".a"
      - name: width
        cssProperty: width
        selector: ".a"
        type: slider
      - name: weight
        cssProperty: font-weight
        selector: ".a"
        mapping: nope
    iconOffsets:
      - name: offset
        triggerField: icon
        cssProperty: margin
        selector: ".a"
        template: "0 0 0 0"
`)},
		"b.yaml":     {Data: []byte("   ")},
		"notes.txt":  {Data: []byte("ignored")},
		"dup1.yaml":  {Data: []byte("modules:\n  same:\n    fields: []\n")},
		"dup2.json":  {Data: []byte(`{"modules":{"same":{"fields":[]}}}`)},
		"units.yaml": {Data: []byte("modules:\n  u:\n    fields:\n      - {name: w, cssProperty: width, selector: .a, allowedUnits: parsecs}\n")},
	}

	store, err := descriptor.LoadFS(fsys, nil)
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
	if store != nil {
		t.Fatalf("store must be nil on error")
	}

	errs := multierr.Errors(err)
	if len(errs) != 7 {
		t.Fatalf("expected 7 errors, got %d: %v", len(errs), err)
	}
	for _, want := range []string{
		"missing name",
		`unknown type "slider"`,
		`mapping: "nope" not found`,
		"exactly one placeholder",
		"b.yaml is empty",
		`duplicate module "same"`,
		`unknown unit set "parsecs"`,
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestLoadFS_Nil(t *testing.T) {
	store, err := descriptor.LoadFS(nil, nil)
	if err != nil || !store.Empty() {
		t.Fatalf("nil fs should give an empty store, got %v %v", store, err)
	}
	var missing *descriptor.Store
	if _, ok := missing.Module("x"); ok || missing.Names() != nil {
		t.Fatalf("nil store should be empty")
	}
}

func TestEmbeddedFS(t *testing.T) {
	store, err := descriptor.LoadFS(descriptor.EmbeddedFS(), nil, defaults.NewRegistry())
	if err != nil {
		t.Fatalf("LoadFS(embedded): %v", err)
	}
	if diff := cmp.Diff([]string{"button", "divider", "text"}, store.Names()); diff != "" {
		t.Fatalf("bundled modules mismatch (-want +got):\n%s", diff)
	}
	button, _ := store.Module("button")
	if len(button.IconOffsets) != 1 || button.IconOffsets[0].TriggerField != "button_icon_placement" {
		t.Fatalf("icon offset not loaded: %+v", button.IconOffsets)
	}
}
