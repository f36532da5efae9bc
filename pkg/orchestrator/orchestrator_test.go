package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-stylegen/pkg/declaration"
	"github.com/goliatone/go-stylegen/pkg/model"
	"github.com/goliatone/go-stylegen/pkg/orchestrator"
	"github.com/goliatone/go-stylegen/pkg/render"
	"github.com/goliatone/go-stylegen/pkg/stylesheet"
	"github.com/goliatone/go-stylegen/pkg/testsupport"
)

func TestOrchestrator_BundledDivider(t *testing.T) {
	t.Parallel()

	orch := orchestrator.New()
	if err := orch.Err(); err != nil {
		t.Fatalf("init: %v", err)
	}
	bag := testsupport.MustLoadAttributes(t, "testdata/divider.yaml")

	cases := []struct {
		name     string
		renderer string
	}{
		{name: "DefaultRenderer", renderer: ""},
		{name: "ExplicitCSS", renderer: render.NameCSS},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out, err := orch.Generate(testsupport.Context(), orchestrator.Request{
				Module:     "divider",
				Slug:       "et_pb_divider_0",
				Attributes: bag,
				Renderer:   tc.renderer,
			})
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			testsupport.AssertGoldenString(t, "testdata/divider.css.golden", string(out))
		})
	}
}

func TestOrchestrator_StyleTag(t *testing.T) {
	t.Parallel()

	orch := orchestrator.New()
	out, err := orch.Generate(testsupport.Context(), orchestrator.Request{
		Module:     "divider",
		Attributes: model.Attributes{"color": "red"},
		Renderer:   render.NameStyleTag,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(string(out), `<style id="divider_0-styles">`) {
		t.Fatalf("default slug not used: %q", out)
	}
	if !strings.Contains(string(out), ".divider_0:before { border-top-color: red; }") {
		t.Fatalf("rule missing: %q", out)
	}
}

func TestOrchestrator_TransformerAndSharedSheet(t *testing.T) {
	t.Parallel()

	presets, err := orchestrator.NewPresetTransformerFromFS(fstest.MapFS{
		"presets.yaml": {Data: []byte("modules:\n  divider:\n    color: blue\n    height: 5px\nrename:\n  divider_color: color\n")},
	}, "presets.yaml")
	if err != nil {
		t.Fatalf("presets: %v", err)
	}
	orch := orchestrator.New(
		orchestrator.WithTransformer(presets),
		orchestrator.WithPolicy(declaration.PolicyStrict),
	)

	input := model.Attributes{"divider_color": "#000"}
	sheet := stylesheet.New()
	sheet.AddRule("other_0", model.StyleRule{Selector: ".other_0", Declaration: "color: red;"})

	rules, err := orch.Compile(testsupport.Context(), orchestrator.Request{
		Module:     "divider",
		Slug:       "d_1",
		Attributes: input,
		Sheet:      sheet,
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	want := []model.StyleRule{
		{Selector: ".d_1:before", Declaration: "border-top-color: #000;"},
		{Selector: ".d_1", Declaration: "height: 5px;"},
	}
	if diff := cmp.Diff(want, rules); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
	if _, touched := input["color"]; touched {
		t.Fatalf("request attributes must not be mutated")
	}
	if sheet.Len("d_1") != 0 || sheet.Len("other_0") != 1 {
		t.Fatalf("only the request slug should be flushed")
	}
}

func TestOrchestrator_CustomModules(t *testing.T) {
	t.Parallel()

	custom := model.Module{
		Name: "spacer",
		Fields: []model.FieldDescriptor{{
			Name: "gap", CSSProperty: "margin", Selector: "%%order_class%%", Type: model.FieldTypeMargin,
		}},
	}
	orch := orchestrator.New(orchestrator.WithModulesFS(nil), orchestrator.WithModules(custom))

	if diff := cmp.Diff([]string{"spacer"}, orch.Modules()); diff != "" {
		t.Fatalf("modules mismatch (-want +got):\n%s", diff)
	}
	rules, err := orch.Compile(testsupport.Context(), orchestrator.Request{
		Module:     "spacer",
		Attributes: model.Attributes{"gap": "1px||3px|"},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	want := []model.StyleRule{{Selector: ".spacer_0", Declaration: "margin-top: 1px; margin-bottom: 3px;"}}
	if diff := cmp.Diff(want, rules); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_Errors(t *testing.T) {
	t.Parallel()

	orch := orchestrator.New()
	ctx := testsupport.Context()

	if _, err := orch.Compile(ctx, orchestrator.Request{}); err == nil {
		t.Fatalf("expected missing module error")
	}
	if _, err := orch.Compile(ctx, orchestrator.Request{Module: "carousel"}); err == nil {
		t.Fatalf("expected unknown module error")
	}
	if _, err := orch.Generate(ctx, orchestrator.Request{Module: "divider", Renderer: "pdf"}); err == nil {
		t.Fatalf("expected unknown renderer error")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := orch.Compile(cancelled, orchestrator.Request{Module: "divider"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	failing := orchestrator.New(orchestrator.WithTransformer(orchestrator.TransformerFunc(
		func(context.Context, model.Module, model.Attributes) error { return errors.New("boom") },
	)))
	if _, err := failing.Compile(ctx, orchestrator.Request{Module: "divider"}); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected transformer error, got %v", err)
	}

	broken := orchestrator.New(orchestrator.WithModulesFS(fstest.MapFS{"bad.yaml": {Data: []byte("modules: [")}}))
	if broken.Err() == nil {
		t.Fatalf("expected descriptor load error")
	}
	if _, err := broken.Compile(ctx, orchestrator.Request{Module: "divider"}); err == nil {
		t.Fatalf("initialisation error should surface on Compile")
	}
}

func TestOrchestrator_ThemeTokens(t *testing.T) {
	t.Parallel()

	modules := fstest.MapFS{"banner.yaml": {Data: []byte(`modules:
  banner:
    fields:
      - name: background
        cssProperty: background-color
        selector: "%%order_class%%"
        type: input
        mapping: tokens
`)}}
	manifest := &theme.Manifest{Name: "acme", Tokens: map[string]string{"brand": "#123456"}}
	orch := orchestrator.New(orchestrator.WithModulesFS(modules), orchestrator.WithTheme(manifest))
	if err := orch.Err(); err != nil {
		t.Fatalf("init: %v", err)
	}

	rules, err := orch.Compile(testsupport.Context(), orchestrator.Request{
		Module:     "banner",
		Attributes: model.Attributes{"background": "brand"},
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	want := []model.StyleRule{{Selector: ".banner_0", Declaration: "background-color: #123456;"}}
	if diff := cmp.Diff(want, rules); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}

	withoutTheme := orchestrator.New(orchestrator.WithModulesFS(modules))
	if withoutTheme.Err() == nil {
		t.Fatalf("expected unknown mapping error without a theme")
	}
}
