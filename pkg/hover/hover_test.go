package hover

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-stylegen/pkg/declaration"
	"github.com/goliatone/go-stylegen/pkg/mapping"
	"github.com/goliatone/go-stylegen/pkg/model"
)

func TestResolve_EmptyHoverYieldsNil(t *testing.T) {
	if rule := Resolve(model.PropertyValue{HoverValue: ""}, ".a:hover", "color", true); rule != nil {
		t.Fatalf("expected nil rule, got %+v", rule)
	}
}

func TestResolve_EmitsOnHoverSelector(t *testing.T) {
	sel := ".et_pb_button_0:hover"
	rule := Resolve(model.PropertyValue{Default: "#000", HoverValue: "#fff"}, sel, "color", true)

	want := &model.StyleRule{Selector: sel, Declaration: "color: #fff !important;"}
	if diff := cmp.Diff(want, rule); diff != "" {
		t.Fatalf("rule mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_RequiresSelector(t *testing.T) {
	if rule := Resolve(model.PropertyValue{HoverValue: "#fff"}, "  ", "color", false); rule != nil {
		t.Fatalf("expected nil rule without a hover selector, got %+v", rule)
	}
}

func TestResolveWith_MappingMissSkips(t *testing.T) {
	table := mapping.FromTable(map[string]string{"bold": "700"})
	rule, err := ResolveWith(model.PropertyValue{HoverValue: "heavy"}, ".a:hover", "font-weight", false, Options{
		Transform: table.Apply,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if rule != nil {
		t.Fatalf("mapping miss should not emit, got %+v", rule)
	}
}

func TestResolveWith_Shorthand(t *testing.T) {
	rule, err := ResolveWith(model.PropertyValue{HoverValue: "1px|2px|3px|4px"}, ".a:hover", "padding", false, Options{
		Shorthand: true,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if rule == nil || rule.Declaration != "padding: 1px 2px 3px 4px;" {
		t.Fatalf("unexpected shorthand hover rule: %+v", rule)
	}
}

func TestResolveWith_StrictRejects(t *testing.T) {
	_, err := ResolveWith(model.PropertyValue{HoverValue: "red;}"}, ".a:hover", "color", false, Options{
		Builder: declaration.New(declaration.PolicyStrict),
	})
	if !errors.Is(err, declaration.ErrUnsafeValue) {
		t.Fatalf("want ErrUnsafeValue, got %v", err)
	}
}
