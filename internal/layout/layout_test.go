package layout

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/frontctl/internal/action"
	"github.com/dshills/frontctl/internal/node"
)

const sample = `
tag: app
id: root
bounds: [0, 0, 80, 24]
attrs:
  data-theme: dark
children:
  - tag: menu
    id: menu
    bounds: [0, 0, 80, 3]
    children:
      - tag: button
        id: open
        label: Open
        bounds: [2, 1, 12, 2]
        actions: menu.open menu.track
        params:
          menu.open: {name: file, recent: [a, b]}
  - tag: input
    id: search
    bounds: [0, 3, 80, 4]
    actions: form.submit
`

func TestParse(t *testing.T) {
	root, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if root.Tag() != "app" || root.ID() != "root" {
		t.Errorf("root = %s", root.Path())
	}
	if v, _ := root.Attribute("data-theme"); v != "dark" {
		t.Errorf("data-theme = %q", v)
	}
	if root.Bounds() != (node.Rect{Left: 0, Top: 0, Right: 80, Bottom: 24}) {
		t.Errorf("bounds = %+v", root.Bounds())
	}

	open := root.FindByID("open")
	if open == nil {
		t.Fatal("open button not found")
	}
	if open.Path() != "app#root > menu#menu > button#open" {
		t.Errorf("path = %q", open.Path())
	}
	if v, _ := open.Attribute(AttrLabel); v != "Open" {
		t.Errorf("label = %q", v)
	}

	ds := action.ParseActions(open)
	if action.Format(ds) != "menu.open menu.track" {
		t.Errorf("actions = %v", ds)
	}

	set, err := action.ParseParams(open)
	if err != nil {
		t.Fatalf("ParseParams() error = %v", err)
	}
	p := set.For(action.Descriptor{ControllerID: "menu", Action: "open"})
	if p.Get("name").String() != "file" || p.Get("recent.1").String() != "b" {
		t.Errorf("params = %s", p.Raw())
	}

	if hit := root.HitTest(5, 1); hit != open {
		t.Errorf("HitTest(5, 1) = %v, want open", hit)
	}
	if hit := root.HitTest(5, 3); hit == nil || hit.ID() != "search" {
		t.Errorf("HitTest(5, 3) = %v, want search", hit)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"not yaml", "tag: [app"},
		{"missing tag", "id: root"},
		{"child missing tag", "tag: app\nchildren:\n  - id: x\n"},
		{"short bounds", "tag: app\nbounds: [0, 0, 1]\n"},
		{"bad params key", "tag: app\nparams:\n  menu: {a: 1}\n"},
		{"dotted params key", "tag: app\nparams:\n  a.b.c: {a: 1}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.src)); !errors.Is(err, ErrInvalidLayout) {
				t.Errorf("err = %v, want ErrInvalidLayout", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	root, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(root.Children()) != 2 {
		t.Errorf("children = %d", len(root.Children()))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing: err = %v", err)
	}
}

func TestLintClean(t *testing.T) {
	root, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}

	issues := Lint(root, map[string]bool{"menu": true, "form": true})
	if len(issues) != 0 {
		t.Errorf("issues = %v", issues)
	}
}

func TestLint(t *testing.T) {
	root := node.NewElement("app")
	root.SetAttribute("id", "root")

	odd := root.AppendChild(node.NewElement("button"))
	odd.SetAttribute(action.AttrActions, "menu.open stray")

	badParams := root.AppendChild(node.NewElement("button"))
	badParams.SetAttribute(action.AttrActions, "menu.open")
	badParams.SetAttribute(action.AttrParams, `{"menu.open":`)

	unused := root.AppendChild(node.NewElement("button"))
	unused.SetAttribute(action.AttrActions, "ghost.boo")
	unused.SetAttribute(action.AttrParams, `{"menu.close": {}}`)

	issues := Lint(root, map[string]bool{"menu": true})

	var lines []string
	for _, i := range issues {
		lines = append(lines, string(i.Severity)+" "+i.Attribute)
	}
	want := []string{
		"warning " + action.AttrActions,
		"error " + action.AttrParams,
		"error " + action.AttrActions,
		"warning " + action.AttrParams,
	}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("issues = %v, want %v", lines, want)
	}
	if !HasErrors(issues) {
		t.Error("HasErrors() = false")
	}
	if !strings.Contains(issues[2].String(), `unknown controller "ghost"`) {
		t.Errorf("issue = %s", issues[2])
	}
}

func TestLintWithoutKnownControllers(t *testing.T) {
	root := node.NewElement("app")
	root.SetAttribute(action.AttrActions, "anything.goes")

	if issues := Lint(root, nil); len(issues) != 0 {
		t.Errorf("issues = %v", issues)
	}
}
