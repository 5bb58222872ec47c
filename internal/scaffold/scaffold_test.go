package scaffold

import (
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/miquelnez/extman/internal/manifest"
)

func TestNewDataDerivesTitle(t *testing.T) {
	d, err := NewData("acme/cool-widget", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if d.Title != "Cool Widget" {
		t.Errorf("Title = %q, want %q", d.Title, "Cool Widget")
	}
	if d.Version != "0.1.0" {
		t.Errorf("Version = %q, want 0.1.0", d.Version)
	}
}

func TestNewDataRejectsBareName(t *testing.T) {
	if _, err := NewData("widget", "", ""); err == nil {
		t.Error("NewData accepted a name without a vendor")
	}
	if _, err := NewData("acme/", "", ""); err == nil {
		t.Error("NewData accepted an empty package part")
	}
}

func TestGenerate(t *testing.T) {
	fsys := afero.NewMemMapFs()
	d, err := NewData("acme/widget", "Widget", "A widget.")
	if err != nil {
		t.Fatal(err)
	}

	result, err := Generate(fsys, d, "/out/widget")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", result.Warnings)
	}

	ext, err := manifest.ParseExtension(fsys, "/out/widget/extension.json")
	if err != nil {
		t.Fatalf("generated manifest does not parse: %v", err)
	}
	if ext.Name != "acme/widget" || ext.Title != "Widget" {
		t.Errorf("manifest = %q / %q, want acme/widget / Widget", ext.Name, ext.Title)
	}

	raw, err := afero.ReadFile(fsys, "/out/widget/extend.yaml")
	if err != nil {
		t.Fatalf("extend file missing: %v", err)
	}
	if !strings.Contains(string(raw), "acme/widget") {
		t.Error("extend file does not mention the extension name")
	}

	for _, dir := range []string{"/out/widget/migrations", "/out/widget/assets"} {
		ok, _ := afero.DirExists(fsys, dir)
		if !ok {
			t.Errorf("directory %s not created", dir)
		}
	}
}

func TestGenerateRefusesNonEmptyDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/out/widget/notes.txt", []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := NewData("acme/widget", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Generate(fsys, d, "/out/widget"); err == nil {
		t.Error("Generate wrote into a non-empty directory")
	}
}
