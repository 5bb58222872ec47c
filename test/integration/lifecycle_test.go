//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnableEndToEnd(t *testing.T) {
	h := newHost(t)
	h.installExtension(t, "acme/widget")

	if err := h.manager.Enable("acme/widget"); err != nil {
		t.Fatalf("Enable: %v", err)
	}

	if !h.tableExists(t, "fixture_items") {
		t.Error("migration did not create fixture_items")
	}

	published := filepath.Join(h.paths.PublicAssets(), "acme-widget", "app.css")
	if !exists(published) {
		t.Errorf("asset not published at %s", published)
	}

	raw, err := os.ReadFile(h.paths.Settings())
	if err != nil {
		t.Fatalf("settings file missing: %v", err)
	}
	if got := string(raw); !strings.Contains(got, "acme/widget") {
		t.Errorf("settings file does not record the extension:\n%s", got)
	}
}

func TestEnabledStateSurvivesRestart(t *testing.T) {
	h := newHost(t)
	h.installExtension(t, "acme/widget")

	if err := h.manager.Enable("acme/widget"); err != nil {
		t.Fatal(err)
	}

	h.wire(t)

	if !h.manager.IsEnabled("acme/widget") {
		t.Error("enabled state lost across rewiring")
	}
	d, err := h.registry.Get("acme/widget")
	if err != nil {
		t.Fatal(err)
	}
	if !d.Enabled {
		t.Error("fresh registry does not see the extension as enabled")
	}

	// Enabling again after the restart must not re-run the migration.
	if err := h.manager.Enable("acme/widget"); err != nil {
		t.Fatalf("re-enable after restart: %v", err)
	}
}

func TestDisableKeepsSchemaAndAssets(t *testing.T) {
	h := newHost(t)
	h.installExtension(t, "acme/widget")

	if err := h.manager.Enable("acme/widget"); err != nil {
		t.Fatal(err)
	}
	if err := h.manager.Disable("acme/widget"); err != nil {
		t.Fatalf("Disable: %v", err)
	}

	if h.manager.IsEnabled("acme/widget") {
		t.Error("still enabled after Disable")
	}
	if !h.tableExists(t, "fixture_items") {
		t.Error("Disable reverted the schema")
	}
	if !exists(filepath.Join(h.paths.PublicAssets(), "acme-widget", "app.css")) {
		t.Error("Disable removed published assets")
	}
}

func TestUninstallEndToEnd(t *testing.T) {
	h := newHost(t)
	h.installExtension(t, "acme/widget")

	if err := h.manager.Enable("acme/widget"); err != nil {
		t.Fatal(err)
	}
	if err := h.manager.Uninstall("acme/widget"); err != nil {
		t.Fatalf("Uninstall: %v", err)
	}

	if h.tableExists(t, "fixture_items") {
		t.Error("Uninstall left the schema in place")
	}
	if exists(filepath.Join(h.paths.PublicAssets(), "acme-widget")) {
		t.Error("Uninstall left published assets")
	}
	if h.manager.IsEnabled("acme/widget") {
		t.Error("still enabled after Uninstall")
	}
}
