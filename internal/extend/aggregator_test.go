package extend

import (
	"fmt"
	"testing"

	"github.com/spf13/afero"

	"github.com/miquelnez/extman/internal/extension"
	"github.com/miquelnez/extman/internal/paths"
	"github.com/miquelnez/extman/internal/settings"
)

// aggregatorFixture builds a registry with three enabled extensions sorted
// Alpha, Beta, Gamma, each contributing one extender via its file.
func aggregatorFixture(t *testing.T) (*Aggregator, afero.Fs) {
	t.Helper()

	fsys := afero.NewMemMapFs()
	p := paths.Paths{Base: "/app", Public: "/app/public", Storage: "/app/storage"}
	store := settings.NewMemory()

	names := map[string]string{
		"acme/alpha": "Alpha",
		"acme/beta":  "Beta",
		"acme/gamma": "Gamma",
	}

	manifest := `{"packages": [`
	first := true
	var set settings.EnabledSet
	for name, title := range names {
		if !first {
			manifest += ","
		}
		first = false
		manifest += fmt.Sprintf(`{"name": %q, "type": "extman-extension", "version": "1.0.0"}`, name)

		root := p.PackageRoot(name)
		writeFile(t, fsys, root+"/extension.json", fmt.Sprintf(`{"name": %q, "title": %q}`, name, title))
		writeFile(t, fsys, root+"/"+extension.ExtendFile, "mark\n")
		set = set.Add(name)
	}
	manifest += `]}`
	writeFile(t, fsys, p.InstallManifest(), manifest)

	if err := settings.SaveEnabled(store, set); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(fsys)
	loader.RegisterCallable("mark", func(app App, ext *extension.Descriptor) error {
		app.Bind(ext.ID, nil)
		return nil
	})

	registry := extension.NewRegistry(fsys, p, store)
	return NewAggregator(registry, loader), fsys
}

func TestAggregationPreservesRegistryOrder(t *testing.T) {
	agg, _ := aggregatorFixture(t)

	bound, err := agg.Extenders()
	if err != nil {
		t.Fatalf("Extenders: %v", err)
	}
	if len(bound) != 3 {
		t.Fatalf("bound = %d entries, want 3", len(bound))
	}

	want := []string{"acme/alpha", "acme/beta", "acme/gamma"}
	for i, b := range bound {
		if b.Extension.ID != want[i] {
			t.Errorf("bound[%d].Extension.ID = %q, want %q", i, b.Extension.ID, want[i])
		}
	}
}

func TestApplyRunsExtendersInOrder(t *testing.T) {
	agg, _ := aggregatorFixture(t)

	app := &recordingApp{}
	if err := agg.Apply(app); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := []string{"acme/alpha", "acme/beta", "acme/gamma"}
	if len(app.bound) != 3 {
		t.Fatalf("bound = %v, want 3 entries", app.bound)
	}
	for i := range want {
		if app.bound[i] != want[i] {
			t.Errorf("bound[%d] = %q, want %q", i, app.bound[i], want[i])
		}
	}
}

func TestAggregationWithoutInstallManifest(t *testing.T) {
	fsys := afero.NewMemMapFs()
	p := paths.Paths{Base: "/app", Public: "/app/public", Storage: "/app/storage"}
	registry := extension.NewRegistry(fsys, p, settings.NewMemory())

	agg := NewAggregator(registry, NewLoader(fsys))
	bound, err := agg.Extenders()
	if err != nil {
		t.Fatalf("Extenders: %v", err)
	}
	if len(bound) != 0 {
		t.Errorf("bound = %d entries, want 0 on a fresh host", len(bound))
	}
}
