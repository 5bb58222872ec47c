package event

import (
	"testing"

	"github.com/miquelnez/extman/internal/extension"
)

func TestDispatchRunsListenersInOrder(t *testing.T) {
	bus := NewBus()

	var seen []string
	bus.Subscribe(func(ev Event) { seen = append(seen, "first:"+ev.Name) })
	bus.Subscribe(func(ev Event) { seen = append(seen, "second:"+ev.Name) })

	ext := &extension.Descriptor{ID: "acme/widget"}
	bus.Dispatch(Event{Name: "extension.enabled", Extension: ext})

	want := []string{"first:extension.enabled", "second:extension.enabled"}
	if len(seen) != len(want) {
		t.Fatalf("listeners saw %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("seen[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestDispatchIsSynchronous(t *testing.T) {
	bus := NewBus()

	done := false
	bus.Subscribe(func(Event) { done = true })
	bus.Dispatch(Event{Name: "extension.disabling"})

	if !done {
		t.Error("listener had not run when Dispatch returned")
	}
}

func TestDispatchWithoutListeners(t *testing.T) {
	NewBus().Dispatch(Event{Name: "extension.uninstalled"})
}
