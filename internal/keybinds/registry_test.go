package keybinds

import "testing"

func TestMatchFallsBackToGlobal(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "ctrl+c", ActionQuit)
	r.Register(ContextCollectionList, "n", ActionNewCollection)

	if action, ok := r.Match(ContextCollectionList, "n"); !ok || action != ActionNewCollection {
		t.Errorf("expected context-specific binding, got %v, %v", action, ok)
	}
	if action, ok := r.Match(ContextCollectionList, "ctrl+c"); !ok || action != ActionQuit {
		t.Errorf("expected fallback to global, got %v, %v", action, ok)
	}
	if _, ok := r.Match(ContextCollectionList, "z"); ok {
		t.Error("expected no match for unbound key")
	}
}

func TestContextOverridesGlobal(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "q", ActionQuit)
	r.Register(ContextHelp, "q", ActionQuit)

	action, ok := r.Match(ContextHelp, "q")
	if !ok || action != ActionQuit {
		t.Errorf("got %v, %v", action, ok)
	}
}

func TestRegisterMultiple(t *testing.T) {
	r := NewRegistry()
	r.RegisterMultiple(ContextCollectionList, []string{"up", "ctrl+k"}, ActionNavigateUp)

	for _, key := range []string{"up", "ctrl+k"} {
		if action, ok := r.Match(ContextCollectionList, key); !ok || action != ActionNavigateUp {
			t.Errorf("key %q: got %v, %v", key, action, ok)
		}
	}
}

func TestValidatePassesOnCleanRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextCollectionList, "n", ActionNewCollection)
	r.Register(ContextCollectionList, "d", ActionDeleteCollection)
	if err := r.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDefaultRegistryHasNoDuplicates(t *testing.T) {
	r := DefaultRegistry()
	if err := r.Validate(); err != nil {
		t.Errorf("DefaultRegistry failed validation: %v", err)
	}
}

func TestHasBinding(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "ctrl+c", ActionQuit)
	if !r.HasBinding(ContextCollectionList, "ctrl+c") {
		t.Error("expected HasBinding to fall back to global")
	}
	if r.HasBinding(ContextCollectionList, "zzz") {
		t.Error("expected no binding for unbound key")
	}
}
