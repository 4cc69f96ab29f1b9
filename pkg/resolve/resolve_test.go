package resolve

import (
	"testing"

	"github.com/akx/preco/pkg/config"
)

func boolPtr(b bool) *bool { return &b }

func TestResolveNoOverridesFieldEqual(t *testing.T) {
	specs := []config.HookSpec{{
		ID: "say-hi", Name: "Say Hi", Entry: "echo hi", LanguageRaw: "python",
	}}
	cfg := config.HookConfig{ID: "say-hi"}
	r, err := Resolve(cfg, specs)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Name != "Say Hi" || r.Entry != "echo hi" || !r.Language.IsPython() {
		t.Fatalf("unexpected resolved hook: %+v", r)
	}
}

func TestResolveOverrideWins(t *testing.T) {
	specs := []config.HookSpec{{
		ID: "say-hi", Name: "Say Hi", Entry: "echo hi", LanguageRaw: "python",
		Args: []string{"--orig"},
	}}
	cfg := config.HookConfig{ID: "say-hi", HookOverrides: config.HookOverrides{
		Name: "Custom Name",
		Args: []string{"--override"},
	}}
	r, err := Resolve(cfg, specs)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Name != "Custom Name" {
		t.Fatalf("expected override name, got %q", r.Name)
	}
	if len(r.Args) != 1 || r.Args[0] != "--override" {
		t.Fatalf("expected args to be replaced not merged, got %v", r.Args)
	}
}

func TestResolveNotFound(t *testing.T) {
	cfg := config.HookConfig{ID: "missing"}
	_, err := Resolve(cfg, nil)
	if err == nil {
		t.Fatal("expected not-found error")
	}
	var nf *ErrNotFound
	if !errorsAs(err, &nf) {
		t.Fatalf("expected ErrNotFound, got %T", err)
	}
}

func errorsAs(err error, target **ErrNotFound) bool {
	e, ok := err.(*ErrNotFound)
	if !ok {
		return false
	}
	*target = e
	return true
}

func TestResolvePassFilenamesDefault(t *testing.T) {
	specs := []config.HookSpec{{ID: "h", Entry: "e", LanguageRaw: "python"}}
	r, err := Resolve(config.HookConfig{ID: "h"}, specs)
	if err != nil {
		t.Fatal(err)
	}
	if !r.PassFilenames {
		t.Fatal("expected pass_filenames to default true")
	}
}
