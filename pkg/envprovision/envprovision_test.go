package envprovision

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/akx/preco/pkg/config"
)

func TestProvisionUnknownLanguage(t *testing.T) {
	p := New()
	_, err := p.Provision(context.Background(), t.TempDir(), config.ParseLanguage("rust"), nil)
	var uerr *ErrUnsupportedLanguage
	if err == nil {
		t.Fatal("expected error for unsupported language")
	}
	if e, ok := err.(*ErrUnsupportedLanguage); !ok || e.Name != "rust" {
		t.Fatalf("expected ErrUnsupportedLanguage{rust}, got %v (%T)", err, uerr)
	}
}

func TestProvisionPythonSkipsSetupWhenSandboxExists(t *testing.T) {
	checkout := t.TempDir()
	venv := filepath.Join(checkout, pythonSandboxBase)
	if err := os.MkdirAll(venv, 0o755); err != nil {
		t.Fatal(err)
	}
	p := New()
	env, err := p.Provision(context.Background(), checkout, config.LanguagePython, nil)
	if err != nil {
		t.Fatalf("Provision should not invoke uv when sandbox exists: %v", err)
	}
	if env.Set["VIRTUAL_ENV"] != venv {
		t.Fatalf("unexpected VIRTUAL_ENV: %v", env.Set)
	}
	if env.PathPrepend != filepath.Join(venv, "bin") {
		t.Fatalf("unexpected PathPrepend: %q", env.PathPrepend)
	}
}

func TestProvisionNodeSkipsSetupWhenSandboxExists(t *testing.T) {
	checkout := t.TempDir()
	mods := filepath.Join(checkout, nodeSandboxBase)
	if err := os.MkdirAll(mods, 0o755); err != nil {
		t.Fatal(err)
	}
	p := New()
	env, err := p.Provision(context.Background(), checkout, config.LanguageNode, nil)
	if err != nil {
		t.Fatalf("Provision should not invoke pnpm when sandbox exists: %v", err)
	}
	if env.Set["NODE_PATH"] != mods {
		t.Fatalf("unexpected NODE_PATH: %v", env.Set)
	}
}

func TestSandboxNameIncludesDepsHash(t *testing.T) {
	a := sandboxName(pythonSandboxBase, nil)
	b := sandboxName(pythonSandboxBase, []string{"foo==1.0"})
	c := sandboxName(pythonSandboxBase, []string{"foo==2.0"})
	if a == b || b == c {
		t.Fatalf("expected distinct sandbox names, got %q %q %q", a, b, c)
	}
}
