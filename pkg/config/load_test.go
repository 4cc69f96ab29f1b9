package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, ".pre-commit-config.yaml", `
fail_fast: true
repos:
  - repo: https://example.test/x
    rev: v1
    hooks:
      - id: say-hi
        args: ["--loud"]
`)
	cfg, err := LoadProjectConfig(p)
	if err != nil {
		t.Fatalf("LoadProjectConfig: %v", err)
	}
	if !cfg.FailFast {
		t.Fatal("expected fail_fast true")
	}
	if len(cfg.Repos) != 1 || cfg.Repos[0].Rev != "v1" {
		t.Fatalf("unexpected repos: %+v", cfg.Repos)
	}
	if cfg.Repos[0].Hooks[0].ID != "say-hi" {
		t.Fatalf("unexpected hook id: %+v", cfg.Repos[0].Hooks[0])
	}
}

func TestLoadProjectConfigRejectsUnknownKey(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, ".pre-commit-config.yaml", "bogus_key: 1\nrepos: []\n")
	if _, err := LoadProjectConfig(p); err == nil {
		t.Fatal("expected error for unknown top-level key")
	}
}

func TestLoadHookSpecsMissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadHookSpecs(filepath.Join(dir, ".pre-commit-hooks.yaml")); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}

func TestLoadHookSpecsUnknownLanguageBecomesUnknown(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, ".pre-commit-hooks.yaml", `
- id: say-hi
  name: Say Hi
  entry: echo hi
  language: rust
`)
	specs, err := LoadHookSpecs(p)
	if err != nil {
		t.Fatalf("LoadHookSpecs: %v", err)
	}
	lang := specs[0].Language()
	if lang.IsKnown() {
		t.Fatalf("expected unknown language, got %q", lang.Name())
	}
	if lang.Name() != "rust" {
		t.Fatalf("unexpected language name: %q", lang.Name())
	}
}

func TestLoadHookSpecsDuplicateID(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, ".pre-commit-hooks.yaml", `
- id: dup
  name: a
  entry: echo a
  language: python
- id: dup
  name: b
  entry: echo b
  language: python
`)
	if _, err := LoadHookSpecs(p); err == nil {
		t.Fatal("expected duplicate id error")
	}
}
