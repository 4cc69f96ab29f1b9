package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-git/v5"
)

func chdirToNewRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
	return dir
}

func TestInstallCommandWritesHookShim(t *testing.T) {
	dir := chdirToNewRepo(t)

	cmd := &InstallCommand{}
	if code := cmd.Run(nil); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	hookPath := filepath.Join(dir, ".git", "hooks", "pre-commit")
	content, err := os.ReadFile(hookPath)
	if err != nil {
		t.Fatalf("reading installed hook: %v", err)
	}
	if !strings.Contains(string(content), hookMarker) {
		t.Fatalf("installed hook missing marker: %q", content)
	}
	if !strings.Contains(string(content), "run --git-hook=pre-commit") {
		t.Fatalf("installed hook missing exec line: %q", content)
	}

	info, err := os.Stat(hookPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o744 {
		t.Fatalf("expected mode 0744, got %v", info.Mode().Perm())
	}
}

func TestInstallCommandRefusesToOverwriteWithoutForce(t *testing.T) {
	dir := chdirToNewRepo(t)

	cmd := &InstallCommand{}
	if code := cmd.Run(nil); code != 0 {
		t.Fatalf("first install: expected exit 0, got %d", code)
	}

	hookPath := filepath.Join(dir, ".git", "hooks", "pre-commit")
	if err := os.WriteFile(hookPath, []byte("#!/bin/sh\n# untouched\n"), 0o744); err != nil {
		t.Fatal(err)
	}

	if code := cmd.Run(nil); code != 1 {
		t.Fatalf("expected exit 1 when hook exists without --force, got %d", code)
	}
	content, _ := os.ReadFile(hookPath)
	if !strings.Contains(string(content), "untouched") {
		t.Fatal("existing hook should not have been overwritten")
	}

	if code := cmd.Run([]string{"-f"}); code != 0 {
		t.Fatalf("expected exit 0 with --force, got %d", code)
	}
	content, _ = os.ReadFile(hookPath)
	if !strings.Contains(string(content), hookMarker) {
		t.Fatal("hook should have been overwritten with --force")
	}
}
