package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUninstallCommandRemovesMarkedHook(t *testing.T) {
	dir := chdirToNewRepo(t)

	install := &InstallCommand{}
	if code := install.Run(nil); code != 0 {
		t.Fatalf("install: expected exit 0, got %d", code)
	}
	hookPath := filepath.Join(dir, ".git", "hooks", "pre-commit")

	uninstall := &UninstallCommand{}
	if code := uninstall.Run(nil); code != 0 {
		t.Fatalf("uninstall: expected exit 0, got %d", code)
	}
	if _, err := os.Stat(hookPath); !os.IsNotExist(err) {
		t.Fatal("expected hook to be removed")
	}
}

func TestUninstallCommandLeavesUnmarkedHookAlone(t *testing.T) {
	dir := chdirToNewRepo(t)

	hooksDir := filepath.Join(dir, ".git", "hooks")
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		t.Fatal(err)
	}
	hookPath := filepath.Join(hooksDir, "pre-commit")
	if err := os.WriteFile(hookPath, []byte("#!/bin/sh\necho not ours\n"), 0o744); err != nil {
		t.Fatal(err)
	}

	uninstall := &UninstallCommand{}
	if code := uninstall.Run(nil); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	content, err := os.ReadFile(hookPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "not ours") {
		t.Fatal("unmarked hook should have been left alone")
	}
}
