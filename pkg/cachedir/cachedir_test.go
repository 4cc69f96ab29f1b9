package cachedir

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRootCreatesDirUnderXDGCacheHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	root, err := Root()
	if err != nil {
		t.Fatalf("Root() error: %v", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		t.Fatalf("expected root to exist: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %s to be a directory", root)
	}
	if filepath.Base(root) != appName {
		t.Fatalf("expected root to end in %q, got %q", appName, root)
	}
}

func TestCheckoutsIsSubdirOfRoot(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	root, err := Root()
	if err != nil {
		t.Fatalf("Root() error: %v", err)
	}
	checkouts, err := Checkouts()
	if err != nil {
		t.Fatalf("Checkouts() error: %v", err)
	}
	if filepath.Dir(checkouts) != root {
		t.Fatalf("expected checkouts dir parent to be root %q, got %q", root, checkouts)
	}
	if _, err := os.Stat(checkouts); err != nil {
		t.Fatalf("expected checkouts dir to exist: %v", err)
	}
}
