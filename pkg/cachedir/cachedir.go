// Package cachedir resolves the on-disk roots preco uses for cloned
// checkouts, mirroring the original implementation's OS-conventional
// per-application cache directory.
package cachedir

import (
	"os"
	"path/filepath"
)

const appName = "preco"

// Root returns the application's cache root, creating it if necessary.
func Root() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	root := filepath.Join(base, appName)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", err
	}
	return root, nil
}

// Checkouts returns the directory under which all checkout clones live.
func Checkouts() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(root, "checkouts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
