// Package envprovision implements EnvProvisioner (spec.md §4.7): idempotent
// per-hook language sandboxes for Python (uv-managed virtualenv) and Node
// (pnpm-managed module tree), grounded on original_source/crates/preco/src/run_hook/python.rs
// and node.rs for the exact invocations, with the directory-existence
// sentinel and path-locking shape borrowed from the teacher's
// pkg/environment/manager.go and pkg/cache/file_lock.go.
package envprovision

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/akx/preco/pkg/config"
	"github.com/akx/preco/pkg/pathenc"
	"github.com/gofrs/flock"
)

const (
	pythonSandboxBase = ".preco-venv"
	nodeSandboxBase   = "node_modules_preco"
)

// Env describes the environment changes a hook process needs to run inside
// a provisioned sandbox.
type Env struct {
	Set         map[string]string
	Unset       []string
	PathPrepend string // directory to prepend to PATH
}

// ErrUnsupportedLanguage is returned for config.Language values outside the
// closed Python/Node set, carrying the original manifest name.
type ErrUnsupportedLanguage struct{ Name string }

func (e *ErrUnsupportedLanguage) Error() string {
	return fmt.Sprintf("Unsupported language: %s", e.Name)
}

// Provisioner sets up sandboxes under a Checkout directory.
type Provisioner struct{}

// New returns a Provisioner.
func New() *Provisioner { return &Provisioner{} }

// Provision ensures the sandbox for (checkoutPath, lang, addlDeps) exists
// and returns the environment overrides hook execution needs. Provisioning
// is idempotent: directory existence is the sentinel. Concurrent callers on
// the same sandbox directory serialize through a flock, matching
// CheckoutStore's locking discipline (spec.md §4.7, §5).
func (p *Provisioner) Provision(ctx context.Context, checkoutPath string, lang config.Language, addlDeps []string) (*Env, error) {
	switch {
	case lang.IsPython():
		return p.provisionPython(ctx, checkoutPath, addlDeps)
	case lang.IsNode():
		return p.provisionNode(ctx, checkoutPath, addlDeps)
	default:
		return nil, &ErrUnsupportedLanguage{Name: lang.Name()}
	}
}

func sandboxName(base string, addlDeps []string) string {
	if len(addlDeps) == 0 {
		return base
	}
	return base + "-" + pathenc.DepsHash(addlDeps)
}

func (p *Provisioner) provisionPython(ctx context.Context, checkoutPath string, addlDeps []string) (*Env, error) {
	venvPath := filepath.Join(checkoutPath, sandboxName(pythonSandboxBase, addlDeps))
	if !dirExists(venvPath) {
		unlock, err := lockDir(ctx, venvPath)
		if err != nil {
			return nil, err
		}
		defer unlock()
		if !dirExists(venvPath) {
			if err := setupPythonVenv(ctx, checkoutPath, venvPath, addlDeps); err != nil {
				return nil, err
			}
		}
	}
	return &Env{
		Set:         map[string]string{"VIRTUAL_ENV": venvPath},
		Unset:       []string{"PYTHONHOME"},
		PathPrepend: filepath.Join(venvPath, "bin"),
	}, nil
}

func setupPythonVenv(ctx context.Context, checkoutPath, venvPath string, addlDeps []string) error {
	if err := runCommand(ctx, checkoutPath, nil, "uv", "venv", venvPath); err != nil {
		return fmt.Errorf("envprovision: uv venv failed: %w", err)
	}
	args := append([]string{"pip", "install", "-e", checkoutPath}, addlDeps...)
	env := map[string]string{"VIRTUAL_ENV": venvPath}
	if err := runCommand(ctx, checkoutPath, env, "uv", args...); err != nil {
		return fmt.Errorf("envprovision: uv pip install failed: %w", err)
	}
	return nil
}

func (p *Provisioner) provisionNode(ctx context.Context, checkoutPath string, addlDeps []string) (*Env, error) {
	name := sandboxName(nodeSandboxBase, addlDeps)
	modulesPath := filepath.Join(checkoutPath, name)
	if !dirExists(modulesPath) {
		unlock, err := lockDir(ctx, modulesPath)
		if err != nil {
			return nil, err
		}
		defer unlock()
		if !dirExists(modulesPath) {
			if err := setupNodeModules(ctx, checkoutPath, name, addlDeps); err != nil {
				return nil, err
			}
		}
	}
	return &Env{
		Set:         map[string]string{"NODE_PATH": modulesPath},
		PathPrepend: filepath.Join(checkoutPath, "node_modules", ".bin"),
	}, nil
}

func setupNodeModules(ctx context.Context, checkoutPath, name string, addlDeps []string) error {
	env := map[string]string{"NPM_UPDATE_NOTIFIER": "false"}
	if err := runCommand(ctx, checkoutPath, env, "pnpm", "i", "--modules-dir", name); err != nil {
		return fmt.Errorf("envprovision: pnpm i failed: %w", err)
	}
	if len(addlDeps) > 0 {
		args := append([]string{"add", "--modules-dir", name}, addlDeps...)
		if err := runCommand(ctx, checkoutPath, env, "pnpm", args...); err != nil {
			return fmt.Errorf("envprovision: pnpm add failed: %w", err)
		}
	}
	return nil
}

func runCommand(ctx context.Context, dir string, extraEnv map[string]string, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	for k, v := range extraEnv {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

var errLockCanceled = errors.New("envprovision: lock acquisition canceled")

func lockDir(ctx context.Context, path string) (func(), error) {
	lk := flock.New(path + ".lock")
	for {
		ok, err := lk.TryLock()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() { _ = lk.Unlock() }, nil
		}
		select {
		case <-ctx.Done():
			return nil, errLockCanceled
		case <-time.After(50 * time.Millisecond):
		}
	}
}
