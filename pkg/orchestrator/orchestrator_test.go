package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/akx/preco/pkg/checkout"
	"github.com/akx/preco/pkg/config"
	"github.com/akx/preco/pkg/envprovision"
	"github.com/akx/preco/pkg/filetype"
	"github.com/akx/preco/pkg/pathenc"
	"github.com/akx/preco/pkg/regexcache"
)

type fakeGit struct{ tracked []string }

func (g fakeGit) TrackedFiles() ([]string, error)  { return g.tracked, nil }
func (g fakeGit) StagedFiles() ([]string, error)   { return nil, nil }
func (g fakeGit) UnstagedFiles() ([]string, error) { return nil, nil }

func prepareCheckout(t *testing.T, storeRoot, url, rev, manifest string) string {
	t.Helper()
	path := filepath.Join(storeRoot, pathenc.Encode(url), pathenc.Encode(rev))
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(path, ".pre-commit-hooks.yaml"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(path, ".preco-venv"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunHappyPathNoPassFilenames(t *testing.T) {
	storeRoot := t.TempDir()
	url := "https://example.test/x"
	rev := "v1"
	prepareCheckout(t, storeRoot, url, rev, `
- id: say-hi
  name: Say Hi
  entry: echo hi
  language: python
  pass_filenames: false
`)

	cfg := &config.ProjectConfig{
		Repos: []config.RepoEntry{{
			Repo: url,
			Rev:  rev,
			Hooks: []config.HookConfig{{ID: "say-hi"}},
		}},
	}

	o := New(checkout.New(storeRoot), envprovision.New(), filetype.NewRegistry(), fakeGit{tracked: []string{"a.py"}}, regexcache.New())

	code, err := o.Run(context.Background(), t.TempDir(), cfg, Options{AllFiles: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
}

func TestRunHookFailureYieldsExitOne(t *testing.T) {
	storeRoot := t.TempDir()
	url := "https://example.test/y"
	rev := "v1"
	prepareCheckout(t, storeRoot, url, rev, `
- id: boom
  name: Boom
  entry: sh -c 'exit 1'
  language: python
  pass_filenames: false
`)

	cfg := &config.ProjectConfig{
		Repos: []config.RepoEntry{{
			Repo: url,
			Rev:  rev,
			Hooks: []config.HookConfig{{ID: "boom"}},
		}},
	}

	o := New(checkout.New(storeRoot), envprovision.New(), filetype.NewRegistry(), fakeGit{tracked: []string{"a.py"}}, regexcache.New())
	code, err := o.Run(context.Background(), t.TempDir(), cfg, Options{AllFiles: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 1 {
		t.Fatalf("expected exit 1 on hook failure, got %d", code)
	}
}

func TestRunResolveErrorAbortsBeforePhaseB(t *testing.T) {
	storeRoot := t.TempDir()
	url := "https://example.test/z"
	rev := "v1"
	prepareCheckout(t, storeRoot, url, rev, `
- id: real-hook
  name: Real
  entry: echo hi
  language: python
  pass_filenames: false
`)

	cfg := &config.ProjectConfig{
		Repos: []config.RepoEntry{{
			Repo: url,
			Rev:  rev,
			Hooks: []config.HookConfig{{ID: "missing-hook"}},
		}},
	}

	o := New(checkout.New(storeRoot), envprovision.New(), filetype.NewRegistry(), fakeGit{tracked: []string{"a.py"}}, regexcache.New())
	_, err := o.Run(context.Background(), t.TempDir(), cfg, Options{AllFiles: true})
	if err == nil {
		t.Fatal("expected resolve error to abort the run")
	}
}
