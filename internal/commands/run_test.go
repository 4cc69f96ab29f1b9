package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func commitEmpty(t *testing.T, dir string) {
	t.Helper()
	repo, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author:            &object.Signature{Name: "t", Email: "t@t.test"},
		AllowEmptyCommits: true,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestRunCommandSynopsisAndHelp(t *testing.T) {
	cmd := &RunCommand{BaseCommand{Name: "run", Description: "Run hooks"}}
	if cmd.Synopsis() == "" {
		t.Error("expected non-empty synopsis")
	}
	if help := cmd.Help(); help == "" {
		t.Error("expected non-empty help")
	}
}

func TestRunCommandMissingConfigFails(t *testing.T) {
	dir := chdirToNewRepo(t)
	_ = dir

	cmd := &RunCommand{BaseCommand{Name: "run", Description: "Run hooks"}}
	code := cmd.Run(nil)
	if code != 1 {
		t.Fatalf("expected exit 1 with no config file present, got %d", code)
	}
}

func TestRunCommandEmptyConfigSucceeds(t *testing.T) {
	dir := chdirToNewRepo(t)
	commitEmpty(t, dir)
	if err := os.WriteFile(filepath.Join(dir, defaultConfigFile), []byte("repos: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := &RunCommand{BaseCommand{Name: "run", Description: "Run hooks"}}
	code := cmd.Run([]string{"--all-files"})
	if code != 0 {
		t.Fatalf("expected exit 0 with no repos configured, got %d", code)
	}
}
