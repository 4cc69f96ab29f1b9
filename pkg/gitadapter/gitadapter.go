// Package gitadapter is the concrete GitAdapter: it lists tracked, staged
// and unstaged paths in a worktree, grounded on the teacher's pkg/git/git.go
// use of github.com/go-git/go-git/v5.
package gitadapter

import (
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
)

// Adapter wraps a single worktree.
type Adapter struct {
	repo *git.Repository
	root string
}

// Open opens the git repository that contains dir (or dir itself), the way
// go-git's PlainOpenWithOptions walks up looking for a .git directory.
func Open(dir string) (*Adapter, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("gitadapter: open %s: %w", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("gitadapter: worktree: %w", err)
	}
	return &Adapter{repo: repo, root: wt.Filesystem.Root()}, nil
}

// Root returns the worktree root directory.
func (a *Adapter) Root() string { return a.root }

// TrackedFiles returns every path in the HEAD commit's tree, sorted. The
// index is not read: a path added to the index but not yet committed is not
// listed, and a repository without any commit yields an error.
func (a *Adapter) TrackedFiles() ([]string, error) {
	head, err := a.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("gitadapter: head: %w", err)
	}
	commit, err := a.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("gitadapter: commit: %w", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("gitadapter: tree: %w", err)
	}
	var files []string
	walker := tree.Files()
	defer walker.Close()
	for {
		f, err := walker.Next()
		if err != nil {
			break
		}
		files = append(files, f.Name)
	}
	sort.Strings(files)
	return files, nil
}

// StagedFiles returns paths that differ between HEAD and the index
// (added/modified/renamed/copied), sorted.
func (a *Adapter) StagedFiles() ([]string, error) {
	wt, err := a.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("gitadapter: worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("gitadapter: status: %w", err)
	}
	var files []string
	for path, s := range status {
		switch s.Staging {
		case git.Added, git.Modified, git.Renamed, git.Copied:
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// UnstagedFiles returns paths with unstaged worktree modifications
// (modified/deleted in the worktree relative to the index), sorted.
func (a *Adapter) UnstagedFiles() ([]string, error) {
	wt, err := a.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("gitadapter: worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("gitadapter: status: %w", err)
	}
	var files []string
	for path, s := range status {
		switch s.Worktree {
		case git.Modified, git.Deleted:
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}
