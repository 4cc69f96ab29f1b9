// Package fileset enumerates working-tree files and indexes them by type,
// per spec.md §4.5. GitAdapter and Classifier are the external
// collaborators spec.md §1 calls out (git interaction layer, type
// classifier); concrete implementations live in pkg/gitadapter and
// pkg/filetype.
package fileset

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrUnstagedChanges is returned when all_files is false and the worktree
// has unstaged changes — the run must abort rather than silently stash,
// per spec.md §4.5 and original_source/crates/preco/src/file_set.rs.
var ErrUnstagedChanges = errors.New("fileset: unstaged changes present; commit, stash, or use --all-files")

// GitAdapter is the subset of git interaction FileSet needs.
type GitAdapter interface {
	TrackedFiles() ([]string, error)
	StagedFiles() ([]string, error)
	UnstagedFiles() ([]string, error)
}

// Classifier is the subset of type classification FileSet needs.
type Classifier interface {
	TypesForExtension(ext string) []string
	TypesForFilename(name string) []string
}

// FileSet is the immutable, once-built enumeration of a run's working-tree
// files and their type tags (spec.md §3).
type FileSet struct {
	Root        string
	Files       []string            // ordered, as returned by GitAdapter
	FilesByType map[string][]string // type tag -> ordered paths
	TypesByFile map[string][]string // path -> type tags
}

// Build constructs a FileSet. allFiles selects the paths GitAdapter's
// TrackedFiles reports; otherwise staged files are used, aborting with ErrUnstagedChanges if the
// worktree has any unstaged modifications.
func Build(root string, git GitAdapter, classifier Classifier, allFiles bool) (*FileSet, error) {
	var files []string
	var err error
	if allFiles {
		files, err = git.TrackedFiles()
	} else {
		var unstaged []string
		unstaged, err = git.UnstagedFiles()
		if err != nil {
			return nil, err
		}
		if len(unstaged) > 0 {
			return nil, ErrUnstagedChanges
		}
		files, err = git.StagedFiles()
	}
	if err != nil {
		return nil, err
	}

	fs := &FileSet{
		Root:        root,
		Files:       files,
		FilesByType: make(map[string][]string),
		TypesByFile: make(map[string][]string),
	}
	for _, path := range files {
		ext := strings.TrimPrefix(filepath.Ext(path), ".")
		tags := unionStrings(classifier.TypesForExtension(ext), classifier.TypesForFilename(path))
		fs.TypesByFile[path] = tags
		for _, tag := range tags {
			fs.FilesByType[tag] = append(fs.FilesByType[tag], path)
		}
	}
	return fs, nil
}

// HasType reports whether path carries type tag.
func (fs *FileSet) HasType(path, tag string) bool {
	for _, t := range fs.TypesByFile[path] {
		if t == tag {
			return true
		}
	}
	return false
}

func unionStrings(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range lists {
		for _, s := range l {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
