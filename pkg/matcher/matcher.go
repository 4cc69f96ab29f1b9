// Package matcher implements FileMatcher: the ordered five-step filter
// chain from spec.md §4.6, grounded loosely on the teacher's
// pkg/hook/matching/matcher.go (which applies a simpler all-filters-AND
// shape) but following spec.md's precise precedence instead.
package matcher

import (
	"github.com/akx/preco/pkg/fileset"
	"github.com/akx/preco/pkg/regexcache"
	"github.com/akx/preco/pkg/resolve"
)

// RunConfig carries the two project-wide regex filters (spec.md §3's
// ProjectConfig.files/exclude).
type RunConfig struct {
	FilesRe   string
	ExcludeRe string
}

// MatchingFiles is the per-hook selection result (spec.md §3).
type MatchingFiles struct {
	Root  string
	Files []string
}

// Cache is the regex cache used to compile patterns; tests may supply a
// fresh regexcache.Cache for isolation.
type Cache interface {
	MatchString(pattern, s string) bool
	MatchOrAbsent(pattern, s string) (matched, present bool)
}

// Select applies the five-step filter chain in spec.md §4.6 to every file
// in fs, in insertion order, using cache to compile patterns.
func Select(cache Cache, run RunConfig, fs *fileset.FileSet, hook *resolve.ResolvedHook) *MatchingFiles {
	if cache == nil {
		cache = regexcache.Default
	}
	out := &MatchingFiles{Root: fs.Root}
	for _, path := range fs.Files {
		if !passesFilters(cache, run, fs, hook, path) {
			continue
		}
		out.Files = append(out.Files, path)
	}
	return out
}

func passesFilters(cache Cache, run RunConfig, fs *fileset.FileSet, hook *resolve.ResolvedHook, path string) bool {
	if !passesInclude(cache, run.FilesRe, path) {
		return false
	}
	if run.ExcludeRe != "" && cache.MatchString(run.ExcludeRe, path) {
		return false
	}
	if hook.Exclude != "" && cache.MatchString(hook.Exclude, path) {
		return false
	}
	if !passesInclude(cache, hook.Files, path) {
		return false
	}
	return passesTypeGate(fs, hook, path)
}

// passesInclude applies a must-match ("include") filter: an empty pattern
// means the filter is off, and a pattern that fails to compile behaves as
// if absent too (spec.md §4.6), not as a rejection — unlike MatchString, a
// failed compile here must not be indistinguishable from "didn't match".
func passesInclude(cache Cache, pattern, path string) bool {
	if pattern == "" {
		return true
	}
	matched, present := cache.MatchOrAbsent(pattern, path)
	if !present {
		return true
	}
	return matched
}

func passesTypeGate(fs *fileset.FileSet, hook *resolve.ResolvedHook, path string) bool {
	hasTypes := len(hook.Types) > 0
	hasTypesOr := len(hook.TypesOr) > 0
	if !hasTypes && !hasTypesOr {
		return true // type filter is off
	}
	allPass := hasTypes && hasAllTags(fs, path, hook.Types)
	anyPass := hasTypesOr && hasAnyTag(fs, path, hook.TypesOr)
	return allPass || anyPass
}

func hasAllTags(fs *fileset.FileSet, path string, tags []string) bool {
	for _, t := range tags {
		if !fs.HasType(path, t) {
			return false
		}
	}
	return true
}

func hasAnyTag(fs *fileset.FileSet, path string, tags []string) bool {
	for _, t := range tags {
		if fs.HasType(path, t) {
			return true
		}
	}
	return false
}
