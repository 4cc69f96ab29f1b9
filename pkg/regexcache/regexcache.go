// Package regexcache provides a process-wide, lazily-populated cache of
// compiled regular expressions, grounded on the original implementation's
// BTreeMap-behind-a-mutex regex cache (regex_cache.rs), reimplemented with
// github.com/dlclark/regexp2 so pattern semantics stay closer to the
// pre-commit ecosystem's Python-`re`-flavored patterns than stdlib regexp.
package regexcache

import (
	"sync"

	"github.com/dlclark/regexp2"
	"github.com/sirupsen/logrus"
)

type entry struct {
	re  *regexp2.Regexp
	err error
}

// Cache is a process-wide compile-once cache, guarded by a mutex per the
// "entry or insert" contract: concurrent callers requesting the same
// pattern block briefly on the single compile and then share the result.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New returns an empty cache. Most callers should use the package-level
// Default instead; New exists for tests that want isolation.
func New() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

// Default is the process-wide cache instance used by FileMatcher.
var Default = New()

// Get compiles (or returns the already-compiled) regexp2.Regexp for
// pattern. A compile failure is cached too (so repeated calls don't
// re-attempt compilation) and returned as an error; callers are expected to
// log it as a warning and treat the pattern as absent.
func (c *Cache) Get(pattern string) (*regexp2.Regexp, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[pattern]; ok {
		return e.re, e.err
	}
	re, err := regexp2.Compile(pattern, regexp2.None)
	c.entries[pattern] = &entry{re: re, err: err}
	return re, err
}

// GetWithWarning behaves like Get but logs a warning through logrus and
// returns (nil, false) instead of an error, matching the "compile failures
// are warnings, pattern behaves as absent" rule used by FileMatcher.
func (c *Cache) GetWithWarning(pattern string) (*regexp2.Regexp, bool) {
	re, err := c.Get(pattern)
	if err != nil {
		logrus.WithError(err).WithField("pattern", pattern).Warn("regexcache: failed to compile pattern, ignoring")
		return nil, false
	}
	return re, true
}

// MatchString reports whether pattern matches s, treating a compile
// failure as "does not match" (after logging a warning). This is the right
// shape for an exclude filter (failure-to-compile and failure-to-match both
// mean "don't exclude"), but callers applying pattern as a must-match
// include filter should use MatchOrAbsent instead: a plain bool can't tell
// "didn't match" from "couldn't compile", and for an include filter those
// two cases have opposite effects (reject vs. treat-filter-as-absent).
func (c *Cache) MatchString(pattern, s string) bool {
	matched, _ := c.MatchOrAbsent(pattern, s)
	return matched
}

// MatchOrAbsent reports whether pattern matches s, plus whether the pattern
// compiled at all. present is false when the pattern failed to compile (a
// warning is logged) or failed to evaluate; callers implementing an include
// filter ("must match") should treat !present as "filter is absent" per
// spec.md §4.6, rather than as a non-match.
func (c *Cache) MatchOrAbsent(pattern, s string) (matched, present bool) {
	re, ok := c.GetWithWarning(pattern)
	if !ok {
		return false, false
	}
	matched, err := re.MatchString(s)
	if err != nil {
		logrus.WithError(err).WithField("pattern", pattern).Warn("regexcache: match evaluation failed")
		return false, false
	}
	return matched, true
}
