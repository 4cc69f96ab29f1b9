// Package commandpack implements CommandPacker (spec.md §4.8): partitioning
// selected files into argv-bounded shell commands. ShellQuote is
// supplemented from original_source/crates/preco/src/helpers.rs
// (append_args's shell_words-style quoting), made explicit and testable
// per SPEC_FULL.md §12.
package commandpack

import (
	"strings"
)

// MaxCommandLengthPOSIX is the reference POSIX argv length limit used by
// spec.md §4.8.
const MaxCommandLengthPOSIX = 131072

// ShellQuote quotes s using POSIX single-quote rules: wrap in single
// quotes, escaping any embedded single quote as '\''. An already
// shell-safe token (alnum plus a small set of punctuation) is returned
// unquoted, matching shell_words::quote's behavior of leaving simple
// tokens bare.
func ShellQuote(s string) string {
	if s != "" && isShellSafe(s) {
		return s
	}
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		if r == '\'' {
			b.WriteString(`'\''`)
		} else {
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

func isShellSafe(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.' || r == '/' || r == ':' || r == '@' || r == '%' || r == '+' || r == ',':
		default:
			return false
		}
	}
	return true
}

// Pack implements spec.md §4.8's four-step algorithm. files == nil means
// "no pass_filenames": a single command equal to entry is emitted. limit
// is the platform argv budget (MaxCommandLengthPOSIX on POSIX).
func Pack(entry string, files []string, parallelism int, limit int, serial bool) []string {
	if files == nil {
		return []string{entry}
	}
	if parallelism < 1 {
		parallelism = 1
	}

	quoted := make([]string, len(files))
	for i, f := range files {
		quoted[i] = ShellQuote(f)
	}

	batches := greedyBatch(entry, quoted, limit)

	if !serial && len(batches) < parallelism && len(quoted) > 0 {
		batches = redistribute(quoted, parallelism)
	}

	cmds := make([]string, 0, len(batches))
	for _, b := range batches {
		if len(b) == 0 {
			continue
		}
		cmds = append(cmds, entry+" "+strings.Join(b, " "))
	}
	return cmds
}

func greedyBatch(entry string, quoted []string, limit int) [][]string {
	base := len(entry) + 1
	var batches [][]string
	var cur []string
	curLen := base
	for _, q := range quoted {
		add := len(q) + 1
		if len(cur) > 0 && curLen+add >= limit {
			batches = append(batches, cur)
			cur = nil
			curLen = base
		}
		cur = append(cur, q)
		curLen += add
	}
	if len(cur) > 0 {
		batches = append(batches, cur)
	}
	return batches
}

// redistribute spreads the full quoted path list round-robin into exactly
// P batches. This can reduce latency for many small files but, per
// spec.md §4.8/§9, may produce commands longer than limit when paths are
// long — that caveat is intentionally preserved, not guarded against.
func redistribute(quoted []string, p int) [][]string {
	batches := make([][]string, p)
	for i, q := range quoted {
		idx := i % p
		batches[idx] = append(batches[idx], q)
	}
	return batches
}
