// Package pathenc encodes repository URLs and git revisions into
// filesystem-safe path segments for the checkout cache.
package pathenc

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Encode turns an arbitrary string (a repo URL or a git rev) into a
// filesystem-safe segment. The mapping is applied per rune:
//
//   - '/' becomes '_'
//   - ':' becomes "__"
//   - an ASCII alphanumeric or ASCII punctuation rune (other than the two
//     above) passes through unchanged
//   - anything else, including all non-ASCII runes, becomes "u" followed by
//     the lowercase hex of its scalar value, zero-padded to at least two
//     digits
//
// Encode is deterministic and pure.
func Encode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '/':
			b.WriteByte('_')
		case r == ':':
			b.WriteString("__")
		case isASCIIAlnumOrPunct(r):
			b.WriteRune(r)
		default:
			fmt.Fprintf(&b, "u%02x", r)
		}
	}
	return b.String()
}

func isASCIIAlnumOrPunct(r rune) bool {
	if r > 0x7e || r < 0x20 {
		return false
	}
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	}
	// remaining printable ASCII (0x21-0x7e) is punctuation/symbols.
	return r >= 0x21 && r <= 0x7e
}

// DepsHash returns a deterministic, fast non-cryptographic hash of the given
// additional-dependency strings, rendered as lowercase hex. The inputs are
// joined with a NUL separator before hashing so that ["ab", "c"] and
// ["a", "bc"] never collide.
func DepsHash(deps []string) string {
	h := xxhash.New()
	for i, d := range deps {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(d))
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
