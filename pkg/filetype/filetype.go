// Package filetype provides a default TypeClassifier: a mapping from file
// extension or filename to a set of type tags, grounded on the teacher's
// pkg/hook/file_type_registry.go, trimmed to the tags exercised by common
// hook manifests.
package filetype

import (
	"path/filepath"
	"strings"
)

// Classifier maps filenames/extensions to type tags. It has the same method
// set as fileset.Classifier, which is the interface orchestrator-facing code
// depends on (spec.md treats it as an external collaborator); Registry is
// the default implementation.
type Classifier interface {
	TypesForExtension(ext string) []string
	TypesForFilename(name string) []string
}

// Registry is the default Classifier, a static table of extension/filename
// to type-tag mappings plus the special-cased "text" catch-all.
type Registry struct {
	byExt  map[string][]string
	byName map[string][]string
}

// NewRegistry builds the default classifier.
func NewRegistry() *Registry {
	r := &Registry{
		byExt: map[string][]string{
			"py":    {"python"},
			"pyi":   {"python"},
			"pyx":   {"python"},
			"js":    {"javascript"},
			"jsx":   {"javascript"},
			"mjs":   {"javascript"},
			"ts":    {"javascript", "ts"},
			"tsx":   {"javascript", "ts"},
			"go":    {"go"},
			"rs":    {"rust"},
			"rb":    {"ruby"},
			"sh":    {"shell"},
			"bash":  {"shell", "bash"},
			"yaml":  {"yaml"},
			"yml":   {"yaml"},
			"json":  {"json"},
			"toml":  {"toml"},
			"xml":   {"xml"},
			"md":    {"markdown"},
			"txt":   {"text"},
			"html":  {"html"},
			"css":   {"css"},
			"cpp":   {"c++"},
			"cc":    {"c++"},
			"h":     {"c", "header"},
			"hpp":   {"c++", "header"},
			"c":     {"c"},
			"java":  {"java"},
			"kt":    {"kotlin"},
			"lua":   {"lua"},
			"pl":    {"perl"},
			"php":   {"php"},
			"proto": {"proto"},
			"sql":   {"sql"},
		},
		byName: map[string][]string{
			"Dockerfile":         {"dockerfile"},
			"Makefile":           {"makefile"},
			"go.mod":             {"go", "go-mod"},
			"go.sum":             {"go", "go-sum"},
			".gitignore":         {"gitignore", "text"},
			"docker-compose.yml": {"yaml", "docker-compose"},
			"docker-compose.yaml": {"yaml", "docker-compose"},
		},
	}
	return r
}

// TypesForExtension returns the type tags registered for a lowercased
// extension (without the leading dot). A non-empty extension that is not in
// the binary exclusion list (see IsTextExtension) additionally gets the
// implicit "text" tag; an empty extension gets no implicit tag.
func (r *Registry) TypesForExtension(ext string) []string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	tags := append([]string(nil), r.byExt[ext]...)
	if ext != "" && IsTextExtension(ext) && !contains(tags, "text") {
		tags = append(tags, "text")
	}
	return tags
}

// TypesForFilename returns the type tags registered for an exact filename
// match (e.g. "Dockerfile", "Makefile").
func (r *Registry) TypesForFilename(name string) []string {
	base := filepath.Base(name)
	if tags, ok := r.byName[base]; ok {
		return append([]string(nil), tags...)
	}
	return nil
}

var binaryExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "ico": true,
	"pdf": true, "zip": true, "tar": true, "gz": true, "so": true,
	"dll": true, "exe": true, "bin": true, "woff": true, "woff2": true,
	"ttf": true, "eot": true, "class": true, "jar": true,
}

// IsTextExtension reports whether ext (lowercased, no dot) is treated as a
// text file by default, i.e. is not in the small binary-extension
// exclusion list.
func IsTextExtension(ext string) bool {
	return !binaryExtensions[strings.ToLower(ext)]
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}
