package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownField is wrapped into every error strictDecode returns. That
// covers a key the target struct does not declare, per spec.md §6/§4.3
// "unknown keys reject the file", but also malformed YAML, a value of the
// wrong type, and an empty document.
var ErrUnknownField = fmt.Errorf("unknown field")

func strictDecode(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownField, err)
	}
	return nil
}

// LoadProjectConfig reads and strictly decodes a .pre-commit-config.yaml
// file at path.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg ProjectConfig
	if err := strictDecode(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadHookSpecs reads and strictly decodes a checkout's
// .pre-commit-hooks.yaml manifest. A missing file is fatal, naming the
// expected path, per spec.md §4.3.
func LoadHookSpecs(path string) ([]HookSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config: hook manifest not found at %s", path)
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var specs []HookSpec
	if err := strictDecode(data, &specs); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		if seen[s.ID] {
			return nil, fmt.Errorf("config: duplicate hook id %q in %s", s.ID, path)
		}
		seen[s.ID] = true
	}
	return specs, nil
}
