// Package resolve merges a published HookSpec with a user's HookOverrides,
// grounded on the teacher's pkg/hook/orchestrator.go mergeHookDefinitions
// and its applyStringOverride/applySliceOverride/applyBoolOverride generic
// helpers.
package resolve

import (
	"fmt"

	"github.com/akx/preco/pkg/config"
	"github.com/sirupsen/logrus"
)

// ResolvedHook is the fully-populated result of merging a HookSpec with its
// matching HookOverrides, per spec.md §3. Entry and Language are never
// overridable.
type ResolvedHook struct {
	ID                     string
	Name                   string
	Description            string
	Entry                  string
	Args                   []string
	Language               config.Language
	Stages                 []string
	Types                  []string
	TypesOr                []string
	Files                  string
	Exclude                string
	PassFilenames          bool
	AlwaysRun              bool
	RequireSerial          bool
	AdditionalDependencies []string
	Alias                  string
}

// ErrNotFound is returned when a hook id present in the user config is
// absent from the checkout's published manifest (spec.md's ResolveError).
type ErrNotFound struct{ ID string }

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("resolve: hook %q not found in checkout manifest", e.ID)
}

// Resolve finds the spec matching cfg.ID among specs and merges it with
// cfg's overrides, following the "override wins if present, otherwise
// published value" rule from spec.md §3.
func Resolve(cfg config.HookConfig, specs []config.HookSpec) (*ResolvedHook, error) {
	var spec *config.HookSpec
	for i := range specs {
		if specs[i].ID == cfg.ID {
			spec = &specs[i]
			break
		}
	}
	if spec == nil {
		return nil, &ErrNotFound{ID: cfg.ID}
	}

	if len(cfg.ExcludeTypes) > 0 {
		logrus.WithField("hook", cfg.ID).Warn("resolve: exclude_types is not implemented, ignoring")
	}
	if cfg.AlwaysRun != nil {
		logrus.WithField("hook", cfg.ID).Warn("resolve: always_run is not implemented, ignoring")
	}
	if cfg.Verbose != nil {
		logrus.WithField("hook", cfg.ID).Warn("resolve: verbose is not implemented, ignoring")
	}
	if cfg.LogFile != "" {
		logrus.WithField("hook", cfg.ID).Warn("resolve: log_file is not implemented, ignoring")
	}
	if cfg.LanguageVersion != "" {
		logrus.WithField("hook", cfg.ID).Warn("resolve: language_version is not implemented, ignoring")
	}

	r := &ResolvedHook{
		ID:                     cfg.ID,
		Entry:                  spec.Entry,
		Language:               spec.Language(),
		Name:                   applyString(spec.Name, cfg.Name),
		Description:            applyString(spec.Description, cfg.Description),
		Args:                   applySlice(spec.Args, cfg.Args),
		Stages:                 applySlice(spec.Stages, cfg.Stages),
		Types:                  applySlice(spec.Types, cfg.Types),
		TypesOr:                applySlice(spec.TypesOr, cfg.TypesOr),
		Files:                  applyString(spec.Files, cfg.Files),
		Exclude:                applyString(spec.Exclude, cfg.Exclude),
		PassFilenames:          spec.PassFilenamesOrDefault(),
		AlwaysRun:              applyBool(spec.AlwaysRun, cfg.AlwaysRun),
		RequireSerial:          spec.RequireSerial,
		AdditionalDependencies: applySlice(spec.AdditionalDependencies, cfg.AdditionalDependencies),
		Alias:                  cfg.Alias,
	}
	return r, nil
}

// applyString implements "present replaces, otherwise keep published"
// for a single string field.
func applyString(published, override string) string {
	if override != "" {
		return override
	}
	return published
}

// applySlice implements the "present replaces, never appends" rule for
// slice-valued fields such as args, stages, types.
func applySlice[T any](published, override []T) []T {
	if override != nil {
		return override
	}
	return published
}

// applyBool implements "present replaces" for an optional bool override.
func applyBool(published bool, override *bool) bool {
	if override != nil {
		return *override
	}
	return published
}
