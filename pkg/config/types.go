// Package config parses and validates the project configuration
// (.pre-commit-config.yaml) and a checkout's hook manifest
// (.pre-commit-hooks.yaml), grounded on the teacher's pkg/config/config.go
// but reshaped to the data model in spec.md §3/§6.
package config

// RepoKind distinguishes the three possible values of RepoRef.repo.
type RepoKind int

const (
	// RepoRemote is any repo string other than "local" or "meta"; only
	// http(s):// URLs are supported by the checkout store.
	RepoRemote RepoKind = iota
	// RepoLocal is the literal "local" — unsupported (spec.md Non-goal).
	RepoLocal
	// RepoMeta is the literal "meta" — unsupported (spec.md Non-goal).
	RepoMeta
)

// RepoRef is the tagged value from spec.md §3: Local | Meta | Remote{url}.
type RepoRef struct {
	Kind RepoKind
	URL  string // populated only when Kind == RepoRemote
}

// ParseRepoRef classifies the raw `repo:` string from the config file.
func ParseRepoRef(raw string) RepoRef {
	switch raw {
	case "local":
		return RepoRef{Kind: RepoLocal}
	case "meta":
		return RepoRef{Kind: RepoMeta}
	default:
		return RepoRef{Kind: RepoRemote, URL: raw}
	}
}

func (r RepoRef) String() string {
	switch r.Kind {
	case RepoLocal:
		return "local"
	case RepoMeta:
		return "meta"
	default:
		return r.URL
	}
}

// Language is the closed set from spec.md §3 and §9: Python, Node, or
// Unknown(name). The zero value is never valid on its own; use the
// constructors below.
type Language struct {
	known   string // "python", "node", or "" if unknown
	unknown string // original manifest value when known == ""
}

var (
	LanguagePython = Language{known: "python"}
	LanguageNode   = Language{known: "node"}
)

// ParseLanguage maps a raw manifest string onto the closed set, falling
// back to Unknown(name) for anything else (spec.md §4.3: unknown enum
// values decode into Unknown, they do not reject the file).
func ParseLanguage(raw string) Language {
	switch raw {
	case "python":
		return LanguagePython
	case "node":
		return LanguageNode
	default:
		return Language{unknown: raw}
	}
}

// IsKnown reports whether the language is Python or Node.
func (l Language) IsKnown() bool { return l.known != "" }

// Name returns the original manifest string regardless of whether it is
// known.
func (l Language) Name() string {
	if l.known != "" {
		return l.known
	}
	return l.unknown
}

// IsPython reports whether this is the Python language.
func (l Language) IsPython() bool { return l.known == "python" }

// IsNode reports whether this is the Node language.
func (l Language) IsNode() bool { return l.known == "node" }

// Stage identifies the git-hook phase a hook is restricted to, parsed into
// the same Unknown(name) shape as Language (spec.md §4.10 step 2).
type Stage struct {
	known   string
	unknown string
}

// ParseStage maps a raw stage string onto known git-hook stage names,
// falling back to Unknown(name).
func ParseStage(raw string) Stage {
	switch raw {
	case "pre-commit", "pre-push", "pre-merge-commit", "prepare-commit-msg",
		"commit-msg", "post-checkout", "post-commit", "post-merge", "post-rewrite", "manual":
		return Stage{known: raw}
	default:
		return Stage{unknown: raw}
	}
}

// Name returns the raw stage string.
func (s Stage) Name() string {
	if s.known != "" {
		return s.known
	}
	return s.unknown
}

func (s Stage) String() string { return s.Name() }

// HookSpec is published by a hook repository's .pre-commit-hooks.yaml.
type HookSpec struct {
	ID                     string   `yaml:"id"`
	Name                   string   `yaml:"name"`
	Description            string   `yaml:"description,omitempty"`
	Entry                  string   `yaml:"entry"`
	Args                   []string `yaml:"args,omitempty"`
	LanguageRaw            string   `yaml:"language"`
	Stages                 []string `yaml:"stages,omitempty"`
	Types                  []string `yaml:"types,omitempty"`
	TypesOr                []string `yaml:"types_or,omitempty"`
	Files                  string   `yaml:"files,omitempty"`
	Exclude                string   `yaml:"exclude,omitempty"`
	PassFilenames          *bool    `yaml:"pass_filenames,omitempty"`
	AlwaysRun              bool     `yaml:"always_run,omitempty"`
	RequireSerial          bool     `yaml:"require_serial,omitempty"`
	AdditionalDependencies []string `yaml:"additional_dependencies,omitempty"`
	MinimumPreCommitVersion string  `yaml:"minimum_pre_commit_version,omitempty"`
}

// Language parses LanguageRaw into the closed Language set.
func (h HookSpec) Language() Language { return ParseLanguage(h.LanguageRaw) }

// PassFilenamesOrDefault returns PassFilenames, defaulting to true per
// spec.md §3.
func (h HookSpec) PassFilenamesOrDefault() bool {
	if h.PassFilenames == nil {
		return true
	}
	return *h.PassFilenames
}

// HookOverrides is the subset of HookSpec fields a user may override, plus
// the fields from spec.md §3 that only exist on the override side.
type HookOverrides struct {
	Alias                  string   `yaml:"alias,omitempty"`
	LanguageVersion        string   `yaml:"language_version,omitempty"`
	Verbose                *bool    `yaml:"verbose,omitempty"`
	LogFile                string   `yaml:"log_file,omitempty"`
	Name                   string   `yaml:"name,omitempty"`
	Description            string   `yaml:"description,omitempty"`
	Files                  string   `yaml:"files,omitempty"`
	Exclude                string   `yaml:"exclude,omitempty"`
	Types                  []string `yaml:"types,omitempty"`
	TypesOr                []string `yaml:"types_or,omitempty"`
	ExcludeTypes           []string `yaml:"exclude_types,omitempty"`
	AdditionalDependencies []string `yaml:"additional_dependencies,omitempty"`
	Args                   []string `yaml:"args,omitempty"`
	Stages                 []string `yaml:"stages,omitempty"`
	AlwaysRun              *bool    `yaml:"always_run,omitempty"`
}

// HookConfig is one entry in a repo's `hooks:` list in the project config:
// an id plus the overrides the user supplied.
type HookConfig struct {
	ID            string `yaml:"id"`
	HookOverrides `yaml:",inline"`
}

// RepoEntry is one entry in the project config's `repos:` list.
type RepoEntry struct {
	Repo  string       `yaml:"repo"`
	Rev   string       `yaml:"rev"`
	Hooks []HookConfig `yaml:"hooks"`
}

// RepoRef classifies Repo into the RepoRef tagged value.
func (r RepoEntry) RepoRef() RepoRef { return ParseRepoRef(r.Repo) }

// ProjectConfig is the top-level .pre-commit-config.yaml document.
type ProjectConfig struct {
	MinimumPreCommitVersion string      `yaml:"minimum_pre_commit_version,omitempty"`
	FailFast                bool        `yaml:"fail_fast,omitempty"`
	Files                   string      `yaml:"files,omitempty"`
	Exclude                 string      `yaml:"exclude,omitempty"`
	Repos                   []RepoEntry `yaml:"repos"`
}
