// Package orchestrator implements the top-level driver (spec.md §4.10):
// Phase A parallel-across-repos configuration, Phase B sequential hook
// execution. Grounded on the teacher's pkg/hook/orchestrator.go RunHooks /
// runHooksParallel / collectRepoHooks shape, adapted to SPEC_FULL.md's
// closed Python/Node language set and content-addressed checkout cache.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/akx/preco/pkg/checkout"
	"github.com/akx/preco/pkg/commandpack"
	"github.com/akx/preco/pkg/config"
	"github.com/akx/preco/pkg/dispatch"
	"github.com/akx/preco/pkg/envprovision"
	"github.com/akx/preco/pkg/fileset"
	"github.com/akx/preco/pkg/matcher"
	"github.com/akx/preco/pkg/report"
	"github.com/akx/preco/pkg/resolve"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

func loadSpecs(checkoutPath string) ([]config.HookSpec, error) {
	return config.LoadHookSpecs(filepath.Join(checkoutPath, ".pre-commit-hooks.yaml"))
}

// HookState mirrors spec.md §4.10's state machine.
type HookState int

const (
	StatePending HookState = iota
	StateReady
	StateSkipped
	StateFailedConfig
	StateSuccess
	StateFailure
)

// ConfiguredHook is one hook that has been through Phase A.
type ConfiguredHook struct {
	RepoURL      string
	Rev          string
	Hook         *resolve.ResolvedHook
	CheckoutPath string
	Matching     *matcher.MatchingFiles
	State        HookState
	SkipReason   string
}

// Options controls one run, corresponding to the CLI surface in spec.md §6.
type Options struct {
	AllFiles    bool
	DryRun      bool
	Stage       config.Stage
	SelectedIDs []string // hook id or alias; empty means "all"
	FailFast    bool
	Verbose     bool
}

// Orchestrator wires together every component from spec.md §4.
type Orchestrator struct {
	Store       *checkout.Store
	Provisioner *envprovision.Provisioner
	Classifier  fileset.Classifier
	Git         fileset.GitAdapter
	Cache       matcher.Cache
}

// New returns an Orchestrator from its collaborators.
func New(store *checkout.Store, provisioner *envprovision.Provisioner, classifier fileset.Classifier, git fileset.GitAdapter, cache matcher.Cache) *Orchestrator {
	return &Orchestrator{Store: store, Provisioner: provisioner, Classifier: classifier, Git: git, Cache: cache}
}

// Run executes one full run: FileSet construction, Phase A, Phase B. It
// returns the process exit code (0 on success, 1 on any error or hook
// failure, per the resolved Open Question in SPEC_FULL.md §9) and the
// final aggregated error, if any.
func (o *Orchestrator) Run(ctx context.Context, root string, cfg *config.ProjectConfig, opts Options) (int, error) {
	fs, err := fileset.Build(root, o.Git, o.Classifier, opts.AllFiles)
	if err != nil {
		return 1, err
	}

	configured, err := o.phaseA(ctx, root, cfg, fs, opts)
	if err != nil {
		return 1, err
	}

	failed := o.phaseB(ctx, root, configured, opts)
	fmt.Println(summaryLine(configured))
	if failed {
		return 1, nil
	}
	return 0, nil
}

// summaryLine renders the end-of-run banner via pkg/report, grounded on the
// teacher's run-summary formatting.
func summaryLine(hooks []*ConfiguredHook) string {
	var passed, failed, skipped int
	for _, ch := range hooks {
		switch ch.State {
		case StateSuccess:
			passed++
		case StateFailure, StateFailedConfig:
			failed++
		case StateSkipped:
			skipped++
		}
	}
	return report.Summary(len(hooks), passed, failed, skipped)
}

// phaseA configures every hook across every repo, in parallel across
// repositories, per spec.md §4.10 step 4 and §5.
func (o *Orchestrator) phaseA(ctx context.Context, root string, cfg *config.ProjectConfig, fs *fileset.FileSet, opts Options) ([]*ConfiguredHook, error) {
	runCfg := matcher.RunConfig{FilesRe: cfg.Files, ExcludeRe: cfg.Exclude}

	type repoResult struct {
		hooks []*ConfiguredHook
		err   error
	}
	results := make([]repoResult, len(cfg.Repos))

	var wg sync.WaitGroup
	for i, repo := range cfg.Repos {
		i, repo := i, repo
		wg.Add(1)
		go func() {
			defer wg.Done()
			hooks, err := o.configureRepo(ctx, repo, fs, runCfg, opts)
			results[i] = repoResult{hooks: hooks, err: err}
		}()
	}
	wg.Wait()

	var merr *multierror.Error
	var all []*ConfiguredHook
	for _, r := range results {
		if r.err != nil {
			merr = multierror.Append(merr, r.err)
			continue
		}
		all = append(all, r.hooks...)
	}
	if merr != nil {
		return nil, merr.ErrorOrNil()
	}
	return all, nil
}

func (o *Orchestrator) configureRepo(ctx context.Context, repo config.RepoEntry, fs *fileset.FileSet, runCfg matcher.RunConfig, opts Options) ([]*ConfiguredHook, error) {
	ref := repo.RepoRef()
	var out []*ConfiguredHook

	for _, hc := range repo.Hooks {
		if !selected(hc, opts.SelectedIDs) {
			continue
		}

		addlDeps := hc.AdditionalDependencies
		path, err := o.Store.Ensure(ctx, ref, repo.Rev, addlDeps)
		if err != nil {
			return nil, fmt.Errorf("repo %s@%s: %w", repo.Repo, repo.Rev, err)
		}

		specs, err := loadSpecs(path)
		if err != nil {
			return nil, fmt.Errorf("repo %s@%s: %w", repo.Repo, repo.Rev, err)
		}

		resolved, err := resolve.Resolve(hc, specs)
		if err != nil {
			return nil, fmt.Errorf("repo %s@%s: %w", repo.Repo, repo.Rev, err)
		}

		// The checkout (and the sandbox nested under it, provisioned in
		// phaseB) is keyed by the *resolved* additional-dependencies, not
		// the user's raw override: a manifest default the user didn't
		// override must land in the same checkout the sandbox will use.
		if !equalStrings(resolved.AdditionalDependencies, addlDeps) {
			path, err = o.Store.Ensure(ctx, ref, repo.Rev, resolved.AdditionalDependencies)
			if err != nil {
				return nil, fmt.Errorf("repo %s@%s: %w", repo.Repo, repo.Rev, err)
			}
		}

		ch := &ConfiguredHook{RepoURL: repo.Repo, Rev: repo.Rev, Hook: resolved, CheckoutPath: path}

		if len(resolved.Stages) > 0 && !containsStage(resolved.Stages, opts.Stage) {
			ch.State = StateSkipped
			ch.SkipReason = "stage filter"
			out = append(out, ch)
			continue
		}

		mf := matcher.Select(o.Cache, runCfg, fs, resolved)
		ch.Matching = mf
		if len(mf.Files) == 0 {
			ch.State = StateSkipped
			ch.SkipReason = "no matching files"
			out = append(out, ch)
			continue
		}
		ch.State = StateReady
		out = append(out, ch)
	}
	return out, nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func selected(hc config.HookConfig, ids []string) bool {
	if len(ids) == 0 {
		return true
	}
	for _, id := range ids {
		if id == hc.ID || (hc.Alias != "" && id == hc.Alias) {
			return true
		}
	}
	return false
}

func containsStage(stages []string, selected config.Stage) bool {
	for _, s := range stages {
		if s == selected.Name() {
			return true
		}
	}
	return false
}

// phaseB runs each Ready configured hook sequentially, in configuration
// order, per spec.md §4.10 step 6. It returns true if any hook failed.
func (o *Orchestrator) phaseB(ctx context.Context, root string, hooks []*ConfiguredHook, opts Options) bool {
	anyFailed := false
	for _, ch := range hooks {
		if ch.State != StateReady {
			logHookLine(ch, "Skipped")
			continue
		}
		if opts.DryRun {
			logHookLine(ch, "Planned")
			continue
		}

		env, err := o.Provisioner.Provision(ctx, ch.CheckoutPath, ch.Hook.Language, ch.Hook.AdditionalDependencies)
		if err != nil {
			ch.State = StateFailedConfig
			logrus.WithError(err).WithField("hook", ch.Hook.ID).Warn("provisioning failed")
			logHookLine(ch, "Failed")
			anyFailed = true
			if opts.FailFast {
				return true
			}
			continue
		}

		var files []string
		if ch.Hook.PassFilenames {
			files = ch.Matching.Files
		}
		entry := buildEntry(ch.Hook)
		parallelism := dispatch.AvailableParallelism()
		limit := commandpack.MaxCommandLengthPOSIX
		cmds := commandpack.Pack(entry, files, parallelism, limit, ch.Hook.RequireSerial)

		workdir := root
		d := dispatch.New(workdir, env.Set, env.Unset, opts.Verbose)
		if env.PathPrepend != "" {
			d.EnvSet = withPrependedPath(env.Set, env.PathPrepend)
		}
		results := d.RunBatch(ctx, cmds, ch.Hook.RequireSerial)

		success := true
		for _, r := range results {
			if !r.Success() {
				success = false
			}
		}
		if success {
			ch.State = StateSuccess
			logHookLine(ch, "Passed")
		} else {
			ch.State = StateFailure
			anyFailed = true
			logHookLine(ch, "Failed")
			if opts.FailFast {
				return true
			}
		}
	}
	return anyFailed
}

func withPrependedPath(set map[string]string, prepend string) map[string]string {
	out := make(map[string]string, len(set)+1)
	for k, v := range set {
		out[k] = v
	}
	out["PATH"] = prepend + string(os.PathListSeparator) + os.Getenv("PATH")
	return out
}

// buildEntry composes the command prefix CommandPacker appends file
// arguments to: the hook's entry (already a shell-splittable command
// string, passed through verbatim) plus its args (individually
// shell-quoted), per original_source/crates/preco/src/run_hook/helpers.rs
// get_command.
func buildEntry(h *resolve.ResolvedHook) string {
	out := h.Entry
	for _, a := range h.Args {
		out += " " + commandpack.ShellQuote(a)
	}
	return out
}

func logHookLine(ch *ConfiguredHook, status string) {
	name := ch.Hook.Name
	if name == "" {
		name = ch.Hook.ID
	}
	fmt.Println(report.HookLine(name, status))
	logrus.WithFields(logrus.Fields{
		"hook":   ch.Hook.ID,
		"status": status,
	}).Debug("hook finished")
}
