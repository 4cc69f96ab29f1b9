package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/mitchellh/cli"

	"github.com/akx/preco/pkg/cachedir"
	"github.com/akx/preco/pkg/checkout"
	"github.com/akx/preco/pkg/config"
	"github.com/akx/preco/pkg/envprovision"
	"github.com/akx/preco/pkg/filetype"
	"github.com/akx/preco/pkg/gitadapter"
	"github.com/akx/preco/pkg/orchestrator"
	"github.com/akx/preco/pkg/regexcache"
)

const defaultConfigFile = ".pre-commit-config.yaml"

// RunOptions holds command-line options for the run command, matching the
// CLI surface in spec.md §6.
type RunOptions struct {
	Config       string   `long:"config"          description:"Path to config file"             short:"c" default:".pre-commit-config.yaml"`
	AllFiles     bool     `long:"all-files"       description:"Run on all files in the repository" short:"a"`
	DryRun       bool     `long:"dry-run"         description:"Show what would run without executing hooks"`
	GitHookStage string   `long:"git-hook-stage"  description:"Git hook phase that is invoking this run" default:"pre-commit"`
	GitHook      string   `long:"git-hook"        description:"Alias for --git-hook-stage, used by the installed hook shim"`
	Verbose      bool     `long:"verbose"         description:"Inherit hook stdout/stderr instead of capturing it" short:"v"`
	FailFast     bool     `long:"fail-fast"       description:"Stop after the first failing hook"`
	Help         bool     `long:"help"            description:"Show this help message"          short:"h"`
}

// RunCommand implements `preco run`.
type RunCommand struct{ BaseCommand }

// RunCommandFactory builds a RunCommand for the mitchellh/cli dispatcher.
func RunCommandFactory() (cli.Command, error) {
	return &RunCommand{BaseCommand{Name: "run", Description: "Run hooks"}}, nil
}

// Synopsis returns the one-line command summary.
func (c *RunCommand) Synopsis() string { return "Run hooks on files" }

// Help returns the run command's full help text.
func (c *RunCommand) Help() string {
	var opts RunOptions
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[OPTIONS] [hook-id ...]"
	return c.GenerateHelp(parser)
}

// Run parses args, loads the project config, and drives the Orchestrator.
func (c *RunCommand) Run(args []string) int {
	var opts RunOptions
	remaining, err := c.ParseArgsWithHelp(&opts, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if remaining == nil && err == nil {
		return 0 // help was shown
	}

	cfg, err := config.LoadProjectConfig(opts.Config)
	if err != nil {
		printCausedBy(err)
		return 1
	}

	root, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	git, err := gitadapter.Open(root)
	if err != nil {
		printCausedBy(fmt.Errorf("run: %w", err))
		return 1
	}

	checkoutsDir, err := cachedir.Checkouts()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	o := orchestrator.New(
		checkout.New(checkoutsDir),
		envprovision.New(),
		filetype.NewRegistry(),
		git,
		regexcache.Default,
	)

	stage := opts.GitHookStage
	if opts.GitHook != "" {
		stage = opts.GitHook
	}

	runOpts := orchestrator.Options{
		AllFiles:    opts.AllFiles,
		DryRun:      opts.DryRun,
		Stage:       config.ParseStage(stage),
		SelectedIDs: remaining,
		FailFast:    opts.FailFast || cfg.FailFast,
		Verbose:     opts.Verbose,
	}

	code, err := o.Run(context.Background(), root, cfg, runOpts)
	if err != nil {
		printCausedBy(err)
		return 1
	}
	return code
}

// printCausedBy prints the top-level error message plus the chain of
// causes, one per line prefixed "  Caused by:", per spec.md §7.
func printCausedBy(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	for unwrapped := errors.Unwrap(err); unwrapped != nil; unwrapped = errors.Unwrap(unwrapped) {
		fmt.Fprintf(os.Stderr, "  Caused by: %v\n", unwrapped)
	}
}
