package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/mitchellh/cli"

	"github.com/akx/preco/pkg/gitadapter"
)

// hookMarker is the comment line every shim script installed by preco
// carries, so uninstall can tell a preco-managed hook from one a user or
// another tool put there (spec.md §6).
const hookMarker = "preco-piispis-1"

// InstallOptions holds command-line options for the install command.
type InstallOptions struct {
	HookTypeOptions
	Force bool `short:"f" long:"force" description:"Overwrite an existing hook"`
	Help  bool `short:"h" long:"help"  description:"Show this help message"`
}

// InstallCommand implements `preco install`.
type InstallCommand struct{ BaseCommand }

// InstallCommandFactory builds an InstallCommand for the mitchellh/cli dispatcher.
func InstallCommandFactory() (cli.Command, error) {
	return &InstallCommand{BaseCommand{Name: "install", Description: "Install git hooks"}}, nil
}

// Synopsis returns the one-line command summary.
func (c *InstallCommand) Synopsis() string { return "Install git hooks into the repository" }

// Help returns the install command's full help text.
func (c *InstallCommand) Help() string {
	var opts InstallOptions
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = OptionsUsage
	formatter := &HelpFormatter{
		Command:     "install",
		Description: "Install the preco git hook shim into .git/hooks.",
		Examples: []Example{
			{Command: "preco install", Description: "Install the pre-commit hook"},
			{Command: "preco install -t pre-push", Description: "Install the pre-push hook"},
			{Command: "preco install -f", Description: "Overwrite an existing hook"},
		},
	}
	return formatter.FormatHelp(parser)
}

// Run writes a shim script for each requested hook type into .git/hooks.
func (c *InstallCommand) Run(args []string) int {
	var opts InstallOptions
	remaining, err := c.ParseArgsWithHelp(&opts, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if remaining == nil && err == nil {
		return 0
	}
	if err := opts.ValidateHookTypes(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	git, err := gitadapter.Open(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: not in a git repository: %v\n", err)
		return 1
	}

	hooksDir := filepath.Join(git.Root(), ".git", "hooks")
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create hooks directory: %v\n", err)
		return 1
	}

	installed := 0
	for _, hookType := range opts.GetDefaultHookTypes("pre-commit") {
		hookPath := filepath.Join(hooksDir, hookType)
		if !opts.Force {
			if _, err := os.Stat(hookPath); err == nil {
				fmt.Printf("Hook %s already exists (use -f to overwrite)\n", hookType)
				continue
			}
		}
		if err := os.WriteFile(hookPath, []byte(hookScript(hookType)), 0o744); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to install %s hook: %v\n", hookType, err)
			return 1
		}
		fmt.Printf("preco installed at .git/hooks/%s\n", hookType)
		installed++
	}

	if installed == 0 {
		return 1
	}
	return 0
}

// hookScript renders the POSIX shim script for hookType, per spec.md §6.
func hookScript(hookType string) string {
	return fmt.Sprintf("#!/bin/sh\n# %s\nexec preco run --git-hook=%s\n", hookMarker, hookType)
}
