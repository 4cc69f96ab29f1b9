package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/mitchellh/cli"

	"github.com/akx/preco/pkg/gitadapter"
)

// UninstallOptions holds command-line options for the uninstall command.
type UninstallOptions struct {
	HookTypeOptions
	Help bool `short:"h" long:"help" description:"Show this help message"`
}

// UninstallCommand implements `preco uninstall`.
type UninstallCommand struct{ BaseCommand }

// UninstallCommandFactory builds an UninstallCommand for the mitchellh/cli dispatcher.
func UninstallCommandFactory() (cli.Command, error) {
	return &UninstallCommand{BaseCommand{Name: "uninstall", Description: "Uninstall git hooks"}}, nil
}

// Synopsis returns the one-line command summary.
func (c *UninstallCommand) Synopsis() string { return "Uninstall git hooks from the repository" }

// Help returns the uninstall command's full help text.
func (c *UninstallCommand) Help() string {
	var opts UninstallOptions
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = OptionsUsage
	formatter := &HelpFormatter{
		Command:     "uninstall",
		Description: "Remove the preco git hook shim from .git/hooks.",
		Examples: []Example{
			{Command: "preco uninstall", Description: "Remove the pre-commit hook"},
		},
		Notes: []string{
			"Only hook scripts carrying the preco marker comment are removed.",
		},
	}
	return formatter.FormatHelp(parser)
}

// Run removes the shim script for each requested hook type, but only if it
// carries the preco marker (spec.md §6): a hook installed by something
// else, or hand-edited, is left alone.
func (c *UninstallCommand) Run(args []string) int {
	var opts UninstallOptions
	remaining, err := c.ParseArgsWithHelp(&opts, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if remaining == nil && err == nil {
		return 0
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
	removed := 0
	for _, hookType := range opts.GetDefaultHookTypes("pre-commit") {
		hookPath := filepath.Join(hooksDir, hookType)
		content, err := os.ReadFile(hookPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			fmt.Fprintf(os.Stderr, "Error: failed to read %s hook: %v\n", hookType, err)
			return 1
		}
		if !strings.Contains(string(content), hookMarker) {
			fmt.Printf("Hook %s was not installed by preco, leaving it alone\n", hookType)
			continue
		}
		if err := os.Remove(hookPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to remove %s hook: %v\n", hookType, err)
			return 1
		}
		fmt.Printf("preco uninstalled from .git/hooks/%s\n", hookType)
		removed++
	}

	if removed == 0 {
		fmt.Println("No preco hooks were installed")
	}
	return 0
}
