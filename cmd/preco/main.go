// Package main provides the preco command-line tool: a git pre-commit hook
// orchestrator that clones hook repositories, resolves hook definitions, and
// dispatches selected files to them in parallel.
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mitchellh/cli"
	"github.com/sirupsen/logrus"

	"github.com/akx/preco/internal/commands"
)

// Version information set by GoReleaser.
var (
	version = "dev"
	commit  = "none"    //nolint:unused // Set by GoReleaser
	date    = "unknown" //nolint:unused // Set by GoReleaser
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run strips preco's own global flags (--cwd, --tracing) from argv before
// handing the remainder to the mitchellh/cli subcommand dispatcher, per
// spec.md §6's "global --tracing (env: PRECO_TRACING), --cwd <dir>".
func run(args []string) int {
	tracing := os.Getenv("PRECO_TRACING") != ""
	var cwd string
	remaining := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--tracing":
			tracing = true
		case args[i] == "--cwd":
			i++
			if i < len(args) {
				cwd = args[i]
			}
		case strings.HasPrefix(args[i], "--cwd="):
			cwd = strings.TrimPrefix(args[i], "--cwd=")
		default:
			remaining = append(remaining, args[i])
		}
	}

	if tracing {
		logrus.SetLevel(logrus.TraceLevel)
	}
	if cwd != "" {
		if err := os.Chdir(cwd); err != nil {
			fmt.Fprintf(os.Stderr, "Error: --cwd %s: %v\n", cwd, err)
			return 1
		}
	}

	c := cli.NewCLI("preco", version+" ("+commit+" "+date+")")
	c.Args = remaining
	c.HelpFunc = customHelpFunc
	c.Commands = map[string]cli.CommandFactory{
		"run":       commands.RunCommandFactory,
		"install":   commands.InstallCommandFactory,
		"uninstall": commands.UninstallCommandFactory,
		"help":      commands.HelpCommandFactory,
	}

	exitStatus, err := c.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return exitStatus
}

// customHelpFunc renders the top-level command listing.
func customHelpFunc(cmdFactories map[string]cli.CommandFactory) string {
	names := make([]string, 0, len(cmdFactories))
	for name := range cmdFactories {
		if name != "help" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("usage: preco [--cwd DIR] [--tracing] {" + strings.Join(names, ",") + "} ...\n\n")
	b.WriteString("A pre-commit hook orchestrator.\n\n")
	b.WriteString("commands:\n")
	for _, name := range names {
		factory := cmdFactories[name]
		if c, err := factory(); err == nil {
			b.WriteString(fmt.Sprintf("  %-12s %s\n", name, c.Synopsis()))
		}
	}
	return b.String()
}
