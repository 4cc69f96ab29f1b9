// Package report formats the per-hook pass/fail log lines and a run-summary
// banner, grounded on the teacher's pkg/hook/formatting/formatter.go
// (fatih/color dot-padded status lines) and wiring the teacher's otherwise
// unused github.com/charmbracelet/lipgloss dependency for the summary
// banner.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

const lineWidth = 79

var (
	passedColor  = color.New(color.FgGreen)
	failedColor  = color.New(color.FgRed)
	skippedColor = color.New(color.FgYellow)
)

// HookLine renders one "name.......Passed" line in the style of the
// teacher's formatter, dot-padded to lineWidth like Python pre-commit.
func HookLine(name, status string) string {
	dots := lineWidth - len(name) - len(status)
	if dots < 1 {
		dots = 1
	}
	line := name + strings.Repeat(".", dots) + status
	switch status {
	case "Passed":
		return passedColor.Sprint(line)
	case "Failed":
		return failedColor.Sprint(line)
	default:
		return skippedColor.Sprint(line)
	}
}

// Summary renders the end-of-run banner.
func Summary(total, passed, failed, skipped int) string {
	style := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())
	if failed > 0 {
		style = style.BorderForeground(lipgloss.Color("1"))
	} else {
		style = style.BorderForeground(lipgloss.Color("2"))
	}
	body := fmt.Sprintf("%d hooks run, %d passed, %d failed, %d skipped", total, passed, failed, skipped)
	return style.Render(body)
}
