package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
	"github.com/duartqx/aws-devops-open-scripts/internal/usecase"
)

// Terminal color palette.
var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00B894")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D63031")) // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FDCB6E")) // Yellow
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#636E72")) // Gray
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00B894")).Bold(true)
	staleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#D63031")).Bold(true)
)

// renderReport prints one line per item followed by a summary line.
func renderReport(w io.Writer, report *domain.BatchReport) {
	for _, item := range report.Items {
		switch item.Outcome {
		case domain.OutcomeApplied:
			fmt.Fprintf(w, "%s %s: %s\n", successStyle.Render("✓"), item.Target, item.Reason)
		case domain.OutcomeSkipped:
			fmt.Fprintf(w, "%s %s: %s\n", mutedStyle.Render("-"), item.Target, mutedStyle.Render(item.Reason))
		case domain.OutcomeFailed:
			fmt.Fprintf(w, "%s %s: %v\n", errorStyle.Render("✗"), item.Target, item.Err)
		}
	}
	fmt.Fprintf(w, "%s: %d applied, %d skipped, %d failed\n",
		report.Action,
		report.Count(domain.OutcomeApplied),
		report.Count(domain.OutcomeSkipped),
		report.Count(domain.OutcomeFailed),
	)
}

// renderRows prints the reconciliation rows the way the team reads them:
// one block per issue with its merge requests and CI builds.
func renderRows(w io.Writer, rows []domain.ReconciledIssue) {
	for i, row := range rows {
		if i > 0 {
			fmt.Fprintln(w)
		}
		renderRow(w, row)
	}
}

func renderRow(w io.Writer, row domain.ReconciledIssue) {
	issue := row.Issue

	header := fmt.Sprintf("%s [%s] (%s)", keyStyle.Render(issue.Key), issue.Status, issue.Type)
	if row.Stale() {
		header += " " + staleStyle.Render("MERGED BUT OPEN")
	}
	fmt.Fprintln(w, header)
	fmt.Fprintf(w, "  %s\n", issue.Summary)

	people := "  reporter: " + orDash(issue.Reporter)
	if issue.Assignee != "" {
		people += "  assignee: " + issue.Assignee
	}
	fmt.Fprintln(w, mutedStyle.Render(people))
	if issue.URL != "" {
		fmt.Fprintf(w, "  %s\n", mutedStyle.Render(issue.URL))
	}

	for _, mr := range row.MergeRequests {
		fmt.Fprintf(w, "  %s %s %s\n", renderMergeState(mr.State), mr.SourceBranch, mutedStyle.Render(mr.URL))
	}
	for _, p := range row.Pipelines {
		fmt.Fprintf(w, "  build #%d %s %s\n", p.BuildNumber, p.Branch, mutedStyle.Render(p.URL))
	}
	if row.Classification == domain.ClassNoLinkedMR {
		fmt.Fprintln(w, mutedStyle.Render("  no linked merge requests"))
	}
}

func renderMergeState(state domain.MergeState) string {
	switch state {
	case domain.MergeStateMerged:
		return successStyle.Render("MERGED")
	case domain.MergeStateOpen:
		return warningStyle.Render("OPEN")
	default:
		return mutedStyle.Render(strings.ToUpper(string(state)))
	}
}

// renderVariables prints one block per environment in dotenv form so the
// output can be pasted into an env file.
func renderVariables(w io.Writer, envs []usecase.EnvironmentVariables) {
	for i, env := range envs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		source := "api"
		if env.FromCache {
			source = "cache"
		}
		fmt.Fprintf(w, "%s %s\n", keyStyle.Render(env.Environment), mutedStyle.Render("("+source+")"))
		for _, name := range sortedKeys(env.Vars) {
			fmt.Fprintf(w, "%s=%s\n", name, env.Vars[name])
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
