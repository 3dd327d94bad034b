// Package cli provides the command-line interface for opsctl.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/duartqx/aws-devops-open-scripts/internal/app"
)

// Command group IDs.
const (
	groupEnvironments = "environments"
	groupIssues       = "issues"
)

// NewRootCommand creates the root command for opsctl.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "opsctl",
		Short: "Operations CLI for dynamic review environments",
		Long: `opsctl automates the operations around short-lived review
environments: pausing them outside working hours, resuming the ones
whose tracker issue is still active, and reconciling issues against
merge activity on the code host.

Configuration is read from opsctl.toml in the working directory,
falling back to ~/.config/opsctl/opsctl.toml. Credentials are taken
from environment variables only.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
	}

	root.AddGroup(
		&cobra.Group{ID: groupEnvironments, Title: "Environment Commands:"},
		&cobra.Group{ID: groupIssues, Title: "Issue Commands:"},
	)

	root.AddCommand(
		newPauseCommand(c),
		newResumeCommand(c),
		newVarsCommand(c),
		newAssignIPCommand(c),
		newReconcileCommand(c),
	)

	return root
}
