package cli

import (
	"github.com/spf13/cobra"

	"github.com/duartqx/aws-devops-open-scripts/internal/app"
	"github.com/duartqx/aws-devops-open-scripts/internal/usecase"
)

// newResumeCommand creates the resume command for rebuilding
// terminated review environments.
func newResumeCommand(c *app.Container) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "resume [environment...]",
		Short:   "Rebuild terminated review environments",
		GroupID: groupEnvironments,
		Long: `Resume rebuilds terminated review environments. Without
arguments the targets are derived from the issue tracker: every issue
in one of the configured resume statuses names an environment (the
issue key with the dash removed, PROJ-123 -> PROJ123).

Environments that are already running are skipped. Per-environment
failures are reported but do not abort the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.Config.ValidateEnvironments(); err != nil {
				return err
			}
			if len(args) == 0 {
				if err := c.Config.ValidateTracker(); err != nil {
					return err
				}
			}

			out, err := c.ResumeEnvironmentsUseCase().Execute(cmd.Context(), usecase.ResumeEnvironmentsInput{
				Targets: args,
				DryRun:  dryRun,
			})
			if err != nil {
				return err
			}

			renderReport(cmd.OutOrStdout(), out.Report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be rebuilt without doing it")

	return cmd
}
