package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/duartqx/aws-devops-open-scripts/internal/app"
	"github.com/duartqx/aws-devops-open-scripts/internal/usecase"
)

// newPauseCommand creates the pause command for terminating running
// review environments.
func newPauseCommand(c *app.Container) *cobra.Command {
	var (
		dryRun bool
		yes    bool
	)

	cmd := &cobra.Command{
		Use:     "pause [environment...]",
		Short:   "Terminate running review environments",
		GroupID: groupEnvironments,
		Long: `Pause terminates running review environments so they stop
accruing cost. Without arguments every environment matching the
configured prefix is terminated, except the ones on the skip list.

Environments that are already terminated or mid-transition are
skipped. The command exits zero even when individual environments
fail; only a total failure (authentication, bad configuration) is
fatal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.Config.ValidateEnvironments(); err != nil {
				return err
			}

			if len(args) == 0 && !dryRun && !yes {
				fmt.Fprintf(cmd.OutOrStdout(),
					"Terminate all %q environments with prefix %q? [y/N] ",
					c.Config.AWS.Application, c.Config.Pause.Prefix)
				var response string
				if _, scanErr := fmt.Scanln(&response); scanErr != nil {
					fmt.Fprintln(cmd.OutOrStdout(), "\nAborted.")
					return nil
				}
				if !strings.EqualFold(strings.TrimSpace(response), "y") {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			out, err := c.PauseEnvironmentsUseCase().Execute(cmd.Context(), usecase.PauseEnvironmentsInput{
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

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be terminated without doing it")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
