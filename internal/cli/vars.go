package cli

import (
	"github.com/spf13/cobra"

	"github.com/duartqx/aws-devops-open-scripts/internal/app"
	"github.com/duartqx/aws-devops-open-scripts/internal/usecase"
)

// newVarsCommand creates the vars command for printing environment
// variables.
func newVarsCommand(c *app.Container) *cobra.Command {
	var (
		variables  []string
		invalidate bool
	)

	cmd := &cobra.Command{
		Use:     "vars <environment>...",
		Short:   "Print the variables configured on environments",
		GroupID: groupEnvironments,
		Long: `Vars prints the variables configured on each environment in
dotenv form. Results are cached; pass --invalidate to force a fresh
fetch. With -V only the named variables are printed, unset ones as
empty values.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.Config.ValidateEnvironments(); err != nil {
				return err
			}

			out, err := c.DescribeVariablesUseCase().Execute(cmd.Context(), usecase.DescribeVariablesInput{
				Environments: args,
				Variables:    variables,
				Invalidate:   invalidate,
			})
			if err != nil {
				return err
			}

			renderVariables(cmd.OutOrStdout(), out.Environments)
			if out.Report.HasFailures() {
				renderReport(cmd.ErrOrStderr(), out.Report)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&variables, "variable", "V", nil, "Only print these variables (repeatable)")
	cmd.Flags().BoolVarP(&invalidate, "invalidate", "I", false, "Skip the cache and fetch fresh values")

	return cmd
}
