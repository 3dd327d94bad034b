package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duartqx/aws-devops-open-scripts/internal/app"
	"github.com/duartqx/aws-devops-open-scripts/internal/usecase"
)

// newAssignIPCommand creates the assign-ip command for re-attaching an
// environment's elastic IP.
func newAssignIPCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assign-ip <environment>",
		Short:   "Associate the tagged elastic IP with an environment's instance",
		GroupID: groupEnvironments,
		Long: `Assign-ip looks up the running instance of an environment and
the elastic IP tagged with the environment's name, and associates the
two. Run it after a rebuild, when the environment comes back on a
fresh instance.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.AssignAddressUseCase().Execute(cmd.Context(), usecase.AssignAddressInput{
				Environment: args[0],
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s associated %s -> %s (%s)\n",
				successStyle.Render("✓"), out.AllocationID, out.NetworkInterfaceID, out.AssociationID)
			return nil
		},
	}

	return cmd
}
