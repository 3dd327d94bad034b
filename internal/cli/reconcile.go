package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/duartqx/aws-devops-open-scripts/internal/app"
	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
	"github.com/duartqx/aws-devops-open-scripts/internal/usecase"
)

// newReconcileCommand creates the reconcile command for cross-checking
// tracker issues against merge activity.
func newReconcileCommand(c *app.Container) *cobra.Command {
	var (
		comment bool
		label   bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:     "reconcile [issue-key...]",
		Short:   "Cross-check tracker issues against merge requests",
		GroupID: groupIssues,
		Long: `Reconcile fetches open tracker issues, the repository's merge
requests and its CI builds, and lines them up by issue key (taken from
the merge request's source branch, e.g. feature/PROJ-123).

Issues whose merge requests are all merged but that are still open are
highlighted. With --comment or --label those issues are also flagged on
the tracker; an issue that already carries the configured label is left
alone, so re-runs are safe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.Config.ValidateTracker(); err != nil {
				return err
			}
			if err := c.Config.ValidateCodeHost(); err != nil {
				return err
			}

			out, err := c.ReconcileIssuesUseCase().Execute(cmd.Context(), usecase.ReconcileIssuesInput{
				Keys:    args,
				Comment: comment,
				Label:   label,
			})
			if err != nil {
				return err
			}

			if jsonOut {
				return writeRowsJSON(cmd, out.Rows)
			}

			renderRows(cmd.OutOrStdout(), out.Rows)
			if len(out.Report.Items) > 0 {
				renderReport(cmd.OutOrStdout(), out.Report)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&comment, "comment", false, "Comment on merged-but-open issues")
	cmd.Flags().BoolVar(&label, "label", false, "Label merged-but-open issues")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output rows as JSON")

	return cmd
}

// rowJSON is the machine-readable shape of one reconciliation row.
type rowJSON struct {
	Key            string             `json:"key"`
	Summary        string             `json:"summary"`
	Status         string             `json:"status"`
	Type           string             `json:"type"`
	Reporter       string             `json:"reporter,omitempty"`
	Assignee       string             `json:"assignee,omitempty"`
	URL            string             `json:"url,omitempty"`
	Classification string             `json:"classification"`
	MergeRequests  []mergeRequestJSON `json:"merge_requests"`
	Pipelines      []pipelineJSON     `json:"pipelines"`
}

type mergeRequestJSON struct {
	Title        string `json:"title"`
	SourceBranch string `json:"source_branch"`
	State        string `json:"state"`
	URL          string `json:"url,omitempty"`
}

type pipelineJSON struct {
	Branch      string `json:"branch"`
	URL         string `json:"url,omitempty"`
	BuildNumber int    `json:"build_number"`
}

func writeRowsJSON(cmd *cobra.Command, rows []domain.ReconciledIssue) error {
	encoded := make([]rowJSON, 0, len(rows))
	for _, row := range rows {
		r := rowJSON{
			Key:            row.Issue.Key,
			Summary:        row.Issue.Summary,
			Status:         row.Issue.Status,
			Type:           row.Issue.Type,
			Reporter:       row.Issue.Reporter,
			Assignee:       row.Issue.Assignee,
			URL:            row.Issue.URL,
			Classification: string(row.Classification),
			MergeRequests:  make([]mergeRequestJSON, 0, len(row.MergeRequests)),
			Pipelines:      make([]pipelineJSON, 0, len(row.Pipelines)),
		}
		for _, mr := range row.MergeRequests {
			r.MergeRequests = append(r.MergeRequests, mergeRequestJSON{
				Title:        mr.Title,
				SourceBranch: mr.SourceBranch,
				State:        string(mr.State),
				URL:          mr.URL,
			})
		}
		for _, p := range row.Pipelines {
			r.Pipelines = append(r.Pipelines, pipelineJSON{
				Branch:      p.Branch,
				URL:         p.URL,
				BuildNumber: p.BuildNumber,
			})
		}
		encoded = append(encoded, r)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(encoded)
}
