package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
)

// ReconcileIssuesInput contains the parameters for reconciling issues
// against merge activity.
type ReconcileIssuesInput struct {
	Keys    []string // Restrict to specific issue keys; empty = configured filter
	Comment bool     // Add a tracker comment on merged-but-open issues
	Label   bool     // Add the configured label on merged-but-open issues
}

// ReconcileIssuesOutput contains the reconciliation rows and the
// outcomes of any flagging actions.
type ReconcileIssuesOutput struct {
	Rows   []domain.ReconciledIssue
	Report *domain.BatchReport
}

// ReconcileIssues is the use case for cross-referencing tracker issues
// with merge requests and CI pipelines from the code host.
type ReconcileIssues struct {
	tracker    domain.IssueTracker
	host       domain.CodeHost
	logger     *slog.Logger // nil = logging disabled
	project    string
	jql        string // Custom issue filter; empty = open issues of the project
	label      string
	maxResults int
}

// NewReconcileIssues creates a new ReconcileIssues use case.
func NewReconcileIssues(
	tracker domain.IssueTracker,
	host domain.CodeHost,
	logger *slog.Logger,
	project, jql, label string,
	maxResults int,
) *ReconcileIssues {
	return &ReconcileIssues{
		tracker:    tracker,
		host:       host,
		logger:     logger,
		project:    project,
		jql:        jql,
		label:      label,
		maxResults: maxResults,
	}
}

// Execute fetches issues, merge requests and pipelines concurrently,
// classifies every issue, and flags the merged-but-open ones. A failed
// flagging action for one issue is recorded and does not stop the rest.
func (uc *ReconcileIssues) Execute(ctx context.Context, in ReconcileIssuesInput) (*ReconcileIssuesOutput, error) {
	var (
		issues    []domain.Issue
		mrs       []domain.MergeRequest
		pipelines []domain.Pipeline
	)

	// The three fetches are independent and unordered.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		issues, err = uc.tracker.SearchIssues(gctx, uc.issueJQL(in.Keys), uc.maxResults)
		return err
	})
	g.Go(func() error {
		var err error
		mrs, err = uc.host.ListMergeRequests(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		pipelines, err = uc.host.ListPipelines(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}

	mrsByKey := groupMergeRequests(mrs)
	pipesByKey := groupPipelines(pipelines)

	report := domain.NewBatchReport("reconcile")
	rows := make([]domain.ReconciledIssue, 0, len(issues))
	for _, issue := range issues {
		row := domain.ReconciledIssue{
			Issue:          issue,
			MergeRequests:  mrsByKey[issue.Key],
			Pipelines:      filterPipelines(pipesByKey[issue.Key]),
			Classification: domain.Classify(issue, mrsByKey[issue.Key]),
		}
		rows = append(rows, row)

		if !row.Stale() {
			continue
		}
		if err := uc.flag(ctx, in, row, report); err != nil {
			return nil, err
		}
	}

	return &ReconcileIssuesOutput{Rows: rows, Report: report}, nil
}

// flag applies the requested label/comment to one stale issue. The
// configured label doubles as the already-flagged marker, keeping
// re-runs idempotent, so it is applied first: a comment that fails
// after the label landed must not cause a second comment next run.
func (uc *ReconcileIssues) flag(ctx context.Context, in ReconcileIssuesInput, row domain.ReconciledIssue, report *domain.BatchReport) error {
	if !in.Comment && !in.Label {
		return nil
	}
	issue := row.Issue
	if issue.HasLabel(uc.label) {
		if uc.logger != nil {
			uc.logger.Debug("skipping issue", "issue", issue.Key, "reason", "already flagged")
		}
		report.Skipped(issue.Key, "already flagged")
		return nil
	}

	if in.Label {
		if err := uc.tracker.AddLabel(ctx, issue.Key, uc.label); err != nil {
			if domain.Fatal(err) {
				return err
			}
			if uc.logger != nil {
				uc.logger.Warn("label failed", "issue", issue.Key, "error", err)
			}
			report.Failed(issue.Key, err)
			return nil
		}
	}
	if in.Comment {
		if err := uc.tracker.AddComment(ctx, issue.Key, staleComment(row)); err != nil {
			if domain.Fatal(err) {
				return err
			}
			if uc.logger != nil {
				uc.logger.Warn("comment failed", "issue", issue.Key, "error", err)
			}
			report.Failed(issue.Key, err)
			return nil
		}
	}
	report.Applied(issue.Key, "flagged merged-but-open")
	return nil
}

// issueJQL picks the issue filter for this run.
func (uc *ReconcileIssues) issueJQL(keys []string) string {
	if len(keys) > 0 {
		return domain.KeysJQL(uc.project, keys)
	}
	if uc.jql != "" {
		return uc.jql
	}
	return domain.OpenIssuesJQL(uc.project)
}

// staleComment renders the tracker comment for a merged-but-open issue.
func staleComment(row domain.ReconciledIssue) string {
	var b strings.Builder
	b.WriteString("All linked merge requests are merged but this issue is still open:\n")
	for _, mr := range row.MergeRequests {
		if mr.State == domain.MergeStateMerged {
			fmt.Fprintf(&b, "- %s (%s)\n", mr.URL, mr.SourceBranch)
		}
	}
	return b.String()
}

// groupMergeRequests indexes merge requests by the issue key encoded in
// their source branch. Branches without a key are ignored.
func groupMergeRequests(mrs []domain.MergeRequest) map[string][]domain.MergeRequest {
	grouped := make(map[string][]domain.MergeRequest)
	for _, mr := range mrs {
		if key := mr.IssueKey(); key != "" {
			grouped[key] = append(grouped[key], mr)
		}
	}
	return grouped
}

// groupPipelines indexes pipelines by the issue key encoded in their
// branch.
func groupPipelines(pipelines []domain.Pipeline) map[string][]domain.Pipeline {
	grouped := make(map[string][]domain.Pipeline)
	for _, p := range pipelines {
		if key := domain.IssueKeyFromBranch(p.Branch); key != "" {
			grouped[key] = append(grouped[key], p)
		}
	}
	return grouped
}

// filterPipelines keeps every migration build but only the newest
// regular build, matching how the team reads the CI history.
func filterPipelines(pipelines []domain.Pipeline) []domain.Pipeline {
	if len(pipelines) == 0 {
		return nil
	}
	var migrations []domain.Pipeline
	var newest *domain.Pipeline
	for i := range pipelines {
		p := pipelines[i]
		if strings.Contains(p.Branch, "migra") {
			migrations = append(migrations, p)
			continue
		}
		if newest == nil || p.BuildNumber > newest.BuildNumber {
			newest = &pipelines[i]
		}
	}
	result := migrations
	if newest != nil {
		result = append(result, *newest)
	}
	return result
}
