package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
)

// ResumeEnvironmentsInput contains the parameters for resuming environments.
type ResumeEnvironmentsInput struct {
	Targets []string // Explicit environment names; empty = derive from tracker statuses
	DryRun  bool     // If true, only report what would be rebuilt
}

// ResumeEnvironmentsOutput contains the result of resuming environments.
type ResumeEnvironmentsOutput struct {
	Report *domain.BatchReport
}

// ResumeEnvironments is the use case for rebuilding terminated dynamic
// environments whose tracker issue is still in an active status.
type ResumeEnvironments struct {
	provider     domain.CloudProvider
	tracker      domain.IssueTracker // nil allowed when only explicit targets are used
	notifier     domain.Notifier     // nil = notifications disabled
	clock        domain.Clock
	logger       *slog.Logger // nil = logging disabled
	application  string
	project      string
	statuses     []string
	lookbackDays int
	maxResults   int
}

// NewResumeEnvironments creates a new ResumeEnvironments use case.
func NewResumeEnvironments(
	provider domain.CloudProvider,
	tracker domain.IssueTracker,
	notifier domain.Notifier,
	clock domain.Clock,
	logger *slog.Logger,
	application, project string,
	statuses []string,
	lookbackDays, maxResults int,
) *ResumeEnvironments {
	return &ResumeEnvironments{
		provider:     provider,
		tracker:      tracker,
		notifier:     notifier,
		clock:        clock,
		logger:       logger,
		application:  application,
		project:      project,
		statuses:     statuses,
		lookbackDays: lookbackDays,
		maxResults:   maxResults,
	}
}

// Execute rebuilds the newest terminated descriptor of every targeted
// environment. Environments already running are skipped; per-item
// failures never abort the pass.
func (uc *ResumeEnvironments) Execute(ctx context.Context, in ResumeEnvironmentsInput) (*ResumeEnvironmentsOutput, error) {
	report := domain.NewBatchReport("resume")

	names, err := uc.targetNames(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return &ResumeEnvironmentsOutput{Report: report}, nil
	}

	// Terminated environments disappear from plain describes, so look
	// back a few days to find the descriptors to rebuild.
	since := uc.clock.Now().AddDate(0, 0, -uc.lookbackDays)
	envs, err := uc.provider.Environments(ctx, domain.EnvironmentQuery{
		Application:            uc.application,
		Names:                  names,
		IncludeTerminatedSince: since,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch environments: %w", err)
	}

	// The provider may report one descriptor per incarnation of a name;
	// only the newest one is a rebuild candidate.
	byName := make(map[string]domain.Environment, len(envs))
	for _, env := range domain.NewestPerName(envs) {
		byName[env.Name] = env
	}

	for _, name := range names {
		env, ok := byName[name]
		if !ok {
			report.Failed(name, fmt.Errorf("environment %s: %w", name, domain.ErrNotFound))
			continue
		}
		if !env.IsTerminated() {
			if uc.logger != nil {
				uc.logger.Debug("skipping environment", "environment", name, "state", env.State)
			}
			report.Skipped(name, "state is "+string(env.State))
			continue
		}
		if in.DryRun {
			report.Applied(name, "would rebuild (dry run)")
			continue
		}
		if err := uc.provider.RebuildEnvironment(ctx, env); err != nil {
			if domain.Fatal(err) {
				return nil, err
			}
			if uc.logger != nil {
				uc.logger.Warn("rebuild failed", "environment", name, "error", err)
			}
			report.Failed(name, err)
			continue
		}
		report.Applied(name, "rebuilt")
	}

	if err := uc.notify(ctx, in, report); err != nil {
		if uc.logger != nil {
			uc.logger.Warn("notification failed", "error", err)
		}
		report.Failed("notify", err)
	}

	return &ResumeEnvironmentsOutput{Report: report}, nil
}

// targetNames resolves the environments to resume: explicit targets,
// or the environments named after issues still in an active status.
func (uc *ResumeEnvironments) targetNames(ctx context.Context, in ResumeEnvironmentsInput) ([]string, error) {
	if len(in.Targets) > 0 {
		return in.Targets, nil
	}
	if uc.tracker == nil {
		return nil, domain.ErrTrackerUnset
	}
	if len(uc.statuses) == 0 {
		return nil, fmt.Errorf("%w: resume.statuses is empty and no targets given", domain.ErrValidation)
	}

	issues, err := uc.tracker.SearchIssues(ctx, domain.StatusesJQL(uc.project, uc.statuses), uc.maxResults)
	if err != nil {
		return nil, fmt.Errorf("search issues: %w", err)
	}

	names := make([]string, 0, len(issues))
	for _, issue := range issues {
		names = append(names, issue.EnvironmentName())
	}
	return names, nil
}

func (uc *ResumeEnvironments) notify(ctx context.Context, in ResumeEnvironmentsInput, report *domain.BatchReport) error {
	rebuilt := report.AppliedTargets()
	if uc.notifier == nil || in.DryRun || len(rebuilt) == 0 {
		return nil
	}
	now := uc.clock.Now().Format("2006-01-02 15:04")
	subject := fmt.Sprintf("Environments resumed at %s", now)
	message := fmt.Sprintf("Environments rebuilt automatically at %s:\n%s",
		now, strings.Join(rebuilt, ", "))
	return uc.notifier.Notify(ctx, subject, message)
}
