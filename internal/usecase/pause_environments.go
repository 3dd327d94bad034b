package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
)

// PauseEnvironmentsInput contains the parameters for pausing environments.
type PauseEnvironmentsInput struct {
	Targets []string // Explicit environment names; empty = all dynamic environments
	DryRun  bool     // If true, only report what would be terminated
}

// PauseEnvironmentsOutput contains the result of pausing environments.
type PauseEnvironmentsOutput struct {
	Report *domain.BatchReport
}

// PauseEnvironments is the use case for terminating running dynamic
// environments. Recurrence (the Friday-evening shutdown) lives in the
// external scheduler, not here.
type PauseEnvironments struct {
	provider    domain.CloudProvider
	notifier    domain.Notifier // nil = notifications disabled
	clock       domain.Clock
	logger      *slog.Logger // nil = logging disabled
	application string
	prefix      string
	skip        []string
}

// NewPauseEnvironments creates a new PauseEnvironments use case.
func NewPauseEnvironments(
	provider domain.CloudProvider,
	notifier domain.Notifier,
	clock domain.Clock,
	logger *slog.Logger,
	application, prefix string,
	skip []string,
) *PauseEnvironments {
	return &PauseEnvironments{
		provider:    provider,
		notifier:    notifier,
		clock:       clock,
		logger:      logger,
		application: application,
		prefix:      prefix,
		skip:        skip,
	}
}

// Execute terminates every targeted environment that is currently
// running. Environments already paused (or mid-transition) are skipped;
// per-item failures never abort the pass.
func (uc *PauseEnvironments) Execute(ctx context.Context, in PauseEnvironmentsInput) (*PauseEnvironmentsOutput, error) {
	report := domain.NewBatchReport("pause")

	envs, err := uc.provider.Environments(ctx, domain.EnvironmentQuery{
		Application: uc.application,
		Names:       in.Targets,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch environments: %w", err)
	}

	byName := make(map[string]domain.Environment, len(envs))
	for _, env := range envs {
		byName[env.Name] = env
	}

	for _, name := range uc.candidates(in.Targets, envs) {
		env, ok := byName[name]
		if !ok {
			report.Failed(name, fmt.Errorf("environment %s: %w", name, domain.ErrNotFound))
			continue
		}
		if !env.IsRunning() {
			if uc.logger != nil {
				uc.logger.Debug("skipping environment", "environment", name, "state", env.State)
			}
			report.Skipped(name, "state is "+string(env.State))
			continue
		}
		if in.DryRun {
			report.Applied(name, "would terminate (dry run)")
			continue
		}
		if err := uc.provider.TerminateEnvironment(ctx, env); err != nil {
			if domain.Fatal(err) {
				return nil, err
			}
			if uc.logger != nil {
				uc.logger.Warn("terminate failed", "environment", name, "error", err)
			}
			report.Failed(name, err)
			continue
		}
		report.Applied(name, "terminated")
	}

	if err := uc.notify(ctx, in, report); err != nil {
		// Notification failure must not turn a finished pass into an error.
		if uc.logger != nil {
			uc.logger.Warn("notification failed", "error", err)
		}
		report.Failed("notify", err)
	}

	return &PauseEnvironmentsOutput{Report: report}, nil
}

// candidates returns the environment names to act on: the explicit
// targets, or every running environment matching the dynamic prefix and
// not on the skip list.
func (uc *PauseEnvironments) candidates(targets []string, envs []domain.Environment) []string {
	if len(targets) > 0 {
		return targets
	}
	names := []string{}
	for _, env := range envs {
		if uc.prefix != "" && !strings.HasPrefix(env.Name, uc.prefix) {
			continue
		}
		if uc.skipped(env.Name) {
			continue
		}
		names = append(names, env.Name)
	}
	return names
}

func (uc *PauseEnvironments) skipped(name string) bool {
	for _, s := range uc.skip {
		if s == name {
			return true
		}
	}
	return false
}

// notify emails/posts the list of terminated environments, mirroring
// the original scheduled-shutdown announcement.
func (uc *PauseEnvironments) notify(ctx context.Context, in PauseEnvironmentsInput, report *domain.BatchReport) error {
	terminated := report.AppliedTargets()
	if uc.notifier == nil || in.DryRun || len(terminated) == 0 {
		return nil
	}
	now := uc.clock.Now().Format("2006-01-02 15:04")
	subject := fmt.Sprintf("Environments paused at %s", now)
	message := fmt.Sprintf("Environments terminated automatically at %s:\n%s",
		now, strings.Join(terminated, ", "))
	return uc.notifier.Notify(ctx, subject, message)
}
