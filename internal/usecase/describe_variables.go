package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
)

// DescribeVariablesInput contains the parameters for describing
// environment variables.
type DescribeVariablesInput struct {
	Environments []string // Environment names to describe
	Variables    []string // Only show these variables; empty = all
	Invalidate   bool     // Skip the cache and force a provider fetch
}

// EnvironmentVariables is one environment's variable set.
type EnvironmentVariables struct {
	Vars        map[string]string
	Environment string
	FromCache   bool
}

// DescribeVariablesOutput contains the fetched variable sets and
// per-environment failures.
type DescribeVariablesOutput struct {
	Environments []EnvironmentVariables
	Report       *domain.BatchReport
}

// DescribeVariables is the use case for printing environment variables
// with a best-effort read-through cache in front of the provider.
type DescribeVariables struct {
	provider    domain.CloudProvider
	cache       domain.VariableCache // nil = cache disabled
	logger      *slog.Logger         // nil = logging disabled
	application string
	ttl         time.Duration
}

// NewDescribeVariables creates a new DescribeVariables use case.
func NewDescribeVariables(
	provider domain.CloudProvider,
	cache domain.VariableCache,
	logger *slog.Logger,
	application string,
	ttl time.Duration,
) *DescribeVariables {
	return &DescribeVariables{
		provider:    provider,
		cache:       cache,
		logger:      logger,
		application: application,
		ttl:         ttl,
	}
}

// Execute fetches the variables of each environment, from the cache
// when possible. Per-environment failures never abort the pass.
func (uc *DescribeVariables) Execute(ctx context.Context, in DescribeVariablesInput) (*DescribeVariablesOutput, error) {
	if len(in.Environments) == 0 {
		return nil, domain.ErrNoTargets
	}

	report := domain.NewBatchReport("vars")
	out := &DescribeVariablesOutput{Report: report}

	for _, name := range in.Environments {
		vars, fromCache, err := uc.variables(ctx, name, in.Invalidate)
		if err != nil {
			if domain.Fatal(err) {
				return nil, err
			}
			if uc.logger != nil {
				uc.logger.Warn("describe failed", "environment", name, "error", err)
			}
			report.Failed(name, err)
			continue
		}
		out.Environments = append(out.Environments, EnvironmentVariables{
			Environment: name,
			Vars:        filterVariables(vars, in.Variables),
			FromCache:   fromCache,
		})
		report.Applied(name, "described")
	}

	return out, nil
}

// variables returns the variable set of one environment, consulting the
// cache first unless invalidated.
func (uc *DescribeVariables) variables(ctx context.Context, name string, invalidate bool) (map[string]string, bool, error) {
	key := fmt.Sprintf("%s__%s", name, uc.application)

	if uc.cache != nil && !invalidate {
		if vars, ok := uc.cache.Get(ctx, key); ok {
			return vars, true, nil
		}
	}

	vars, err := uc.provider.EnvironmentVariables(ctx, name, uc.application)
	if err != nil {
		return nil, false, err
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, key, vars, uc.ttl)
	}
	return vars, false, nil
}

// filterVariables narrows a variable set to the requested names. A
// requested name that is unset maps to the empty string, so the output
// always answers every question asked.
func filterVariables(vars map[string]string, wanted []string) map[string]string {
	if len(wanted) == 0 {
		return vars
	}
	filtered := make(map[string]string, len(wanted))
	for _, name := range wanted {
		filtered[name] = vars[name]
	}
	return filtered
}
