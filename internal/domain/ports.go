package domain

import (
	"context"
	"time"
)

// EnvironmentQuery selects environments from the cloud provider.
// Fields are ordered to minimize memory padding.
type EnvironmentQuery struct {
	IncludeTerminatedSince time.Time // Zero value = live environments only
	Application            string
	Names                  []string // Empty = all environments of the application
}

// CloudProvider manages platform environments (Elastic Beanstalk).
type CloudProvider interface {
	// Environments fetches environment descriptors matching the query.
	Environments(ctx context.Context, query EnvironmentQuery) ([]Environment, error)

	// TerminateEnvironment pauses a running environment.
	TerminateEnvironment(ctx context.Context, env Environment) error

	// RebuildEnvironment resumes a terminated environment.
	RebuildEnvironment(ctx context.Context, env Environment) error

	// EnvironmentVariables returns the application environment settings
	// of an environment.
	EnvironmentVariables(ctx context.Context, envName, appName string) (map[string]string, error)
}

// IssueTracker searches and annotates tracker issues.
type IssueTracker interface {
	// SearchIssues runs a JQL query and returns at most maxResults issues.
	SearchIssues(ctx context.Context, jql string, maxResults int) ([]Issue, error)

	// AddComment adds a comment to an issue.
	AddComment(ctx context.Context, key, body string) error

	// AddLabel adds a label to an issue.
	AddLabel(ctx context.Context, key, label string) error
}

// CodeHost lists merge requests and CI pipelines of the configured
// repository.
type CodeHost interface {
	// Kind identifies the host ("bitbucket" or "github").
	Kind() string

	// ListMergeRequests returns recent merge/pull requests, newest first.
	ListMergeRequests(ctx context.Context) ([]MergeRequest, error)

	// ListPipelines returns recent CI pipelines, newest first.
	ListPipelines(ctx context.Context) ([]Pipeline, error)
}

// VariableCache is a best-effort read-through cache for environment
// variables. An unavailable cache reports misses and drops writes; it
// never fails the operation.
type VariableCache interface {
	// Get returns the cached variables for key, or ok=false on miss.
	Get(ctx context.Context, key string) (vars map[string]string, ok bool)

	// Set stores variables under key with a TTL. Best effort.
	Set(ctx context.Context, key string, vars map[string]string, ttl time.Duration)
}

// AddressManager associates tagged elastic IPs with environment
// instances.
type AddressManager interface {
	// InstanceNetworkInterface returns the primary network interface ID
	// of the instance tagged with the environment name.
	InstanceNetworkInterface(ctx context.Context, envName string) (string, error)

	// AddressAllocation returns the allocation ID of the elastic IP
	// tagged with the environment name.
	AddressAllocation(ctx context.Context, envName string) (string, error)

	// AssociateAddress attaches the allocation to the network interface,
	// reassociating if it is already attached elsewhere.
	AssociateAddress(ctx context.Context, allocationID, interfaceID string) (associationID string, err error)
}

// Notifier delivers a human-readable summary of a batch run.
type Notifier interface {
	Notify(ctx context.Context, subject, message string) error
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
