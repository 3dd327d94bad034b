// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"time"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockCloudProvider is a test double for domain.CloudProvider.
// Fields are ordered to minimize memory padding.
type MockCloudProvider struct {
	TerminateErrs  map[string]error
	RebuildErrs    map[string]error
	Variables      map[string]map[string]string
	VariablesErrs  map[string]error
	EnvsErr        error
	Envs           []domain.Environment
	TerminateCalls []string
	RebuildCalls   []string
	VariablesCalls []string
	LastQuery      domain.EnvironmentQuery
}

// NewMockCloudProvider creates a new MockCloudProvider with initialized maps.
func NewMockCloudProvider() *MockCloudProvider {
	return &MockCloudProvider{
		TerminateErrs: make(map[string]error),
		RebuildErrs:   make(map[string]error),
		Variables:     make(map[string]map[string]string),
		VariablesErrs: make(map[string]error),
	}
}

// Environments returns the configured environments.
func (m *MockCloudProvider) Environments(_ context.Context, query domain.EnvironmentQuery) ([]domain.Environment, error) {
	m.LastQuery = query
	if m.EnvsErr != nil {
		return nil, m.EnvsErr
	}
	return m.Envs, nil
}

// TerminateEnvironment records the call and returns any configured error.
func (m *MockCloudProvider) TerminateEnvironment(_ context.Context, env domain.Environment) error {
	m.TerminateCalls = append(m.TerminateCalls, env.Name)
	return m.TerminateErrs[env.Name]
}

// RebuildEnvironment records the call and returns any configured error.
func (m *MockCloudProvider) RebuildEnvironment(_ context.Context, env domain.Environment) error {
	m.RebuildCalls = append(m.RebuildCalls, env.Name)
	return m.RebuildErrs[env.Name]
}

// EnvironmentVariables returns the configured variables for an environment.
func (m *MockCloudProvider) EnvironmentVariables(_ context.Context, envName, _ string) (map[string]string, error) {
	m.VariablesCalls = append(m.VariablesCalls, envName)
	if err := m.VariablesErrs[envName]; err != nil {
		return nil, err
	}
	return m.Variables[envName], nil
}

// MockIssueTracker is a test double for domain.IssueTracker.
// Fields are ordered to minimize memory padding.
type MockIssueTracker struct {
	CommentErrs map[string]error
	LabelErrs   map[string]error
	Comments    map[string][]string
	Labels      map[string][]string
	SearchErr   error
	Issues      []domain.Issue
	LastJQL     string
	LastMax     int
}

// NewMockIssueTracker creates a new MockIssueTracker with initialized maps.
func NewMockIssueTracker() *MockIssueTracker {
	return &MockIssueTracker{
		CommentErrs: make(map[string]error),
		LabelErrs:   make(map[string]error),
		Comments:    make(map[string][]string),
		Labels:      make(map[string][]string),
	}
}

// SearchIssues returns the configured issues.
func (m *MockIssueTracker) SearchIssues(_ context.Context, jql string, maxResults int) ([]domain.Issue, error) {
	m.LastJQL = jql
	m.LastMax = maxResults
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.Issues, nil
}

// AddComment records the comment and returns any configured error.
func (m *MockIssueTracker) AddComment(_ context.Context, key, body string) error {
	if err := m.CommentErrs[key]; err != nil {
		return err
	}
	m.Comments[key] = append(m.Comments[key], body)
	return nil
}

// AddLabel records the label and returns any configured error.
func (m *MockIssueTracker) AddLabel(_ context.Context, key, label string) error {
	if err := m.LabelErrs[key]; err != nil {
		return err
	}
	m.Labels[key] = append(m.Labels[key], label)
	return nil
}

// MockCodeHost is a test double for domain.CodeHost.
// Fields are ordered to minimize memory padding.
type MockCodeHost struct {
	MRsErr       error
	PipelinesErr error
	HostKind     string
	MRs          []domain.MergeRequest
	Pipelines    []domain.Pipeline
}

// Kind returns the configured host kind, defaulting to "mock".
func (m *MockCodeHost) Kind() string {
	if m.HostKind == "" {
		return "mock"
	}
	return m.HostKind
}

// ListMergeRequests returns the configured merge requests.
func (m *MockCodeHost) ListMergeRequests(_ context.Context) ([]domain.MergeRequest, error) {
	if m.MRsErr != nil {
		return nil, m.MRsErr
	}
	return m.MRs, nil
}

// ListPipelines returns the configured pipelines.
func (m *MockCodeHost) ListPipelines(_ context.Context) ([]domain.Pipeline, error) {
	if m.PipelinesErr != nil {
		return nil, m.PipelinesErr
	}
	return m.Pipelines, nil
}

// MockVariableCache is a test double for domain.VariableCache.
type MockVariableCache struct {
	Store   map[string]map[string]string
	LastTTL time.Duration
	Gets    int
	Hits    int
	Sets    int
}

// NewMockVariableCache creates a new MockVariableCache with an initialized store.
func NewMockVariableCache() *MockVariableCache {
	return &MockVariableCache{Store: make(map[string]map[string]string)}
}

// Get returns the stored variables for a key.
func (m *MockVariableCache) Get(_ context.Context, key string) (map[string]string, bool) {
	m.Gets++
	vars, ok := m.Store[key]
	if ok {
		m.Hits++
	}
	return vars, ok
}

// Set stores the variables for a key.
func (m *MockVariableCache) Set(_ context.Context, key string, vars map[string]string, ttl time.Duration) {
	m.Sets++
	m.LastTTL = ttl
	m.Store[key] = vars
}

// MockNotifier is a test double for domain.Notifier.
type MockNotifier struct {
	Err      error
	Subjects []string
	Messages []string
}

// Notify records the notification and returns any configured error.
func (m *MockNotifier) Notify(_ context.Context, subject, message string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Subjects = append(m.Subjects, subject)
	m.Messages = append(m.Messages, message)
	return nil
}

// Interface compliance checks.
var (
	_ domain.Clock         = (*MockClock)(nil)
	_ domain.CloudProvider = (*MockCloudProvider)(nil)
	_ domain.IssueTracker  = (*MockIssueTracker)(nil)
	_ domain.CodeHost      = (*MockCodeHost)(nil)
	_ domain.VariableCache = (*MockVariableCache)(nil)
	_ domain.Notifier      = (*MockNotifier)(nil)
)
