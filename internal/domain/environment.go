// Package domain contains core business entities and interfaces.
package domain

import "time"

// EnvironmentState is the lifecycle state of a cloud environment.
type EnvironmentState string

const (
	StateRunning     EnvironmentState = "running"     // Ready to serve traffic
	StateLaunching   EnvironmentState = "launching"   // Being created or rebuilt
	StateUpdating    EnvironmentState = "updating"    // Configuration update in progress
	StateTerminating EnvironmentState = "terminating" // Shutdown in progress
	StateTerminated  EnvironmentState = "terminated"  // Paused; can be rebuilt
	StateUnknown     EnvironmentState = "unknown"     // Provider reported something unexpected
)

// Environment represents an Elastic Beanstalk environment descriptor.
// It is fetched per invocation and discarded at exit; the provider is
// the system of record.
// Fields are ordered to minimize memory padding.
type Environment struct {
	CreatedAt   time.Time
	ID          string
	Name        string
	Application string
	Health      string
	State       EnvironmentState
}

// IsRunning returns true if the environment is serving traffic.
func (e Environment) IsRunning() bool {
	return e.State == StateRunning
}

// IsTerminated returns true if the environment has been paused and can
// be rebuilt.
func (e Environment) IsTerminated() bool {
	return e.State == StateTerminated
}

// InTransition returns true while the provider is still converging the
// environment; pause/resume calls on it would be rejected.
func (e Environment) InTransition() bool {
	switch e.State {
	case StateLaunching, StateUpdating, StateTerminating:
		return true
	}
	return false
}

// NewestPerName keeps only the most recently created descriptor for
// each environment name. The provider may return several descriptors
// with the same name when terminated environments are included.
func NewestPerName(envs []Environment) []Environment {
	newest := make(map[string]Environment, len(envs))
	order := make([]string, 0, len(envs))
	for _, env := range envs {
		cur, ok := newest[env.Name]
		if !ok {
			order = append(order, env.Name)
			newest[env.Name] = env
			continue
		}
		if env.CreatedAt.After(cur.CreatedAt) {
			newest[env.Name] = env
		}
	}
	result := make([]Environment, 0, len(order))
	for _, name := range order {
		result = append(result, newest[name])
	}
	return result
}
