package domain

import (
	"strings"
	"time"
)

// Issue represents a tracked unit of work in the issue tracker.
// Read-only within a run.
// Fields are ordered to minimize memory padding.
type Issue struct {
	UpdatedAt time.Time
	Key       string
	Summary   string
	Status    string
	Type      string
	Reporter  string
	Assignee  string
	URL       string
	Labels    []string
	Done      bool // Status category is terminal (done/closed)
}

// HasLabel reports whether the issue already carries the given label.
// Used to keep flagging idempotent across runs.
func (i Issue) HasLabel(label string) bool {
	for _, l := range i.Labels {
		if strings.EqualFold(l, label) {
			return true
		}
	}
	return false
}

// EnvironmentName derives the Beanstalk environment name for an issue.
// Environments are named after issue keys with the dash stripped
// (PROJ-123 -> PROJ123).
func (i Issue) EnvironmentName() string {
	return strings.ReplaceAll(i.Key, "-", "")
}
