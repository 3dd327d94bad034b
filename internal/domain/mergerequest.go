package domain

import (
	"regexp"
	"strings"
	"time"
)

// MergeState is the review state of a merge/pull request.
type MergeState string

const (
	MergeStateOpen     MergeState = "open"
	MergeStateMerged   MergeState = "merged"
	MergeStateDeclined MergeState = "declined"
)

// MergeRequest represents a proposed code change on the code host.
// Read-only within a run. The linked issue key is carried by convention
// in the source branch name.
// Fields are ordered to minimize memory padding.
type MergeRequest struct {
	UpdatedAt    time.Time
	Title        string
	SourceBranch string
	TargetBranch string
	URL          string
	State        MergeState
	ID           int
}

// IssueKey returns the issue key encoded in the source branch, or ""
// when the branch does not follow the feature/PROJ-123 convention.
func (mr MergeRequest) IssueKey() string {
	return IssueKeyFromBranch(mr.SourceBranch)
}

// Pipeline represents a CI build triggered for a branch.
// Fields are ordered to minimize memory padding.
type Pipeline struct {
	Branch      string
	URL         string
	BuildNumber int
}

// issueKeyPattern matches a tracker issue key such as PROJ-123.
var issueKeyPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*-[0-9]+$`)

// IssueKeyFromBranch extracts an issue key from a branch name. The key
// is the last path segment of the branch (feature/PROJ-123 -> PROJ-123)
// and is returned uppercased. Returns "" when the segment is not a key.
func IssueKeyFromBranch(branch string) string {
	segment := branch
	if idx := strings.LastIndex(branch, "/"); idx >= 0 {
		segment = branch[idx+1:]
	}
	if !issueKeyPattern.MatchString(segment) {
		return ""
	}
	return strings.ToUpper(segment)
}
