package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIssueKeyFromBranch(t *testing.T) {
	tests := []struct {
		branch string
		want   string // "" = branch does not encode a key
	}{
		{"feature/PROJ-123", "PROJ-123"},
		{"bugfix/PROJ-7", "PROJ-7"},
		{"PROJ-123", "PROJ-123"},
		{"feature/proj-123", "PROJ-123"},
		{"release/v2.3", ""},
		{"main", ""},
		{"feature/PROJ-123-hotfix", ""},
		{"feature/123-PROJ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			assert.Equal(t, tt.want, IssueKeyFromBranch(tt.branch))
		})
	}
}

func TestMergeRequest_IssueKey(t *testing.T) {
	mr := MergeRequest{SourceBranch: "feature/PROJ-42"}
	assert.Equal(t, "PROJ-42", mr.IssueKey())
}
