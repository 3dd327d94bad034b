package domain

// Classification is the result of cross-referencing an issue against
// its linked merge requests.
type Classification string

const (
	ClassNoLinkedMR      Classification = "no_linked_mr"
	ClassMROpen          Classification = "mr_open"
	ClassMergedButOpen   Classification = "merged_but_open"
	ClassMergedAndClosed Classification = "merged_and_closed"
)

// ReconciledIssue is one row of a reconciliation report: an issue, the
// merge requests and pipelines matched to it by key, and the resulting
// classification.
type ReconciledIssue struct {
	Issue          Issue
	MergeRequests  []MergeRequest
	Pipelines      []Pipeline
	Classification Classification
}

// Stale returns true when the row needs attention: the code landed but
// the ticket was never closed.
func (r ReconciledIssue) Stale() bool {
	return r.Classification == ClassMergedButOpen
}

// Classify cross-references an issue with its linked merge requests.
// A merged MR wins over declined ones; any open MR means work is still
// in flight.
func Classify(issue Issue, mrs []MergeRequest) Classification {
	merged := false
	open := false
	for _, mr := range mrs {
		switch mr.State {
		case MergeStateMerged:
			merged = true
		case MergeStateOpen:
			open = true
		}
	}
	switch {
	case open:
		return ClassMROpen
	case merged && issue.Done:
		return ClassMergedAndClosed
	case merged:
		return ClassMergedButOpen
	default:
		// Declined-only links are treated the same as no link at all.
		return ClassNoLinkedMR
	}
}
