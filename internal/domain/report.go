package domain

// Outcome tags the per-item result of a batch operation.
type Outcome string

const (
	OutcomeApplied Outcome = "applied" // Action was performed
	OutcomeSkipped Outcome = "skipped" // Already in target state, no call made
	OutcomeFailed  Outcome = "failed"  // Per-item error, batch continued
)

// ItemResult is the tagged outcome of one item in a batch. Per-item
// errors are values here, not control flow.
// Fields are ordered to minimize memory padding.
type ItemResult struct {
	Err     error
	Target  string
	Reason  string
	Outcome Outcome
}

// BatchReport accumulates per-item outcomes for a single pass over a
// target set. Individual failures never abort the batch, so the report
// is the only place they surface.
type BatchReport struct {
	Action string
	Items  []ItemResult
}

// NewBatchReport creates an empty report for the named action.
func NewBatchReport(action string) *BatchReport {
	return &BatchReport{Action: action, Items: []ItemResult{}}
}

// Applied records an item whose action was performed.
func (r *BatchReport) Applied(target, reason string) {
	r.Items = append(r.Items, ItemResult{Target: target, Reason: reason, Outcome: OutcomeApplied})
}

// Skipped records an item that was already in the target state.
func (r *BatchReport) Skipped(target, reason string) {
	r.Items = append(r.Items, ItemResult{Target: target, Reason: reason, Outcome: OutcomeSkipped})
}

// Failed records a per-item error.
func (r *BatchReport) Failed(target string, err error) {
	r.Items = append(r.Items, ItemResult{Target: target, Err: err, Outcome: OutcomeFailed})
}

// AppliedTargets returns the targets whose action was performed.
func (r *BatchReport) AppliedTargets() []string {
	targets := []string{}
	for _, item := range r.Items {
		if item.Outcome == OutcomeApplied {
			targets = append(targets, item.Target)
		}
	}
	return targets
}

// Count returns the number of items with the given outcome.
func (r *BatchReport) Count(outcome Outcome) int {
	n := 0
	for _, item := range r.Items {
		if item.Outcome == outcome {
			n++
		}
	}
	return n
}

// HasFailures returns true if any item failed.
func (r *BatchReport) HasFailures() bool {
	return r.Count(OutcomeFailed) > 0
}
