package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchReport(t *testing.T) {
	report := NewBatchReport("pause")
	report.Applied("a", "terminated")
	report.Skipped("b", "state is terminated")
	report.Failed("c", errors.New("boom"))
	report.Applied("d", "terminated")

	assert.Equal(t, 2, report.Count(OutcomeApplied))
	assert.Equal(t, 1, report.Count(OutcomeSkipped))
	assert.Equal(t, 1, report.Count(OutcomeFailed))
	assert.Equal(t, []string{"a", "d"}, report.AppliedTargets())
	assert.True(t, report.HasFailures())
}

func TestBatchReport_Empty(t *testing.T) {
	report := NewBatchReport("resume")

	assert.False(t, report.HasFailures())
	assert.Empty(t, report.AppliedTargets())
}
