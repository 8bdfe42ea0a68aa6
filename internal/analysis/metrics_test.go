package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeMetricsSums(t *testing.T) {
	record := &DecisionRecord{
		Pros: []WeightedPoint{
			{Point: "a", Weight: 4},
			{Point: "b", Weight: 3},
		},
		Cons: []WeightedPoint{
			{Point: "c", Weight: 5},
			{Point: "d", Weight: 2},
		},
		Verdict: "v",
	}

	m := ComputeMetrics(record)

	assert.Equal(t, 14, m.TotalWeight)
	assert.Equal(t, 7, m.ProsWeight)
	assert.Equal(t, 7, m.ConsWeight)
	assert.Equal(t, m.TotalWeight, m.ProsWeight+m.ConsWeight)
	assert.Equal(t, 50, m.ProsPercentage)
	assert.Equal(t, 50, m.ConsPercentage)
}

func TestComputeMetricsEmptyRecord(t *testing.T) {
	m := ComputeMetrics(&DecisionRecord{Verdict: "v"})

	assert.Equal(t, 0, m.TotalWeight)
	assert.Equal(t, 0, m.ProsWeight)
	assert.Equal(t, 0, m.ConsWeight)
	assert.Equal(t, 50, m.ProsPercentage)
	assert.Equal(t, 50, m.ConsPercentage)
}

func TestComputeMetricsRoundsHalfUp(t *testing.T) {
	// 4/9 = 44.44 -> 44, 5/9 = 55.55 -> 56
	record := &DecisionRecord{
		Pros:    []WeightedPoint{{Point: "Lower cost of living", Weight: 4}},
		Cons:    []WeightedPoint{{Point: "Away from family", Weight: 5}},
		Verdict: "Consider a trial visit first.",
	}

	m := ComputeMetrics(record)

	assert.Equal(t, 9, m.TotalWeight)
	assert.Equal(t, 4, m.ProsWeight)
	assert.Equal(t, 5, m.ConsWeight)
	assert.Equal(t, 44, m.ProsPercentage)
	assert.Equal(t, 56, m.ConsPercentage)
}

func TestComputeMetricsPercentagesMayNotSumTo100(t *testing.T) {
	// 1/8 = 12.5 -> 13 (half-up), 7/8 = 87.5 -> 88: sums to 101.
	record := &DecisionRecord{
		Pros:    []WeightedPoint{{Point: "a", Weight: 1}},
		Cons:    []WeightedPoint{{Point: "b", Weight: 4}, {Point: "c", Weight: 3}},
		Verdict: "v",
	}

	m := ComputeMetrics(record)

	assert.Equal(t, 13, m.ProsPercentage)
	assert.Equal(t, 88, m.ConsPercentage)
	assert.Equal(t, 101, m.ProsPercentage+m.ConsPercentage)
}

func TestComputeMetricsFallbackRecord(t *testing.T) {
	m := ComputeMetrics(FallbackRecord())

	assert.Equal(t, 20, m.TotalWeight)
	assert.Equal(t, 10, m.ProsWeight)
	assert.Equal(t, 10, m.ConsWeight)
	assert.Equal(t, 50, m.ProsPercentage)
	assert.Equal(t, 50, m.ConsPercentage)
}
