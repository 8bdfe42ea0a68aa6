package analysis

import "math"

// ComputeMetrics derives the weighted pros/cons split for a record.
// Empty lists are valid: with no weight on either side both percentages
// default to the 50/50 midpoint. Percentages are rounded half-up
// independently, so they may sum to 99 or 101.
func ComputeMetrics(record *DecisionRecord) Metrics {
	var prosWeight, consWeight int
	for _, p := range record.Pros {
		prosWeight += p.Weight
	}
	for _, c := range record.Cons {
		consWeight += c.Weight
	}

	totalWeight := prosWeight + consWeight
	if totalWeight == 0 {
		return Metrics{
			ProsPercentage: 50,
			ConsPercentage: 50,
		}
	}

	return Metrics{
		TotalWeight:    totalWeight,
		ProsWeight:     prosWeight,
		ConsWeight:     consWeight,
		ProsPercentage: roundPercent(prosWeight, totalWeight),
		ConsPercentage: roundPercent(consWeight, totalWeight),
	}
}

func roundPercent(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}
