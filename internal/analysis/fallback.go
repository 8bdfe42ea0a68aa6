package analysis

// FallbackRecord is the fixed record shown when no real analysis could be
// produced. Results built from it are tagged KindFallback or
// KindUnavailable so the caller can tell it apart from a genuine answer.
func FallbackRecord() *DecisionRecord {
	return &DecisionRecord{
		Pros: []WeightedPoint{
			{Point: "Could lead to new opportunities and experiences", Weight: 4},
			{Point: "Might increase personal satisfaction", Weight: 3},
			{Point: "Could improve long-term prospects", Weight: 3},
		},
		Cons: []WeightedPoint{
			{Point: "May involve significant risks", Weight: 4},
			{Point: "Could require substantial time investment", Weight: 3},
			{Point: "Might have uncertain outcomes", Weight: 3},
		},
		Verdict: "Based on the analysis, this decision requires careful consideration of your personal circumstances and risk tolerance. Consider creating a detailed plan to mitigate potential downsides while maximizing the benefits.",
	}
}
