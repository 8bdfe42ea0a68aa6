package analysis

import (
	"fmt"
	"strings"
)

var categoryGuidance = map[Category]string{
	CategoryGeneral:   "Consider the decision from all angles.",
	CategoryCareer:    "Focus on career growth, job security, skills and professional relationships.",
	CategoryFinancial: "Focus on costs, income, savings, risk and long-term financial impact.",
	CategoryPersonal:  "Focus on wellbeing, relationships, values and life satisfaction.",
	CategoryUrgent:    "The decision is time-sensitive. Weigh the cost of delay against the cost of acting on incomplete information.",
}

// BuildPrompt formats a decision description into the instruction sent to
// the model. Pure; callers are responsible for rejecting empty prompts.
func BuildPrompt(promptText string, category Category) string {
	guidance, ok := categoryGuidance[category]
	if !ok {
		guidance = categoryGuidance[CategoryGeneral]
	}

	var b strings.Builder
	b.WriteString("Analyze this decision and provide a structured response in this exact JSON format:\n\n")
	b.WriteString(`{
  "pros": [
    {"point": "advantage description", "weight": 4},
    {"point": "advantage description", "weight": 3}
  ],
  "cons": [
    {"point": "disadvantage description", "weight": 5},
    {"point": "disadvantage description", "weight": 2}
  ],
  "verdict": "Final recommendation with reasoning",
  "confidence": 80,
  "timeframe": "short-term",
  "riskLevel": "medium",
  "alternatives": ["an alternative worth considering"],
  "keyFactors": ["a factor that should drive the decision"],
  "urgency": "low"
}`)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Decision to analyze: %s\n\n", promptText)
	fmt.Fprintf(&b, "Category: %s. %s\n\n", category, guidance)
	b.WriteString("Provide 3-5 pros and 3-5 cons, each with a weight from 1-5 (5 being most important). ")
	b.WriteString("Give a clear, thoughtful verdict at the end. ")
	b.WriteString("The fields confidence (0-100), timeframe (immediate|short-term|long-term), riskLevel (low|medium|high), alternatives, keyFactors and urgency (low|medium|high) are optional; omit them rather than guessing. ")
	b.WriteString("Return only valid JSON.")

	return b.String()
}
