package analysis

import (
	"fmt"
	"time"
)

// Category steers the prompt toward one angle of the decision.
type Category string

const (
	CategoryGeneral   Category = "general"
	CategoryCareer    Category = "career"
	CategoryFinancial Category = "financial"
	CategoryPersonal  Category = "personal"
	CategoryUrgent    Category = "urgent"
)

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryGeneral, CategoryCareer, CategoryFinancial, CategoryPersonal, CategoryUrgent:
		return Category(s), nil
	case "":
		return CategoryGeneral, nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

// WeightedPoint is a single pro or con with an importance weight 1-5.
type WeightedPoint struct {
	Point    string `json:"point"`
	Weight   int    `json:"weight"`
	Category string `json:"category,omitempty"`
}

// DecisionRecord is the structured pros/cons/verdict result for one query.
// Pros, cons and verdict are required; everything else is only present when
// the model chose to provide it.
type DecisionRecord struct {
	Pros         []WeightedPoint `json:"pros"`
	Cons         []WeightedPoint `json:"cons"`
	Verdict      string          `json:"verdict"`
	Confidence   *int            `json:"confidence,omitempty"`
	Timeframe    string          `json:"timeframe,omitempty"`
	RiskLevel    string          `json:"riskLevel,omitempty"`
	Alternatives []string        `json:"alternatives,omitempty"`
	KeyFactors   []string        `json:"keyFactors,omitempty"`
	Urgency      string          `json:"urgency,omitempty"`
}

// Metrics is the weighted split between the pros and cons of a record.
// ProsWeight+ConsWeight always equals TotalWeight; the two percentages are
// rounded independently and need not sum to exactly 100.
type Metrics struct {
	TotalWeight    int `json:"total_weight"`
	ProsWeight     int `json:"pros_weight"`
	ConsWeight     int `json:"cons_weight"`
	ProsPercentage int `json:"pros_percentage"`
	ConsPercentage int `json:"cons_percentage"`
}

// ResultKind tags how a result was produced, so a degraded answer is never
// indistinguishable from a real one.
type ResultKind string

const (
	// KindSuccess: the provider answered and the answer parsed.
	KindSuccess ResultKind = "success"
	// KindFallback: the provider answered but no structured record could be
	// extracted; the fixed fallback record was substituted.
	KindFallback ResultKind = "fallback"
	// KindUnavailable: the provider could not be reached at all; the fixed
	// fallback record was substituted.
	KindUnavailable ResultKind = "unavailable"
)

// Request is one user submission. It lives for a single pipeline run.
type Request struct {
	Prompt   string
	Category Category
	UserID   string
}

// Result is everything one pipeline run produced.
type Result struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Prompt    string          `json:"prompt"`
	Category  Category        `json:"category"`
	Record    *DecisionRecord `json:"record"`
	Metrics   Metrics         `json:"metrics"`
	Kind      ResultKind      `json:"kind"`
	Warnings  []string        `json:"warnings,omitempty"`
	Sequence  uint64          `json:"sequence"`
	LatencyMS int             `json:"latency_ms"`
	CreatedAt time.Time       `json:"created_at"`
}
