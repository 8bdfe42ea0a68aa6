package models

import (
	"time"

	"github.com/clarity-ai/backend/internal/analysis"
)

// HistoryEntry is the durable record of one past analysis. Entries are
// append-only: inserted once, never updated or deleted by the pipeline.
type HistoryEntry struct {
	ID         string
	UserID     string
	Prompt     string
	Category   string
	Result     analysis.DecisionRecord
	Metrics    analysis.Metrics
	ResultKind string
	CreatedAt  time.Time
}
