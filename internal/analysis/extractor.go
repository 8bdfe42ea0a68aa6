package analysis

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"

	"github.com/clarity-ai/backend/pkg/logger"
)

// ErrNoStructuredData means the model's text contained no parseable
// decision record. Callers substitute FallbackRecord.
var ErrNoStructuredData = errors.New("no structured data in response")

const (
	minWeight = 1
	maxWeight = 5
)

// ExtractRecord locates the span from the first '{' to the last '}' in raw
// model output and parses it as a DecisionRecord. If the text holds several
// JSON-like objects the whole span is still taken as one candidate, stray
// prose included; jsonrepair usually salvages it.
func ExtractRecord(raw string) (*DecisionRecord, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoStructuredData
	}

	span := raw[start : end+1]

	var record DecisionRecord
	if err := json.Unmarshal([]byte(span), &record); err != nil {
		// Model output is frequently almost-JSON: trailing commas, bare
		// keys, markdown fences. Repair once before giving up.
		repaired, repairErr := jsonrepair.JSONRepair(span)
		if repairErr != nil {
			logger.Debug("JSON repair failed", zap.Error(repairErr))
			return nil, ErrNoStructuredData
		}
		if err := json.Unmarshal([]byte(repaired), &record); err != nil {
			return nil, ErrNoStructuredData
		}
	}

	// A nil slice means the key was absent from the payload. An empty
	// list is a legitimate answer (a decision can have no downsides).
	if record.Pros == nil || record.Cons == nil || record.Verdict == "" {
		return nil, ErrNoStructuredData
	}

	clampWeights(record.Pros)
	clampWeights(record.Cons)

	return &record, nil
}

// clampWeights forces weights into [1,5]. The model is told the range but
// not trusted to honor it.
func clampWeights(points []WeightedPoint) {
	for i := range points {
		if points[i].Weight < minWeight {
			points[i].Weight = minWeight
		}
		if points[i].Weight > maxWeight {
			points[i].Weight = maxWeight
		}
	}
}
