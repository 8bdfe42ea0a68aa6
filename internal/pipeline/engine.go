package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/clarity-ai/backend/internal/analysis"
	"github.com/clarity-ai/backend/internal/metrics"
	"github.com/clarity-ai/backend/internal/storage/models"
	"github.com/clarity-ai/backend/pkg/logger"
	"github.com/clarity-ai/backend/pkg/utils"
)

var (
	// ErrEmptyPrompt is returned before any prompt is built or network
	// call made.
	ErrEmptyPrompt = errors.New("prompt must not be empty")

	// ErrMissingUserID is returned when no user identity accompanies the
	// request; history cannot be recorded without one.
	ErrMissingUserID = errors.New("user id is required")
)

// ContentGenerator produces raw model text for an instruction.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, instruction string) (string, error)
}

// HistoryStore is the persistence collaborator: insert one entry, query a
// user's entries newest first.
type HistoryStore interface {
	InsertHistoryEntry(entry *models.HistoryEntry) (string, error)
	ListHistory(userID string, limit int) ([]models.HistoryEntry, error)
}

// AnalysisCache is optional; a nil cache disables caching entirely.
type AnalysisCache interface {
	GetAnalysis(ctx context.Context, key string) (*analysis.DecisionRecord, analysis.Metrics, bool, error)
	SetAnalysis(ctx context.Context, key string, record *analysis.DecisionRecord, m analysis.Metrics) error
}

// Engine runs the full pipeline for one submission: build prompt, call the
// provider, extract the record, compute the weighted split, record history.
// Degraded stages substitute the fallback record and tag the result instead
// of failing.
type Engine struct {
	generator    ContentGenerator
	store        HistoryStore
	cache        AnalysisCache
	historyLimit int

	// seq tags every request; a result only becomes a user's "latest" if
	// it carries the newest sequence issued for that user, so an older
	// response can never overwrite a newer one.
	seq          atomic.Uint64
	mu           sync.Mutex
	latestIssued map[string]uint64
	latest       map[string]*analysis.Result
}

func NewEngine(generator ContentGenerator, store HistoryStore, cache AnalysisCache, historyLimit int) *Engine {
	return &Engine{
		generator:    generator,
		store:        store,
		cache:        cache,
		historyLimit: historyLimit,
		latestIssued: make(map[string]uint64),
		latest:       make(map[string]*analysis.Result),
	}
}

func (e *Engine) Analyze(ctx context.Context, req analysis.Request) (*analysis.Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	if req.UserID == "" {
		return nil, ErrMissingUserID
	}

	startTime := time.Now()
	seq := e.seq.Add(1)
	e.mu.Lock()
	e.latestIssued[req.UserID] = seq
	e.mu.Unlock()

	logger.Info("Analyzing decision",
		zap.Uint64("sequence", seq),
		zap.String("user_id", req.UserID),
		zap.String("category", string(req.Category)),
	)

	kind := analysis.KindSuccess
	var warnings []string
	var record *analysis.DecisionRecord
	var m analysis.Metrics

	cacheKey := utils.HashString(string(req.Category) + ":" + req.Prompt)
	if e.cache != nil {
		cached, cachedMetrics, ok, err := e.cache.GetAnalysis(ctx, cacheKey)
		if err != nil {
			logger.Warn("Cache lookup failed", zap.Error(err))
		}
		if ok {
			metrics.CacheHits.Inc()
			record = cached
			m = cachedMetrics
		} else {
			metrics.CacheMisses.Inc()
		}
	}

	if record == nil {
		instruction := analysis.BuildPrompt(req.Prompt, req.Category)

		raw, err := e.generator.GenerateContent(ctx, instruction)
		if err != nil {
			logger.Warn("Generation failed, substituting fallback record", zap.Error(err))
			kind = analysis.KindUnavailable
			record = analysis.FallbackRecord()
			warnings = append(warnings, "analysis service unavailable; showing an estimated result")
		} else {
			record, err = analysis.ExtractRecord(raw)
			if err != nil {
				logger.Warn("No structured data in response, substituting fallback record",
					zap.Int("response_length", len(raw)),
				)
				kind = analysis.KindFallback
				record = analysis.FallbackRecord()
				warnings = append(warnings, "response could not be parsed; showing an estimated result")
			}
		}

		m = analysis.ComputeMetrics(record)

		if kind == analysis.KindSuccess && e.cache != nil {
			if err := e.cache.SetAnalysis(ctx, cacheKey, record, m); err != nil {
				logger.Warn("Failed to cache analysis", zap.Error(err))
			}
		}
	}

	entryID := e.recordHistory(req, record, m, kind, &warnings)

	latency := int(time.Since(startTime).Milliseconds())

	metrics.AnalysisTotal.WithLabelValues(string(kind)).Inc()
	metrics.AnalysisDuration.WithLabelValues(string(req.Category)).Observe(time.Since(startTime).Seconds())
	metrics.ProsPercentage.Observe(float64(m.ProsPercentage))

	result := &analysis.Result{
		ID:        entryID,
		UserID:    req.UserID,
		Prompt:    req.Prompt,
		Category:  req.Category,
		Record:    record,
		Metrics:   m,
		Kind:      kind,
		Warnings:  warnings,
		Sequence:  seq,
		LatencyMS: latency,
		CreatedAt: startTime,
	}

	e.updateLatest(result)

	logger.Info("Decision analyzed",
		zap.Uint64("sequence", seq),
		zap.String("kind", string(kind)),
		zap.Int("pros_percentage", m.ProsPercentage),
		zap.Int("latency_ms", latency),
	)

	return result, nil
}

// recordHistory delegates storage and turns a failed insert into a warning
// instead of failing the pipeline. The entry id is empty in that case.
func (e *Engine) recordHistory(req analysis.Request, record *analysis.DecisionRecord, m analysis.Metrics, kind analysis.ResultKind, warnings *[]string) string {
	entry := &models.HistoryEntry{
		UserID:     req.UserID,
		Prompt:     req.Prompt,
		Category:   string(req.Category),
		Result:     *record,
		Metrics:    m,
		ResultKind: string(kind),
		CreatedAt:  time.Now(),
	}

	entryID, err := e.store.InsertHistoryEntry(entry)
	if err != nil {
		logger.Error("Failed to record history entry",
			zap.String("user_id", req.UserID),
			zap.Error(err),
		)
		metrics.PersistenceFailures.Inc()
		*warnings = append(*warnings, "this analysis could not be saved to your history")
		return ""
	}

	return entryID
}

// updateLatest installs the result as the user's latest unless a newer
// request has been issued for that user in the meantime.
func (e *Engine) updateLatest(result *analysis.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if issued := e.latestIssued[result.UserID]; issued > result.Sequence {
		metrics.StaleResultsDiscarded.Inc()
		logger.Debug("Discarding stale result",
			zap.Uint64("sequence", result.Sequence),
			zap.Uint64("latest_issued", issued),
		)
		return
	}

	e.latest[result.UserID] = result
}

// LatestResult returns the sequence-guarded most recent result for a user.
func (e *Engine) LatestResult(userID string) (*analysis.Result, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	result, ok := e.latest[userID]
	return result, ok
}

// History returns a user's stored entries, newest first. A positive limit
// narrows the page; the configured cap is the ceiling either way, and a
// non-positive limit falls back to it.
func (e *Engine) History(userID string, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 || (e.historyLimit > 0 && limit > e.historyLimit) {
		limit = e.historyLimit
	}
	return e.store.ListHistory(userID, limit)
}
