package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/clarity-ai/backend/internal/analysis"
	"github.com/clarity-ai/backend/internal/storage/models"
	"github.com/clarity-ai/backend/pkg/logger"
)

type Client struct {
	db *sql.DB
}

func NewClient(dbPath string) (*Client, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	_, err = db.Exec("PRAGMA journal_mode = WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	logger.Info("SQLite client initialized", zap.String("path", dbPath))

	return &Client{db: db}, nil
}

func (c *Client) Close() error {
	return c.db.Close()
}

func (c *Client) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS decision_history (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		prompt TEXT NOT NULL,
		category TEXT NOT NULL,
		verdict TEXT NOT NULL,
		result TEXT NOT NULL,
		total_weight INTEGER NOT NULL,
		pros_weight INTEGER NOT NULL,
		cons_weight INTEGER NOT NULL,
		pros_percentage INTEGER NOT NULL,
		cons_percentage INTEGER NOT NULL,
		result_kind TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_history_user ON decision_history(user_id);
	CREATE INDEX IF NOT EXISTS idx_history_created ON decision_history(created_at);
	`

	_, err := c.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Info("SQLite schema initialized")
	return nil
}

// InsertHistoryEntry stores one analysis and returns the generated entry id.
func (c *Client) InsertHistoryEntry(entry *models.HistoryEntry) (string, error) {
	id := uuid.New().String()

	resultJSON, err := json.Marshal(entry.Result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO decision_history (id, user_id, prompt, category, verdict, result,
			total_weight, pros_weight, cons_weight, pros_percentage, cons_percentage,
			result_kind, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = c.db.Exec(
		query,
		id,
		entry.UserID,
		entry.Prompt,
		entry.Category,
		entry.Result.Verdict,
		string(resultJSON),
		entry.Metrics.TotalWeight,
		entry.Metrics.ProsWeight,
		entry.Metrics.ConsWeight,
		entry.Metrics.ProsPercentage,
		entry.Metrics.ConsPercentage,
		entry.ResultKind,
		createdAt.Unix(),
	)

	if err != nil {
		return "", fmt.Errorf("failed to insert history entry: %w", err)
	}

	logger.Debug("History entry inserted",
		zap.String("entry_id", id),
		zap.String("user_id", entry.UserID),
	)

	return id, nil
}

// ListHistory returns a user's entries, newest first. limit <= 0 means
// uncapped.
func (c *Client) ListHistory(userID string, limit int) ([]models.HistoryEntry, error) {
	query := `
		SELECT id, user_id, prompt, category, result,
			total_weight, pros_weight, cons_weight, pros_percentage, cons_percentage,
			result_kind, created_at
		FROM decision_history
		WHERE user_id = ?
		ORDER BY created_at DESC, id
	`

	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		var resultJSON string
		var createdAt int64

		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Prompt,
			&e.Category,
			&resultJSON,
			&e.Metrics.TotalWeight,
			&e.Metrics.ProsWeight,
			&e.Metrics.ConsWeight,
			&e.Metrics.ProsPercentage,
			&e.Metrics.ConsPercentage,
			&e.ResultKind,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		var record analysis.DecisionRecord
		if err := json.Unmarshal([]byte(resultJSON), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
		e.Result = record
		e.CreatedAt = time.Unix(createdAt, 0)

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return entries, nil
}
