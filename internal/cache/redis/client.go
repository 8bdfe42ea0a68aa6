package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/clarity-ai/backend/internal/analysis"
	"github.com/clarity-ai/backend/pkg/logger"
)

// Client caches extracted decision records so an identical prompt within
// the TTL does not cost a second provider call. Only real answers are
// cached; fallback results never are.
type Client struct {
	client *redis.Client
	ttl    time.Duration
}

type cachedAnalysis struct {
	Record  analysis.DecisionRecord `json:"record"`
	Metrics analysis.Metrics        `json:"metrics"`
}

func NewClient(host string, port int, password string, db int, ttl time.Duration) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis client initialized", zap.String("addr", fmt.Sprintf("%s:%d", host, port)))

	return &Client{client: client, ttl: ttl}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) SetAnalysis(ctx context.Context, key string, record *analysis.DecisionRecord, metrics analysis.Metrics) error {
	data, err := json.Marshal(cachedAnalysis{Record: *record, Metrics: metrics})
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	err = c.client.Set(ctx, fmt.Sprintf("analysis:%s", key), data, c.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set analysis cache: %w", err)
	}

	logger.Debug("Analysis cached", zap.String("key", key), zap.Duration("ttl", c.ttl))
	return nil
}

func (c *Client) GetAnalysis(ctx context.Context, key string) (*analysis.DecisionRecord, analysis.Metrics, bool, error) {
	data, err := c.client.Get(ctx, fmt.Sprintf("analysis:%s", key)).Bytes()
	if err == redis.Nil {
		return nil, analysis.Metrics{}, false, nil
	}
	if err != nil {
		return nil, analysis.Metrics{}, false, fmt.Errorf("failed to get analysis cache: %w", err)
	}

	var cached cachedAnalysis
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, analysis.Metrics{}, false, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}

	logger.Debug("Analysis cache hit", zap.String("key", key))
	return &cached.Record, cached.Metrics, true, nil
}
