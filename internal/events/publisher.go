// Package events publishes progress changes to redis pub/sub for external
// consumers (stats dashboards, notification fan-out). The API layer never
// depends on a subscriber being present.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const ProgressChannel = "progress_marked"

// ProgressEvent is emitted whenever a user marks progress on a problem.
type ProgressEvent struct {
	UserID    uint      `json:"userId"`
	ProblemID uint      `json:"problemId"`
	Label     string    `json:"label"`
	MarkedAt  time.Time `json:"markedAt"`
}

type Publisher struct {
	rdb        *redis.Client
	logger     *zap.Logger
	instanceID string
}

func NewPublisher(redisAddr string, logger *zap.Logger) *Publisher {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	return &Publisher{
		rdb:        rdb,
		logger:     logger,
		instanceID: uuid.New().String()[:8], // Short instance ID for logging
	}
}

// PublishProgress emits a progress event. A nil publisher is a no-op so
// callers never have to branch on whether events are configured.
func (p *Publisher) PublishProgress(ctx context.Context, event ProgressEvent) error {
	if p == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := p.rdb.Publish(ctx, ProgressChannel, payload).Err(); err != nil {
		p.logger.Warn("failed to publish progress event",
			zap.String("instance", p.instanceID),
			zap.Uint("userId", event.UserID),
			zap.Uint("problemId", event.ProblemID),
			zap.Error(err))
		return err
	}
	return nil
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.rdb.Close()
}
