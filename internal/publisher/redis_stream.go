package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// TriggerStream carries fired trigger alerts for downstream consumers
	TriggerStream = "underwatch.triggers.basketball_ncaab"
	// EvaluationStream carries every live evaluation snapshot
	EvaluationStream = "underwatch.evaluations.basketball_ncaab"
)

// RedisStreamPublisher publishes events to Redis streams
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a new Redis stream publisher from existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
	}
}

// PublishTrigger publishes a fired trigger alert to the trigger stream
func (rsp *RedisStreamPublisher) PublishTrigger(ctx context.Context, triggerData interface{}) error {
	return rsp.publish(ctx, TriggerStream, triggerData)
}

// PublishEvaluation publishes a live game evaluation to the evaluation stream
func (rsp *RedisStreamPublisher) PublishEvaluation(ctx context.Context, evalData interface{}) error {
	return rsp.publish(ctx, EvaluationStream, evalData)
}

func (rsp *RedisStreamPublisher) publish(ctx context.Context, streamName string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamName,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
