package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/anonto42/hooly/backend/internal/fanout"
)

// RedisPublisher delivers envelopes by publishing them on the session's
// channel, which the connection layer subscribes to.
type RedisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher creates a RedisPublisher
func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

// SessionChannel names the pub/sub channel of a session.
func SessionChannel(sessionID string) string {
	return "session:" + sessionID
}

// Deliver implements Deliverer
func (p *RedisPublisher) Deliver(ctx context.Context, d fanout.Delivery) error {
	payload, err := json.Marshal(d.Envelope)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	return p.rdb.Publish(ctx, SessionChannel(d.SessionID), payload).Err()
}
