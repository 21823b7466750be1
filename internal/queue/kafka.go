package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/anonto42/hooly/backend/internal/fanout"
)

// KafkaSink writes deliveries to a topic, keyed by recipient so one user's
// deliveries stay ordered.
type KafkaSink struct {
	writer *kafka.Writer
}

// NewKafkaSink creates a KafkaSink
func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return &KafkaSink{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}}
}

// Enqueue implements fanout.Sink
func (s *KafkaSink) Enqueue(ctx context.Context, d fanout.Delivery) error {
	value, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(d.RecipientID), 10)),
		Value: value,
	})
}

// Close flushes and closes the writer.
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

// KafkaConsumer reads deliveries from the topic and hands them to a Deliverer.
type KafkaConsumer struct {
	reader    *kafka.Reader
	deliverer Deliverer
	logger    *slog.Logger
}

// NewKafkaConsumer creates a KafkaConsumer
func NewKafkaConsumer(brokers []string, groupID, topic string, deliverer Deliverer, logger *slog.Logger) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        brokers,
			GroupID:        groupID,
			Topic:          topic,
			MinBytes:       1,
			MaxBytes:       10 << 20,
			CommitInterval: time.Second,
		}),
		deliverer: deliverer,
		logger:    logger.With("component", "kafka_consumer"),
	}
}

// Run consumes until ctx is cancelled. Messages are committed even when the
// delivery fails; a stale session is not retried.
func (c *KafkaConsumer) Run(ctx context.Context) error {
	defer func() {
		_ = c.reader.Close()
	}()

	cfg := c.reader.Config()
	c.logger.Info("consumer started", "group", cfg.GroupID, "topic", cfg.Topic, "brokers", cfg.Brokers)

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				c.logger.Info("consumer shutting down")
				return nil
			}
			c.logger.Error("fetch failed", "error", err)
			time.Sleep(time.Second)
			continue
		}

		c.handle(ctx, m.Value)

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.logger.Error("commit failed", "error", err)
		}
	}
}

func (c *KafkaConsumer) handle(ctx context.Context, value []byte) {
	var d fanout.Delivery
	if err := json.Unmarshal(value, &d); err != nil {
		c.logger.Warn("undecodable delivery", "error", err)
		return
	}
	if err := c.deliverer.Deliver(ctx, d); err != nil {
		c.logger.Warn("delivery failed", "recipient_id", d.RecipientID, "session_id", d.SessionID, "error", err)
	}
}
