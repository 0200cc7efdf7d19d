// Package kafkax wraps the franz-go client into the narrow consumer and
// producer surfaces the worker runtime needs: manual-commit polling on the
// consumer side and concurrency-safe keyed publishing on the producer side.
package kafkax

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

// ConsumerConfig configures one topic-bound consumer.
type ConsumerConfig struct {
	Brokers  []string
	Topic    string
	Group    string
	ClientID string

	// FromStart makes a fresh group read the topic from the beginning.
	FromStart bool
}

// Consumer is a manual-commit consumer over a single topic. One consumer per
// worker; not safe for concurrent polling.
type Consumer struct {
	client *kgo.Client
	topic  string
	logger *zap.Logger
}

// NewConsumer opens the consumer client. Commits are manual; offsets advance
// only through Commit.
func NewConsumer(cfg ConsumerConfig, logger *zap.Logger) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("topic is required")
	}
	if cfg.Group == "" {
		return nil, fmt.Errorf("consumer group is required")
	}

	offset := kgo.NewOffset().AtEnd()
	if cfg.FromStart {
		offset = kgo.NewOffset().AtStart()
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(cfg.ClientID),
		kgo.ConsumerGroup(cfg.Group),
		kgo.ConsumeTopics(cfg.Topic),
		kgo.ConsumeResetOffset(offset),
		kgo.DisableAutoCommit(),
		kgo.SessionTimeout(45*time.Second),
		kgo.RebalanceTimeout(60*time.Second),
		kgo.FetchMaxWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka consumer: %w", err)
	}

	logger.Info("kafka consumer initialized",
		zap.String("topic", cfg.Topic),
		zap.String("group", cfg.Group),
		zap.String("clientId", cfg.ClientID))

	return &Consumer{client: client, topic: cfg.Topic, logger: logger}, nil
}

// Poll fetches the next batch of records, blocking until records arrive or
// ctx is cancelled. Partition fetch errors are logged and skipped; the loop
// must not die on a transient broker hiccup.
func (c *Consumer) Poll(ctx context.Context) ([]*kgo.Record, error) {
	fetches := c.client.PollFetches(ctx)
	if fetches.IsClientClosed() {
		return nil, fmt.Errorf("consumer closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, ferr := range fetches.Errors() {
		c.logger.Error("kafka fetch error",
			zap.String("topic", ferr.Topic),
			zap.Int32("partition", ferr.Partition),
			zap.Error(ferr.Err))
	}

	var records []*kgo.Record
	fetches.EachRecord(func(r *kgo.Record) {
		records = append(records, r)
	})
	return records, nil
}

// Commit synchronously commits the record's offset. Errors are returned for
// logging; the caller advances regardless.
func (c *Consumer) Commit(ctx context.Context, record *kgo.Record) error {
	return c.client.CommitRecords(ctx, record)
}

// Close leaves the group and releases the client.
func (c *Consumer) Close() {
	c.logger.Info("closing kafka consumer", zap.String("topic", c.topic))
	c.client.Close()
}
