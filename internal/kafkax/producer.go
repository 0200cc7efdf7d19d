package kafkax

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

// ProducerConfig configures the shared producer.
type ProducerConfig struct {
	Brokers  []string
	ClientID string
}

// Producer is the single outbound publisher shared by every worker. Publish
// is safe for concurrent use; the owning process flushes and closes it at
// shutdown.
type Producer struct {
	client *kgo.Client
	logger *zap.Logger
}

// NewProducer opens an idempotent producer with delivery guarantees matching
// the runtime contract: acks from all replicas, bounded delivery time.
func NewProducer(cfg ProducerConfig, logger *zap.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ClientID(cfg.ClientID),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerLinger(10*time.Millisecond),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.RecordDeliveryTimeout(120*time.Second),
		kgo.RequestTimeoutOverhead(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	logger.Info("kafka producer initialized", zap.String("clientId", cfg.ClientID))
	return &Producer{client: client, logger: logger}, nil
}

// PublishJSON marshals the message and produces it synchronously under the
// given key. A returned error means the record was not acknowledged; the
// caller decides between fail-event and backup.
func (p *Producer) PublishJSON(ctx context.Context, topic, key string, message any) error {
	value, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message for %s: %w", topic, err)
	}

	record := &kgo.Record{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	}

	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", topic, err)
	}

	p.logger.Debug("message produced",
		zap.String("topic", topic),
		zap.String("key", key))
	return nil
}

// Flush drains in-flight records, bounded by ctx.
func (p *Producer) Flush(ctx context.Context) error {
	return p.client.Flush(ctx)
}

// Close flushes with a grace period and releases the client.
func (p *Producer) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.client.Flush(ctx); err != nil {
		p.logger.Warn("producer flush incomplete on close", zap.Error(err))
	}
	p.client.Close()
	p.logger.Info("kafka producer closed")
}
