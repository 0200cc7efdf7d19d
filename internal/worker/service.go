package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dongwoo46/HireLog/internal/backup"
	"github.com/dongwoo46/HireLog/internal/config"
	"github.com/dongwoo46/HireLog/internal/domain"
	"github.com/dongwoo46/HireLog/internal/events"
	"github.com/dongwoo46/HireLog/internal/kafkax"
	"github.com/dongwoo46/HireLog/internal/keywords"
	"github.com/dongwoo46/HireLog/internal/ocr"
	"github.com/dongwoo46/HireLog/internal/pipeline"
	"github.com/dongwoo46/HireLog/internal/urlsource"
)

// Service assembles and runs the three source workers over one shared
// producer, the keyword registry and the backup writer.
type Service struct {
	cfg      *config.Config
	logger   *zap.Logger
	provider *keywords.Provider
	producer *kafkax.Producer
	runtimes []*Runtime
}

// NewService wires every component from configuration. Consumers are opened
// here so a broken broker config fails fast, before the loops start.
func NewService(cfg *config.Config, logger *zap.Logger) (*Service, error) {
	provider, err := keywords.NewProvider(cfg.Keywords.Dir, logger)
	if err != nil {
		return nil, fmt.Errorf("load keyword registry: %w", err)
	}

	instanceID := uuid.NewString()[:8]

	producer, err := kafkax.NewProducer(kafkax.ProducerConfig{
		Brokers:  cfg.Kafka.Brokers,
		ClientID: "preprocess-producer-" + instanceID,
	}, logger)
	if err != nil {
		return nil, err
	}

	bak := backup.NewWriter(cfg.Backup.Dir, events.Hostname(), logger)

	pipelines := map[domain.Source]pipeline.Pipeline{
		domain.SourceText: pipeline.NewTextPipeline(provider, logger.Named("pipeline.text")),
		domain.SourceImage: pipeline.NewOCRPipeline(
			ocr.NewHTTPEngine(cfg.OCR.EndpointURL, cfg.OCR.Timeout()),
			provider,
			logger.Named("pipeline.ocr"),
		),
		domain.SourceURL: pipeline.NewURLPipeline(
			urlsource.NewFetcher(cfg.URL.FetchTimeout()),
			urlsource.NewBrowserFetcher(cfg.URL.BrowserTimeout(), cfg.URL.IdleTimeout(), logger.Named("browser")),
			provider,
			logger.Named("pipeline.url"),
		),
	}

	topics := map[domain.Source]string{
		domain.SourceText:  cfg.Kafka.TextTopic,
		domain.SourceImage: cfg.Kafka.OCRTopic,
		domain.SourceURL:   cfg.Kafka.URLTopic,
	}

	svc := &Service{cfg: cfg, logger: logger, provider: provider, producer: producer}

	for _, source := range []domain.Source{domain.SourceText, domain.SourceImage, domain.SourceURL} {
		consumer, err := kafkax.NewConsumer(kafkax.ConsumerConfig{
			Brokers:   cfg.Kafka.Brokers,
			Topic:     topics[source],
			Group:     cfg.Kafka.ConsumerGroup,
			ClientID:  fmt.Sprintf("preprocess-%s-%s", source, instanceID),
			FromStart: cfg.Kafka.FromStart,
		}, logger)
		if err != nil {
			producer.Close()
			return nil, fmt.Errorf("consumer for %s: %w", source, err)
		}

		svc.runtimes = append(svc.runtimes, NewRuntime(
			source,
			consumer,
			producer,
			pipelines[source],
			cfg.Kafka.ResultTopic,
			cfg.Kafka.FailTopic,
			bak,
			logger,
		))
	}

	return svc, nil
}

// Run starts one goroutine per worker (plus the optional keyword watcher)
// and blocks until ctx is cancelled and every worker drained, bounded by the
// shutdown timeout. The shared producer is flushed and closed last.
func (s *Service) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	if s.cfg.Keywords.WatchReload {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.provider.Watch(ctx); err != nil && ctx.Err() == nil {
				s.logger.Warn("keyword watcher exited", zap.Error(err))
			}
		}()
	}

	for _, rt := range s.runtimes {
		wg.Add(1)
		go func(rt *Runtime) {
			defer wg.Done()
			rt.Run(ctx)
		}(rt)
	}

	<-ctx.Done()
	s.logger.Info("shutdown requested, draining workers",
		zap.Duration("timeout", s.cfg.ShutdownTimeout()))

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("all workers drained")
	case <-time.After(s.cfg.ShutdownTimeout()):
		s.logger.Warn("shutdown timeout exceeded, proceeding to exit")
	}

	s.producer.Close()
	return nil
}
