// Package worker runs the per-source consumer loops: poll, dispatch to the
// source pipeline, publish exactly one outbound event per message, and always
// advance the offset. No error escapes the loop.
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"

	"github.com/dongwoo46/HireLog/internal/backup"
	"github.com/dongwoo46/HireLog/internal/domain"
	"github.com/dongwoo46/HireLog/internal/events"
	"github.com/dongwoo46/HireLog/internal/jderrors"
	"github.com/dongwoo46/HireLog/internal/kafkax"
	"github.com/dongwoo46/HireLog/internal/pipeline"
)

// Runtime is one source-bound worker: its own consumer, the shared producer,
// and the pipeline for its source. One message at a time.
type Runtime struct {
	source      domain.Source
	consumer    *kafkax.Consumer
	producer    *kafkax.Producer
	pipe        pipeline.Pipeline
	resultTopic string
	failTopic   string
	backup      *backup.Writer
	logger      *zap.Logger
}

// NewRuntime wires a worker runtime for one source.
func NewRuntime(
	source domain.Source,
	consumer *kafkax.Consumer,
	producer *kafkax.Producer,
	pipe pipeline.Pipeline,
	resultTopic, failTopic string,
	bak *backup.Writer,
	logger *zap.Logger,
) *Runtime {
	return &Runtime{
		source:      source,
		consumer:    consumer,
		producer:    producer,
		pipe:        pipe,
		resultTopic: resultTopic,
		failTopic:   failTopic,
		backup:      bak,
		logger:      logger.Named("worker." + string(source)),
	}
}

// Run polls until ctx is cancelled, finishing the in-flight message before
// returning. The consumer is closed on exit; the shared producer is not.
func (r *Runtime) Run(ctx context.Context) {
	r.logger.Info("worker started")
	defer func() {
		r.consumer.Close()
		r.logger.Info("worker stopped")
	}()

	for {
		records, err := r.consumer.Poll(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			r.logger.Error("poll failed", zap.Error(err))
			return
		}

		for _, record := range records {
			r.handle(ctx, record)
			if ctx.Err() != nil {
				return
			}
		}
	}
}

// handle processes one broker message end to end. Exactly one of
// {success event, fail event, backup record} results, and the offset is
// committed unconditionally afterwards.
func (r *Runtime) handle(ctx context.Context, record *kgo.Record) {
	started := time.Now()
	coords := domain.BrokerCoordinates{
		Topic:     record.Topic,
		Partition: record.Partition,
		Offset:    record.Offset,
	}

	req, parseErr := events.ParseRequest(record.Value)
	if parseErr != nil {
		perr := jderrors.AsProcessing(parseErr, pipeline.StageParse)
		r.logger.Error("message parse failed",
			zap.Int64("offset", record.Offset),
			zap.String("errorCode", string(perr.Code)),
			zap.Error(parseErr))
		r.publishFail(ctx, req.RequestID, perr, started, coords)
		r.commit(ctx, record)
		return
	}

	r.logger.Info("processing request",
		zap.String("requestId", req.RequestID),
		zap.String("brand", req.BrandName),
		zap.String("position", req.PositionName),
		zap.Int64("offset", record.Offset))

	out, procErr := r.pipe.Process(ctx, req)
	if procErr != nil {
		perr := jderrors.AsProcessing(procErr, pipeline.StageCanonical)
		r.logger.Error("pipeline failed",
			zap.String("requestId", req.RequestID),
			zap.String("errorCode", string(perr.Code)),
			zap.String("stage", perr.Stage),
			zap.Error(procErr))
		r.publishFail(ctx, req.RequestID, perr, started, coords)
		r.commit(ctx, record)
		return
	}

	success := events.NewSuccessEvent(req, out.CanonicalMap, out.Meta, r.logger)
	if err := r.producer.PublishJSON(ctx, r.resultTopic, req.RequestID, success); err != nil {
		perr := jderrors.Wrap(jderrors.CodeKafkaProduce, pipeline.StagePublish,
			"result publish failed", err)
		r.logger.Error("result publish failed",
			zap.String("requestId", req.RequestID),
			zap.Error(err))
		r.publishFail(ctx, req.RequestID, perr, started, coords)
		r.commit(ctx, record)
		return
	}

	r.logger.Info("request completed",
		zap.String("requestId", req.RequestID),
		zap.Duration("took", time.Since(started)),
		zap.Int("zones", len(out.CanonicalMap)))
	r.commit(ctx, record)
}

// publishFail emits the fail event; when the fail topic itself is down the
// record lands in the local backup instead. Backup failure ends in the log,
// the last rung of the ladder.
func (r *Runtime) publishFail(ctx context.Context, requestID string, perr *jderrors.ProcessingError, started time.Time, coords domain.BrokerCoordinates) {
	ev := events.NewFailEvent(requestID, r.source, perr, started, coords)

	if err := r.producer.PublishJSON(ctx, r.failTopic, requestID, ev); err != nil {
		r.logger.Error("fail publish failed, writing backup",
			zap.String("requestId", requestID),
			zap.Error(err))

		rec := backup.Record{
			RequestID:    requestID,
			Source:       r.source.String(),
			ErrorCode:    string(perr.Code),
			ErrorMessage: perr.Message,
			PublishError: err.Error(),
		}
		if berr := r.backup.Write(rec); berr != nil {
			r.logger.Error("backup write failed, record lost to log only",
				zap.String("requestId", requestID),
				zap.String("errorCode", string(perr.Code)),
				zap.String("errorMessage", perr.Message),
				zap.String("publishError", err.Error()),
				zap.Error(berr))
		}
	}
}

// commit advances the offset. Commit failure is logged and the loop moves on;
// at-least-once delivery covers the gap.
func (r *Runtime) commit(ctx context.Context, record *kgo.Record) {
	if err := r.consumer.Commit(ctx, record); err != nil {
		r.logger.Warn("offset commit failed",
			zap.Int64("offset", record.Offset),
			zap.Int32("partition", record.Partition),
			zap.Error(err))
	}
}
