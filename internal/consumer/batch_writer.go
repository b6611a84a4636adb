package consumer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Villegascvrr/tricketv0-sub002/internal/domain"
	"github.com/Villegascvrr/tricketv0-sub002/internal/metrics"
	"github.com/Villegascvrr/tricketv0-sub002/internal/repository"
)

// BatchWriterConfig configures the batch writer
type BatchWriterConfig struct {
	MaxBatchSize int
	FlushTimeout time.Duration
}

// BatchWriter groups ticket envelopes and writes them to the repository
type BatchWriter struct {
	repository repository.TicketRepository
	config     BatchWriterConfig
	log        *zap.Logger
}

// NewBatchWriter creates a new batch writer
func NewBatchWriter(repo repository.TicketRepository, config BatchWriterConfig, log *zap.Logger) *BatchWriter {
	if config.MaxBatchSize <= 0 {
		config.MaxBatchSize = 1
	}
	return &BatchWriter{
		repository: repo,
		config:     config,
		log:        log,
	}
}

// Start consumes envelopes until in is closed or ctx is done, flushing on size and on timeout
func (w *BatchWriter) Start(ctx context.Context, in <-chan *Envelope) {
	ticker := time.NewTicker(w.config.FlushTimeout)
	defer ticker.Stop()

	batch := make([]*Envelope, 0, w.config.MaxBatchSize)

	flush := func(reason string) {
		if len(batch) == 0 {
			return
		}
		w.log.Debug("Flushing ticket batch",
			zap.String("reason", reason),
			zap.Int("envelope_count", len(batch)))
		w.processBatch(ctx, batch)
		batch = make([]*Envelope, 0, w.config.MaxBatchSize)
	}

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Batch writer shutting down")
			// The pipeline context is gone; give the final write its own.
			finalCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if len(batch) > 0 {
				w.processBatch(finalCtx, batch)
			}
			cancel()
			return

		case envelope, ok := <-in:
			if !ok {
				w.log.Info("Batch writer input channel closed")
				flush("input closed")
				return
			}

			batch = append(batch, envelope)
			if len(batch) >= w.config.MaxBatchSize {
				flush("size")
				ticker.Reset(w.config.FlushTimeout)
			}

		case <-ticker.C:
			flush("timeout")
		}
	}
}

// processBatch inserts the tickets and settles every envelope of the batch the same way
func (w *BatchWriter) processBatch(ctx context.Context, envelopes []*Envelope) {
	tickets := make([]*domain.Ticket, len(envelopes))
	for i, env := range envelopes {
		tickets[i] = env.Ticket
	}

	insertedCount, err := w.repository.InsertBatch(ctx, tickets)
	if err != nil {
		w.log.Error("Failed to insert ticket batch",
			zap.Error(err),
			zap.Int("ticket_count", len(tickets)))
		w.nackAll(ctx, envelopes)
		return
	}

	if insertedCount != len(tickets) {
		w.log.Warn("Partial insert success",
			zap.Int("inserted", insertedCount),
			zap.Int("expected", len(tickets)))
		w.nackAll(ctx, envelopes)
		return
	}

	metrics.RecordTicketsIngested(insertedCount)
	w.log.Info("Inserted tickets", zap.Int("count", insertedCount))
	w.ackAll(ctx, envelopes)
}

func (w *BatchWriter) ackAll(ctx context.Context, envelopes []*Envelope) {
	for _, env := range envelopes {
		if err := env.Ack(ctx); err != nil {
			w.log.Error("Failed to ack envelope",
				zap.String("ticket_id", env.Ticket.TicketID),
				zap.Error(err))
		}
	}
}

func (w *BatchWriter) nackAll(ctx context.Context, envelopes []*Envelope) {
	for _, env := range envelopes {
		if err := env.Nack(ctx); err != nil {
			w.log.Error("Failed to nack envelope",
				zap.String("ticket_id", env.Ticket.TicketID),
				zap.Error(err))
		}
	}
}
