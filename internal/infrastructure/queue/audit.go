package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyops/airflow-gateway/internal/api/metrics"
	"github.com/skyops/airflow-gateway/internal/core/domain"
	"github.com/skyops/airflow-gateway/internal/core/ports"
)

const (
	defaultWorkers = 2
	defaultBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// AuditRecorder is the asynchronous write side of the action audit sink.
// Record never blocks the request path: entries go through a buffered
// channel and are persisted by background workers. A full queue drops the
// entry, a failed write is logged and counted; neither is ever surfaced to
// the request that produced the entry.
type AuditRecorder struct {
	queue chan domain.ActionLog
	repo  ports.ActionLogRepository
	log   zerolog.Logger
}

// NewAuditRecorder creates an AuditRecorder with the given queue capacity.
// If buffer <= 0, defaultBuffer is used.
func NewAuditRecorder(buffer int, repo ports.ActionLogRepository, log zerolog.Logger) *AuditRecorder {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &AuditRecorder{
		queue: make(chan domain.ActionLog, buffer),
		repo:  repo,
		log:   log,
	}
}

// Start launches numWorkers persistence workers. Workers stop when ctx is
// cancelled. If numWorkers <= 0, defaultWorkers is used.
func (r *AuditRecorder) Start(ctx context.Context, numWorkers int) {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	for i := 0; i < numWorkers; i++ {
		go r.runWorker(ctx)
	}
}

// Record enqueues an audit entry, stamping it if the caller did not.
func (r *AuditRecorder) Record(entry domain.ActionLog) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.Username == "" {
		entry.Username = "unknown"
	}

	select {
	case r.queue <- entry:
		metrics.AuditQueueDepth.Set(float64(len(r.queue)))
	default:
		metrics.AuditDroppedTotal.Inc()
		r.log.Warn().
			Str("dag_id", entry.DagID).
			Str("action_type", string(entry.ActionType)).
			Msg("audit queue full, entry dropped")
	}
}

func (r *AuditRecorder) runWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry := <-r.queue:
			metrics.AuditQueueDepth.Set(float64(len(r.queue)))
			r.persist(ctx, entry)
		}
	}
}

// persist writes one entry with its own deadline, detached from any request
// context that may already be gone.
func (r *AuditRecorder) persist(ctx context.Context, entry domain.ActionLog) {
	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := r.repo.Insert(writeCtx, &entry); err != nil {
		metrics.AuditWriteFailuresTotal.Inc()
		r.log.Error().Err(err).
			Str("username", entry.Username).
			Str("dag_id", entry.DagID).
			Str("action_type", string(entry.ActionType)).
			Msg("audit write failed")
	}
}
