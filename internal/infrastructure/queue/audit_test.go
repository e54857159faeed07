package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyops/airflow-gateway/internal/core/domain"
)

type recordingRepo struct {
	mu      sync.Mutex
	entries []domain.ActionLog
	err     error
	done    chan struct{}
}

func (r *recordingRepo) Insert(_ context.Context, entry *domain.ActionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done != nil {
		defer close(r.done)
		r.done = nil
	}
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *recordingRepo) FindPage(context.Context, string, int, int) (*domain.ActionLogPage, error) {
	return nil, nil
}
func (r *recordingRepo) FindByDag(context.Context, string, string) ([]domain.ActionLog, error) {
	return nil, nil
}
func (r *recordingRepo) FindByType(context.Context, string, string) ([]domain.ActionLog, error) {
	return nil, nil
}

func waitFor(t *testing.T, done chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("worker did not persist in time")
	}
}

func TestAuditRecorder_PersistsEntries(t *testing.T) {
	repo := &recordingRepo{done: make(chan struct{})}
	done := repo.done
	rec := NewAuditRecorder(8, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx, 1)

	rec.Record(domain.ActionLog{
		Username:   "op_user",
		DagID:      "etl",
		ActionType: domain.ActionTriggered,
	})
	waitFor(t, done)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	if len(repo.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(repo.entries))
	}
	entry := repo.entries[0]
	if entry.Timestamp.IsZero() {
		t.Fatalf("timestamp not stamped")
	}
	if entry.Username != "op_user" {
		t.Fatalf("username = %q", entry.Username)
	}
}

func TestAuditRecorder_StampsUnknownUsername(t *testing.T) {
	repo := &recordingRepo{done: make(chan struct{})}
	done := repo.done
	rec := NewAuditRecorder(8, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx, 1)

	rec.Record(domain.ActionLog{DagID: "etl", ActionType: domain.ActionOther})
	waitFor(t, done)

	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.entries[0].Username != "unknown" {
		t.Fatalf("username = %q, want unknown", repo.entries[0].Username)
	}
}

func TestAuditRecorder_WriteFailureIsSwallowed(t *testing.T) {
	repo := &recordingRepo{err: errors.New("mongo down"), done: make(chan struct{})}
	done := repo.done
	rec := NewAuditRecorder(8, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec.Start(ctx, 1)

	// Record must not propagate or panic on a failing sink.
	rec.Record(domain.ActionLog{DagID: "etl", ActionType: domain.ActionDeleted})
	waitFor(t, done)
}

func TestAuditRecorder_FullQueueDropsEntry(t *testing.T) {
	repo := &recordingRepo{}
	rec := NewAuditRecorder(1, repo, zerolog.Nop())
	// No workers: the single buffer slot fills and stays full.

	rec.Record(domain.ActionLog{DagID: "etl", ActionType: domain.ActionTriggered})
	rec.Record(domain.ActionLog{DagID: "etl", ActionType: domain.ActionDeleted})

	if len(rec.queue) != 1 {
		t.Fatalf("queue depth = %d, want 1 (second entry dropped)", len(rec.queue))
	}
}
