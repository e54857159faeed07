package ports

import (
	"context"

	"github.com/skyops/airflow-gateway/internal/core/domain"
)

// ActionLogRecorder is the write side of the audit sink. Record is best
// effort and must never block or fail the request that produced the entry;
// implementations report failures through their own channel (logs, metrics).
type ActionLogRecorder interface {
	Record(entry domain.ActionLog)
}

// ActionLogRepository persists and queries audit records. A filter username
// of "" selects all users' records.
type ActionLogRepository interface {
	Insert(ctx context.Context, entry *domain.ActionLog) error
	FindPage(ctx context.Context, username string, page, size int) (*domain.ActionLogPage, error)
	FindByDag(ctx context.Context, dagID, username string) ([]domain.ActionLog, error)
	FindByType(ctx context.Context, actionType, username string) ([]domain.ActionLog, error)
}

// ActionLogService serves audit log queries, applying role-based filtering:
// admins see every record, all other roles only their own.
type ActionLogService interface {
	ListAll(ctx context.Context, p domain.Principal, page, size int) (*domain.ActionLogPage, error)
	ListByDag(ctx context.Context, p domain.Principal, dagID string) ([]domain.ActionLog, error)
	ListByType(ctx context.Context, p domain.Principal, actionType string) ([]domain.ActionLog, error)
}
