package ports

import (
	"context"

	"github.com/skyops/airflow-gateway/internal/core/domain"
)

// TaskInstanceService proxies task-instance operations to Airflow.
type TaskInstanceService interface {
	GetTaskInstances(ctx context.Context, p domain.Principal, dagID, dagRunID string, query map[string]string) (*domain.TaskInstanceCollection, error)
	GetTaskInstance(ctx context.Context, p domain.Principal, dagID, dagRunID, taskID string) (*domain.TaskInstance, error)
	UpdateTaskInstanceState(ctx context.Context, p domain.Principal, dagID, dagRunID, taskID string, update domain.TaskInstanceStateUpdate) (*domain.TaskInstanceCollection, error)
}

// LogService fetches task execution logs from Airflow.
type LogService interface {
	GetTaskLogs(ctx context.Context, p domain.Principal, dagID, dagRunID, taskID string, tryNumber int) (string, error)
}
