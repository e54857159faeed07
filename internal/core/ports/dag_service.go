package ports

import (
	"context"

	"github.com/skyops/airflow-gateway/internal/core/domain"
)

// DagListQuery carries pass-through list filters for GET /dags.
type DagListQuery struct {
	Limit        string
	Offset       string
	OnlyActive   string
	Paused       string
	Tags         string
	DagIDPattern string
}

// DagService proxies DAG-level operations to Airflow.
type DagService interface {
	GetDags(ctx context.Context, p domain.Principal, q DagListQuery) (*domain.DagCollection, error)
	GetDag(ctx context.Context, p domain.Principal, dagID string) (*domain.Dag, error)
	GetDagDetails(ctx context.Context, p domain.Principal, dagID string) (*domain.DagDetail, error)
	GetDagTasks(ctx context.Context, p domain.Principal, dagID string) (*domain.TaskCollection, error)
	UpdateDag(ctx context.Context, p domain.Principal, dagID string, update domain.DagUpdate) (*domain.Dag, error)
	DeleteDag(ctx context.Context, p domain.Principal, dagID string) error
}
