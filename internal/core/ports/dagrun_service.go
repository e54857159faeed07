package ports

import (
	"context"

	"github.com/skyops/airflow-gateway/internal/core/domain"
)

// DagRunListQuery carries pass-through list filters for GET /dagRuns.
type DagRunListQuery struct {
	Limit        string
	Offset       string
	State        string
	OrderBy      string
	StartDateGte string
	StartDateLte string
}

// DagRunService proxies DAG-run operations to Airflow and audits the
// mutating ones.
type DagRunService interface {
	GetDagRuns(ctx context.Context, p domain.Principal, dagID string, q DagRunListQuery) (*domain.DagRunCollection, error)
	GetDagRun(ctx context.Context, p domain.Principal, dagID, dagRunID string) (*domain.DagRun, error)
	CreateDagRun(ctx context.Context, p domain.Principal, dagID string, create domain.DagRunCreate) (*domain.DagRun, error)
	DeleteDagRun(ctx context.Context, p domain.Principal, dagID, dagRunID string) error
	UpdateDagRunState(ctx context.Context, p domain.Principal, dagID, dagRunID string, update domain.DagRunStateUpdate) (*domain.DagRun, error)
	ClearDagRun(ctx context.Context, p domain.Principal, dagID, dagRunID string, clear domain.DagRunClear) (*domain.DagRun, error)
	SetDagRunNote(ctx context.Context, p domain.Principal, dagID, dagRunID string, note domain.DagRunNoteUpdate) (*domain.DagRun, error)
	GetUpstreamDatasetEvents(ctx context.Context, p domain.Principal, dagID, dagRunID string) (*domain.DatasetEventCollection, error)
}
