package service

import (
	"context"
	"net/http"
	"strconv"

	"github.com/skyops/airflow-gateway/internal/core/domain"
	"github.com/skyops/airflow-gateway/internal/core/ports"
)

// DagRunService proxies DAG-run operations to Airflow and audits mutations.
type DagRunService struct {
	client ports.AirflowClient
	audit  ports.ActionLogRecorder
}

func NewDagRunService(client ports.AirflowClient, audit ports.ActionLogRecorder) *DagRunService {
	return &DagRunService{client: client, audit: audit}
}

func (s *DagRunService) GetDagRuns(ctx context.Context, p domain.Principal, dagID string, q ports.DagRunListQuery) (*domain.DagRunCollection, error) {
	var out domain.DagRunCollection
	err := s.client.Do(ctx, ports.AirflowRequest{
		Method:     http.MethodGet,
		Path:       "/dags/{dagId}/dagRuns",
		PathParams: map[string]string{"dagId": dagID},
		Query: map[string]string{
			"limit":          q.Limit,
			"offset":         q.Offset,
			"state":          q.State,
			"order_by":       q.OrderBy,
			"start_date_gte": q.StartDateGte,
			"start_date_lte": q.StartDateLte,
		},
		Resource:    "DAG " + dagID,
		Credentials: airflowCreds(p),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DagRunService) GetDagRun(ctx context.Context, p domain.Principal, dagID, dagRunID string) (*domain.DagRun, error) {
	var out domain.DagRun
	err := s.client.Do(ctx, ports.AirflowRequest{
		Method:      http.MethodGet,
		Path:        "/dags/{dagId}/dagRuns/{dagRunId}",
		PathParams:  map[string]string{"dagId": dagID, "dagRunId": dagRunID},
		Resource:    "DAG run " + dagID + "/" + dagRunID,
		Credentials: airflowCreds(p),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateDagRun triggers a new run. The audit entry carries the trigger note
// when one was supplied.
func (s *DagRunService) CreateDagRun(ctx context.Context, p domain.Principal, dagID string, create domain.DagRunCreate) (*domain.DagRun, error) {
	var out domain.DagRun
	err := s.client.Do(ctx, ports.AirflowRequest{
		Method:      http.MethodPost,
		Path:        "/dags/{dagId}/dagRuns",
		PathParams:  map[string]string{"dagId": dagID},
		Body:        create,
		Resource:    "DAG " + dagID,
		Credentials: airflowCreds(p),
	}, &out)
	if err != nil {
		return nil, err
	}

	details := "DAG run triggered"
	if create.Note != "" {
		details += " with note: " + create.Note
	}
	s.record(p, dagID, domain.ActionTriggered, details, out.DagRunID)

	return &out, nil
}

func (s *DagRunService) DeleteDagRun(ctx context.Context, p domain.Principal, dagID, dagRunID string) error {
	err := s.client.Do(ctx, ports.AirflowRequest{
		Method:      http.MethodDelete,
		Path:        "/dags/{dagId}/dagRuns/{dagRunId}",
		PathParams:  map[string]string{"dagId": dagID, "dagRunId": dagRunID},
		Resource:    "DAG run " + dagID + "/" + dagRunID,
		Credentials: airflowCreds(p),
	}, nil)
	if err != nil {
		return err
	}

	s.record(p, dagID, domain.ActionDeleted, "DAG run deleted: "+dagRunID, dagRunID)
	return nil
}

func (s *DagRunService) UpdateDagRunState(ctx context.Context, p domain.Principal, dagID, dagRunID string, update domain.DagRunStateUpdate) (*domain.DagRun, error) {
	var out domain.DagRun
	err := s.client.Do(ctx, ports.AirflowRequest{
		Method:      http.MethodPatch,
		Path:        "/dags/{dagId}/dagRuns/{dagRunId}",
		PathParams:  map[string]string{"dagId": dagID, "dagRunId": dagRunID},
		Body:        update,
		Resource:    "DAG run " + dagID + "/" + dagRunID,
		Credentials: airflowCreds(p),
	}, &out)
	if err != nil {
		return nil, err
	}

	s.record(p, dagID, domain.ActionOther, "DAG run state changed to: "+update.State, dagRunID)
	return &out, nil
}

func (s *DagRunService) ClearDagRun(ctx context.Context, p domain.Principal, dagID, dagRunID string, clear domain.DagRunClear) (*domain.DagRun, error) {
	var out domain.DagRun
	err := s.client.Do(ctx, ports.AirflowRequest{
		Method:      http.MethodPost,
		Path:        "/dags/{dagId}/dagRuns/{dagRunId}/clear",
		PathParams:  map[string]string{"dagId": dagID, "dagRunId": dagRunID},
		Body:        clear,
		Resource:    "DAG run " + dagID + "/" + dagRunID,
		Credentials: airflowCreds(p),
	}, &out)
	if err != nil {
		return nil, err
	}

	// Dry runs only preview affected task instances; nothing to audit.
	if !clear.DryRun {
		s.record(p, dagID, domain.ActionCleared, "DAG run cleared: dry_run="+strconv.FormatBool(clear.DryRun), dagRunID)
	}
	return &out, nil
}

func (s *DagRunService) SetDagRunNote(ctx context.Context, p domain.Principal, dagID, dagRunID string, note domain.DagRunNoteUpdate) (*domain.DagRun, error) {
	var out domain.DagRun
	err := s.client.Do(ctx, ports.AirflowRequest{
		Method:      http.MethodPatch,
		Path:        "/dags/{dagId}/dagRuns/{dagRunId}/setNote",
		PathParams:  map[string]string{"dagId": dagID, "dagRunId": dagRunID},
		Body:        note,
		Resource:    "DAG run " + dagID + "/" + dagRunID,
		Credentials: airflowCreds(p),
	}, &out)
	if err != nil {
		return nil, err
	}

	s.record(p, dagID, domain.ActionOther, "DAG run note updated", dagRunID)
	return &out, nil
}

func (s *DagRunService) GetUpstreamDatasetEvents(ctx context.Context, p domain.Principal, dagID, dagRunID string) (*domain.DatasetEventCollection, error) {
	var out domain.DatasetEventCollection
	err := s.client.Do(ctx, ports.AirflowRequest{
		Method:      http.MethodGet,
		Path:        "/dags/{dagId}/dagRuns/{dagRunId}/upstreamDatasetEvents",
		PathParams:  map[string]string{"dagId": dagID, "dagRunId": dagRunID},
		Resource:    "DAG run " + dagID + "/" + dagRunID,
		Credentials: airflowCreds(p),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DagRunService) record(p domain.Principal, dagID string, action domain.ActionType, details, runID string) {
	s.audit.Record(domain.ActionLog{
		Username:   p.Username,
		DagID:      dagID,
		ActionType: action,
		Details:    details,
		Success:    true,
		RunID:      runID,
	})
}
