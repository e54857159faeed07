package service

import (
	"context"
	"net/http"

	"github.com/skyops/airflow-gateway/internal/core/domain"
	"github.com/skyops/airflow-gateway/internal/core/ports"
)

// airflowCreds extracts the downstream credential pair carried by the
// principal. Anonymous principals yield an empty pair, which makes the
// outbound client fall back to the configured default credentials.
func airflowCreds(p domain.Principal) ports.BasicCredentials {
	return ports.BasicCredentials{Username: p.AirflowUsername, Password: p.AirflowPassword}
}

// DagService proxies DAG operations to Airflow and audits mutations.
type DagService struct {
	client ports.AirflowClient
	audit  ports.ActionLogRecorder
}

func NewDagService(client ports.AirflowClient, audit ports.ActionLogRecorder) *DagService {
	return &DagService{client: client, audit: audit}
}

func (s *DagService) GetDags(ctx context.Context, p domain.Principal, q ports.DagListQuery) (*domain.DagCollection, error) {
	var out domain.DagCollection
	err := s.client.Do(ctx, ports.AirflowRequest{
		Method: http.MethodGet,
		Path:   "/dags",
		Query: map[string]string{
			"limit":          q.Limit,
			"offset":         q.Offset,
			"only_active":    q.OnlyActive,
			"paused":         q.Paused,
			"tags":           q.Tags,
			"dag_id_pattern": q.DagIDPattern,
		},
		Resource:    "DAG list",
		Credentials: airflowCreds(p),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DagService) GetDag(ctx context.Context, p domain.Principal, dagID string) (*domain.Dag, error) {
	var out domain.Dag
	err := s.client.Do(ctx, ports.AirflowRequest{
		Method:      http.MethodGet,
		Path:        "/dags/{dagId}",
		PathParams:  map[string]string{"dagId": dagID},
		Resource:    "DAG " + dagID,
		Credentials: airflowCreds(p),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DagService) GetDagDetails(ctx context.Context, p domain.Principal, dagID string) (*domain.DagDetail, error) {
	var out domain.DagDetail
	err := s.client.Do(ctx, ports.AirflowRequest{
		Method:      http.MethodGet,
		Path:        "/dags/{dagId}/details",
		PathParams:  map[string]string{"dagId": dagID},
		Resource:    "DAG " + dagID,
		Credentials: airflowCreds(p),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DagService) GetDagTasks(ctx context.Context, p domain.Principal, dagID string) (*domain.TaskCollection, error) {
	var out domain.TaskCollection
	err := s.client.Do(ctx, ports.AirflowRequest{
		Method:      http.MethodGet,
		Path:        "/dags/{dagId}/tasks",
		PathParams:  map[string]string{"dagId": dagID},
		Resource:    "DAG " + dagID,
		Credentials: airflowCreds(p),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateDag patches a DAG and records a PAUSED/UNPAUSED audit entry when the
// paused flag changed, OTHER for anything else.
func (s *DagService) UpdateDag(ctx context.Context, p domain.Principal, dagID string, update domain.DagUpdate) (*domain.Dag, error) {
	var out domain.Dag
	err := s.client.Do(ctx, ports.AirflowRequest{
		Method:      http.MethodPatch,
		Path:        "/dags/{dagId}",
		PathParams:  map[string]string{"dagId": dagID},
		Body:        update,
		Resource:    "DAG " + dagID,
		Credentials: airflowCreds(p),
	}, &out)
	if err != nil {
		return nil, err
	}

	action, details := domain.ActionOther, "DAG updated"
	if update.IsPaused != nil {
		if *update.IsPaused {
			action, details = domain.ActionPaused, "DAG paused"
		} else {
			action, details = domain.ActionUnpaused, "DAG unpaused"
		}
	}
	s.record(p, dagID, action, details, "")

	return &out, nil
}

func (s *DagService) DeleteDag(ctx context.Context, p domain.Principal, dagID string) error {
	err := s.client.Do(ctx, ports.AirflowRequest{
		Method:      http.MethodDelete,
		Path:        "/dags/{dagId}",
		PathParams:  map[string]string{"dagId": dagID},
		Resource:    "DAG " + dagID,
		Credentials: airflowCreds(p),
	}, nil)
	if err != nil {
		return err
	}

	s.record(p, dagID, domain.ActionDeleted, "DAG deleted", "")
	return nil
}

func (s *DagService) record(p domain.Principal, dagID string, action domain.ActionType, details, runID string) {
	s.audit.Record(domain.ActionLog{
		Username:   p.Username,
		DagID:      dagID,
		ActionType: action,
		Details:    details,
		Success:    true,
		RunID:      runID,
	})
}
