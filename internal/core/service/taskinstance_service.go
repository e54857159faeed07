package service

import (
	"context"
	"net/http"
	"strconv"

	"github.com/skyops/airflow-gateway/internal/core/domain"
	"github.com/skyops/airflow-gateway/internal/core/ports"
)

// TaskInstanceService proxies task-instance operations to Airflow.
type TaskInstanceService struct {
	client ports.AirflowClient
	audit  ports.ActionLogRecorder
}

func NewTaskInstanceService(client ports.AirflowClient, audit ports.ActionLogRecorder) *TaskInstanceService {
	return &TaskInstanceService{client: client, audit: audit}
}

func (s *TaskInstanceService) GetTaskInstances(ctx context.Context, p domain.Principal, dagID, dagRunID string, query map[string]string) (*domain.TaskInstanceCollection, error) {
	var out domain.TaskInstanceCollection
	err := s.client.Do(ctx, ports.AirflowRequest{
		Method:      http.MethodGet,
		Path:        "/dags/{dagId}/dagRuns/{dagRunId}/taskInstances",
		PathParams:  map[string]string{"dagId": dagID, "dagRunId": dagRunID},
		Query:       query,
		Resource:    "DAG run " + dagID + "/" + dagRunID,
		Credentials: airflowCreds(p),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TaskInstanceService) GetTaskInstance(ctx context.Context, p domain.Principal, dagID, dagRunID, taskID string) (*domain.TaskInstance, error) {
	var out domain.TaskInstance
	err := s.client.Do(ctx, ports.AirflowRequest{
		Method:      http.MethodGet,
		Path:        "/dags/{dagId}/dagRuns/{dagRunId}/taskInstances/{taskId}",
		PathParams:  map[string]string{"dagId": dagID, "dagRunId": dagRunID, "taskId": taskID},
		Resource:    "Task instance " + taskID,
		Credentials: airflowCreds(p),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTaskInstanceState forces a task instance into a new state through
// Airflow's bulk update endpoint, scoped to the single task and run.
func (s *TaskInstanceService) UpdateTaskInstanceState(ctx context.Context, p domain.Principal, dagID, dagRunID, taskID string, update domain.TaskInstanceStateUpdate) (*domain.TaskInstanceCollection, error) {
	update.TaskID = taskID
	update.DagRunID = dagRunID

	var out domain.TaskInstanceCollection
	err := s.client.Do(ctx, ports.AirflowRequest{
		Method:      http.MethodPost,
		Path:        "/dags/{dagId}/updateTaskInstancesState",
		PathParams:  map[string]string{"dagId": dagID},
		Body:        update,
		Resource:    "Task instance " + taskID,
		Credentials: airflowCreds(p),
	}, &out)
	if err != nil {
		return nil, err
	}

	if !update.DryRun {
		s.audit.Record(domain.ActionLog{
			Username:   p.Username,
			DagID:      dagID,
			ActionType: domain.ActionTaskStateChanged,
			Details:    "Task " + taskID + " state changed to: " + update.NewState,
			Success:    true,
			RunID:      dagRunID,
		})
	}
	return &out, nil
}

// LogService fetches task execution logs from Airflow. Logs come back as
// plain text, not JSON.
type LogService struct {
	client ports.AirflowClient
}

func NewLogService(client ports.AirflowClient) *LogService {
	return &LogService{client: client}
}

func (s *LogService) GetTaskLogs(ctx context.Context, p domain.Principal, dagID, dagRunID, taskID string, tryNumber int) (string, error) {
	if tryNumber <= 0 {
		tryNumber = 1
	}
	var out string
	err := s.client.Do(ctx, ports.AirflowRequest{
		Method: http.MethodGet,
		Path:   "/dags/{dagId}/dagRuns/{dagRunId}/taskInstances/{taskId}/logs/{tryNumber}",
		PathParams: map[string]string{
			"dagId":     dagID,
			"dagRunId":  dagRunID,
			"taskId":    taskID,
			"tryNumber": strconv.Itoa(tryNumber),
		},
		Query:       map[string]string{"full_content": "true"},
		Resource:    "Task logs " + taskID,
		Credentials: airflowCreds(p),
	}, &out)
	if err != nil {
		return "", err
	}
	return out, nil
}
