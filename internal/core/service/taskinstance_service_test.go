package service

import (
	"context"
	"testing"

	"github.com/skyops/airflow-gateway/internal/core/domain"
)

func TestTaskInstanceService_UpdateStateScopesBulkEndpoint(t *testing.T) {
	client := &stubAirflowClient{fill: func(out any) {
		*(out.(*domain.TaskInstanceCollection)) = domain.TaskInstanceCollection{}
	}}
	audit := &captureRecorder{}
	svc := NewTaskInstanceService(client, audit)

	update := domain.TaskInstanceStateUpdate{NewState: "failed"}
	if _, err := svc.UpdateTaskInstanceState(context.Background(), opPrincipal(), "etl", "manual_1", "extract", update); err != nil {
		t.Fatalf("update: %v", err)
	}

	if client.lastReq.Path != "/dags/{dagId}/updateTaskInstancesState" {
		t.Fatalf("path = %q", client.lastReq.Path)
	}
	sent := client.lastReq.Body.(domain.TaskInstanceStateUpdate)
	if sent.TaskID != "extract" || sent.DagRunID != "manual_1" {
		t.Fatalf("update not scoped to task and run: %+v", sent)
	}

	if len(audit.entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(audit.entries))
	}
	if audit.entries[0].ActionType != domain.ActionTaskStateChanged {
		t.Fatalf("action = %q, want TASK_STATE_CHANGED", audit.entries[0].ActionType)
	}
	if audit.entries[0].RunID != "manual_1" {
		t.Fatalf("run id = %q", audit.entries[0].RunID)
	}
}

func TestTaskInstanceService_DryRunNotAudited(t *testing.T) {
	client := &stubAirflowClient{fill: func(out any) {
		*(out.(*domain.TaskInstanceCollection)) = domain.TaskInstanceCollection{}
	}}
	audit := &captureRecorder{}
	svc := NewTaskInstanceService(client, audit)

	update := domain.TaskInstanceStateUpdate{NewState: "failed", DryRun: true}
	if _, err := svc.UpdateTaskInstanceState(context.Background(), opPrincipal(), "etl", "manual_1", "extract", update); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(audit.entries) != 0 {
		t.Fatalf("dry run must not be audited")
	}
}

func TestLogService_DefaultsTryNumber(t *testing.T) {
	client := &stubAirflowClient{fill: func(out any) {
		*(out.(*string)) = "log body"
	}}
	svc := NewLogService(client)

	logs, err := svc.GetTaskLogs(context.Background(), opPrincipal(), "etl", "manual_1", "extract", 0)
	if err != nil {
		t.Fatalf("get logs: %v", err)
	}
	if logs != "log body" {
		t.Fatalf("logs = %q", logs)
	}
	if client.lastReq.PathParams["tryNumber"] != "1" {
		t.Fatalf("try number = %q, want 1", client.lastReq.PathParams["tryNumber"])
	}
	if client.lastReq.Query["full_content"] != "true" {
		t.Fatalf("full_content not requested")
	}
}
