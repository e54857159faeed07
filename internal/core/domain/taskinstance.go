package domain

import "time"

// TaskInstance is the execution record of a single task within a DAG run.
type TaskInstance struct {
	TaskID          string     `json:"task_id"`
	TaskDisplayName string     `json:"task_display_name,omitempty"`
	DagID           string     `json:"dag_id"`
	DagRunID        string     `json:"dag_run_id"`
	ExecutionDate   *time.Time `json:"execution_date,omitempty"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	Duration        *float64   `json:"duration,omitempty"`
	State           string     `json:"state,omitempty"`
	TryNumber       *int       `json:"try_number,omitempty"`
	MaxTries        *int       `json:"max_tries,omitempty"`
	Hostname        string     `json:"hostname,omitempty"`
	Operator        string     `json:"operator,omitempty"`
	Pool            string     `json:"pool,omitempty"`
	Queue           string     `json:"queue,omitempty"`
	PriorityWeight  *int       `json:"priority_weight,omitempty"`
	Note            string     `json:"note,omitempty"`
}

// TaskInstanceCollection is the list envelope for /taskInstances.
type TaskInstanceCollection struct {
	TaskInstances []TaskInstance `json:"task_instances"`
	TotalEntries  int            `json:"total_entries"`
}

// TaskInstanceStateUpdate is the body for forcing a task instance state.
type TaskInstanceStateUpdate struct {
	NewState          string `json:"new_state" validate:"required,oneof=success failed skipped"`
	DryRun            bool   `json:"dry_run"`
	TaskID            string `json:"task_id,omitempty"`
	DagRunID          string `json:"dag_run_id,omitempty"`
	IncludeUpstream   *bool  `json:"include_upstream,omitempty"`
	IncludeDownstream *bool  `json:"include_downstream,omitempty"`
	IncludeFuture     *bool  `json:"include_future,omitempty"`
	IncludePast       *bool  `json:"include_past,omitempty"`
}
