package domain

import "time"

// DagRun is one execution instance of a DAG.
type DagRun struct {
	DagRunID          string         `json:"dag_run_id"`
	DagID             string         `json:"dag_id"`
	LogicalDate       *time.Time     `json:"logical_date,omitempty"`
	ExecutionDate     *time.Time     `json:"execution_date,omitempty"`
	StartDate         *time.Time     `json:"start_date,omitempty"`
	EndDate           *time.Time     `json:"end_date,omitempty"`
	DataIntervalStart *time.Time     `json:"data_interval_start,omitempty"`
	DataIntervalEnd   *time.Time     `json:"data_interval_end,omitempty"`
	State             string         `json:"state,omitempty"`
	RunType           string         `json:"run_type,omitempty"`
	ExternalTrigger   *bool          `json:"external_trigger,omitempty"`
	Conf              map[string]any `json:"conf,omitempty"`
	Note              string         `json:"note,omitempty"`
}

// DagRunCollection is the paginated list envelope for /dagRuns.
type DagRunCollection struct {
	DagRuns      []DagRun `json:"dag_runs"`
	TotalEntries int      `json:"total_entries"`
}

// DagRunCreate is the POST body for triggering a run.
type DagRunCreate struct {
	DagRunID          string         `json:"dag_run_id,omitempty"`
	LogicalDate       *time.Time     `json:"logical_date,omitempty"`
	DataIntervalStart *time.Time     `json:"data_interval_start,omitempty"`
	DataIntervalEnd   *time.Time     `json:"data_interval_end,omitempty"`
	Conf              map[string]any `json:"conf,omitempty"`
	Note              string         `json:"note,omitempty"`
}

// DagRunStateUpdate is the PATCH body for forcing a run state.
type DagRunStateUpdate struct {
	State string `json:"state" validate:"required,oneof=queued success failed"`
}

// DagRunClear is the POST body for clearing a run.
type DagRunClear struct {
	DryRun bool `json:"dry_run"`
}

// DagRunNoteUpdate is the PATCH body for /setNote.
type DagRunNoteUpdate struct {
	Note string `json:"note"`
}

// DatasetEvent is a dataset update that fed into a run.
type DatasetEvent struct {
	DatasetID     int        `json:"dataset_id"`
	DatasetURI    string     `json:"dataset_uri"`
	SourceDagID   string     `json:"source_dag_id,omitempty"`
	SourceRunID   string     `json:"source_run_id,omitempty"`
	SourceTaskID  string     `json:"source_task_id,omitempty"`
	Timestamp     *time.Time `json:"timestamp,omitempty"`
}

// DatasetEventCollection is the list envelope for upstreamDatasetEvents.
type DatasetEventCollection struct {
	DatasetEvents []DatasetEvent `json:"dataset_events"`
	TotalEntries  int            `json:"total_entries"`
}
