package domain

import "time"

// DTOs mirroring the Airflow 2.x stable REST API. The gateway treats DAG
// payloads as pass-through data; only the fields the UI consumes are
// mirrored here.

// DagTag is a label attached to a DAG definition.
type DagTag struct {
	Name string `json:"name"`
}

// Dag is a workflow definition as reported by Airflow.
type Dag struct {
	DagID                    string     `json:"dag_id"`
	DagDisplayName           string     `json:"dag_display_name,omitempty"`
	RootDagID                string     `json:"root_dag_id,omitempty"`
	IsPaused                 *bool      `json:"is_paused,omitempty"`
	IsActive                 *bool      `json:"is_active,omitempty"`
	LastParsedTime           *time.Time `json:"last_parsed_time,omitempty"`
	Fileloc                  string     `json:"fileloc,omitempty"`
	FileToken                string     `json:"file_token,omitempty"`
	Owners                   []string   `json:"owners,omitempty"`
	Description              string     `json:"description,omitempty"`
	TimetableDescription     string     `json:"timetable_description,omitempty"`
	Tags                     []DagTag   `json:"tags,omitempty"`
	MaxActiveTasks           *int       `json:"max_active_tasks,omitempty"`
	MaxActiveRuns            *int       `json:"max_active_runs,omitempty"`
	HasTaskConcurrencyLimits *bool      `json:"has_task_concurrency_limits,omitempty"`
	HasImportErrors          *bool      `json:"has_import_errors,omitempty"`
	NextDagrun               *time.Time `json:"next_dagrun,omitempty"`
	NextDagrunCreateAfter    *time.Time `json:"next_dagrun_create_after,omitempty"`
}

// DagCollection is the paginated list envelope returned by GET /dags.
type DagCollection struct {
	Dags         []Dag `json:"dags"`
	TotalEntries int   `json:"total_entries"`
}

// DagDetail extends Dag with scheduling metadata returned by /details.
type DagDetail struct {
	Dag
	Timezone           string         `json:"timezone,omitempty"`
	Catchup            *bool          `json:"catchup,omitempty"`
	Orientation        string         `json:"orientation,omitempty"`
	Concurrency        *int           `json:"concurrency,omitempty"`
	StartDate          *time.Time     `json:"start_date,omitempty"`
	EndDate            *time.Time     `json:"end_date,omitempty"`
	DocMd              string         `json:"doc_md,omitempty"`
	Params             map[string]any `json:"params,omitempty"`
	TemplateSearchPath []string       `json:"template_search_path,omitempty"`
}

// DagUpdate is the PATCH body accepted by /dags/{dagId}. Only the paused
// flag is writable through the gateway.
type DagUpdate struct {
	IsPaused *bool `json:"is_paused"`
}

// Task is a node of a DAG definition.
type Task struct {
	TaskID            string   `json:"task_id"`
	TaskDisplayName   string   `json:"task_display_name,omitempty"`
	Owner             string   `json:"owner,omitempty"`
	TriggerRule       string   `json:"trigger_rule,omitempty"`
	DependsOnPast     *bool    `json:"depends_on_past,omitempty"`
	IsMapped          *bool    `json:"is_mapped,omitempty"`
	UIColor           string   `json:"ui_color,omitempty"`
	DownstreamTaskIDs []string `json:"downstream_task_ids,omitempty"`
}

// TaskCollection is the list envelope returned by /dags/{dagId}/tasks.
type TaskCollection struct {
	Tasks        []Task `json:"tasks"`
	TotalEntries int    `json:"total_entries"`
}
