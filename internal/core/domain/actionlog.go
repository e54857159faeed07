package domain

import "time"

// ActionType classifies an audited DAG action.
type ActionType string

const (
	ActionTriggered        ActionType = "TRIGGERED"
	ActionPaused           ActionType = "PAUSED"
	ActionUnpaused         ActionType = "UNPAUSED"
	ActionDeleted          ActionType = "DELETED"
	ActionCleared          ActionType = "CLEARED"
	ActionTaskStateChanged ActionType = "TASK_STATE_CHANGED"
	ActionOther            ActionType = "OTHER"
)

// ActionLog records one mutating action performed through the gateway.
// Writes are best effort: a failed audit write never alters the response
// of the call it describes.
type ActionLog struct {
	ID         string     `json:"id,omitempty"`
	Username   string     `json:"username"`
	DagID      string     `json:"dag_id"`
	ActionType ActionType `json:"action_type"`
	Details    string     `json:"action_details,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
	Success    bool       `json:"success"`
	RunID      string     `json:"run_id,omitempty"`
}

// ActionLogPage is the paginated envelope for action log listings.
type ActionLogPage struct {
	Logs       []ActionLog `json:"logs"`
	TotalCount int64       `json:"total_count"`
	Page       int         `json:"page"`
	Size       int         `json:"size"`
}
