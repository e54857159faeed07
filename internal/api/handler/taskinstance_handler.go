package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skyops/airflow-gateway/internal/api/middleware"
	"github.com/skyops/airflow-gateway/internal/core/domain"
	"github.com/skyops/airflow-gateway/internal/core/ports"
)

type TaskInstanceHandler struct {
	taskService ports.TaskInstanceService
}

func NewTaskInstanceHandler(taskService ports.TaskInstanceService) *TaskInstanceHandler {
	return &TaskInstanceHandler{taskService: taskService}
}

// GetTaskInstances lists the task instances of a DAG run.
//
// @Summary      List task instances
// @Tags         taskInstances
// @Produce      json
// @Param        dagId     path      string  true  "DAG id"
// @Param        dagRunId  path      string  true  "Run id"
// @Success      200       {object}  domain.TaskInstanceCollection
// @Router       /v1/dags/{dagId}/dagRuns/{dagRunId}/taskInstances [get]
func (h *TaskInstanceHandler) GetTaskInstances(c echo.Context) error {
	query := map[string]string{
		"limit":  c.QueryParam("limit"),
		"offset": c.QueryParam("offset"),
		"state":  c.QueryParam("state"),
	}
	tasks, err := h.taskService.GetTaskInstances(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("dagId"), c.Param("dagRunId"), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// GetTaskInstance returns one task instance.
//
// @Summary      Get a task instance
// @Tags         taskInstances
// @Produce      json
// @Param        dagId     path      string  true  "DAG id"
// @Param        dagRunId  path      string  true  "Run id"
// @Param        taskId    path      string  true  "Task id"
// @Success      200       {object}  domain.TaskInstance
// @Failure      404       {object}  map[string]string
// @Router       /v1/dags/{dagId}/dagRuns/{dagRunId}/taskInstances/{taskId} [get]
func (h *TaskInstanceHandler) GetTaskInstance(c echo.Context) error {
	task, err := h.taskService.GetTaskInstance(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("dagId"), c.Param("dagRunId"), c.Param("taskId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTaskInstanceState forces a task instance into a new state.
//
// @Summary      Update task instance state
// @Tags         taskInstances
// @Accept       json
// @Produce      json
// @Param        dagId     path      string                          true  "DAG id"
// @Param        dagRunId  path      string                          true  "Run id"
// @Param        taskId    path      string                          true  "Task id"
// @Param        body      body      domain.TaskInstanceStateUpdate  true  "Target state"
// @Success      200       {object}  domain.TaskInstanceCollection
// @Failure      400       {object}  map[string]string
// @Router       /v1/dags/{dagId}/dagRuns/{dagRunId}/taskInstances/{taskId}/state [patch]
func (h *TaskInstanceHandler) UpdateTaskInstanceState(c echo.Context) error {
	var update domain.TaskInstanceStateUpdate
	if err := c.Bind(&update); err != nil {
		return &domain.BadRequestError{Detail: "invalid payload"}
	}
	if err := c.Validate(&update); err != nil {
		return &domain.BadRequestError{Detail: err.Error()}
	}

	tasks, err := h.taskService.UpdateTaskInstanceState(c.Request().Context(), middleware.PrincipalFrom(c),
		c.Param("dagId"), c.Param("dagRunId"), c.Param("taskId"), update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}
