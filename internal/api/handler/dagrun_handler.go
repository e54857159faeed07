package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skyops/airflow-gateway/internal/api/middleware"
	"github.com/skyops/airflow-gateway/internal/core/domain"
	"github.com/skyops/airflow-gateway/internal/core/ports"
)

type DagRunHandler struct {
	runService ports.DagRunService
}

func NewDagRunHandler(runService ports.DagRunService) *DagRunHandler {
	return &DagRunHandler{runService: runService}
}

// GetDagRuns lists the runs of a DAG.
//
// @Summary      List DAG runs
// @Tags         dagRuns
// @Produce      json
// @Param        dagId  path      string  true   "DAG id"
// @Param        limit  query     string  false  "Page size"
// @Param        state  query     string  false  "Filter by run state"
// @Success      200    {object}  domain.DagRunCollection
// @Router       /v1/dags/{dagId}/dagRuns [get]
func (h *DagRunHandler) GetDagRuns(c echo.Context) error {
	q := ports.DagRunListQuery{
		Limit:        c.QueryParam("limit"),
		Offset:       c.QueryParam("offset"),
		State:        c.QueryParam("state"),
		OrderBy:      c.QueryParam("order_by"),
		StartDateGte: c.QueryParam("start_date_gte"),
		StartDateLte: c.QueryParam("start_date_lte"),
	}

	runs, err := h.runService.GetDagRuns(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("dagId"), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, runs)
}

// CreateDagRun triggers a new DAG run.
//
// @Summary      Trigger a DAG run
// @Tags         dagRuns
// @Accept       json
// @Produce      json
// @Param        dagId  path      string               true  "DAG id"
// @Param        body   body      domain.DagRunCreate  true  "Run parameters"
// @Success      200    {object}  domain.DagRun
// @Failure      400    {object}  map[string]string
// @Failure      409    {object}  map[string]string
// @Router       /v1/dags/{dagId}/dagRuns [post]
func (h *DagRunHandler) CreateDagRun(c echo.Context) error {
	var create domain.DagRunCreate
	if err := c.Bind(&create); err != nil {
		return &domain.BadRequestError{Detail: "invalid payload"}
	}

	run, err := h.runService.CreateDagRun(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("dagId"), create)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, run)
}

// GetDagRun returns one DAG run.
//
// @Summary      Get a DAG run
// @Tags         dagRuns
// @Produce      json
// @Param        dagId     path      string  true  "DAG id"
// @Param        dagRunId  path      string  true  "Run id"
// @Success      200       {object}  domain.DagRun
// @Failure      404       {object}  map[string]string
// @Router       /v1/dags/{dagId}/dagRuns/{dagRunId} [get]
func (h *DagRunHandler) GetDagRun(c echo.Context) error {
	run, err := h.runService.GetDagRun(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("dagId"), c.Param("dagRunId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, run)
}

// DeleteDagRun removes a DAG run.
//
// @Summary      Delete a DAG run
// @Tags         dagRuns
// @Param        dagId     path  string  true  "DAG id"
// @Param        dagRunId  path  string  true  "Run id"
// @Success      204
// @Failure      404       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Router       /v1/dags/{dagId}/dagRuns/{dagRunId} [delete]
func (h *DagRunHandler) DeleteDagRun(c echo.Context) error {
	if err := h.runService.DeleteDagRun(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("dagId"), c.Param("dagRunId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateDagRunState forces a DAG run into a new state.
//
// @Summary      Update DAG run state
// @Tags         dagRuns
// @Accept       json
// @Produce      json
// @Param        dagId     path      string                    true  "DAG id"
// @Param        dagRunId  path      string                    true  "Run id"
// @Param        body      body      domain.DagRunStateUpdate  true  "Target state"
// @Success      200       {object}  domain.DagRun
// @Failure      400       {object}  map[string]string
// @Router       /v1/dags/{dagId}/dagRuns/{dagRunId} [patch]
func (h *DagRunHandler) UpdateDagRunState(c echo.Context) error {
	var update domain.DagRunStateUpdate
	if err := c.Bind(&update); err != nil {
		return &domain.BadRequestError{Detail: "invalid payload"}
	}
	if err := c.Validate(&update); err != nil {
		return &domain.BadRequestError{Detail: err.Error()}
	}

	run, err := h.runService.UpdateDagRunState(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("dagId"), c.Param("dagRunId"), update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, run)
}

// ClearDagRun clears a DAG run, resetting its task instances.
//
// @Summary      Clear a DAG run
// @Tags         dagRuns
// @Accept       json
// @Produce      json
// @Param        dagId     path      string              true  "DAG id"
// @Param        dagRunId  path      string              true  "Run id"
// @Param        body      body      domain.DagRunClear  true  "Clear options"
// @Success      200       {object}  domain.DagRun
// @Router       /v1/dags/{dagId}/dagRuns/{dagRunId}/clear [post]
func (h *DagRunHandler) ClearDagRun(c echo.Context) error {
	var clear domain.DagRunClear
	if err := c.Bind(&clear); err != nil {
		return &domain.BadRequestError{Detail: "invalid payload"}
	}

	run, err := h.runService.ClearDagRun(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("dagId"), c.Param("dagRunId"), clear)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, run)
}

// SetDagRunNote attaches or replaces the note on a DAG run.
//
// @Summary      Set DAG run note
// @Tags         dagRuns
// @Accept       json
// @Produce      json
// @Param        dagId     path      string                   true  "DAG id"
// @Param        dagRunId  path      string                   true  "Run id"
// @Param        body      body      domain.DagRunNoteUpdate  true  "Note"
// @Success      200       {object}  domain.DagRun
// @Router       /v1/dags/{dagId}/dagRuns/{dagRunId}/setNote [patch]
func (h *DagRunHandler) SetDagRunNote(c echo.Context) error {
	var note domain.DagRunNoteUpdate
	if err := c.Bind(&note); err != nil {
		return &domain.BadRequestError{Detail: "invalid payload"}
	}

	run, err := h.runService.SetDagRunNote(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("dagId"), c.Param("dagRunId"), note)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, run)
}

// GetUpstreamDatasetEvents lists the dataset events that fed a run.
//
// @Summary      List upstream dataset events
// @Tags         dagRuns
// @Produce      json
// @Param        dagId     path      string  true  "DAG id"
// @Param        dagRunId  path      string  true  "Run id"
// @Success      200       {object}  domain.DatasetEventCollection
// @Router       /v1/dags/{dagId}/dagRuns/{dagRunId}/upstreamDatasetEvents [get]
func (h *DagRunHandler) GetUpstreamDatasetEvents(c echo.Context) error {
	events, err := h.runService.GetUpstreamDatasetEvents(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("dagId"), c.Param("dagRunId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
