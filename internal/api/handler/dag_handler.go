package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skyops/airflow-gateway/internal/api/middleware"
	"github.com/skyops/airflow-gateway/internal/core/domain"
	"github.com/skyops/airflow-gateway/internal/core/ports"
)

type DagHandler struct {
	dagService ports.DagService
}

func NewDagHandler(dagService ports.DagService) *DagHandler {
	return &DagHandler{dagService: dagService}
}

// GetDags lists DAG definitions, passing list filters through to Airflow.
//
// @Summary      List DAGs
// @Tags         dags
// @Produce      json
// @Param        limit   query     string  false  "Page size"
// @Param        offset  query     string  false  "Page offset"
// @Param        paused  query     string  false  "Filter by paused state"
// @Success      200     {object}  domain.DagCollection
// @Router       /v1/dags [get]
func (h *DagHandler) GetDags(c echo.Context) error {
	q := ports.DagListQuery{
		Limit:        c.QueryParam("limit"),
		Offset:       c.QueryParam("offset"),
		OnlyActive:   c.QueryParam("only_active"),
		Paused:       c.QueryParam("paused"),
		Tags:         c.QueryParam("tags"),
		DagIDPattern: c.QueryParam("dag_id_pattern"),
	}

	dags, err := h.dagService.GetDags(c.Request().Context(), middleware.PrincipalFrom(c), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dags)
}

// GetDag returns one DAG definition.
//
// @Summary      Get a DAG
// @Tags         dags
// @Produce      json
// @Param        dagId  path      string  true  "DAG id"
// @Success      200    {object}  domain.Dag
// @Failure      404    {object}  map[string]string
// @Router       /v1/dags/{dagId} [get]
func (h *DagHandler) GetDag(c echo.Context) error {
	dag, err := h.dagService.GetDag(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("dagId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dag)
}

// GetDagDetails returns a DAG with its full scheduling metadata.
//
// @Summary      Get DAG details
// @Tags         dags
// @Produce      json
// @Param        dagId  path      string  true  "DAG id"
// @Success      200    {object}  domain.DagDetail
// @Router       /v1/dags/{dagId}/details [get]
func (h *DagHandler) GetDagDetails(c echo.Context) error {
	detail, err := h.dagService.GetDagDetails(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("dagId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// GetDagTasks lists the tasks of a DAG.
//
// @Summary      List DAG tasks
// @Tags         dags
// @Produce      json
// @Param        dagId  path      string  true  "DAG id"
// @Success      200    {object}  domain.TaskCollection
// @Router       /v1/dags/{dagId}/tasks [get]
func (h *DagHandler) GetDagTasks(c echo.Context) error {
	tasks, err := h.dagService.GetDagTasks(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("dagId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// UpdateDag patches a DAG (pause/unpause).
//
// @Summary      Update a DAG
// @Tags         dags
// @Accept       json
// @Produce      json
// @Param        dagId  path      string            true  "DAG id"
// @Param        body   body      domain.DagUpdate  true  "Fields to update"
// @Success      200    {object}  domain.Dag
// @Failure      404    {object}  map[string]string
// @Failure      409    {object}  map[string]string
// @Router       /v1/dags/{dagId} [patch]
func (h *DagHandler) UpdateDag(c echo.Context) error {
	var update domain.DagUpdate
	if err := c.Bind(&update); err != nil {
		return &domain.BadRequestError{Detail: "invalid payload"}
	}

	dag, err := h.dagService.UpdateDag(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("dagId"), update)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dag)
}

// DeleteDag removes a DAG from Airflow.
//
// @Summary      Delete a DAG
// @Tags         dags
// @Param        dagId  path  string  true  "DAG id"
// @Success      204
// @Failure      404    {object}  map[string]string
// @Failure      409    {object}  map[string]string
// @Router       /v1/dags/{dagId} [delete]
func (h *DagHandler) DeleteDag(c echo.Context) error {
	if err := h.dagService.DeleteDag(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("dagId")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
