package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/skyops/airflow-gateway/internal/api/middleware"
	"github.com/skyops/airflow-gateway/internal/core/domain"
	"github.com/skyops/airflow-gateway/internal/core/ports"
)

type ActionLogHandler struct {
	logService ports.ActionLogService
}

func NewActionLogHandler(logService ports.ActionLogService) *ActionLogHandler {
	return &ActionLogHandler{logService: logService}
}

// GetActionLogs returns a page of recorded DAG actions. Admins see every
// user's actions, everyone else only their own.
//
// @Summary      List DAG action logs
// @Tags         actionLogs
// @Produce      json
// @Param        page  query     int  false  "Page number, zero based"
// @Param        size  query     int  false  "Page size"
// @Success      200   {object}  domain.ActionLogPage
// @Router       /v1/logs/dag-actions [get]
func (h *ActionLogHandler) GetActionLogs(c echo.Context) error {
	page, err := intQuery(c, "page", 0)
	if err != nil {
		return err
	}
	size, err := intQuery(c, "size", 20)
	if err != nil {
		return err
	}

	logs, err := h.logService.ListAll(c.Request().Context(), middleware.PrincipalFrom(c), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}

// GetActionLogsByDag returns the recorded actions for one DAG.
//
// @Summary      List action logs for a DAG
// @Tags         actionLogs
// @Produce      json
// @Param        dagId  path      string  true  "DAG id"
// @Success      200    {array}   domain.ActionLog
// @Router       /v1/logs/dag-actions/dag/{dagId} [get]
func (h *ActionLogHandler) GetActionLogsByDag(c echo.Context) error {
	logs, err := h.logService.ListByDag(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("dagId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}

// GetActionLogsByType returns the recorded actions of one type.
//
// @Summary      List action logs by action type
// @Tags         actionLogs
// @Produce      json
// @Param        actionType  path      string  true  "Action type"
// @Success      200         {array}   domain.ActionLog
// @Router       /v1/logs/dag-actions/type/{actionType} [get]
func (h *ActionLogHandler) GetActionLogsByType(c echo.Context) error {
	logs, err := h.logService.ListByType(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("actionType"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, logs)
}

func intQuery(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &domain.BadRequestError{Detail: name + " must be a non-negative integer"}
	}
	return n, nil
}
