package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/skyops/airflow-gateway/internal/api/middleware"
	"github.com/skyops/airflow-gateway/internal/core/domain"
	"github.com/skyops/airflow-gateway/internal/core/ports"
)

type LogHandler struct {
	logService ports.LogService
}

func NewLogHandler(logService ports.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// GetTaskLogs streams the log of one task try as plain text.
//
// @Summary      Get task execution logs
// @Tags         logs
// @Produce      plain
// @Param        dagId       path      string  true   "DAG id"
// @Param        dagRunId    path      string  true   "Run id"
// @Param        taskId      path      string  true   "Task id"
// @Param        try_number  query     int     false  "Try number, defaults to 1"
// @Success      200         {string}  string
// @Failure      404         {object}  map[string]string
// @Router       /v1/logs/{dagId}/dagRuns/{dagRunId}/taskInstances/{taskId} [get]
func (h *LogHandler) GetTaskLogs(c echo.Context) error {
	tryNumber := 1
	if raw := c.QueryParam("try_number"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return &domain.BadRequestError{Detail: "try_number must be a positive integer"}
		}
		tryNumber = n
	}

	logs, err := h.logService.GetTaskLogs(c.Request().Context(), middleware.PrincipalFrom(c),
		c.Param("dagId"), c.Param("dagRunId"), c.Param("taskId"), tryNumber)
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, logs)
}
