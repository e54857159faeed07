package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skyops/airflow-gateway/internal/api/handler"
	"github.com/skyops/airflow-gateway/internal/api/middleware"
	"github.com/skyops/airflow-gateway/internal/core/ports"
	"github.com/skyops/airflow-gateway/internal/core/service"
	mongodb "github.com/skyops/airflow-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/skyops/airflow-gateway/internal/infrastructure/db/redis"
)

// Deps carries the infrastructure the router wires together.
type Deps struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	Airflow   ports.AirflowClient
	Audit     ports.ActionLogRecorder
	AuditRepo ports.ActionLogRepository
	JWTSecret string
	TokenTTL  time.Duration
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("airflow_gateway"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.Mongo)
	activeCache := redisdb.NewActiveFlagCache(deps.Redis)

	tokenService := service.NewTokenService(deps.JWTSecret, deps.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService)
	directory := service.NewAccountDirectory(userRepo, activeCache, deps.Logger)

	dagService := service.NewDagService(deps.Airflow, deps.Audit)
	runService := service.NewDagRunService(deps.Airflow, deps.Audit)
	taskService := service.NewTaskInstanceService(deps.Airflow, deps.Audit)
	logService := service.NewLogService(deps.Airflow)
	actionLogService := service.NewActionLogService(deps.AuditRepo)

	authHandler := handler.NewAuthHandler(authService)
	dagHandler := handler.NewDagHandler(dagService)
	runHandler := handler.NewDagRunHandler(runService)
	taskHandler := handler.NewTaskInstanceHandler(taskService)
	logHandler := handler.NewLogHandler(logService)
	actionLogHandler := handler.NewActionLogHandler(actionLogService)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis, deps.Airflow)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Gateway surface ---
	// Every request under /api passes the authentication gate and then the
	// authorization matrix. The gate never rejects; the matrix is the only
	// place a 401 or 403 originates.
	gate := middleware.Auth(middleware.AuthConfig{
		Tokens:    tokenService,
		Directory: directory,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/api/auth/login"
		},
		Logger: deps.Logger,
	})

	api := e.Group("/api", gate, middleware.Authorize(middleware.GatewayRules()))

	api.POST("/auth/login", authHandler.Login)

	v1 := api.Group("/v1")

	v1.GET("/dags", dagHandler.GetDags)
	v1.GET("/dags/:dagId", dagHandler.GetDag)
	v1.GET("/dags/:dagId/details", dagHandler.GetDagDetails)
	v1.GET("/dags/:dagId/tasks", dagHandler.GetDagTasks)
	v1.PATCH("/dags/:dagId", dagHandler.UpdateDag)
	v1.DELETE("/dags/:dagId", dagHandler.DeleteDag)

	v1.GET("/dags/:dagId/dagRuns", runHandler.GetDagRuns)
	v1.POST("/dags/:dagId/dagRuns", runHandler.CreateDagRun)
	v1.GET("/dags/:dagId/dagRuns/:dagRunId", runHandler.GetDagRun)
	v1.DELETE("/dags/:dagId/dagRuns/:dagRunId", runHandler.DeleteDagRun)
	v1.PATCH("/dags/:dagId/dagRuns/:dagRunId", runHandler.UpdateDagRunState)
	v1.POST("/dags/:dagId/dagRuns/:dagRunId/clear", runHandler.ClearDagRun)
	v1.PATCH("/dags/:dagId/dagRuns/:dagRunId/setNote", runHandler.SetDagRunNote)
	v1.GET("/dags/:dagId/dagRuns/:dagRunId/upstreamDatasetEvents", runHandler.GetUpstreamDatasetEvents)

	v1.GET("/dags/:dagId/dagRuns/:dagRunId/taskInstances", taskHandler.GetTaskInstances)
	v1.GET("/dags/:dagId/dagRuns/:dagRunId/taskInstances/:taskId", taskHandler.GetTaskInstance)
	v1.PATCH("/dags/:dagId/dagRuns/:dagRunId/taskInstances/:taskId/state", taskHandler.UpdateTaskInstanceState)

	v1.GET("/logs/dag-actions", actionLogHandler.GetActionLogs)
	v1.GET("/logs/dag-actions/dag/:dagId", actionLogHandler.GetActionLogsByDag)
	v1.GET("/logs/dag-actions/type/:actionType", actionLogHandler.GetActionLogsByType)
	v1.GET("/logs/:dagId/dagRuns/:dagRunId/taskInstances/:taskId", logHandler.GetTaskLogs)

	return e
}
