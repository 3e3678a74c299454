package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"taskboard.com/taskboard/internal/constants"
	dto "taskboard.com/taskboard/internal/data_models"
	errs "taskboard.com/taskboard/internal/errors"
	middleware "taskboard.com/taskboard/internal/http/middlewares"
	"taskboard.com/taskboard/internal/http/validators"
	"taskboard.com/taskboard/internal/logging"
	"taskboard.com/taskboard/internal/realtime"
	"taskboard.com/taskboard/internal/services"
)

type Handler struct {
	tasks         *services.TaskService
	timers        *services.TimerService
	metrics       *services.MetricsService
	export        *services.ExportService
	notifications *services.NotificationService
	users         *services.UserService
	notifier      realtime.Notifier
}

func NewHandler(
	tasks *services.TaskService,
	timers *services.TimerService,
	metrics *services.MetricsService,
	export *services.ExportService,
	notifications *services.NotificationService,
	users *services.UserService,
	notifier realtime.Notifier,
) *Handler {
	return &Handler{
		tasks:         tasks,
		timers:        timers,
		metrics:       metrics,
		export:        export,
		notifications: notifications,
		users:         users,
		notifier:      notifier,
	}
}

// domainError maps typed domain errors onto HTTP responses. Anything
// untyped is logged and hidden behind a 500; only this layer converts
// errors into user-facing messages.
func domainError(err error) error {
	var appErr *errs.Exception
	if errors.As(err, &appErr) {
		return echo.NewHTTPError(appErr.StatusCode, appErr.Message)
	}
	logging.Logger.WithError(err).Error("unexpected error")
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	in, err := validators.ValidateCreateTaskRequest(&req)
	if err != nil {
		return domainError(err)
	}

	task, err := h.tasks.CreateTask(c.Request().Context(), in, middleware.ActorFrom(c))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	filter := services.ListTasksFilter{
		AssignedToMe: c.QueryParam("assigned_to") == "me",
		Query:        c.QueryParam("q"),
	}

	tasks, err := h.tasks.ListTasks(c.Request().Context(), filter, middleware.ActorFrom(c))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) GetTask(c echo.Context) error {
	task, err := h.tasks.GetTask(c.Request().Context(), c.Param("id"), middleware.ActorFrom(c))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ChangeTaskStatus(c echo.Context) error {
	var req dto.ChangeStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	status, ok := constants.ParseStatus(req.Status)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	task, err := h.tasks.ChangeStatus(c.Request().Context(), c.Param("id"), status, middleware.ActorFrom(c))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) EditTask(c echo.Context) error {
	var req dto.EditTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	in, err := validators.ValidateEditTaskRequest(&req)
	if err != nil {
		return domainError(err)
	}

	task, err := h.tasks.EditTask(c.Request().Context(), c.Param("id"), in, middleware.ActorFrom(c))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.tasks.DeleteTask(c.Request().Context(), c.Param("id"), middleware.ActorFrom(c)); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) StartTimer(c echo.Context) error {
	entry, err := h.timers.StartTimer(c.Request().Context(), c.Param("id"), middleware.ActorFrom(c))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *Handler) StopTimer(c echo.Context) error {
	entry, err := h.timers.StopTimer(c.Request().Context(), c.Param("id"), middleware.ActorFrom(c))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *Handler) ListTimeEntries(c echo.Context) error {
	sheet, err := h.timers.ListEntries(c.Request().Context(), c.Param("id"), middleware.ActorFrom(c))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, sheet)
}

func (h *Handler) ActiveTimer(c echo.Context) error {
	active, err := h.timers.ActiveTimer(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return domainError(err)
	}
	// Renders as JSON null when no timer is running.
	return c.JSON(http.StatusOK, active)
}

func (h *Handler) GetKPIs(c echo.Context) error {
	kpis, err := h.metrics.GetKPIs(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, kpis)
}

func (h *Handler) GetChartData(c echo.Context) error {
	charts, err := h.metrics.GetChartData(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, charts)
}

func (h *Handler) ExportTasks(c echo.Context) error {
	var from, to *time.Time
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "from must be an RFC 3339 timestamp")
		}
		from = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "to must be an RFC 3339 timestamp")
		}
		to = &t
	}

	format := c.QueryParam("format")
	data, contentType, err := h.export.Export(c.Request().Context(), from, to, format, middleware.ActorFrom(c))
	if err != nil {
		return domainError(err)
	}

	if format == services.FormatCSV {
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="tasks-export.csv"`)
	}
	return c.Blob(http.StatusOK, contentType, data)
}

func (h *Handler) ListNotifications(c echo.Context) error {
	notifications, err := h.notifications.List(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, notifications)
}

func (h *Handler) MarkNotificationsRead(c echo.Context) error {
	var req dto.MarkReadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := h.notifications.MarkRead(c.Request().Context(), req.IDs, middleware.ActorFrom(c)); err != nil {
		return domainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreateWorker(c echo.Context) error {
	var req dto.CreateWorkerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	var role constants.Role
	if req.Role != "" {
		parsed, ok := constants.ParseRole(req.Role)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
		}
		role = parsed
	}
	user, err := h.users.CreateWorker(c.Request().Context(), services.CreateWorkerInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  role,
	}, middleware.ActorFrom(c))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) ListWorkers(c echo.Context) error {
	users, err := h.users.ListWorkers(c.Request().Context(), middleware.ActorFrom(c))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, users)
}
