package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "taskboard.com/taskboard/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, jwtSecret string, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.GET("/healthz", h.Health)

	api := e.Group("", middleware.Auth(jwtSecret))

	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks", h.ListTasks)
	api.GET("/tasks/:id", h.GetTask)
	api.PATCH("/tasks/:id", h.EditTask)
	api.PATCH("/tasks/:id/status", h.ChangeTaskStatus)
	api.DELETE("/tasks/:id", h.DeleteTask)

	api.POST("/tasks/:id/time/start", h.StartTimer)
	api.POST("/tasks/:id/time/stop", h.StopTimer)
	api.GET("/tasks/:id/time", h.ListTimeEntries)
	api.GET("/tasks/time/active", h.ActiveTimer)

	api.GET("/reports/kpis", h.GetKPIs)
	api.GET("/reports/charts", h.GetChartData)
	api.GET("/reports/tasks", h.ExportTasks)

	api.GET("/notifications", h.ListNotifications)
	api.POST("/notifications/read", h.MarkNotificationsRead)

	api.GET("/events", h.StreamEvents)

	api.POST("/admin/workers", h.CreateWorker)
	api.GET("/admin/workers", h.ListWorkers)
}
