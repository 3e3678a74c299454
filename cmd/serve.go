package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "taskboard.com/taskboard/internal/configs"
	httpapi "taskboard.com/taskboard/internal/http"
	"taskboard.com/taskboard/internal/logging"
	"taskboard.com/taskboard/internal/realtime"
	repository "taskboard.com/taskboard/internal/repositories"
	"taskboard.com/taskboard/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the task board HTTP API, realtime change fan-out and background deadline sweep",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			logging.Logger.Info(".env file not found, using environment variables")
		}

		cfg := config.Load()
		logging.Init(cfg.LogFile)

		database := config.NewDatabase(cfg.DatabaseDSN)

		var notifier realtime.Notifier
		if cfg.UseRedisNotifier {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			notifier = realtime.NewRedisNotifier(redisClient, cfg.RedisChannel)
		} else {
			notifier = realtime.NewMemoryNotifier()
		}
		defer notifier.Close()

		taskRepo := repository.NewTaskRepository(database)
		userRepo := repository.NewUserRepository(database)
		entryRepo := repository.NewTimeEntryRepository(database)
		notificationRepo := repository.NewNotificationRepository(database)

		taskService := services.NewTaskService(taskRepo, userRepo, notifier)
		timerService := services.NewTimerService(taskRepo, entryRepo)
		metricsService := services.NewMetricsService(taskRepo, userRepo)
		exportService := services.NewExportService(taskRepo, userRepo)
		notificationService := services.NewNotificationService(notificationRepo)
		userService := services.NewUserService(userRepo)
		deadlineService := services.NewDeadlineService(
			taskRepo,
			notificationRepo,
			notifier,
			time.Duration(cfg.AtRiskWindowHours)*time.Hour,
		)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		go deadlineService.Run(ctx, time.Duration(cfg.SweepIntervalSeconds)*time.Second)

		e := echo.New()
		e.HideBanner = true

		handler := httpapi.NewHandler(
			taskService,
			timerService,
			metricsService,
			exportService,
			notificationService,
			userService,
			notifier,
		)
		httpapi.Register(e, handler, cfg.JWTSecret, cfg.RateLimit)

		go func() {
			logging.Logger.Infof("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				logging.Logger.Infof("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		logging.Logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
