package cmd

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "taskboard.com/taskboard/internal/configs"
	"taskboard.com/taskboard/internal/logging"
	"taskboard.com/taskboard/internal/realtime"
	repository "taskboard.com/taskboard/internal/repositories"
	"taskboard.com/taskboard/internal/services"
)

// sweepCmd runs one deadline pass and exits, so external schedulers
// (cron and friends) can own the cadence. The serve command runs the
// same sweep on its internal ticker.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run one deadline sweep",
	Long:  "Flags overdue and at-risk tasks and notifies their assignees, then exits",
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
			defer notifier.Close()
		}

		deadlineService := services.NewDeadlineService(
			repository.NewTaskRepository(database),
			repository.NewNotificationRepository(database),
			notifier,
			time.Duration(cfg.AtRiskWindowHours)*time.Hour,
		)

		result, err := deadlineService.SweepOnce(context.Background())
		if err != nil {
			return err
		}

		logging.Logger.Infof("sweep complete: %d overdue, %d at risk", result.Overdue, result.AtRisk)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}
