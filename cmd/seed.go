package cmd

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "taskboard.com/taskboard/internal/configs"
	"taskboard.com/taskboard/internal/constants"
	"taskboard.com/taskboard/internal/logging"
	model "taskboard.com/taskboard/internal/models"
	repository "taskboard.com/taskboard/internal/repositories"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with demo users and tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			logging.Logger.Info(".env file not found, using environment variables")
		}

		cfg := config.Load()
		logging.Init(cfg.LogFile)

		database := config.NewDatabase(cfg.DatabaseDSN)
		users := repository.NewUserRepository(database)
		tasks := repository.NewTaskRepository(database)

		ctx := context.Background()

		admin := &model.User{ID: uuid.NewString(), Name: "Admin", Email: "admin@example.com", Role: constants.RoleAdmin}
		manager := &model.User{ID: uuid.NewString(), Name: "Morgan Manager", Email: "manager@example.com", Role: constants.RoleManager}
		workerOne := &model.User{ID: uuid.NewString(), Name: "Willa Worker", Email: "willa@example.com", Role: constants.RoleWorker}
		workerTwo := &model.User{ID: uuid.NewString(), Name: "Wes Worker", Email: "wes@example.com", Role: constants.RoleWorker}

		for _, u := range []*model.User{admin, manager, workerOne, workerTwo} {
			if err := users.Create(ctx, u); err != nil {
				return err
			}
		}

		now := time.Now()
		demo := []*model.Task{
			{
				ID:         uuid.NewString(),
				Title:      "Prepare quarterly report",
				Status:     constants.StatusPending,
				Priority:   constants.PriorityHigh,
				Deadline:   now.Add(48 * time.Hour),
				AssignedTo: &workerOne.ID,
				CreatedBy:  manager.ID,
				Version:    1,
			},
			{
				ID:         uuid.NewString(),
				Title:      "Fix login page styling",
				Status:     constants.StatusInProgress,
				Priority:   constants.PriorityMedium,
				Deadline:   now.Add(12 * time.Hour),
				AssignedTo: &workerTwo.ID,
				CreatedBy:  admin.ID,
				StartedAt:  &now,
				Version:    1,
			},
			{
				ID:        uuid.NewString(),
				Title:     "Archive old tickets",
				Status:    constants.StatusPending,
				Priority:  constants.PriorityLow,
				Deadline:  now.Add(-6 * time.Hour),
				CreatedBy: admin.ID,
				Version:   1,
			},
		}
		for _, t := range demo {
			if err := tasks.Create(ctx, t); err != nil {
				return err
			}
		}

		logging.Logger.Infof("seeded %d users and %d tasks", 4, len(demo))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
