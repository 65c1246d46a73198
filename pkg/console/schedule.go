package console

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lukengu-deimos/background-job/pkg/config"
	"github.com/lukengu-deimos/background-job/pkg/database"
	redisdriver "github.com/lukengu-deimos/background-job/pkg/driver/redis"
	"github.com/lukengu-deimos/background-job/pkg/root"
	"github.com/lukengu-deimos/background-job/pkg/schedule"
	"github.com/lukengu-deimos/background-job/pkg/telemetry"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule:run",
	Short: "Run the scheduled dispatch entries",
	Run: func(cmd *cobra.Command, args []string) {
		telemetry.SetGlobalLogger()

		cfg, err := config.Load()
		if err != nil {
			log.Warn().Err(err).Msg("Failed to load configuration from .env")
		}

		var lockProvider schedule.LockProvider
		store := ""
		if cfg != nil {
			store = cfg.Schedule.LockStore
		}

		switch store {
		case "redis":
			lockProvider = schedule.NewRedisLockProvider(redisdriver.New(cfg.Redis).Client())
		case "database":
			db, err := database.NewFactory().Connect(cfg.Database)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to connect to database for scheduler lock")
			}
			lockProvider = schedule.NewDatabaseLockProvider(db, cfg.Database.Connection)
		default:
			log.Info().Msg("No distributed lock provider configured. OnOneServer entries run on every host.")
		}

		kernel := schedule.GetGlobalKernel()
		kernel.SetLockProvider(lockProvider)

		log.Info().Msg("Starting scheduler...")
		kernel.Run()
		os.Exit(0)
	},
}

func init() {
	root.GetRoot().AddCommand(scheduleCmd)
}
