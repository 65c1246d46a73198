package console

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lukengu-deimos/background-job/pkg/config"
	"github.com/lukengu-deimos/background-job/pkg/dispatch"
	"github.com/lukengu-deimos/background-job/pkg/root"
	"github.com/lukengu-deimos/background-job/pkg/telemetry"
)

var (
	dispatchDelay    int
	dispatchPriority int
)

var dispatchCmd = &cobra.Command{
	Use:   "queue:dispatch <class> <method> [param...]",
	Short: "Dispatch a job to a detached worker process",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		telemetry.SetGlobalLogger()

		cfg, err := config.Load()
		if err != nil {
			log.Error().Err(err).Msg("Failed to load configuration")
			os.Exit(1)
		}

		d, err := dispatch.NewFromConfig(cfg)
		if err != nil {
			log.Error().Err(err).Msg("Failed to build dispatcher")
			os.Exit(1)
		}

		params := make([]any, 0, len(args)-2)
		for _, p := range args[2:] {
			params = append(params, p)
		}

		d.Dispatch(args[0], args[1], params, dispatchDelay, dispatchPriority)
	},
}

func init() {
	dispatchCmd.Flags().IntVar(&dispatchDelay, "delay", 0, "Delay in seconds before the job becomes available")
	dispatchCmd.Flags().IntVar(&dispatchPriority, "priority", 0, "Priority assigned to the queued job")

	root.GetRoot().AddCommand(dispatchCmd)
}
