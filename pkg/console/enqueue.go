package console

import (
	"context"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lukengu-deimos/background-job/pkg/config"
	"github.com/lukengu-deimos/background-job/pkg/dispatch"
	"github.com/lukengu-deimos/background-job/pkg/queue"
	"github.com/lukengu-deimos/background-job/pkg/root"
	"github.com/lukengu-deimos/background-job/pkg/statuslog"
	"github.com/lukengu-deimos/background-job/pkg/telemetry"
	"github.com/lukengu-deimos/background-job/pkg/worker"
)

// enqueueCmd is the worker entry point executed inside the detached process.
// The launcher spawns it with exactly five positional arguments; exit code 0
// means the job reached the downstream queue.
var enqueueCmd = &cobra.Command{
	Use:    dispatch.EnqueueCommand + " <class> <method> <payload> <delay> <priority>",
	Short:  "Internal: materialize a dispatched job and submit it to the queue",
	Hidden: true,
	Args:   cobra.ExactArgs(5),
	Run: func(cmd *cobra.Command, args []string) {
		telemetry.SetGlobalLogger()

		cfg, err := config.Load()
		if err != nil {
			log.Error().Err(err).Msg("Failed to load configuration")
			os.Exit(1)
		}

		slog, err := statuslog.New(cfg.Log.StatusPath, cfg.Log.ErrorPath)
		if err != nil {
			log.Error().Err(err).Msg("Failed to open status log")
			os.Exit(1)
		}
		defer slog.Close()

		if len(cfg.Queue.AllowedNamespaces) > 0 {
			queue.SetAllowedNamespaces(cfg.Queue.AllowedNamespaces)
		}

		class, method, payload := args[0], args[1], args[2]

		delay, err := strconv.Atoi(args[3])
		if err != nil || delay < 0 {
			slog.Error("invalid delay argument %q for %s@%s", args[3], class, method)
			os.Exit(1)
		}
		priority, err := strconv.Atoi(args[4])
		if err != nil {
			slog.Error("invalid priority argument %q for %s@%s", args[4], class, method)
			os.Exit(1)
		}

		tp, err := telemetry.InitTracer("background-job-worker")
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize tracer")
			os.Exit(1)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Error().Err(err).Msg("Error shutting down tracer")
			}
		}()
		tracer := tp.Tracer("worker")

		ctx, span := tracer.Start(cmd.Context(), "enqueue "+class+"@"+method)
		defer span.End()
		ctx = log.Logger.WithContext(ctx)

		driver, err := newQueueDriver(ctx, cfg)
		if err != nil {
			slog.Error("queue driver unavailable: %v", err)
			os.Exit(1)
		}

		ep := worker.NewEntryPoint(driver, cfg.Queue.Name, slog)
		if err := ep.Run(ctx, class, method, payload, delay, priority); err != nil {
			// Already logged to the error channel; the non-zero exit is the
			// process-boundary signal.
			os.Exit(1)
		}
	},
}

func init() {
	root.GetRoot().AddCommand(enqueueCmd)
}
