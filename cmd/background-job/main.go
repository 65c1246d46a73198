package main

import (
	"github.com/lukengu-deimos/background-job/pkg/dispatch"
	"github.com/lukengu-deimos/background-job/pkg/queue"
	"github.com/lukengu-deimos/background-job/pkg/root"
	"github.com/lukengu-deimos/background-job/pkg/schedule"

	_ "github.com/lukengu-deimos/background-job/pkg/console" // Register commands
)

// newSendNotification materializes the sample notification job. The factory
// only builds the queueable object; the downstream queue runs it.
func newSendNotification(args ...any) (queue.Queueable, error) {
	return queue.NewEnvelope(`App\Jobs\SendNotification`, "handle", args), nil
}

func main() {
	// 1. Register job factories
	queue.Register(`App\Jobs\SendNotification`, "handle", newSendNotification)

	// 2. Optional scheduled dispatch: enqueue the digest every night at 02:00
	schedule.Register("0 0 2 * * *", func() {
		dispatch.Submit(`App\Jobs\SendNotification`, "handle", []any{"daily-digest"}, 0, 0)
	}, schedule.OnOneServer("daily-digest"))

	// 3. Execute Root Command
	root.Execute()
}
