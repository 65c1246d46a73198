// Package backgroundjob dispatches named jobs to detached worker processes.
//
// A dispatch call validates the requested class/method pair against a typed
// registry and a namespace allow-list, serializes the arguments into a
// base64 payload, and spawns a fire-and-forget worker process. The worker
// decodes the payload, invokes the registered factory to materialize a
// queueable job, and submits it to the downstream queue (Redis, SQS, or a
// SQL table) with the requested delay and priority. Launch-time failures are
// retried up to a configured bound and recorded on the status/error log
// channels; nothing propagates back to the caller.
//
// Key subpackages:
//
//	github.com/lukengu-deimos/background-job/pkg/queue     - Registry, parameter codec, envelope, driver interfaces
//	github.com/lukengu-deimos/background-job/pkg/dispatch  - Launcher-side dispatcher and retry controller
//	github.com/lukengu-deimos/background-job/pkg/worker    - Worker-side entry point (decode, materialize, enqueue)
//	github.com/lukengu-deimos/background-job/pkg/spawn     - Detached process spawning per platform
//	github.com/lukengu-deimos/background-job/pkg/driver    - Queue drivers (redis, sqs, database)
//	github.com/lukengu-deimos/background-job/pkg/statuslog - Append-only status/error channels
//	github.com/lukengu-deimos/background-job/pkg/schedule  - Cron-driven dispatch with distributed locking
//
// Example Usage:
//
//	package main
//
//	import (
//		"github.com/lukengu-deimos/background-job/pkg/dispatch"
//		"github.com/lukengu-deimos/background-job/pkg/queue"
//		"github.com/lukengu-deimos/background-job/pkg/root"
//
//		_ "github.com/lukengu-deimos/background-job/pkg/console"
//	)
//
//	func main() {
//		queue.Register(`App\Jobs\SendNotification`, "handle", func(args ...any) (queue.Queueable, error) {
//			return queue.NewEnvelope(`App\Jobs\SendNotification`, "handle", args), nil
//		})
//
//		// Fire and forget: runs in a detached worker process.
//		dispatch.Submit(`App\Jobs\SendNotification`, "handle", []any{"welcome", 42}, 0, 0)
//
//		root.Execute()
//	}
package backgroundjob
