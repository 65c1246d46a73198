package dispatch

// ValidationError reports a class/method pair rejected by the registry.
// Terminal in principle, but the dispatcher routes it through the same retry
// path as transient failures (see Dispatch).
type ValidationError struct {
	Class  string
	Method string
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// SpawnError reports a failed attempt to launch the worker process. Always
// considered transient and worth retrying.
type SpawnError struct {
	Cause error
}

func (e *SpawnError) Error() string { return "dispatch: spawn worker: " + e.Cause.Error() }

func (e *SpawnError) Unwrap() error { return e.Cause }
