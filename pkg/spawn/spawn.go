// Package spawn launches detached, fire-and-forget worker processes. The
// platform-specific detach mechanics live behind the Spawner interface with
// one implementation per OS family.
package spawn

import "errors"

// Spawner starts a process that outlives its parent. It returns as soon as
// the process has been started; there is no handle for awaiting completion.
type Spawner interface {
	Spawn(argv []string) error
}

// ErrEmptyArgv is returned when the argument vector has no executable.
var ErrEmptyArgv = errors.New("spawn: empty argument vector")

// New returns the Spawner for the current platform.
func New() Spawner {
	return platformSpawner{}
}
