//go:build windows

package spawn

import (
	"fmt"
	"os/exec"
	"syscall"
)

// DETACHED_PROCESS is not exported by the syscall package.
const detachedProcess = 0x00000008

type platformSpawner struct{}

// Spawn starts the child detached from the parent's console and process
// group, the "start"-style launch. The child keeps running after the parent
// exits and inherits no console handles.
func (platformSpawner) Spawn(argv []string) error {
	if len(argv) == 0 {
		return ErrEmptyArgv
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: detachedProcess | syscall.CREATE_NEW_PROCESS_GROUP,
		HideWindow:    true,
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn: start %s: %w", argv[0], err)
	}
	return cmd.Process.Release()
}
