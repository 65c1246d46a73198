//go:build !windows

package spawn

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

type platformSpawner struct{}

// Spawn starts the child in its own session so it keeps running after the
// parent exits. Stdio is wired to the null device; nothing ties the child
// back to the caller's descriptors.
func (platformSpawner) Spawn(argv []string) error {
	if len(argv) == 0 {
		return ErrEmptyArgv
	}

	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("spawn: open %s: %w", os.DevNull, err)
	}
	defer devNull.Close()

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = devNull
	cmd.Stdout = devNull
	cmd.Stderr = devNull
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn: start %s: %w", argv[0], err)
	}
	return cmd.Process.Release()
}
