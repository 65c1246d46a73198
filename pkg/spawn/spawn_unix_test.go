//go:build !windows

package spawn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpawn_ReturnsImmediately(t *testing.T) {
	s := New()

	// sleep outlives the assertion; Spawn must not wait for it.
	err := s.Spawn([]string{"/bin/sh", "-c", "sleep 5"})
	assert.NoError(t, err)
}

func TestSpawn_MissingExecutable(t *testing.T) {
	s := New()

	err := s.Spawn([]string{"/nonexistent/worker-binary"})
	assert.Error(t, err)
}

func TestSpawn_EmptyArgv(t *testing.T) {
	s := New()

	err := s.Spawn(nil)
	assert.ErrorIs(t, err, ErrEmptyArgv)
}
