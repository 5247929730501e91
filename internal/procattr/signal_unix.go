//go:build !windows

package procattr

import (
	"os"
	"syscall"
)

// Terminate requests graceful shutdown of the process and its whole
// group. The negative PID addresses the group set up by Set, covering any
// children the CLI spawned.
func Terminate(p *os.Process) error {
	return signalGroup(p, syscall.SIGTERM)
}

// Kill forcefully kills the process group.
func Kill(p *os.Process) error {
	return signalGroup(p, syscall.SIGKILL)
}

func signalGroup(p *os.Process, sig syscall.Signal) error {
	if p == nil {
		return nil
	}
	return syscall.Kill(-p.Pid, sig)
}
