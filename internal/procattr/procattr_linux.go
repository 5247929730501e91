//go:build linux

// Package procattr configures subprocesses so the whole process tree can
// be signalled together, and so children do not outlive the SDK.
package procattr

import (
	"os/exec"
	"syscall"
)

// Set places the child in its own process group and arranges for it to
// receive SIGTERM if this process dies first (Pdeathsig), so a crashed
// caller cannot leak a running CLI.
func Set(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: syscall.SIGTERM,
	}
}
