//go:build !linux && !windows

// Package procattr configures subprocesses so the whole process tree can
// be signalled together, and so children do not outlive the SDK.
package procattr

import (
	"os/exec"
	"syscall"
)

// Set places the child in its own process group. Pdeathsig is Linux-only;
// on other Unix systems cleanup relies on the parent signalling the group.
func Set(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}
}
