//go:build windows

// Package procattr configures subprocesses so the whole process tree can
// be signalled together, and so children do not outlive the SDK.
package procattr

import "os/exec"

// Set is a no-op on Windows; process-group signalling is unavailable and
// termination falls back to killing the direct child.
func Set(cmd *exec.Cmd) {}
