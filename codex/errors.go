package codex

import (
	"errors"
	"fmt"
)

// InvalidConfigError reports a malformed configuration override value or
// key. It indicates a caller bug and is never retried.
type InvalidConfigError struct {
	Path    string
	Message string
}

func (e *InvalidConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid config override at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("invalid config override: %s", e.Message)
}

// UnsupportedPlatformError indicates no Codex build target exists for the
// host platform.
type UnsupportedPlatformError struct {
	OS   string
	Arch string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("unsupported platform: %s (%s)", e.OS, e.Arch)
}

// ProtocolError reports a stdout line that could not be decoded as a
// thread event. It terminates the stream and carries the offending line.
type ProtocolError struct {
	Cause   error
	Message string
	Line    string
}

func (e *ProtocolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("protocol error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("protocol error: %s", e.Message)
}

func (e *ProtocolError) Unwrap() error {
	return e.Cause
}

// ProcessError reports a CLI process failure, carrying the exit code and
// the stderr output captured while the process ran.
type ProcessError struct {
	Cause    error
	Message  string
	Stderr   string
	ExitCode int
}

func (e *ProcessError) Error() string {
	if e.ExitCode != 0 {
		return fmt.Sprintf("codex exec exited with code %d: %s", e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("process error: %s", e.Message)
}

func (e *ProcessError) Unwrap() error {
	return e.Cause
}

// TurnError reports an explicit turn.failed event from the agent.
type TurnError struct {
	Message string
}

func (e *TurnError) Error() string {
	return e.Message
}

// CLINotFoundError indicates the Codex CLI binary was not found.
type CLINotFoundError struct {
	Cause error
	Path  string
}

func (e *CLINotFoundError) Error() string {
	return fmt.Sprintf("codex binary not found at %q: %v", e.Path, e.Cause)
}

func (e *CLINotFoundError) Unwrap() error {
	return e.Cause
}

// IsRecoverable reports whether retrying the turn could plausibly help.
// Configuration, platform, and binary-resolution failures are caller bugs
// or environment problems and are not recoverable.
func IsRecoverable(err error) bool {
	if err == nil {
		return true
	}

	var cfgErr *InvalidConfigError
	if errors.As(err, &cfgErr) {
		return false
	}

	var platErr *UnsupportedPlatformError
	if errors.As(err, &platErr) {
		return false
	}

	var cliErr *CLINotFoundError
	if errors.As(err, &cliErr) {
		return false
	}

	return true
}
