package codex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bazelment/codex-sdk-go/internal/ndjson"
	"github.com/bazelment/codex-sdk-go/internal/procattr"
)

const (
	// internalOriginatorEnv tells the CLI which client spawned it. A
	// caller-supplied value is never overridden.
	internalOriginatorEnv = "CODEX_INTERNAL_ORIGINATOR_OVERRIDE"
	sdkOriginator         = "codex_sdk_go"

	baseURLEnv = "OPENAI_BASE_URL"
	apiKeyEnv  = "CODEX_API_KEY"

	// terminateGracePeriod is how long a signalled process gets to exit
	// before it is force-killed.
	terminateGracePeriod = 5 * time.Second
)

// execArgs describes one `codex exec` invocation.
type execArgs struct {
	input                 string
	baseURL               string
	apiKey                string
	threadID              string
	images                []string
	model                 string
	sandboxMode           SandboxMode
	workingDirectory      string
	additionalDirectories []string
	skipGitRepoCheck      bool
	outputSchemaFile      string
	reasoningEffort       ModelReasoningEffort
	networkAccess         *bool
	webSearchMode         WebSearchMode
	webSearch             *bool
	approvalPolicy        ApprovalMode
}

// lineRunner runs one CLI invocation and streams its stdout lines.
// Satisfied by execRunner; tests substitute a fake.
type lineRunner interface {
	run(ctx context.Context, args execArgs) (*lineStream, error)
}

// execRunner spawns and manages the Codex CLI process.
type execRunner struct {
	executablePath  string
	envOverride     map[string]string
	configOverrides map[string]any
	originator      string
}

func newExecRunner(cfg ClientConfig) (*execRunner, error) {
	path := cfg.CodexPath
	if path == "" {
		resolved, err := findCodexPath()
		if err != nil {
			return nil, err
		}
		path = resolved
	}

	originator := cfg.Originator
	if originator == "" {
		originator = sdkOriginator
	}

	return &execRunner{
		executablePath:  path,
		envOverride:     cfg.Env,
		configOverrides: cfg.Config,
		originator:      originator,
	}, nil
}

// buildArgs constructs the CLI argument vector. The flag order is a
// compatibility contract with the CLI's argument parser.
func (e *execRunner) buildArgs(args execArgs) ([]string, error) {
	cmdArgs := []string{"exec", "--experimental-json"}

	if e.configOverrides != nil {
		overrides, err := flattenConfigOverrides(e.configOverrides)
		if err != nil {
			return nil, err
		}
		for _, override := range overrides {
			cmdArgs = append(cmdArgs, "--config", override)
		}
	}

	if args.model != "" {
		cmdArgs = append(cmdArgs, "--model", args.model)
	}

	if args.sandboxMode != "" {
		cmdArgs = append(cmdArgs, "--sandbox", string(args.sandboxMode))
	}

	if args.workingDirectory != "" {
		cmdArgs = append(cmdArgs, "--cd", args.workingDirectory)
	}

	for _, dir := range args.additionalDirectories {
		cmdArgs = append(cmdArgs, "--add-dir", dir)
	}

	if args.skipGitRepoCheck {
		cmdArgs = append(cmdArgs, "--skip-git-repo-check")
	}

	if args.outputSchemaFile != "" {
		cmdArgs = append(cmdArgs, "--output-schema", args.outputSchemaFile)
	}

	if args.reasoningEffort != "" {
		cmdArgs = append(cmdArgs, "--config", fmt.Sprintf(`model_reasoning_effort="%s"`, args.reasoningEffort))
	}

	if args.networkAccess != nil {
		value := "false"
		if *args.networkAccess {
			value = "true"
		}
		cmdArgs = append(cmdArgs, "--config", "sandbox_workspace_write.network_access="+value)
	}

	// An explicit mode always wins over the deprecated boolean.
	switch {
	case args.webSearchMode != "":
		cmdArgs = append(cmdArgs, "--config", fmt.Sprintf(`web_search="%s"`, args.webSearchMode))
	case args.webSearch != nil && *args.webSearch:
		cmdArgs = append(cmdArgs, "--config", `web_search="live"`)
	case args.webSearch != nil:
		cmdArgs = append(cmdArgs, "--config", `web_search="disabled"`)
	}

	if args.approvalPolicy != "" {
		cmdArgs = append(cmdArgs, "--config", fmt.Sprintf(`approval_policy="%s"`, args.approvalPolicy))
	}

	for _, image := range args.images {
		cmdArgs = append(cmdArgs, "--image", image)
	}

	if args.threadID != "" {
		cmdArgs = append(cmdArgs, "resume", args.threadID)
	}

	return cmdArgs, nil
}

// buildEnv constructs the subprocess environment. An explicit override
// replaces the ambient environment wholesale; otherwise the ambient
// environment is copied. The originator marker is defaulted but never
// overridden, and base-URL/API-key settings override inherited values.
func (e *execRunner) buildEnv(args execArgs) []string {
	env := make(map[string]string)

	if e.envOverride != nil {
		for k, v := range e.envOverride {
			env[k] = v
		}
	} else {
		for _, kv := range os.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok {
				env[k] = v
			}
		}
	}

	if _, ok := env[internalOriginatorEnv]; !ok {
		env[internalOriginatorEnv] = e.originator
	}

	if args.baseURL != "" {
		env[baseURLEnv] = args.baseURL
	}

	if args.apiKey != "" {
		env[apiKeyEnv] = args.apiKey
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(env))
	for _, k := range keys {
		out = append(out, k+"="+env[k])
	}
	return out
}

// run spawns the CLI process, writes the prompt to its stdin, and
// returns a lineStream of its stdout lines. The stream owns the process:
// it is reaped (with termination escalation if needed) on every exit
// path, including early abandonment via Close.
func (e *execRunner) run(ctx context.Context, args execArgs) (*lineStream, error) {
	cmdArgs, err := e.buildArgs(args)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(e.executablePath, cmdArgs...)
	cmd.Env = e.buildEnv(args)
	procattr.Set(cmd)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &ProcessError{Message: "failed to create stdin pipe", Cause: err}
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &ProcessError{Message: "failed to create stdout pipe", Cause: err}
	}

	// Stderr goes straight into a buffer; os/exec drains the pipe on its
	// own goroutine, so neither pipe can starve the other. The buffer is
	// only read after the process is reaped.
	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, &CLINotFoundError{Path: e.executablePath, Cause: err}
		}
		return nil, &ProcessError{Message: "failed to start codex", Cause: err}
	}

	s := &lineStream{
		lines:    make(chan string),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	go s.pump(ctx, cmd, args.input, stdin, stdout, &stderrBuf)
	return s, nil
}

// lineStream delivers framed stdout lines from one CLI invocation.
// Callers must drain Lines until it closes or call Close to abandon the
// stream; afterwards Err reports the terminal status.
type lineStream struct {
	lines     chan string
	done      chan struct{}
	finished  chan struct{}
	closeOnce sync.Once
	err       error
}

// Lines returns the channel of framed stdout lines. It is closed once
// the stream reaches a terminal state.
func (s *lineStream) Lines() <-chan string {
	return s.lines
}

// Err reports the terminal status of the stream. It blocks until the
// process has been reaped.
func (s *lineStream) Err() error {
	<-s.finished
	return s.err
}

// Close abandons the stream. The process is terminated via the usual
// escalation and Close returns once it has been reaped.
func (s *lineStream) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	<-s.finished
	return s.err
}

// pump writes stdin, frames stdout into lines, and reaps the process.
// It is the only goroutine that touches the pipes.
func (s *lineStream) pump(ctx context.Context, cmd *exec.Cmd, input string, stdin io.WriteCloser, stdout io.ReadCloser, stderrBuf *bytes.Buffer) {
	defer close(s.finished)

	// Unblock a read stuck on a silent process: cancellation or
	// abandonment terminates the process, which closes its stdout.
	go func() {
		select {
		case <-ctx.Done():
		case <-s.done:
		case <-s.finished:
			return
		}
		_ = procattr.Terminate(cmd.Process)
	}()

	// A write failure here means the process died early; the exit status
	// below is the authoritative error.
	_, _ = io.WriteString(stdin, input)
	_ = stdin.Close()

	reader := ndjson.NewReader(stdout)
	var (
		cancelled bool
		abandoned bool
		readErr   error
		sawEOF    bool
	)

read:
	for {
		// Cancellation is polled before each read: a cancel that lands
		// mid-read takes effect before the next one.
		select {
		case <-ctx.Done():
			cancelled = true
			break read
		case <-s.done:
			abandoned = true
			break read
		default:
		}

		line, err := reader.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				sawEOF = true
			} else {
				readErr = err
			}
			break read
		}

		select {
		case s.lines <- string(line):
		case <-ctx.Done():
			cancelled = true
			break read
		case <-s.done:
			abandoned = true
			break read
		}
	}

	// An EOF forced by the watchdog still counts as cancellation.
	if !cancelled && !abandoned {
		select {
		case <-ctx.Done():
			cancelled = true
		case <-s.done:
			abandoned = true
		default:
		}
	}

	waitErr := reap(cmd, sawEOF && !cancelled && !abandoned)

	switch {
	case cancelled:
		s.err = ctx.Err()
	case abandoned:
		s.err = nil
	case readErr != nil:
		s.err = &ProcessError{Message: "failed to read codex stdout", Cause: readErr}
	case waitErr != nil:
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			s.err = &ProcessError{
				Message:  "codex exec failed",
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderrBuf.String(),
				Cause:    waitErr,
			}
		} else {
			s.err = &ProcessError{Message: "failed to wait for codex", Cause: waitErr}
		}
	}

	close(s.lines)
}

// reap waits for the process to exit. When the stream was interrupted
// before stdout EOF, the process may still be running: request graceful
// termination, allow the grace period, then force-kill.
func reap(cmd *exec.Cmd, exitExpected bool) error {
	exited := make(chan error, 1)
	go func() {
		exited <- cmd.Wait()
	}()

	if exitExpected {
		// Stdout reached EOF, so the process is finishing on its own.
		return <-exited
	}

	_ = procattr.Terminate(cmd.Process)
	select {
	case err := <-exited:
		return err
	case <-time.After(terminateGracePeriod):
		slog.Warn("codex did not exit after terminate, killing process group", "pid", cmd.Process.Pid)
	}

	_ = procattr.Kill(cmd.Process)
	return <-exited
}
