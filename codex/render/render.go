// Package render provides ANSI-colored terminal rendering for thread
// event streams.
package render

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/bazelment/codex-sdk-go/codex"
)

// ANSI color codes - chosen to work on both light and dark backgrounds
const (
	ColorReset  = "\x1b[0m"
	ColorDim    = "\x1b[2m"
	ColorItalic = "\x1b[3m"
	ColorBold   = "\x1b[1m"
	ColorRed    = "\x1b[31m"
	ColorGreen  = "\x1b[32m"
	ColorCyan   = "\x1b[36m"
	ColorGray   = "\x1b[90m"
)

// Renderer prints thread events with ANSI colors.
type Renderer struct {
	out     io.Writer
	mu      sync.Mutex
	verbose bool
	noColor bool
}

// NewRenderer creates a renderer writing to the given output.
// If verbose is true, command executions are shown as they complete.
// If noColor is true, ANSI color codes are suppressed; colors are also
// suppressed automatically when the output is not a terminal.
func NewRenderer(out io.Writer, verbose, noColor bool) *Renderer {
	if !noColor {
		noColor = !isTerminal(out)
	}
	return &Renderer{
		out:     out,
		verbose: verbose,
		noColor: noColor,
	}
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// color returns the color code if colors are enabled, empty string otherwise.
func (r *Renderer) color(c string) string {
	if r.noColor {
		return ""
	}
	return c
}

// Event renders one thread event. Unknown event kinds are ignored.
func (r *Renderer) Event(event codex.ThreadEvent) {
	switch e := event.(type) {
	case codex.ThreadStartedEvent:
		r.threadInfo(e.ThreadID)
	case codex.ItemCompletedEvent:
		r.item(e.Item)
	case codex.TurnCompletedEvent:
		r.turnComplete(e.Usage)
	case codex.TurnFailedEvent:
		r.failure(e.Error.Message)
	case codex.ThreadErrorEvent:
		r.failure(e.Message)
	}
}

func (r *Renderer) threadInfo(threadID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if threadID != "" {
		fmt.Fprintf(r.out, "%s[thread=%s]%s\n", r.color(ColorGray), threadID, r.color(ColorReset))
	}
}

func (r *Renderer) item(item codex.ThreadItem) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch it := item.(type) {
	case codex.AgentMessageItem:
		fmt.Fprintln(r.out, it.Text)

	case codex.ReasoningItem:
		if r.verbose {
			fmt.Fprintf(r.out, "%s%s%s%s\n", r.color(ColorDim), r.color(ColorItalic), it.Text, r.color(ColorReset))
		}

	case codex.CommandExecutionItem:
		if !r.verbose {
			return
		}
		exitCode := 0
		if it.ExitCode != nil {
			exitCode = *it.ExitCode
		}
		if it.Status == codex.CommandExecutionCompleted && exitCode == 0 {
			fmt.Fprintf(r.out, "%s[%s]%s %s✓%s\n",
				r.color(ColorCyan), truncate(it.Command, 60), r.color(ColorReset),
				r.color(ColorGreen), r.color(ColorReset))
		} else {
			fmt.Fprintf(r.out, "%s[%s]%s %s✗ exit %d%s\n",
				r.color(ColorCyan), truncate(it.Command, 60), r.color(ColorReset),
				r.color(ColorRed), exitCode, r.color(ColorReset))
		}

	case codex.FileChangeItem:
		if !r.verbose {
			return
		}
		for _, change := range it.Changes {
			fmt.Fprintf(r.out, "%s[%s %s]%s\n",
				r.color(ColorCyan), change.Kind, change.Path, r.color(ColorReset))
		}

	case codex.WebSearchItem:
		if r.verbose {
			fmt.Fprintf(r.out, "%s[search: %s]%s\n",
				r.color(ColorCyan), truncate(it.Query, 60), r.color(ColorReset))
		}

	case codex.ErrorItem:
		fmt.Fprintf(r.out, "%s[error]%s %s\n", r.color(ColorRed), r.color(ColorReset), it.Message)
	}
}

func (r *Renderer) turnComplete(usage codex.Usage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "%s✓ Turn complete (%d input / %d output tokens)%s\n",
		r.color(ColorGreen), usage.InputTokens, usage.OutputTokens, r.color(ColorReset))
}

func (r *Renderer) failure(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "%s✗ %s%s\n", r.color(ColorRed), message, r.color(ColorReset))
}

// truncate truncates a string to the given max length.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
