// Package codex drives the Codex CLI as a subprocess and exposes its
// JSONL event stream as typed conversation abstractions.
//
// A Codex client starts or resumes a Thread, and each Thread runs Turns:
//
//	client, err := codex.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	thread := client.StartThread(codex.WithSandboxMode(codex.SandboxModeWorkspaceWrite))
//	turn, err := thread.Run(ctx, codex.Prompt("Summarize this repo"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(turn.FinalResponse)
//
// Each Run spawns one `codex exec --experimental-json` process, writes the
// prompt to its stdin, and decodes the newline-delimited JSON events from
// its stdout. RunStreamed exposes the decoded events as they arrive; Run
// reduces them to a completed Turn. The first thread.started event fixes
// the thread id, and later turns pass it back via `resume <id>` so the CLI
// continues the same session.
//
// Cancellation is cooperative through the context passed to Run or
// RunStreamed: the CLI process is terminated gracefully, escalating to a
// kill if it does not exit within the grace period. The same escalation
// runs when a caller abandons an EventStream early via Close.
package codex
