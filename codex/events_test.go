package codex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseThreadEvent(t *testing.T) {
	tests := []struct {
		name string
		line string
		want ThreadEvent
	}{
		{
			name: "thread started",
			line: `{"type":"thread.started","thread_id":"t_123"}`,
			want: ThreadStartedEvent{ThreadID: "t_123"},
		},
		{
			name: "turn started",
			line: `{"type":"turn.started"}`,
			want: TurnStartedEvent{},
		},
		{
			name: "turn completed",
			line: `{"type":"turn.completed","usage":{"input_tokens":10,"cached_input_tokens":3,"output_tokens":7}}`,
			want: TurnCompletedEvent{Usage: Usage{InputTokens: 10, CachedInputTokens: 3, OutputTokens: 7}},
		},
		{
			name: "turn failed",
			line: `{"type":"turn.failed","error":{"message":"rate limited"}}`,
			want: TurnFailedEvent{Error: ThreadError{Message: "rate limited"}},
		},
		{
			name: "item started with command execution",
			line: `{"type":"item.started","item":{"type":"command_execution","id":"item_0","command":"ls","aggregated_output":"","status":"in_progress"}}`,
			want: ItemStartedEvent{Item: CommandExecutionItem{
				ID:      "item_0",
				Command: "ls",
				Status:  CommandExecutionInProgress,
			}},
		},
		{
			name: "item completed with agent message",
			line: `{"type":"item.completed","item":{"type":"agent_message","id":"item_1","text":"done"}}`,
			want: ItemCompletedEvent{Item: AgentMessageItem{ID: "item_1", Text: "done"}},
		},
		{
			name: "item updated with todo list",
			line: `{"type":"item.updated","item":{"type":"todo_list","id":"item_2","items":[{"text":"first","completed":true}]}}`,
			want: ItemUpdatedEvent{Item: TodoListItem{
				ID:    "item_2",
				Items: []TodoItem{{Text: "first", Completed: true}},
			}},
		},
		{
			name: "stream error",
			line: `{"type":"error","message":"stream disconnected"}`,
			want: ThreadErrorEvent{Message: "stream disconnected"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseThreadEvent([]byte(tt.line))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseThreadEventInvalid(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "not json", line: `hello world`},
		{name: "unknown event type", line: `{"type":"thread.exploded"}`},
		{name: "unknown item type", line: `{"type":"item.completed","item":{"type":"hologram","id":"x"}}`},
		{name: "item event without item", line: `{"type":"item.completed"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseThreadEvent([]byte(tt.line))
			require.Error(t, err)
			var protoErr *ProtocolError
			require.ErrorAs(t, err, &protoErr)
			assert.Equal(t, tt.line, protoErr.Line)
		})
	}
}

func TestParseThreadItemVariants(t *testing.T) {
	exitCode := 0
	tests := []struct {
		name string
		raw  string
		want ThreadItem
	}{
		{
			name: "reasoning",
			raw:  `{"type":"reasoning","id":"r1","text":"thinking"}`,
			want: ReasoningItem{ID: "r1", Text: "thinking"},
		},
		{
			name: "command execution with exit code",
			raw:  `{"type":"command_execution","id":"c1","command":"echo hi","aggregated_output":"hi\n","status":"completed","exit_code":0}`,
			want: CommandExecutionItem{
				ID:               "c1",
				Command:          "echo hi",
				AggregatedOutput: "hi\n",
				Status:           CommandExecutionCompleted,
				ExitCode:         &exitCode,
			},
		},
		{
			name: "file change",
			raw:  `{"type":"file_change","id":"f1","status":"completed","changes":[{"path":"main.go","kind":"update"}]}`,
			want: FileChangeItem{
				ID:      "f1",
				Status:  PatchApplyCompleted,
				Changes: []FileUpdateChange{{Path: "main.go", Kind: PatchChangeUpdate}},
			},
		},
		{
			name: "mcp tool call failure",
			raw:  `{"type":"mcp_tool_call","id":"m1","server":"files","tool":"read","status":"failed","error":{"message":"no such file"}}`,
			want: McpToolCallItem{
				ID:     "m1",
				Server: "files",
				Tool:   "read",
				Status: McpToolCallFailed,
				Error:  &McpToolError{Message: "no such file"},
			},
		},
		{
			name: "web search",
			raw:  `{"type":"web_search","id":"w1","query":"go json streaming"}`,
			want: WebSearchItem{ID: "w1", Query: "go json streaming"},
		},
		{
			name: "error item",
			raw:  `{"type":"error","id":"e1","message":"tool crashed"}`,
			want: ErrorItem{ID: "e1", Message: "tool crashed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseThreadItem([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.ItemID(), got.ItemID())
		})
	}
}
