package codex

import (
	"encoding/json"
	"fmt"
)

// CommandExecutionStatus is the status of a command execution.
type CommandExecutionStatus string

const (
	CommandExecutionInProgress CommandExecutionStatus = "in_progress"
	CommandExecutionCompleted  CommandExecutionStatus = "completed"
	CommandExecutionFailed     CommandExecutionStatus = "failed"
)

// PatchChangeKind indicates the type of a file change.
type PatchChangeKind string

const (
	PatchChangeAdd    PatchChangeKind = "add"
	PatchChangeDelete PatchChangeKind = "delete"
	PatchChangeUpdate PatchChangeKind = "update"
)

// PatchApplyStatus is the terminal status of a file change.
type PatchApplyStatus string

const (
	PatchApplyCompleted PatchApplyStatus = "completed"
	PatchApplyFailed    PatchApplyStatus = "failed"
)

// McpToolCallStatus is the status of an MCP tool call.
type McpToolCallStatus string

const (
	McpToolCallInProgress McpToolCallStatus = "in_progress"
	McpToolCallCompleted  McpToolCallStatus = "completed"
	McpToolCallFailed     McpToolCallStatus = "failed"
)

// ThreadItem is one unit of agent work. Items carry a stable identifier
// correlating the item.started/updated/completed events that describe
// the same piece of work.
type ThreadItem interface {
	// ItemID returns the item's stable identifier.
	ItemID() string
	threadItem()
}

// AgentMessageItem is a response from the agent: natural-language text,
// or JSON when structured output was requested.
type AgentMessageItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ReasoningItem is the agent's reasoning summary.
type ReasoningItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// CommandExecutionItem is a command executed by the agent.
type CommandExecutionItem struct {
	ID      string `json:"id"`
	Command string `json:"command"`
	// AggregatedOutput is stdout and stderr interleaved as captured while
	// the command ran.
	AggregatedOutput string                 `json:"aggregated_output"`
	Status           CommandExecutionStatus `json:"status"`
	// ExitCode is set once the command exits; nil while still running.
	ExitCode *int `json:"exit_code,omitempty"`
}

// FileUpdateChange is one file touched by a patch.
type FileUpdateChange struct {
	Path string          `json:"path"`
	Kind PatchChangeKind `json:"kind"`
}

// FileChangeItem is a patch applied by the agent, emitted once the patch
// succeeds or fails.
type FileChangeItem struct {
	ID      string             `json:"id"`
	Changes []FileUpdateChange `json:"changes"`
	Status  PatchApplyStatus   `json:"status"`
}

// McpContentBlock is one content block from an MCP tool result.
type McpContentBlock struct {
	Type     string `json:"type,omitempty"`
	Text     string `json:"text,omitempty"`
	Data     string `json:"data,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
}

// McpToolResult is the payload returned by an MCP server for a
// successful call.
type McpToolResult struct {
	Content           []McpContentBlock `json:"content"`
	StructuredContent any               `json:"structured_content"`
}

// McpToolError is the error reported for a failed MCP call.
type McpToolError struct {
	Message string `json:"message"`
}

// McpToolCallItem is a call to an MCP tool. It starts when the
// invocation is dispatched and completes when the server reports success
// or failure.
type McpToolCallItem struct {
	ID        string            `json:"id"`
	Server    string            `json:"server"`
	Tool      string            `json:"tool"`
	Arguments any               `json:"arguments"`
	Status    McpToolCallStatus `json:"status"`
	Result    *McpToolResult    `json:"result,omitempty"`
	Error     *McpToolError     `json:"error,omitempty"`
}

// WebSearchItem captures a web search request. It completes when results
// are returned to the agent.
type WebSearchItem struct {
	ID    string `json:"id"`
	Query string `json:"query"`
}

// TodoItem is one entry in the agent's to-do list.
type TodoItem struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// TodoListItem tracks the agent's running to-do list across a turn.
type TodoListItem struct {
	ID    string     `json:"id"`
	Items []TodoItem `json:"items"`
}

// ErrorItem describes a non-fatal error surfaced as an item.
type ErrorItem struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (i AgentMessageItem) ItemID() string     { return i.ID }
func (i ReasoningItem) ItemID() string        { return i.ID }
func (i CommandExecutionItem) ItemID() string { return i.ID }
func (i FileChangeItem) ItemID() string       { return i.ID }
func (i McpToolCallItem) ItemID() string      { return i.ID }
func (i WebSearchItem) ItemID() string        { return i.ID }
func (i TodoListItem) ItemID() string         { return i.ID }
func (i ErrorItem) ItemID() string            { return i.ID }

func (AgentMessageItem) threadItem()     {}
func (ReasoningItem) threadItem()        {}
func (CommandExecutionItem) threadItem() {}
func (FileChangeItem) threadItem()       {}
func (McpToolCallItem) threadItem()      {}
func (WebSearchItem) threadItem()        {}
func (TodoListItem) threadItem()         {}
func (ErrorItem) threadItem()            {}

// parseThreadItem decodes the item payload of an item.* event, keyed on
// its type discriminator.
func parseThreadItem(raw json.RawMessage) (ThreadItem, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("item event is missing its item payload")
	}

	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}

	switch envelope.Type {
	case "agent_message":
		var item AgentMessageItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, err
		}
		return item, nil

	case "reasoning":
		var item ReasoningItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, err
		}
		return item, nil

	case "command_execution":
		var item CommandExecutionItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, err
		}
		return item, nil

	case "file_change":
		var item FileChangeItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, err
		}
		return item, nil

	case "mcp_tool_call":
		var item McpToolCallItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, err
		}
		return item, nil

	case "web_search":
		var item WebSearchItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, err
		}
		return item, nil

	case "todo_list":
		var item TodoListItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, err
		}
		return item, nil

	case "error":
		var item ErrorItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, err
		}
		return item, nil

	default:
		return nil, fmt.Errorf("unknown item type %q", envelope.Type)
	}
}
