package codex

import (
	"encoding/json"
	"fmt"
)

// Usage describes the tokens consumed during a turn.
type Usage struct {
	InputTokens       int `json:"input_tokens"`
	CachedInputTokens int `json:"cached_input_tokens"`
	OutputTokens      int `json:"output_tokens"`
}

// ThreadError is the error payload carried by failure events.
type ThreadError struct {
	Message string `json:"message"`
}

// ThreadEvent is one event decoded from the CLI's JSONL stdout stream.
// The set of variants is closed; consumers dispatch with a type switch.
type ThreadEvent interface {
	threadEvent()
}

// ThreadStartedEvent is the first event of a new thread. Its ThreadID can
// be used to resume the thread later.
type ThreadStartedEvent struct {
	ThreadID string `json:"thread_id"`
}

// TurnStartedEvent fires when the agent starts processing a prompt.
type TurnStartedEvent struct{}

// TurnCompletedEvent fires when a turn completes, carrying token usage.
type TurnCompletedEvent struct {
	Usage Usage `json:"usage"`
}

// TurnFailedEvent indicates the turn failed with an error.
type TurnFailedEvent struct {
	Error ThreadError `json:"error"`
}

// ItemStartedEvent fires when a new item is added to the thread,
// typically still in progress.
type ItemStartedEvent struct {
	Item ThreadItem
}

// ItemUpdatedEvent fires when an in-progress item changes.
type ItemUpdatedEvent struct {
	Item ThreadItem
}

// ItemCompletedEvent fires when an item reaches a terminal state.
type ItemCompletedEvent struct {
	Item ThreadItem
}

// ThreadErrorEvent is an unrecoverable error emitted directly by the
// event stream.
type ThreadErrorEvent struct {
	Message string `json:"message"`
}

func (ThreadStartedEvent) threadEvent() {}
func (TurnStartedEvent) threadEvent()   {}
func (TurnCompletedEvent) threadEvent() {}
func (TurnFailedEvent) threadEvent()    {}
func (ItemStartedEvent) threadEvent()   {}
func (ItemUpdatedEvent) threadEvent()   {}
func (ItemCompletedEvent) threadEvent() {}
func (ThreadErrorEvent) threadEvent()   {}

// ParseThreadEvent decodes one stdout line into a typed event. Any line
// that is not a valid event is a hard failure, surfaced as a
// ProtocolError carrying the offending line.
func ParseThreadEvent(line []byte) (ThreadEvent, error) {
	var envelope struct {
		Type string          `json:"type"`
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(line, &envelope); err != nil {
		return nil, &ProtocolError{Message: "failed to parse event", Line: string(line), Cause: err}
	}

	switch envelope.Type {
	case "thread.started":
		var ev ThreadStartedEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			return nil, &ProtocolError{Message: "failed to parse thread.started event", Line: string(line), Cause: err}
		}
		return ev, nil

	case "turn.started":
		return TurnStartedEvent{}, nil

	case "turn.completed":
		var ev TurnCompletedEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			return nil, &ProtocolError{Message: "failed to parse turn.completed event", Line: string(line), Cause: err}
		}
		return ev, nil

	case "turn.failed":
		var ev TurnFailedEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			return nil, &ProtocolError{Message: "failed to parse turn.failed event", Line: string(line), Cause: err}
		}
		return ev, nil

	case "item.started", "item.updated", "item.completed":
		item, err := parseThreadItem(envelope.Item)
		if err != nil {
			return nil, &ProtocolError{Message: "failed to parse thread item", Line: string(line), Cause: err}
		}
		switch envelope.Type {
		case "item.started":
			return ItemStartedEvent{Item: item}, nil
		case "item.updated":
			return ItemUpdatedEvent{Item: item}, nil
		default:
			return ItemCompletedEvent{Item: item}, nil
		}

	case "error":
		var ev ThreadErrorEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			return nil, &ProtocolError{Message: "failed to parse error event", Line: string(line), Cause: err}
		}
		return ev, nil

	default:
		return nil, &ProtocolError{
			Message: fmt.Sprintf("unknown event type %q", envelope.Type),
			Line:    string(line),
		}
	}
}
