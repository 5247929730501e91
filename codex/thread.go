package codex

import (
	"context"
	"strings"
	"sync"
)

// Input is the user input for one turn: either a plain Prompt or a
// Parts sequence of text and image inputs.
type Input interface {
	isInput()
}

// Prompt is a plain text prompt.
type Prompt string

func (Prompt) isInput() {}

// Parts is a structured input combining text and local images in order.
type Parts []UserInput

func (Parts) isInput() {}

// UserInput is a single part of a structured input.
type UserInput interface {
	isUserInput()
}

// TextInput contributes prompt text. Multiple text parts are joined with
// a blank line.
type TextInput struct {
	Text string
}

func (TextInput) isUserInput() {}

// LocalImageInput attaches a local image by file path.
type LocalImageInput struct {
	Path string
}

func (LocalImageInput) isUserInput() {}

// normalizeInput reduces an Input to the prompt text and the ordered
// list of image paths.
func normalizeInput(input Input) (string, []string) {
	switch in := input.(type) {
	case Prompt:
		return string(in), nil
	case Parts:
		var texts []string
		var images []string
		for _, part := range in {
			switch p := part.(type) {
			case TextInput:
				texts = append(texts, p.Text)
			case LocalImageInput:
				images = append(images, p.Path)
			}
		}
		return strings.Join(texts, "\n\n"), images
	default:
		return "", nil
	}
}

// Turn is the reduced result of one completed turn.
type Turn struct {
	// Items holds every completed item, in completion order.
	Items []ThreadItem
	// FinalResponse is the text of the last completed agent message.
	FinalResponse string
	// Usage is nil when the stream ended without a turn.completed event.
	Usage *Usage
}

// Thread is a conversation with the agent. One thread can run multiple
// consecutive turns; the CLI resumes the same session via the thread id
// captured from the first turn.
//
// Threads are created with Codex.StartThread or Codex.ResumeThread.
type Thread struct {
	runner       lineRunner
	clientConfig ClientConfig
	config       ThreadConfig

	mu sync.RWMutex
	id string
}

// ID returns the thread id, or "" until the first turn has started.
// Once set it never changes for the life of the Thread.
func (t *Thread) ID() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.id
}

func (t *Thread) captureID(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.id == "" {
		t.id = id
	}
}

// EventStream delivers the typed events of one streaming turn. Callers
// must drain Events until it closes or call Close to abandon the turn;
// Err then reports the terminal status.
type EventStream struct {
	thread    *Thread
	events    chan ThreadEvent
	done      chan struct{}
	finished  chan struct{}
	closeOnce sync.Once
	err       error
}

// ThreadID returns the thread id once a thread.started event has been
// observed, or "" before that.
func (s *EventStream) ThreadID() string {
	return s.thread.ID()
}

// Events returns the channel of decoded events, closed when the turn's
// stream ends.
func (s *EventStream) Events() <-chan ThreadEvent {
	return s.events
}

// Err reports the terminal status of the stream. It blocks until the
// underlying process has been cleaned up.
func (s *EventStream) Err() error {
	<-s.finished
	return s.err
}

// Close abandons the stream. The CLI process is terminated and the
// schema temp file removed before Close returns.
func (s *EventStream) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	<-s.finished
	return s.err
}

// RunStreamed sends the input to the agent and streams events as they
// are produced during the turn.
func (t *Thread) RunStreamed(ctx context.Context, input Input, opts ...TurnOption) (*EventStream, error) {
	cfg := TurnConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	schemaFile, err := createOutputSchemaFile(cfg.OutputSchema)
	if err != nil {
		return nil, err
	}

	prompt, images := normalizeInput(input)

	args := execArgs{
		input:                 prompt,
		baseURL:               t.clientConfig.BaseURL,
		apiKey:                t.clientConfig.APIKey,
		threadID:              t.ID(),
		images:                images,
		model:                 t.config.Model,
		sandboxMode:           t.config.SandboxMode,
		workingDirectory:      t.config.WorkingDirectory,
		additionalDirectories: t.config.AdditionalDirectories,
		skipGitRepoCheck:      t.config.SkipGitRepoCheck,
		outputSchemaFile:      schemaFile.path,
		reasoningEffort:       t.config.ReasoningEffort,
		networkAccess:         t.config.NetworkAccess,
		webSearchMode:         t.config.WebSearchMode,
		webSearch:             t.config.WebSearch,
		approvalPolicy:        t.config.ApprovalPolicy,
	}

	lines, err := t.runner.run(ctx, args)
	if err != nil {
		schemaFile.cleanup()
		return nil, err
	}

	stream := &EventStream{
		thread:   t,
		events:   make(chan ThreadEvent),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	go t.pumpEvents(stream, lines, schemaFile)
	return stream, nil
}

// pumpEvents decodes stdout lines into events, capturing the thread id
// from the first thread.started event. Cleanup of the line stream and
// the schema file is guaranteed on every exit path.
func (t *Thread) pumpEvents(stream *EventStream, lines *lineStream, schemaFile *outputSchemaFile) {
	defer close(stream.finished)
	defer schemaFile.cleanup()
	defer lines.Close()

	for {
		var (
			line string
			ok   bool
		)
		select {
		case line, ok = <-lines.Lines():
		case <-stream.done:
			close(stream.events)
			return
		}
		if !ok {
			stream.err = lines.Err()
			close(stream.events)
			return
		}

		event, err := ParseThreadEvent([]byte(line))
		if err != nil {
			stream.err = err
			close(stream.events)
			return
		}

		if started, isStart := event.(ThreadStartedEvent); isStart {
			t.captureID(started.ThreadID)
		}

		select {
		case stream.events <- event:
		case <-stream.done:
			close(stream.events)
			return
		}
	}
}

// Run sends the input to the agent and reduces the event stream to a
// completed Turn.
func (t *Thread) Run(ctx context.Context, input Input, opts ...TurnOption) (*Turn, error) {
	stream, err := t.RunStreamed(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	turn := &Turn{}
	for event := range stream.Events() {
		switch e := event.(type) {
		case ItemCompletedEvent:
			if msg, isMsg := e.Item.(AgentMessageItem); isMsg {
				// The last completed agent message wins.
				turn.FinalResponse = msg.Text
			}
			turn.Items = append(turn.Items, e.Item)

		case TurnCompletedEvent:
			usage := e.Usage
			turn.Usage = &usage

		case TurnFailedEvent:
			// Stop consuming immediately; the deferred Close terminates
			// the underlying process without draining remaining output.
			message := e.Error.Message
			if message == "" {
				message = "turn failed"
			}
			return nil, &TurnError{Message: message}
		}
	}

	if err := stream.Err(); err != nil {
		return nil, err
	}
	return turn, nil
}
