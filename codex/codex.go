package codex

// Codex is a client for the Codex CLI. The zero value is not usable;
// construct one with New.
type Codex struct {
	runner *execRunner
	config ClientConfig
}

// New creates a client. Options configure the CLI binary location,
// authentication, and config overrides shared by every thread.
func New(opts ...Option) (*Codex, error) {
	cfg := ClientConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	runner, err := newExecRunner(cfg)
	if err != nil {
		return nil, err
	}
	return &Codex{runner: runner, config: cfg}, nil
}

// StartThread begins a new conversation. The thread id is assigned by
// the CLI when the first turn runs.
func (c *Codex) StartThread(opts ...ThreadOption) *Thread {
	return c.newThread("", opts)
}

// ResumeThread continues a previously started conversation by id.
func (c *Codex) ResumeThread(id string, opts ...ThreadOption) *Thread {
	return c.newThread(id, opts)
}

func (c *Codex) newThread(id string, opts []ThreadOption) *Thread {
	cfg := ThreadConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Thread{
		runner:       c.runner,
		clientConfig: c.config,
		config:       cfg,
		id:           id,
	}
}
