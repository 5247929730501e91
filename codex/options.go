package codex

// ApprovalMode is the CLI's approval policy for agent actions. The values
// are interpreted by the CLI itself; the SDK only forwards them.
type ApprovalMode string

const (
	ApprovalModeNever     ApprovalMode = "never"
	ApprovalModeOnRequest ApprovalMode = "on-request"
	ApprovalModeOnFailure ApprovalMode = "on-failure"
	ApprovalModeUntrusted ApprovalMode = "untrusted"
)

// SandboxMode controls which filesystem operations the agent may perform.
type SandboxMode string

const (
	SandboxModeReadOnly         SandboxMode = "read-only"
	SandboxModeWorkspaceWrite   SandboxMode = "workspace-write"
	SandboxModeDangerFullAccess SandboxMode = "danger-full-access"
)

// ModelReasoningEffort is the reasoning effort level for the model.
type ModelReasoningEffort string

const (
	ReasoningEffortMinimal ModelReasoningEffort = "minimal"
	ReasoningEffortLow     ModelReasoningEffort = "low"
	ReasoningEffortMedium  ModelReasoningEffort = "medium"
	ReasoningEffortHigh    ModelReasoningEffort = "high"
	ReasoningEffortXHigh   ModelReasoningEffort = "xhigh"
)

// WebSearchMode is the web search configuration mode.
type WebSearchMode string

const (
	WebSearchDisabled WebSearchMode = "disabled"
	WebSearchCached   WebSearchMode = "cached"
	WebSearchLive     WebSearchMode = "live"
)

// ClientConfig holds client-wide configuration shared by every thread.
type ClientConfig struct {
	// CodexPath overrides the resolved CLI binary path.
	CodexPath string
	// BaseURL overrides the API endpoint used by the CLI.
	BaseURL string
	// APIKey overrides authentication for the CLI. When empty, the CLI
	// falls back to its own configured credentials.
	APIKey string
	// Config is a nested set of CLI configuration overrides, flattened
	// into dotted `--config key=value` assignments.
	Config map[string]any
	// Env is the exact environment for the CLI process. When set, nothing
	// is inherited from the ambient environment.
	Env map[string]string
	// Originator identifies this SDK to the CLI. Defaults to the SDK's
	// own marker and never overrides a caller-supplied environment value.
	Originator string
}

// Option is a functional option for configuring a client.
type Option func(*ClientConfig)

// WithCodexPath sets a custom CLI binary path.
func WithCodexPath(path string) Option {
	return func(c *ClientConfig) {
		c.CodexPath = path
	}
}

// WithBaseURL overrides the API base URL for the CLI process.
func WithBaseURL(url string) Option {
	return func(c *ClientConfig) {
		c.BaseURL = url
	}
}

// WithAPIKey sets the API key passed to the CLI process.
func WithAPIKey(key string) Option {
	return func(c *ClientConfig) {
		c.APIKey = key
	}
}

// WithConfig sets nested CLI configuration overrides.
func WithConfig(config map[string]any) Option {
	return func(c *ClientConfig) {
		c.Config = config
	}
}

// WithEnv sets the exact environment for the CLI process, disabling
// inheritance from the ambient environment.
func WithEnv(env map[string]string) Option {
	return func(c *ClientConfig) {
		c.Env = env
	}
}

// WithOriginator overrides the originator marker advertised to the CLI.
func WithOriginator(originator string) Option {
	return func(c *ClientConfig) {
		c.Originator = originator
	}
}

// ThreadConfig holds per-thread configuration.
type ThreadConfig struct {
	Model                 string
	SandboxMode           SandboxMode
	WorkingDirectory      string
	AdditionalDirectories []string
	SkipGitRepoCheck      bool
	ReasoningEffort       ModelReasoningEffort
	NetworkAccess         *bool
	WebSearchMode         WebSearchMode
	WebSearch             *bool // deprecated boolean form; WebSearchMode wins
	ApprovalPolicy        ApprovalMode
}

// ThreadOption is a functional option for configuring a Thread.
type ThreadOption func(*ThreadConfig)

// WithModel sets the model for the thread.
func WithModel(model string) ThreadOption {
	return func(c *ThreadConfig) {
		c.Model = model
	}
}

// WithSandboxMode sets the CLI sandbox mode.
func WithSandboxMode(mode SandboxMode) ThreadOption {
	return func(c *ThreadConfig) {
		c.SandboxMode = mode
	}
}

// WithWorkingDirectory sets the agent's working directory.
func WithWorkingDirectory(dir string) ThreadOption {
	return func(c *ThreadConfig) {
		c.WorkingDirectory = dir
	}
}

// WithAdditionalDirectories grants the agent access to extra directories,
// forwarded in the given order.
func WithAdditionalDirectories(dirs ...string) ThreadOption {
	return func(c *ThreadConfig) {
		c.AdditionalDirectories = dirs
	}
}

// WithSkipGitRepoCheck skips the CLI's Git repository validation.
func WithSkipGitRepoCheck() ThreadOption {
	return func(c *ThreadConfig) {
		c.SkipGitRepoCheck = true
	}
}

// WithReasoningEffort sets the model reasoning effort level.
func WithReasoningEffort(effort ModelReasoningEffort) ThreadOption {
	return func(c *ThreadConfig) {
		c.ReasoningEffort = effort
	}
}

// WithNetworkAccess enables or disables network access inside the
// workspace-write sandbox.
func WithNetworkAccess(enabled bool) ThreadOption {
	return func(c *ThreadConfig) {
		c.NetworkAccess = &enabled
	}
}

// WithWebSearchMode sets the web search mode. Takes precedence over the
// deprecated WithWebSearch boolean.
func WithWebSearchMode(mode WebSearchMode) ThreadOption {
	return func(c *ThreadConfig) {
		c.WebSearchMode = mode
	}
}

// WithWebSearch enables or disables web search.
//
// Deprecated: use WithWebSearchMode.
func WithWebSearch(enabled bool) ThreadOption {
	return func(c *ThreadConfig) {
		c.WebSearch = &enabled
	}
}

// WithApprovalPolicy sets the approval policy for agent actions.
func WithApprovalPolicy(policy ApprovalMode) ThreadOption {
	return func(c *ThreadConfig) {
		c.ApprovalPolicy = policy
	}
}

// TurnConfig holds per-turn configuration.
type TurnConfig struct {
	// OutputSchema is a JSON schema object describing the structured
	// response expected from the agent.
	OutputSchema map[string]any
}

// TurnOption is a functional option for configuring a single turn.
type TurnOption func(*TurnConfig)

// WithOutputSchema requests structured output matching the given JSON
// schema object. See OutputSchemaFor to derive the schema from a Go type.
func WithOutputSchema(schema map[string]any) TurnOption {
	return func(c *TurnConfig) {
		c.OutputSchema = schema
	}
}
