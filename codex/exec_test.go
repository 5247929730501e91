package codex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name   string
		runner execRunner
		args   execArgs
		want   []string
	}{
		{
			name: "minimal",
			want: []string{"exec", "--experimental-json"},
		},
		{
			name: "config overrides come first",
			runner: execRunner{configOverrides: map[string]any{
				"model_provider": "openai",
				"approvals":      map[string]any{"policy": "never"},
			}},
			args: execArgs{model: "gpt-5"},
			want: []string{
				"exec", "--experimental-json",
				"--config", `approvals.policy="never"`,
				"--config", `model_provider="openai"`,
				"--model", "gpt-5",
			},
		},
		{
			name: "thread options in declared order",
			args: execArgs{
				model:                 "gpt-5",
				sandboxMode:           SandboxModeWorkspaceWrite,
				workingDirectory:      "/work",
				additionalDirectories: []string{"/data", "/cache"},
				skipGitRepoCheck:      true,
				outputSchemaFile:      "/tmp/schema.json",
			},
			want: []string{
				"exec", "--experimental-json",
				"--model", "gpt-5",
				"--sandbox", "workspace-write",
				"--cd", "/work",
				"--add-dir", "/data",
				"--add-dir", "/cache",
				"--skip-git-repo-check",
				"--output-schema", "/tmp/schema.json",
			},
		},
		{
			name: "reasoning and network access",
			args: execArgs{
				reasoningEffort: ReasoningEffortHigh,
				networkAccess:   boolPtr(false),
			},
			want: []string{
				"exec", "--experimental-json",
				"--config", `model_reasoning_effort="high"`,
				"--config", "sandbox_workspace_write.network_access=false",
			},
		},
		{
			name: "web search mode wins over deprecated flag",
			args: execArgs{
				webSearchMode: WebSearchCached,
				webSearch:     boolPtr(true),
			},
			want: []string{
				"exec", "--experimental-json",
				"--config", `web_search="cached"`,
			},
		},
		{
			name: "deprecated web search enabled",
			args: execArgs{webSearch: boolPtr(true)},
			want: []string{
				"exec", "--experimental-json",
				"--config", `web_search="live"`,
			},
		},
		{
			name: "deprecated web search disabled",
			args: execArgs{webSearch: boolPtr(false)},
			want: []string{
				"exec", "--experimental-json",
				"--config", `web_search="disabled"`,
			},
		},
		{
			name: "approval policy and images",
			args: execArgs{
				approvalPolicy: ApprovalModeOnRequest,
				images:         []string{"a.png", "b.png"},
			},
			want: []string{
				"exec", "--experimental-json",
				"--config", `approval_policy="on-request"`,
				"--image", "a.png",
				"--image", "b.png",
			},
		},
		{
			name: "resume goes last",
			args: execArgs{
				model:    "gpt-5",
				threadID: "t_99",
			},
			want: []string{
				"exec", "--experimental-json",
				"--model", "gpt-5",
				"resume", "t_99",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.runner.buildArgs(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildArgsInvalidConfig(t *testing.T) {
	runner := execRunner{configOverrides: map[string]any{"": 1}}
	_, err := runner.buildArgs(execArgs{})
	var cfgErr *InvalidConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func envMap(t *testing.T, env []string) map[string]string {
	t.Helper()
	out := make(map[string]string, len(env))
	for _, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		require.True(t, ok, "malformed env entry %q", kv)
		out[k] = v
	}
	return out
}

func TestBuildEnv(t *testing.T) {
	t.Run("override replaces ambient environment", func(t *testing.T) {
		t.Setenv("CODEX_TEST_AMBIENT", "yes")
		runner := execRunner{
			envOverride: map[string]string{"PATH": "/bin"},
			originator:  sdkOriginator,
		}
		env := envMap(t, runner.buildEnv(execArgs{}))
		assert.NotContains(t, env, "CODEX_TEST_AMBIENT")
		assert.Equal(t, "/bin", env["PATH"])
	})

	t.Run("ambient environment inherited by default", func(t *testing.T) {
		t.Setenv("CODEX_TEST_AMBIENT", "yes")
		runner := execRunner{originator: sdkOriginator}
		env := envMap(t, runner.buildEnv(execArgs{}))
		assert.Equal(t, "yes", env["CODEX_TEST_AMBIENT"])
	})

	t.Run("originator defaulted", func(t *testing.T) {
		runner := execRunner{
			envOverride: map[string]string{},
			originator:  sdkOriginator,
		}
		env := envMap(t, runner.buildEnv(execArgs{}))
		assert.Equal(t, "codex_sdk_go", env[internalOriginatorEnv])
	})

	t.Run("caller originator never overridden", func(t *testing.T) {
		runner := execRunner{
			envOverride: map[string]string{internalOriginatorEnv: "my_app"},
			originator:  sdkOriginator,
		}
		env := envMap(t, runner.buildEnv(execArgs{}))
		assert.Equal(t, "my_app", env[internalOriginatorEnv])
	})

	t.Run("base url and api key", func(t *testing.T) {
		runner := execRunner{
			envOverride: map[string]string{apiKeyEnv: "stale"},
			originator:  sdkOriginator,
		}
		env := envMap(t, runner.buildEnv(execArgs{
			baseURL: "https://proxy.example/v1",
			apiKey:  "sk-fresh",
		}))
		assert.Equal(t, "https://proxy.example/v1", env[baseURLEnv])
		assert.Equal(t, "sk-fresh", env[apiKeyEnv])
	})
}

func TestNewExecRunnerDefaults(t *testing.T) {
	runner, err := newExecRunner(ClientConfig{CodexPath: "/opt/codex"})
	require.NoError(t, err)
	assert.Equal(t, "/opt/codex", runner.executablePath)
	assert.Equal(t, sdkOriginator, runner.originator)
}
