package codex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTargetTriple(t *testing.T) {
	tests := []struct {
		goos   string
		goarch string
		want   string
	}{
		{"linux", "amd64", "x86_64-unknown-linux-musl"},
		{"linux", "arm64", "aarch64-unknown-linux-musl"},
		{"android", "arm64", "aarch64-unknown-linux-musl"},
		{"darwin", "amd64", "x86_64-apple-darwin"},
		{"darwin", "arm64", "aarch64-apple-darwin"},
		{"windows", "amd64", "x86_64-pc-windows-msvc"},
		{"windows", "arm64", "aarch64-pc-windows-msvc"},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			got, err := resolveTargetTriple(tt.goos, tt.goarch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTargetTripleUnsupported(t *testing.T) {
	_, err := resolveTargetTriple("plan9", "386")
	var unsupported *UnsupportedPlatformError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "plan9", unsupported.OS)
	assert.Equal(t, "386", unsupported.Arch)
}

func TestResolveCodexPathFallsBackToPath(t *testing.T) {
	path, err := resolveCodexPath("linux", "amd64")
	require.NoError(t, err)
	assert.Equal(t, "codex", path)
}
