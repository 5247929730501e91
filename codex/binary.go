package codex

import (
	"os"
	"path/filepath"
	"runtime"
)

// findCodexPath resolves the Codex CLI binary for the host platform:
// a vendored build next to the running executable when present, else
// "codex" on PATH.
func findCodexPath() (string, error) {
	return resolveCodexPath(runtime.GOOS, runtime.GOARCH)
}

func resolveCodexPath(goos, goarch string) (string, error) {
	triple, err := resolveTargetTriple(goos, goarch)
	if err != nil {
		return "", err
	}

	binaryName := "codex"
	if goos == "windows" {
		binaryName = "codex.exe"
	}

	if exe, err := os.Executable(); err == nil {
		vendored := filepath.Join(filepath.Dir(exe), "vendor", triple, "codex", binaryName)
		if _, err := os.Stat(vendored); err == nil {
			return vendored, nil
		}
	}

	return "codex", nil
}

// resolveTargetTriple maps a host platform to a Codex release build
// target. Platforms with no known build fail with
// UnsupportedPlatformError.
func resolveTargetTriple(goos, goarch string) (string, error) {
	switch goos {
	case "linux", "android":
		switch goarch {
		case "amd64":
			return "x86_64-unknown-linux-musl", nil
		case "arm64":
			return "aarch64-unknown-linux-musl", nil
		}
	case "darwin":
		switch goarch {
		case "amd64":
			return "x86_64-apple-darwin", nil
		case "arm64":
			return "aarch64-apple-darwin", nil
		}
	case "windows":
		switch goarch {
		case "amd64":
			return "x86_64-pc-windows-msvc", nil
		case "arm64":
			return "aarch64-pc-windows-msvc", nil
		}
	}
	return "", &UnsupportedPlatformError{OS: goos, Arch: goarch}
}
