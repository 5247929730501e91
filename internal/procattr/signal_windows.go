//go:build windows

package procattr

import "os"

// Terminate has no graceful equivalent on Windows; the process is killed
// outright.
func Terminate(p *os.Process) error {
	if p == nil {
		return nil
	}
	return p.Kill()
}

// Kill forcefully kills the process.
func Kill(p *os.Process) error {
	if p == nil {
		return nil
	}
	return p.Kill()
}
