//go:build !windows

package process

import "os/exec"

// hide is a no-op as there is no console window to suppress.
func hide(_ *exec.Cmd) {}
