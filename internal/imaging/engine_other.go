//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package imaging

import "os/exec"

// killProcessGroup is a no-op here; cmd.WaitDelay still bounds Run.
func killProcessGroup(cmd *exec.Cmd) {}
