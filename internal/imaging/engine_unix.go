//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package imaging

import (
	"os/exec"
	"syscall"
)

// killProcessGroup starts the engine in its own process group and makes
// cancellation kill every process in it.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
