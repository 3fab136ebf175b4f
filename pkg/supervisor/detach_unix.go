//go:build !windows

package supervisor

import (
	"os/exec"
	"syscall"
)

// detach puts the child in a new session so it has no controlling terminal
// and survives the interactive shell closing.
func detach(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setsid = true
}
