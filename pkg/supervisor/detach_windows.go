//go:build windows

package supervisor

import (
	"os/exec"
	"syscall"
)

const detachedProcess = 0x00000008

// detach starts the child without a console in its own process group.
func detach(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= syscall.CREATE_NEW_PROCESS_GROUP | detachedProcess
	cmd.SysProcAttr.HideWindow = true
}
