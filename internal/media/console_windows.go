//go:build windows

package media

import (
	"os/exec"
	"syscall"
)

// createNoWindow keeps a console from flashing up when the GUI probes ffmpeg
const createNoWindow = 0x08000000

func hideConsole(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: createNoWindow}
}
