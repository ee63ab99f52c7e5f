//go:build windows

package launcher

import "os/exec"

func configureCmdSysProcAttr(_ *exec.Cmd) {}
