//go:build !unix

package execshell

import "os/exec"

// configureProcessTermination keeps the exec.CommandContext default of killing the direct child.
func configureProcessTermination(executable *exec.Cmd) {}
