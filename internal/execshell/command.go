package execshell

import (
	"context"
	"time"
)

const (
	commandSecureShellStringConstant = "ssh"
	commandGitStringConstant         = "git"
)

// CommandName identifies an external executable.
type CommandName string

// Supported executables.
const (
	CommandSecureShell CommandName = CommandName(commandSecureShellStringConstant)
	CommandGit         CommandName = CommandName(commandGitStringConstant)
)

// CommandDetails describes a single invocation of an executable.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
	// Timeout bounds the invocation when positive.
	Timeout time.Duration
}

// ShellCommand combines an executable with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of running a command.
type ExecutionResult struct {
	StandardOutput    string
	StandardError     string
	ExitCode          int
	TimedOut          bool
	ProcessIdentifier int
}

// CommandRunner runs shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}
