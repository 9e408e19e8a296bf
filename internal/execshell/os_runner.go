package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

const (
	environmentAssignmentSeparatorConstant = "="
	environmentAssignmentTemplateConstant  = "%s%s%s"
	timedOutExitCodeConstant               = -1
	processWaitDelayConstant               = time.Second
)

// OSCommandRunner executes commands using the operating system facilities.
type OSCommandRunner struct {
	waitDelay time.Duration
}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{waitDelay: processWaitDelayConstant}
}

// Run executes the supplied command using os/exec.
//
// When the execution context expires the process is killed (on Unix its whole
// process group) and the result is reported with TimedOut set. Failures to
// start the process are returned as errors.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandArguments := append([]string{}, command.Details.Arguments...)
	executable := exec.CommandContext(executionContext, string(command.Name), commandArguments...)
	executable.WaitDelay = runner.resolveWaitDelay()
	configureProcessTermination(executable)

	if len(command.Details.WorkingDirectory) > 0 {
		executable.Dir = command.Details.WorkingDirectory
	}

	if len(command.Details.EnvironmentVariables) > 0 {
		mergedEnvironment := append([]string{}, os.Environ()...)
		for environmentKey, environmentValue := range command.Details.EnvironmentVariables {
			mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentAssignmentSeparatorConstant, environmentValue))
		}
		executable.Env = mergedEnvironment
	}

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = &standardOutputBuffer
	executable.Stderr = &standardErrorBuffer

	if len(command.Details.StandardInput) > 0 {
		executable.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	runError := executable.Run()
	processIdentifier := 0
	if executable.Process != nil {
		processIdentifier = executable.Process.Pid
	}

	if runError != nil {
		if errors.Is(executionContext.Err(), context.DeadlineExceeded) {
			return ExecutionResult{
				StandardOutput:    standardOutputBuffer.String(),
				StandardError:     standardErrorBuffer.String(),
				ExitCode:          timedOutExitCodeConstant,
				TimedOut:          true,
				ProcessIdentifier: processIdentifier,
			}, nil
		}

		exitError := &exec.ExitError{}
		if errors.As(runError, &exitError) {
			return ExecutionResult{
				StandardOutput:    standardOutputBuffer.String(),
				StandardError:     standardErrorBuffer.String(),
				ExitCode:          exitError.ExitCode(),
				ProcessIdentifier: processIdentifier,
			}, nil
		}
		return ExecutionResult{}, runError
	}

	return ExecutionResult{
		StandardOutput:    standardOutputBuffer.String(),
		StandardError:     standardErrorBuffer.String(),
		ExitCode:          0,
		ProcessIdentifier: processIdentifier,
	}, nil
}

func (runner *OSCommandRunner) resolveWaitDelay() time.Duration {
	if runner == nil || runner.waitDelay <= 0 {
		return processWaitDelayConstant
	}
	return runner.waitDelay
}
