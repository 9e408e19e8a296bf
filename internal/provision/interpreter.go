package provision

import (
	"errors"
	"fmt"
	"time"

	"github.com/temirov/initrepo/internal/execshell"
)

const (
	remoteReportTemplateConstant = "Repository '%s' created on %s at %s with default branch '%s'"
	localReportTemplateConstant  = "Repository '%s' initialized at %s with default branch '%s'"
)

// Report describes a successfully provisioned repository.
type Report struct {
	RepositoryName string
	ProfileName    string
	Host           string
	TargetPath     string
	DefaultBranch  string
	Message        string
}

// Interpret converts the single outcome of the ssh invocation into a Report or a classified error.
//
// The result is consulted directly when executionError is nil so that runners
// reporting failures only through the result are classified the same way.
func Interpret(parameters EffectiveParameters, remoteCommand RemoteCommand, timeout time.Duration, result execshell.ExecutionResult, executionError error) (Report, error) {
	target := parameters.Target()
	if executionError == nil && result.TimedOut {
		return Report{}, TimeoutError{Target: target, Timeout: timeout}
	}
	if executionError == nil && result.ExitCode != 0 {
		return Report{}, RemoteCommandFailedError{Target: target, ExitCode: result.ExitCode, StandardError: result.StandardError}
	}
	if executionError == nil {
		return Report{
			RepositoryName: parameters.RepositoryName,
			ProfileName:    parameters.ProfileName,
			Host:           parameters.Host,
			TargetPath:     remoteCommand.TargetPath,
			DefaultBranch:  parameters.DefaultBranch,
			Message:        fmt.Sprintf(remoteReportTemplateConstant, parameters.RepositoryName, target, remoteCommand.TargetPath, parameters.DefaultBranch),
		}, nil
	}

	var timeoutError execshell.CommandTimeoutError
	if errors.As(executionError, &timeoutError) {
		elapsedBound := timeoutError.Timeout
		if elapsedBound <= 0 {
			elapsedBound = timeout
		}
		return Report{}, TimeoutError{Target: target, Timeout: elapsedBound}
	}

	var failedError execshell.CommandFailedError
	if errors.As(executionError, &failedError) {
		return Report{}, RemoteCommandFailedError{
			Target:        target,
			ExitCode:      failedError.Result.ExitCode,
			StandardError: failedError.Result.StandardError,
		}
	}

	var startError execshell.CommandExecutionError
	if errors.As(executionError, &startError) {
		return Report{}, TransportError{Target: target, Cause: startError.Cause}
	}
	return Report{}, TransportError{Target: target, Cause: executionError}
}
