//go:build unix

package provision_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/initrepo/internal/execshell"
	"github.com/temirov/initrepo/internal/provision"
)

const (
	fakeClientSleepingScriptConstant   = "#!/bin/sh\nexec sleep 30\n"
	fakeClientFailingScriptConstant    = "#!/bin/sh\necho 'fatal: directory exists' >&2\nexit 1\n"
	fakeClientSucceedingScriptConstant = "#!/bin/sh\nexit 0\n"
	fakeClientTimeoutConstant          = 300 * time.Millisecond
	fakeClientTimeoutEpsilonConstant   = 3 * time.Second
)

// runWithFakeClient provisions "demo" through a real OS runner whose ssh client is a shell script.
func runWithFakeClient(t *testing.T, script string) (provision.Report, time.Duration, error) {
	t.Helper()
	clientPath := filepath.Join(t.TempDir(), "ssh")
	require.NoError(t, os.WriteFile(clientPath, []byte(script), 0o755))

	shellExecutor, executorError := execshell.NewShellExecutor(zap.NewNop(), execshell.NewOSCommandRunner())
	require.NoError(t, executorError)

	service := newTestService(t, &stubProfileLoader{document: testDocument()}, shellExecutor, provision.SecureShellConfiguration{
		Executable: clientPath,
		Timeout:    fakeClientTimeoutConstant,
	}, nil)

	startTime := time.Now()
	report, provisionError := service.Provision(context.Background(), provision.Request{RepositoryName: "demo"})
	return report, time.Since(startTime), provisionError
}

func TestServiceProvisionTimesOutSlowClient(t *testing.T) {
	_, elapsed, provisionError := runWithFakeClient(t, fakeClientSleepingScriptConstant)

	var timeoutError provision.TimeoutError
	require.ErrorAs(t, provisionError, &timeoutError)
	require.Equal(t, "timed out after 300ms waiting for git@prod.example.com; remote repository state is unverified", provisionError.Error())
	require.Less(t, elapsed, fakeClientTimeoutConstant+fakeClientTimeoutEpsilonConstant)
}

func TestServiceProvisionReapsTimedOutClient(t *testing.T) {
	clientPath := filepath.Join(t.TempDir(), "ssh")
	require.NoError(t, os.WriteFile(clientPath, []byte(fakeClientSleepingScriptConstant), 0o755))

	result, runError := execshell.NewOSCommandRunner().Run(contextWithTimeout(t, fakeClientTimeoutConstant), execshell.ShellCommand{
		Name:    execshell.CommandName(clientPath),
		Details: execshell.CommandDetails{Arguments: []string{"git@prod.example.com", "true"}},
	})
	require.NoError(t, runError)
	require.True(t, result.TimedOut)

	signalError := syscall.Kill(result.ProcessIdentifier, syscall.Signal(0))
	require.True(t, errors.Is(signalError, syscall.ESRCH))
}

func TestServiceProvisionReportsRemoteFailure(t *testing.T) {
	_, _, provisionError := runWithFakeClient(t, fakeClientFailingScriptConstant)

	var failedError provision.RemoteCommandFailedError
	require.ErrorAs(t, provisionError, &failedError)
	require.Equal(t, 1, failedError.ExitCode)
	require.Equal(t, "fatal: directory exists\n", failedError.StandardError)
}

func TestServiceProvisionReportsSuccess(t *testing.T) {
	report, _, provisionError := runWithFakeClient(t, fakeClientSucceedingScriptConstant)

	require.NoError(t, provisionError)
	require.Contains(t, report.Message, "demo")
	require.Contains(t, report.Message, "git@prod.example.com (profile prod)")
}

func TestServiceProvisionReportsMissingClient(t *testing.T) {
	shellExecutor, executorError := execshell.NewShellExecutor(zap.NewNop(), execshell.NewOSCommandRunner())
	require.NoError(t, executorError)
	service := newTestService(t, &stubProfileLoader{document: testDocument()}, shellExecutor, provision.SecureShellConfiguration{
		Executable: filepath.Join(t.TempDir(), "missing-ssh"),
	}, nil)

	_, provisionError := service.Provision(context.Background(), provision.Request{RepositoryName: "demo"})

	var transportError provision.TransportError
	require.ErrorAs(t, provisionError, &transportError)
}

func contextWithTimeout(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()
	timeoutContext, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)
	return timeoutContext
}
