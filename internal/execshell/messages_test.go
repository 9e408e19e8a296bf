package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForSecureShellNamesHost(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandSecureShell,
		Details: CommandDetails{
			Arguments: []string{"-i", "/home/user/.ssh/id_ed25519", "-o", "BatchMode=yes", "git@example.com", "mkdir -p /srv/git/demo.git"},
		},
	}

	require.Equal(t, "Running remote command on git@example.com", formatter.BuildStartedMessage(command))
	require.Equal(t, "Remote command on git@example.com timed out", formatter.BuildTimeoutMessage(command))
}

func TestBuildFailureMessageForSecureShellIncludesStandardError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandSecureShell,
		Details: CommandDetails{Arguments: []string{"git@example.com", "true"}},
	}

	message := formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 1, StandardError: "fatal: directory exists\n"})

	require.Equal(t, "Remote command on git@example.com failed (exit code 1: fatal: directory exists)", message)
}

func TestBuildExecutionFailureMessageForSecureShell(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{Name: CommandSecureShell, Details: CommandDetails{Arguments: []string{"-p", "2222", "host"}}}

	message := formatter.BuildExecutionFailureMessage(command, errors.New("executable file not found"))

	require.Equal(t, "Unable to run ssh for host: executable file not found", message)
}

func TestBuildMessagesForGitBareInit(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandGit,
		Details: CommandDetails{Arguments: []string{"init", "--bare", "--quiet", "/srv/git/demo.git"}},
	}

	require.Equal(t, "Initializing bare repository at /srv/git/demo.git", formatter.BuildStartedMessage(command))
	require.Equal(t, "Initialized bare repository at /srv/git/demo.git", formatter.BuildSuccessMessage(command))
}

func TestBuildMessagesForOtherCommandsFallBackToGenericLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandGit,
		Details: CommandDetails{Arguments: []string{"--version"}, WorkingDirectory: "/workspace"},
	}

	require.Equal(t, "Running git --version (in /workspace)", formatter.BuildStartedMessage(command))
	require.Equal(t, "git --version (in /workspace) failed with exit code 2", formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 2}))
}

func TestExtractSecureShellHostSkipsOptionValues(t *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
		expected  string
	}{
		{name: "plain", arguments: []string{"example.com", "true"}, expected: "example.com"},
		{name: "identity", arguments: []string{"-i", "key", "example.com", "true"}, expected: "example.com"},
		{name: "boolean_flag", arguments: []string{"-T", "-o", "BatchMode=yes", "example.com"}, expected: "example.com"},
		{name: "separator", arguments: []string{"-i", "key", "--", "example.com", "true"}, expected: "example.com"},
		{name: "empty", arguments: nil, expected: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expected, ExtractSecureShellHost(testCase.arguments))
		})
	}
}

func TestBuildMessagesRecognizeConfiguredSecureShellPath(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandName("/usr/local/bin/ssh"),
		Details: CommandDetails{Arguments: []string{"-o", "BatchMode=yes", "git@example.com", "true"}},
	}

	require.Equal(t, "Remote command on git@example.com completed", formatter.BuildSuccessMessage(command))
}
