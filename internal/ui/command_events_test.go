package ui_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/initrepo/internal/execshell"
	"github.com/temirov/initrepo/internal/ui"
)

const (
	testHostConstant                       = "git@example.com"
	testExecutionFailureReasonConstant     = "exec: \"ssh\": executable file not found in $PATH"
	testStandardErrorMessageConstant       = "fatal: directory exists"
	testStartMessageExpectationConstant    = "Running remote command on " + testHostConstant
	testSuccessMessageExpectation          = "Remote command on " + testHostConstant + " completed"
	testFailureMessageExpectation          = "Remote command on " + testHostConstant + " failed (exit code 1: " + testStandardErrorMessageConstant + ")"
	testTimeoutMessageExpectation          = "Remote command on " + testHostConstant + " timed out"
	testExecutionFailureMessageExpectation = "Unable to run ssh for " + testHostConstant + ": " + testExecutionFailureReasonConstant
)

func TestConsoleCommandEventLoggerEmitsMessages(testInstance *testing.T) {
	command := execshell.ShellCommand{
		Name: execshell.CommandSecureShell,
		Details: execshell.CommandDetails{
			Arguments: []string{"-o", "BatchMode=yes", testHostConstant, "mkdir -p /srv/git/demo.git"},
		},
	}

	testCases := []struct {
		name            string
		invoke          func(logger *ui.ConsoleCommandEventLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name: "command_started",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandStarted(command)
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testStartMessageExpectationConstant,
		},
		{
			name: "command_succeeded",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testSuccessMessageExpectation,
		},
		{
			name: "command_failed",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 1, StandardError: testStandardErrorMessageConstant})
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: testFailureMessageExpectation,
		},
		{
			name: "command_timed_out",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: -1, TimedOut: true})
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: testTimeoutMessageExpectation,
		},
		{
			name: "command_execution_failed",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandExecutionFailed(command, errors.New(testExecutionFailureReasonConstant))
			},
			expectedLevel:   zapcore.ErrorLevel,
			expectedMessage: testExecutionFailureMessageExpectation,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			core, recorded := observer.New(zapcore.DebugLevel)
			eventLogger := ui.NewConsoleCommandEventLogger(zap.New(core))

			testCase.invoke(eventLogger)

			entries := recorded.All()
			require.Len(testInstance, entries, 1)
			require.Equal(testInstance, testCase.expectedLevel, entries[0].Level)
			require.Equal(testInstance, testCase.expectedMessage, entries[0].Message)
		})
	}
}

func TestSuccessPrinterWritesPlainTextToBuffers(testInstance *testing.T) {
	outputBuffer := &strings.Builder{}

	require.NoError(testInstance, ui.NewSuccessPrinter(outputBuffer).Println("Host profile 'prod' saved."))
	require.Equal(testInstance, "Host profile 'prod' saved.\n", outputBuffer.String())
}
