package execshell

import (
	"fmt"
	"path/filepath"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageTimeout
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericTimeoutTemplateConstant          = "%s timed out"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
)

const (
	gitInitSubcommandNameConstant = "init"
	gitBareFlagConstant           = "--bare"
)

const (
	secureShellStartTemplateConstant            = "Running remote command on %s"
	secureShellSuccessTemplateConstant          = "Remote command on %s completed"
	secureShellFailureTemplateConstant          = "Remote command on %s failed (exit code %d%s)"
	secureShellTimeoutTemplateConstant          = "Remote command on %s timed out"
	secureShellExecutionFailureTemplateConstant = "Unable to run ssh for %s: %s"
	gitInitStartTemplateConstant                = "Initializing bare repository at %s"
	gitInitSuccessTemplateConstant              = "Initialized bare repository at %s"
	gitInitFailureTemplateConstant              = "Failed to initialize bare repository at %s (exit code %d%s)"
	gitInitTimeoutTemplateConstant              = "Initializing bare repository at %s timed out"
	gitInitExecutionFailureTemplateConstant     = "Unable to initialize bare repository at %s: %s"
)

// secureShellFlagsWithValues lists ssh options that consume the following argument.
var secureShellFlagsWithValues = map[string]struct{}{
	"-B": {}, "-b": {}, "-c": {}, "-D": {}, "-E": {}, "-e": {}, "-F": {}, "-I": {},
	"-i": {}, "-J": {}, "-L": {}, "-l": {}, "-m": {}, "-O": {}, "-o": {}, "-p": {},
	"-Q": {}, "-R": {}, "-S": {}, "-W": {}, "-w": {},
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildTimeoutMessage formats the message describing a command terminated by its timeout.
func (formatter CommandMessageFormatter) BuildTimeoutMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageTimeout)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch resolveCommandKind(command.Name) {
	case CommandSecureShell:
		return formatter.describeSecureShellMessage(command, result, failure, stage)
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeSecureShellMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	host := formatter.ensureValue(ExtractSecureShellHost(command.Details.Arguments))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(secureShellStartTemplateConstant, host)
	case messageStageSuccess:
		return fmt.Sprintf(secureShellSuccessTemplateConstant, host)
	case messageStageFailure:
		return fmt.Sprintf(secureShellFailureTemplateConstant, host, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageTimeout:
		return fmt.Sprintf(secureShellTimeoutTemplateConstant, host)
	case messageStageExecutionFailure:
		return fmt.Sprintf(secureShellExecutionFailureTemplateConstant, host, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	subcommand := formatter.extractGitSubcommand(arguments)

	if subcommand == gitInitSubcommandNameConstant && containsArgument(arguments, gitBareFlagConstant) {
		target := formatter.ensureValue(formatter.lastArgument(arguments))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitInitStartTemplateConstant, target)
		case messageStageSuccess:
			return fmt.Sprintf(gitInitSuccessTemplateConstant, target)
		case messageStageFailure:
			return fmt.Sprintf(gitInitFailureTemplateConstant, target, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageTimeout:
			return fmt.Sprintf(gitInitTimeoutTemplateConstant, target)
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitInitExecutionFailureTemplateConstant, target, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageTimeout:
		return fmt.Sprintf(genericTimeoutTemplateConstant, commandLabel)
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

// ExtractSecureShellHost returns the destination argument of an ssh invocation.
func ExtractSecureShellHost(arguments []string) string {
	for argumentIndex := 0; argumentIndex < len(arguments); argumentIndex++ {
		argument := strings.TrimSpace(arguments[argumentIndex])
		if argument == "--" {
			if argumentIndex+1 < len(arguments) {
				return strings.TrimSpace(arguments[argumentIndex+1])
			}
			return emptyStringConstant
		}
		if !strings.HasPrefix(argument, flagPrefixConstant) {
			return argument
		}
		if _, consumesValue := secureShellFlagsWithValues[argument]; consumesValue {
			argumentIndex++
		}
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if resolveCommandKind(command.Name) == CommandSecureShell {
		host := ExtractSecureShellHost(command.Details.Arguments)
		if len(host) > 0 {
			commandLabel = fmt.Sprintf("%s %s", commandLabel, host)
		}
	} else if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) extractGitSubcommand(arguments []string) string {
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if strings.HasPrefix(trimmedArgument, flagPrefixConstant) {
			continue
		}
		return trimmedArgument
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) lastArgument(arguments []string) string {
	if len(arguments) == 0 {
		return emptyStringConstant
	}
	return strings.TrimSpace(arguments[len(arguments)-1])
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	if len(strings.TrimSpace(value)) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return value
}

// resolveCommandKind maps configured executable paths such as /usr/bin/ssh onto known command names.
func resolveCommandKind(name CommandName) CommandName {
	return CommandName(filepath.Base(string(name)))
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}
