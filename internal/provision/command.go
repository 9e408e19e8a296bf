package provision

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/initrepo/internal/dependencies"
	"github.com/temirov/initrepo/internal/execshell"
	"github.com/temirov/initrepo/internal/ui"
	"github.com/temirov/initrepo/internal/utils"
	pathutils "github.com/temirov/initrepo/internal/utils/path"
)

const (
	commandUseConstant              = "new <repo_name>"
	commandShortDescriptionConstant = "Create a bare Git repository on a configured host"
	commandLongDescriptionConstant  = "new creates <base_dir>/<repo_name>.git on the host named by --profile (or the default profile) over SSH and points HEAD at the default branch. With --local the repository is created on this machine instead."
	profileFlagNameConstant         = "profile"
	profileFlagUsageConstant        = "Host profile to use instead of the default profile."
	hostFlagNameConstant            = "host"
	hostFlagUsageConstant           = "SSH destination overriding the profile host (user@host or an ssh config alias)."
	secureShellKeyFlagNameConstant  = "ssh-key"
	secureShellKeyFlagUsageConstant = "Private key passed to ssh with -i."
	baseDirectoryFlagNameConstant   = "base-dir"
	baseDirectoryFlagUsageConstant  = "Directory that will contain the bare repository."
	defaultBranchFlagNameConstant   = "default-branch"
	defaultBranchFlagUsageConstant  = "Branch HEAD points at (defaults to the profile branch, then master)."
	localFlagNameConstant           = "local"
	localFlagUsageConstant          = "Create the repository on the local filesystem."
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the ssh client configuration.
type ConfigurationProvider func() SecureShellConfiguration

// CommandBuilder assembles the new cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider func() bool
	ProfileLoader                ProfileLoader
	Executor                     ShellExecutor
	FileSystem                   FileSystem
	HomeExpander                 *pathutils.HomeExpander
}

// Build constructs the cobra command for repository provisioning.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(profileFlagNameConstant, "", profileFlagUsageConstant)
	command.Flags().String(hostFlagNameConstant, "", hostFlagUsageConstant)
	command.Flags().String(secureShellKeyFlagNameConstant, "", secureShellKeyFlagUsageConstant)
	command.Flags().String(baseDirectoryFlagNameConstant, "", baseDirectoryFlagUsageConstant)
	command.Flags().String(defaultBranchFlagNameConstant, "", defaultBranchFlagUsageConstant)
	command.Flags().Bool(localFlagNameConstant, false, localFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	request := builder.parseRequest(command, arguments)

	logger := builder.resolveLogger()
	homeExpander := dependencies.ResolveHomeExpander(builder.HomeExpander)

	profileLoader, loaderError := builder.resolveProfileLoader(command, homeExpander)
	if loaderError != nil {
		return loaderError
	}

	executor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(ServiceDependencies{
		ProfileLoader: profileLoader,
		Executor:      executor,
		FileSystem:    dependencies.ResolveFileSystem(builder.FileSystem),
		HomeExpander:  homeExpander,
		Logger:        logger,
		SecureShell:   builder.resolveConfiguration(),
	})
	if serviceError != nil {
		return serviceError
	}

	report, provisionError := service.Provision(command.Context(), request)
	if provisionError != nil {
		return provisionError
	}
	return ui.NewSuccessPrinter(command.OutOrStdout()).Println(report.Message)
}

func (builder *CommandBuilder) parseRequest(command *cobra.Command, arguments []string) Request {
	profileName, _ := command.Flags().GetString(profileFlagNameConstant)
	host, _ := command.Flags().GetString(hostFlagNameConstant)
	secureShellKey, _ := command.Flags().GetString(secureShellKeyFlagNameConstant)
	baseDirectory, _ := command.Flags().GetString(baseDirectoryFlagNameConstant)
	defaultBranch, _ := command.Flags().GetString(defaultBranchFlagNameConstant)
	local, _ := command.Flags().GetBool(localFlagNameConstant)

	repositoryName := ""
	if len(arguments) > 0 {
		repositoryName = strings.TrimSpace(arguments[0])
	}

	return Request{
		RepositoryName: repositoryName,
		ProfileName:    profileName,
		Host:           host,
		BaseDirectory:  baseDirectory,
		DefaultBranch:  defaultBranch,
		SecureShellKey: secureShellKey,
		Local:          local,
	}
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveConfiguration() SecureShellConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultSecureShellConfiguration()
	}
	return builder.ConfigurationProvider()
}

func (builder *CommandBuilder) resolveProfileLoader(command *cobra.Command, homeExpander *pathutils.HomeExpander) (ProfileLoader, error) {
	if builder.ProfileLoader != nil {
		return builder.ProfileLoader, nil
	}
	configurationFilePath, _ := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context())
	return dependencies.ResolveProfileStore(configurationFilePath, homeExpander)
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (ShellExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	var observer execshell.CommandEventObserver
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		observer = ui.NewConsoleCommandEventLogger(logger)
	}
	return dependencies.ResolveShellExecutor(nil, logger, observer)
}
