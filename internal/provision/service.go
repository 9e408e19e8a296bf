package provision

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/initrepo/internal/execshell"
	"github.com/temirov/initrepo/internal/profiles"
	pathutils "github.com/temirov/initrepo/internal/utils/path"
)

const (
	profileLoaderNotConfiguredMessageConstant = "profile loader not configured"
	shellExecutorNotConfiguredMessageConstant = "shell executor not configured"
	gitExecutorNotConfiguredMessageConstant   = "git executor not configured"
	fileSystemNotConfiguredMessageConstant    = "filesystem not configured"
	logMessageResolvedConstant                = "Resolved provisioning parameters"
	logMessageRemoteCommandConstant           = "Built remote provisioning command"
	logFieldRepositoryConstant                = "repository"
	logFieldProfileConstant                   = "profile"
	logFieldHostConstant                      = "host"
	logFieldBaseDirectoryConstant             = "base_dir"
	logFieldDefaultBranchConstant             = "default_branch"
	logFieldLocalConstant                     = "local"
	logFieldRemoteCommandConstant             = "remote_command"
)

var (
	// ErrProfileLoaderNotConfigured indicates the service was constructed without a profile loader.
	ErrProfileLoaderNotConfigured = errors.New(profileLoaderNotConfiguredMessageConstant)
	// ErrShellExecutorNotConfigured indicates the service was constructed without a command executor.
	ErrShellExecutorNotConfigured = errors.New(shellExecutorNotConfiguredMessageConstant)
	// ErrGitExecutorNotConfigured indicates a local provisioner without a git executor.
	ErrGitExecutorNotConfigured = errors.New(gitExecutorNotConfiguredMessageConstant)
	// ErrFileSystemNotConfigured indicates a local provisioner without filesystem access.
	ErrFileSystemNotConfigured = errors.New(fileSystemNotConfiguredMessageConstant)
)

// ProfileLoader loads the stored host profiles.
type ProfileLoader interface {
	Load() (profiles.Document, error)
}

// ShellExecutor runs the ssh client and git.
type ShellExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
	GitExecutor
}

// ServiceDependencies enumerates collaborators required by the provisioning service.
type ServiceDependencies struct {
	ProfileLoader ProfileLoader
	Executor      ShellExecutor
	FileSystem    FileSystem
	HomeExpander  *pathutils.HomeExpander
	Logger        *zap.Logger
	SecureShell   SecureShellConfiguration
}

// Service provisions one repository per call.
type Service struct {
	profileLoader    ProfileLoader
	executor         ShellExecutor
	localProvisioner *LocalProvisioner
	resolver         Resolver
	logger           *zap.Logger
	secureShell      SecureShellConfiguration
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.ProfileLoader == nil {
		return nil, ErrProfileLoaderNotConfigured
	}
	if dependencies.Executor == nil {
		return nil, ErrShellExecutorNotConfigured
	}

	localProvisioner, provisionerError := NewLocalProvisioner(dependencies.Executor, dependencies.FileSystem)
	if provisionerError != nil {
		return nil, provisionerError
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		profileLoader:    dependencies.ProfileLoader,
		executor:         dependencies.Executor,
		localProvisioner: localProvisioner,
		resolver:         NewResolver(dependencies.HomeExpander),
		logger:           logger,
		secureShell:      dependencies.SecureShell.Sanitize(),
	}, nil
}

// Provision resolves the request and creates the repository locally or over SSH.
//
// A missing configuration file is treated as an empty profile document so
// that --host and --local requests work before `init-repo configure` runs.
func (service *Service) Provision(executionContext context.Context, request Request) (Report, error) {
	document, loadError := service.profileLoader.Load()
	if loadError != nil {
		if !errors.Is(loadError, profiles.ErrConfigurationNotFound) {
			return Report{}, loadError
		}
		document = profiles.Document{}
	}

	parameters, resolveError := service.resolver.Resolve(request, document)
	if resolveError != nil {
		return Report{}, resolveError
	}

	service.logger.Debug(
		logMessageResolvedConstant,
		zap.String(logFieldRepositoryConstant, parameters.RepositoryName),
		zap.String(logFieldProfileConstant, parameters.ProfileName),
		zap.String(logFieldHostConstant, parameters.Host),
		zap.String(logFieldBaseDirectoryConstant, parameters.BaseDirectory),
		zap.String(logFieldDefaultBranchConstant, parameters.DefaultBranch),
		zap.Bool(logFieldLocalConstant, request.Local),
	)

	if request.Local {
		return service.localProvisioner.Provision(executionContext, parameters)
	}
	return service.provisionRemote(executionContext, parameters)
}

func (service *Service) provisionRemote(executionContext context.Context, parameters EffectiveParameters) (Report, error) {
	remoteCommand, buildError := BuildRemoteCommand(parameters)
	if buildError != nil {
		return Report{}, buildError
	}
	service.logger.Debug(logMessageRemoteCommandConstant, zap.String(logFieldRemoteCommandConstant, remoteCommand.Script))

	result, executionError := service.executor.Execute(executionContext, execshell.ShellCommand{
		Name: execshell.CommandName(service.secureShell.Executable),
		Details: execshell.CommandDetails{
			Arguments: service.secureShell.buildArguments(parameters, remoteCommand),
			Timeout:   service.secureShell.Timeout,
		},
	})
	return Interpret(parameters, remoteCommand, service.secureShell.Timeout, result, executionError)
}
