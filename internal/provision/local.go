package provision

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/temirov/initrepo/internal/execshell"
)

const (
	gitInitSubcommandConstant              = "init"
	gitBareFlagConstant                    = "--bare"
	gitQuietFlagConstant                   = "--quiet"
	repositoryDirectoryPermissionsConstant = 0o755
	openRepositoryErrorTemplateConstant    = "open bare repository: %w"
	writeHeadErrorTemplateConstant         = "write HEAD: %w"
	inspectTargetErrorTemplateConstant     = "inspect target: %w"
	createDirectoryErrorTemplateConstant   = "create directory: %w"
	removeDirectoryErrorTemplateConstant   = "remove partial repository: %w"
)

// GitExecutor runs git commands through the shell executor.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// FileSystem exposes the filesystem operations used for local provisioning.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	MkdirAll(path string, permissions fs.FileMode) error
	RemoveAll(path string) error
}

// LocalProvisioner creates bare repositories on the local filesystem.
type LocalProvisioner struct {
	gitExecutor GitExecutor
	fileSystem  FileSystem
}

// NewLocalProvisioner constructs a LocalProvisioner.
func NewLocalProvisioner(gitExecutor GitExecutor, fileSystem FileSystem) (*LocalProvisioner, error) {
	if gitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	return &LocalProvisioner{gitExecutor: gitExecutor, fileSystem: fileSystem}, nil
}

// Provision refuses existing targets, runs git init --bare and points HEAD at the default branch.
func (provisioner *LocalProvisioner) Provision(executionContext context.Context, parameters EffectiveParameters) (Report, error) {
	if validationError := validateLocalParameters(parameters); validationError != nil {
		return Report{}, validationError
	}

	targetPath := filepath.Join(parameters.BaseDirectory, bareRepositoryDirectoryName(parameters.RepositoryName))

	_, statError := provisioner.fileSystem.Stat(targetPath)
	switch {
	case statError == nil:
		return Report{}, RepositoryExistsError{Path: targetPath}
	case !errors.Is(statError, fs.ErrNotExist):
		return Report{}, LocalInitializationError{Path: targetPath, Cause: fmt.Errorf(inspectTargetErrorTemplateConstant, statError)}
	}

	if directoryError := provisioner.fileSystem.MkdirAll(targetPath, repositoryDirectoryPermissionsConstant); directoryError != nil {
		return Report{}, LocalInitializationError{Path: targetPath, Cause: fmt.Errorf(createDirectoryErrorTemplateConstant, directoryError)}
	}

	_, initError := provisioner.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitInitSubcommandConstant, gitBareFlagConstant, gitQuietFlagConstant, targetPath},
	})
	if initError != nil {
		return Report{}, provisioner.discardTarget(targetPath, initError)
	}

	if headError := writeHeadReference(targetPath, parameters.DefaultBranch); headError != nil {
		return Report{}, provisioner.discardTarget(targetPath, headError)
	}

	return Report{
		RepositoryName: parameters.RepositoryName,
		ProfileName:    parameters.ProfileName,
		TargetPath:     targetPath,
		DefaultBranch:  parameters.DefaultBranch,
		Message:        fmt.Sprintf(localReportTemplateConstant, parameters.RepositoryName, targetPath, parameters.DefaultBranch),
	}, nil
}

// discardTarget removes a partially initialized repository so a retry does not hit RepositoryExistsError.
func (provisioner *LocalProvisioner) discardTarget(targetPath string, cause error) error {
	if removeError := provisioner.fileSystem.RemoveAll(targetPath); removeError != nil {
		cause = errors.Join(cause, fmt.Errorf(removeDirectoryErrorTemplateConstant, removeError))
	}
	return LocalInitializationError{Path: targetPath, Cause: cause}
}

func writeHeadReference(repositoryPath string, branchName string) error {
	repository, openError := git.PlainOpen(repositoryPath)
	if openError != nil {
		return fmt.Errorf(openRepositoryErrorTemplateConstant, openError)
	}
	headReference := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(branchName))
	if setError := repository.Storer.SetReference(headReference); setError != nil {
		return fmt.Errorf(writeHeadErrorTemplateConstant, setError)
	}
	return nil
}

func validateLocalParameters(parameters EffectiveParameters) error {
	if repositoryError := ValidateRepositoryName(parameters.RepositoryName); repositoryError != nil {
		return repositoryError
	}
	if baseDirectoryError := ValidateBaseDirectory(parameters.BaseDirectory); baseDirectoryError != nil {
		return baseDirectoryError
	}
	return ValidateBranchName(parameters.DefaultBranch)
}
