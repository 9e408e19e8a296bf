package provision

import (
	"fmt"
	"path"
	"strings"
)

const (
	bareRepositorySuffixConstant  = ".git"
	branchReferencePrefixConstant = "refs/heads/"
	remoteCommandTemplateConstant = `if [ -e %[1]s ]; then echo "fatal: repository already exists at "%[1]s >&2; exit 1; fi && mkdir -p %[1]s && git init --bare --quiet %[1]s && git --git-dir=%[1]s symbolic-ref HEAD %[2]s`
)

// RemoteCommand is the single shell command that provisions a repository on the remote host.
type RemoteCommand struct {
	// TargetPath is the unquoted repository path as the remote shell will see it.
	TargetPath string
	Script     string
}

// BuildRemoteCommand validates parameters and renders the remote provisioning command.
//
// The command fails with a "fatal:" message when the target already exists,
// then runs one mkdir, one bare init and one HEAD update.
func BuildRemoteCommand(parameters EffectiveParameters) (RemoteCommand, error) {
	if validationError := validateRemoteParameters(parameters); validationError != nil {
		return RemoteCommand{}, validationError
	}

	targetPath := RepositoryPath(parameters.BaseDirectory, parameters.RepositoryName)
	quotedTargetPath := quoteRemotePath(targetPath)
	quotedBranchReference := Quote(branchReferencePrefixConstant + parameters.DefaultBranch)

	return RemoteCommand{
		TargetPath: targetPath,
		Script:     fmt.Sprintf(remoteCommandTemplateConstant, quotedTargetPath, quotedBranchReference),
	}, nil
}

// RepositoryPath joins the base directory and repository name with POSIX semantics and a single .git suffix.
func RepositoryPath(baseDirectory string, repositoryName string) string {
	return path.Join(baseDirectory, bareRepositoryDirectoryName(repositoryName))
}

func bareRepositoryDirectoryName(repositoryName string) string {
	if strings.HasSuffix(repositoryName, bareRepositorySuffixConstant) {
		return repositoryName
	}
	return repositoryName + bareRepositorySuffixConstant
}

func validateRemoteParameters(parameters EffectiveParameters) error {
	if repositoryError := ValidateRepositoryName(parameters.RepositoryName); repositoryError != nil {
		return repositoryError
	}
	if baseDirectoryError := ValidateBaseDirectory(parameters.BaseDirectory); baseDirectoryError != nil {
		return baseDirectoryError
	}
	if branchError := ValidateBranchName(parameters.DefaultBranch); branchError != nil {
		return branchError
	}
	return ValidateHost(parameters.Host)
}
