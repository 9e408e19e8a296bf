package provision_test

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/initrepo/internal/execshell"
	"github.com/temirov/initrepo/internal/filesystem"
	"github.com/temirov/initrepo/internal/provision"
)

// goGitInitExecutor stands in for the git binary by initializing the last argument with go-git.
type goGitInitExecutor struct {
	invocations [][]string
	failure     error
}

func (executor *goGitInitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.invocations = append(executor.invocations, details.Arguments)
	if executor.failure != nil {
		return execshell.ExecutionResult{}, executor.failure
	}
	targetPath := details.Arguments[len(details.Arguments)-1]
	if _, initError := git.PlainInit(targetPath, true); initError != nil {
		return execshell.ExecutionResult{}, initError
	}
	return execshell.ExecutionResult{}, nil
}

func localParameters(baseDirectory string) provision.EffectiveParameters {
	return provision.EffectiveParameters{RepositoryName: "demo", BaseDirectory: baseDirectory, DefaultBranch: "main"}
}

func readHead(t *testing.T, repositoryPath string) string {
	t.Helper()
	headContents, readError := os.ReadFile(filepath.Join(repositoryPath, "HEAD"))
	require.NoError(t, readError)
	return string(headContents)
}

func TestLocalProvisionerCreatesBareRepository(t *testing.T) {
	baseDirectory := filepath.Join(t.TempDir(), "nested", "repos")
	executor := &goGitInitExecutor{}
	provisioner, creationError := provision.NewLocalProvisioner(executor, filesystem.OSFileSystem{})
	require.NoError(t, creationError)

	report, provisionError := provisioner.Provision(context.Background(), localParameters(baseDirectory))
	require.NoError(t, provisionError)

	expectedPath := filepath.Join(baseDirectory, "demo.git")
	require.Equal(t, expectedPath, report.TargetPath)
	require.Equal(t, "Repository 'demo' initialized at "+expectedPath+" with default branch 'main'", report.Message)
	require.Equal(t, [][]string{{"init", "--bare", "--quiet", expectedPath}}, executor.invocations)
	require.Equal(t, "ref: refs/heads/main\n", readHead(t, expectedPath))

	repository, openError := git.PlainOpen(expectedPath)
	require.NoError(t, openError)
	headReference, referenceError := repository.Storer.Reference("HEAD")
	require.NoError(t, referenceError)
	require.Equal(t, "refs/heads/main", headReference.Target().String())
}

func TestLocalProvisionerRefusesExistingTarget(t *testing.T) {
	baseDirectory := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(baseDirectory, "demo.git"), 0o755))

	executor := &goGitInitExecutor{}
	provisioner, creationError := provision.NewLocalProvisioner(executor, filesystem.OSFileSystem{})
	require.NoError(t, creationError)

	_, provisionError := provisioner.Provision(context.Background(), localParameters(baseDirectory))

	var existsError provision.RepositoryExistsError
	require.ErrorAs(t, provisionError, &existsError)
	require.Equal(t, filepath.Join(baseDirectory, "demo.git"), existsError.Path)
	require.Empty(t, executor.invocations)
}

func TestLocalProvisionerReportsGitFailure(t *testing.T) {
	gitFailure := errors.New("git: exit code 128")
	provisioner, creationError := provision.NewLocalProvisioner(&goGitInitExecutor{failure: gitFailure}, filesystem.OSFileSystem{})
	require.NoError(t, creationError)

	baseDirectory := t.TempDir()
	_, provisionError := provisioner.Provision(context.Background(), localParameters(baseDirectory))

	var initializationError provision.LocalInitializationError
	require.ErrorAs(t, provisionError, &initializationError)
	require.ErrorIs(t, provisionError, gitFailure)
	require.NoDirExists(t, filepath.Join(baseDirectory, "demo.git"))
}

func TestLocalProvisionerValidatesInput(t *testing.T) {
	provisioner, creationError := provision.NewLocalProvisioner(&goGitInitExecutor{}, filesystem.OSFileSystem{})
	require.NoError(t, creationError)

	parameters := localParameters(t.TempDir())
	parameters.RepositoryName = "../escape"

	_, provisionError := provisioner.Provision(context.Background(), parameters)

	var unsafeInputError provision.UnsafeInputError
	require.ErrorAs(t, provisionError, &unsafeInputError)
}

func TestNewLocalProvisionerRequiresCollaborators(t *testing.T) {
	_, missingExecutorError := provision.NewLocalProvisioner(nil, filesystem.OSFileSystem{})
	require.ErrorIs(t, missingExecutorError, provision.ErrGitExecutorNotConfigured)

	_, missingFileSystemError := provision.NewLocalProvisioner(&goGitInitExecutor{}, nil)
	require.ErrorIs(t, missingFileSystemError, provision.ErrFileSystemNotConfigured)
}

func TestLocalProvisionerWithGitBinary(t *testing.T) {
	if _, lookupError := exec.LookPath("git"); lookupError != nil {
		t.Skip("git not available")
	}

	shellExecutor, executorError := execshell.NewShellExecutor(zap.NewNop(), execshell.NewOSCommandRunner())
	require.NoError(t, executorError)
	provisioner, creationError := provision.NewLocalProvisioner(shellExecutor, filesystem.OSFileSystem{})
	require.NoError(t, creationError)

	baseDirectory := t.TempDir()
	parameters := localParameters(baseDirectory)
	parameters.DefaultBranch = "trunk"

	report, provisionError := provisioner.Provision(context.Background(), parameters)
	require.NoError(t, provisionError)
	require.Equal(t, "ref: refs/heads/trunk\n", readHead(t, report.TargetPath))

	_, statError := os.Stat(filepath.Join(report.TargetPath, "objects"))
	require.NoError(t, statError)
}
