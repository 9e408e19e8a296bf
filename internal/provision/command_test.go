package provision_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/initrepo/internal/execshell"
	"github.com/temirov/initrepo/internal/profiles"
	"github.com/temirov/initrepo/internal/provision"
	"github.com/temirov/initrepo/internal/utils"
)

func TestCommandBuilderProvisionsWithFlags(testInstance *testing.T) {
	executor := &recordingExecutor{}
	builder := provision.CommandBuilder{
		LoggerProvider:        func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: provision.DefaultSecureShellConfiguration,
		ProfileLoader:         &stubProfileLoader{document: testDocument()},
		Executor:              executor,
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &strings.Builder{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetContext(context.Background())
	command.SetArgs([]string{"demo", "--profile", "lab", "--default-branch", "trunk", "--ssh-key", "/keys/lab"})

	require.NoError(testInstance, command.Execute())
	require.Equal(testInstance, "Repository 'demo' created on lab (profile lab) at ~/repos/demo.git with default branch 'trunk'\n", outputBuffer.String())

	require.Len(testInstance, executor.commands, 1)
	require.Equal(testInstance, []string{"-i", "/keys/lab", "-o", "BatchMode=yes", "lab"}, executor.commands[0].Details.Arguments[:5])
}

func TestCommandBuilderRequiresRepositoryName(testInstance *testing.T) {
	builder := provision.CommandBuilder{ProfileLoader: &stubProfileLoader{}, Executor: &recordingExecutor{}}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetOut(&strings.Builder{})
	command.SetErr(&strings.Builder{})
	command.SetArgs([]string{})

	require.Error(testInstance, command.Execute())
}

func TestCommandBuilderReadsProfileStoreFromContext(testInstance *testing.T) {
	configurationPath := filepath.Join(testInstance.TempDir(), "config.toml")
	store := profiles.NewStore(configurationPath)
	document := profiles.Document{DefaultProfile: "edge"}
	document.Upsert("edge", profiles.HostProfile{Host: "git@edge", BaseDirectory: "/git", DefaultBranch: "main"})
	require.NoError(testInstance, store.Save(document))

	executor := &recordingExecutor{}
	builder := provision.CommandBuilder{Executor: executor}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &strings.Builder{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetContext(utils.NewCommandContextAccessor().WithConfigurationFilePath(context.Background(), configurationPath))
	command.SetArgs([]string{"service"})

	require.NoError(testInstance, command.Execute())
	require.Contains(testInstance, outputBuffer.String(), "git@edge (profile edge)")
	require.Equal(testInstance, execshell.CommandSecureShell, executor.commands[0].Name)
}

func TestCommandBuilderReturnsClassifiedErrors(testInstance *testing.T) {
	builder := provision.CommandBuilder{ProfileLoader: &stubProfileLoader{}, Executor: &recordingExecutor{}}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetOut(&strings.Builder{})
	command.SetErr(&strings.Builder{})
	command.SetContext(context.Background())
	command.SetArgs([]string{"demo", "--profile", "prod"})

	executionError := command.Execute()
	require.ErrorAs(testInstance, executionError, &provision.UnknownProfileError{})
	require.Equal(testInstance, "unknown host profile 'prod' (no profiles configured)", executionError.Error())
}
