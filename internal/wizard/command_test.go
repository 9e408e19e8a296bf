package wizard_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/initrepo/internal/profiles"
	"github.com/temirov/initrepo/internal/utils"
	"github.com/temirov/initrepo/internal/wizard"
)

func TestConfigureCommandSavesProfileToContextPath(testInstance *testing.T) {
	configurationPath := filepath.Join(testInstance.TempDir(), "nested", "config.toml")
	builder := wizard.CommandBuilder{
		Prompter: &scriptedPrompter{answers: []string{"edge", "git@edge", "/git", "main", ""}, confirmation: true},
	}

	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &strings.Builder{}
	command.SetOut(outputBuffer)
	command.SetErr(outputBuffer)
	command.SetContext(utils.NewCommandContextAccessor().WithConfigurationFilePath(context.Background(), configurationPath))
	command.SetArgs([]string{})

	require.NoError(testInstance, command.Execute())
	require.Contains(testInstance, outputBuffer.String(), "Host profile 'edge' saved.\n")

	document, loadError := profiles.NewStore(configurationPath).Load()
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "edge", document.DefaultProfile)
	require.Equal(testInstance, "git@edge", document.Hosts["edge"].Host)
}

func TestConfigureCommandRejectsArguments(testInstance *testing.T) {
	builder := wizard.CommandBuilder{Store: newTemporaryStore(testInstance), Prompter: &scriptedPrompter{}}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	command.SetOut(&strings.Builder{})
	command.SetErr(&strings.Builder{})
	command.SetArgs([]string{"unexpected"})

	require.Error(testInstance, command.Execute())
}
