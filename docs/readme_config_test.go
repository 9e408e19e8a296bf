package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/initrepo/internal/profiles"
	"github.com/temirov/initrepo/internal/provision"
	"github.com/temirov/initrepo/internal/utils"
)

const (
	readmeFileNameConstant           = "README.md"
	tomlFenceStartConstant           = "```toml"
	fenceEndConstant                 = "```"
	configHeaderMarkerConstant       = "# config.toml"
	readmeSnippetFileNameConstant    = "config.toml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing toml fence start"
	missingEndFenceMessageConstant   = "README example missing toml fence end"
)

type readmeApplicationConfiguration struct {
	Common struct {
		LogLevel  string `mapstructure:"log_level"`
		LogFormat string `mapstructure:"log_format"`
	} `mapstructure:"common"`
	SecureShell provision.SecureShellConfiguration `mapstructure:"ssh"`
}

func extractConfigurationSnippet(testInstance *testing.T) string {
	testInstance.Helper()
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], tomlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	remainingText := contentText[headerIndex:]
	fenceEndRelativeIndex := strings.Index(remainingText, fenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)
	fenceEndIndex := headerIndex + fenceEndRelativeIndex

	return strings.TrimSpace(contentText[fenceStartIndex+len(tomlFenceStartConstant) : fenceEndIndex])
}

func TestReadmeConfigurationParses(testInstance *testing.T) {
	snippetPath := filepath.Join(testInstance.TempDir(), readmeSnippetFileNameConstant)
	require.NoError(testInstance, os.WriteFile(snippetPath, []byte(extractConfigurationSnippet(testInstance)), 0o600))

	document, loadError := profiles.NewStore(snippetPath).Load()
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "prod", document.DefaultProfile)
	require.Equal(testInstance, []string{"lab", "prod"}, document.Names())
	for _, profileName := range document.Names() {
		profile := document.Hosts[profileName]
		require.NoError(testInstance, provision.ValidateHost(profile.Host), profileName)
		require.NoError(testInstance, provision.ValidateBaseDirectory(profile.BaseDirectory), profileName)
		require.NoError(testInstance, provision.ValidateBranchName(profile.DefaultBranch), profileName)
	}

	loader := utils.NewConfigurationLoader("config", "toml", "READMEINITREPO", nil)
	var applicationConfiguration readmeApplicationConfiguration
	_, configurationError := loader.LoadConfiguration(snippetPath, nil, &applicationConfiguration)
	require.NoError(testInstance, configurationError)
	require.Equal(testInstance, "warn", applicationConfiguration.Common.LogLevel)
	require.Equal(testInstance, "console", applicationConfiguration.Common.LogFormat)
	require.Equal(testInstance, provision.DefaultSecureShellConfiguration(), applicationConfiguration.SecureShell)
	require.Equal(testInstance, 10*time.Second, applicationConfiguration.SecureShell.Timeout)
}
