package hosts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/initrepo/internal/dependencies"
	"github.com/temirov/initrepo/internal/profiles"
	"github.com/temirov/initrepo/internal/ui"
	"github.com/temirov/initrepo/internal/utils"
	"github.com/temirov/initrepo/internal/utils/flags"
	pathutils "github.com/temirov/initrepo/internal/utils/path"
)

const (
	listCommandUseConstant                = "list-hosts"
	listCommandShortDescriptionConstant   = "List configured host profiles"
	listCommandLongDescriptionConstant    = "list-hosts prints every stored host profile. The default profile is marked with *."
	outputFlagNameConstant                = "output"
	outputFlagDescriptionConstant         = "Output format."
	deleteCommandUseConstant              = "delete-host <profile_name>"
	deleteCommandShortDescriptionConstant = "Delete a configured host profile"
	deleteCommandLongDescriptionConstant  = "delete-host removes the named profile from the configuration file. Deleting the default profile leaves no default selected."
	profileDeletedTemplateConstant        = "Host profile '%s' deleted."
	defaultClearedTemplateConstant        = "Host profile '%s' was the default; no default profile is set now."
	profileDeletedLogMessageConstant      = "Deleted host profile"
	profileNameLogFieldConstant           = "profile"
	configurationPathLogFieldConstant     = "config_path"
)

// ProfileStore loads and persists the profile document.
type ProfileStore interface {
	Load() (profiles.Document, error)
	Save(document profiles.Document) error
}

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ListCommandBuilder assembles the list-hosts cobra command.
type ListCommandBuilder struct {
	Store        ProfileStore
	HomeExpander *pathutils.HomeExpander
}

// Build constructs the list-hosts command.
func (builder *ListCommandBuilder) Build() (*cobra.Command, error) {
	outputFormat := flags.NewChoiceValue(OutputFormatTable, []string{OutputFormatTable, OutputFormatYAML})

	command := &cobra.Command{
		Use:   listCommandUseConstant,
		Short: listCommandShortDescriptionConstant,
		Long:  listCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			store, storeError := resolveStore(command, builder.Store, builder.HomeExpander)
			if storeError != nil {
				return storeError
			}
			document, loadError := store.Load()
			if loadError != nil && !errors.Is(loadError, profiles.ErrConfigurationNotFound) {
				return loadError
			}
			return RenderProfiles(command.OutOrStdout(), document, outputFormat.String())
		},
	}

	command.Flags().Var(outputFormat, outputFlagNameConstant, outputFormat.Usage(outputFlagDescriptionConstant))

	return command, nil
}

// DeleteCommandBuilder assembles the delete-host cobra command.
type DeleteCommandBuilder struct {
	LoggerProvider LoggerProvider
	Store          ProfileStore
	HomeExpander   *pathutils.HomeExpander
}

// Build constructs the delete-host command.
func (builder *DeleteCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   deleteCommandUseConstant,
		Short: deleteCommandShortDescriptionConstant,
		Long:  deleteCommandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *DeleteCommandBuilder) run(command *cobra.Command, arguments []string) error {
	profileName := strings.TrimSpace(arguments[0])

	store, storeError := resolveStore(command, builder.Store, builder.HomeExpander)
	if storeError != nil {
		return storeError
	}

	document, loadError := store.Load()
	if loadError != nil {
		return loadError
	}

	wasDefault := document.DefaultProfile == profileName
	if deleteError := document.Delete(profileName); deleteError != nil {
		return deleteError
	}
	if saveError := store.Save(document); saveError != nil {
		return saveError
	}

	builder.resolveLogger().Info(profileDeletedLogMessageConstant,
		zap.String(profileNameLogFieldConstant, profileName),
		zap.String(configurationPathLogFieldConstant, describeStorePath(store)),
	)

	printer := ui.NewSuccessPrinter(command.OutOrStdout())
	if printError := printer.Println(fmt.Sprintf(profileDeletedTemplateConstant, profileName)); printError != nil {
		return printError
	}
	if wasDefault {
		_, writeError := fmt.Fprintf(command.OutOrStdout(), defaultClearedTemplateConstant+"\n", profileName)
		return writeError
	}
	return nil
}

func (builder *DeleteCommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveStore(command *cobra.Command, existing ProfileStore, homeExpander *pathutils.HomeExpander) (ProfileStore, error) {
	if existing != nil {
		return existing, nil
	}
	configurationFilePath, _ := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context())
	return dependencies.ResolveProfileStore(configurationFilePath, dependencies.ResolveHomeExpander(homeExpander))
}

type pathDescriber interface {
	Path() string
}

func describeStorePath(store ProfileStore) string {
	if describer, ok := store.(pathDescriber); ok {
		return describer.Path()
	}
	return ""
}
