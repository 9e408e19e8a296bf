package wizard

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/initrepo/internal/dependencies"
	"github.com/temirov/initrepo/internal/ui"
	"github.com/temirov/initrepo/internal/utils"
	pathutils "github.com/temirov/initrepo/internal/utils/path"
)

const (
	commandUseConstant              = "configure"
	commandShortDescriptionConstant = "Create or update a host profile interactively"
	commandLongDescriptionConstant  = "configure asks for a profile name, host, repository base directory, default branch and optional SSH key, then stores the profile in the configuration file. Existing values are offered as defaults."
	profileSavedTemplateConstant    = "Host profile '%s' saved."
)

// CommandBuilder assembles the configure cobra command.
type CommandBuilder struct {
	Store        ProfileStore
	Prompter     Prompter
	HomeExpander *pathutils.HomeExpander
}

// Build constructs the cobra command for the profile wizard.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	store, storeError := builder.resolveStore(command)
	if storeError != nil {
		return storeError
	}

	prompter := builder.Prompter
	if prompter == nil {
		prompter = NewSurveyPrompter()
	}

	profileWizard, wizardError := NewWizard(store, prompter, command.OutOrStdout())
	if wizardError != nil {
		return wizardError
	}

	profileName, runError := profileWizard.Run()
	if runError != nil {
		return runError
	}
	return ui.NewSuccessPrinter(command.OutOrStdout()).Println(fmt.Sprintf(profileSavedTemplateConstant, profileName))
}

func (builder *CommandBuilder) resolveStore(command *cobra.Command) (ProfileStore, error) {
	if builder.Store != nil {
		return builder.Store, nil
	}
	configurationFilePath, _ := utils.NewCommandContextAccessor().ConfigurationFilePath(command.Context())
	return dependencies.ResolveProfileStore(configurationFilePath, dependencies.ResolveHomeExpander(builder.HomeExpander))
}
