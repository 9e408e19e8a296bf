package wizard

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/initrepo/internal/profiles"
	"github.com/temirov/initrepo/internal/provision"
)

const (
	wizardHeaderConstant                 = "Configuration setup: create or modify a host profile"
	profileNamePromptConstant            = "Profile name (a new profile is created if it does not exist)"
	hostPromptConstant                   = "Host (user@host, address, or ssh config alias)"
	baseDirectoryPromptConstant          = "Repository base directory"
	defaultBranchPromptConstant          = "Default Git branch"
	secureShellKeyPromptConstant         = "SSH key path (optional, '-' clears)"
	defaultProfilePromptTemplateConstant = "Use '%s' as the default profile?"
	defaultBaseDirectoryConstant         = "/home/git/repos"
	clearValueAnswerConstant             = "-"
	profileNameRequiredMessageConstant   = "profile name is required"
	profileStoreMissingMessageConstant   = "profile store not configured"
	prompterMissingMessageConstant       = "prompter not configured"
	promptFailureTemplateConstant        = "prompt %q: %w"
	saveFailureTemplateConstant          = "save host profile '%s': %w"
)

var (
	// ErrProfileNameRequired indicates the profile name prompt was answered with an empty value.
	ErrProfileNameRequired = errors.New(profileNameRequiredMessageConstant)
	// ErrProfileStoreNotConfigured indicates the wizard was constructed without a store.
	ErrProfileStoreNotConfigured = errors.New(profileStoreMissingMessageConstant)
	// ErrPrompterNotConfigured indicates the wizard was constructed without a prompter.
	ErrPrompterNotConfigured = errors.New(prompterMissingMessageConstant)
)

// ProfileStore loads and persists the profile document.
type ProfileStore interface {
	LoadOrEmpty() (profiles.Document, error)
	Save(document profiles.Document) error
}

// Wizard runs one load, prompt, merge, save transaction.
type Wizard struct {
	store    ProfileStore
	prompter Prompter
	output   io.Writer
}

// NewWizard constructs a Wizard.
func NewWizard(store ProfileStore, prompter Prompter, output io.Writer) (*Wizard, error) {
	if store == nil {
		return nil, ErrProfileStoreNotConfigured
	}
	if prompter == nil {
		return nil, ErrPrompterNotConfigured
	}
	if output == nil {
		output = io.Discard
	}
	return &Wizard{store: store, prompter: prompter, output: output}, nil
}

// Run prompts for one profile, stores it and returns its name.
//
// Existing values are offered as defaults. Nothing is written unless every
// prompt succeeds and every answer passes validation.
func (wizard *Wizard) Run() (string, error) {
	document, loadError := wizard.store.LoadOrEmpty()
	if loadError != nil {
		return "", loadError
	}

	fmt.Fprintln(wizard.output, wizardHeaderConstant)

	profileName, nameError := wizard.ask(profileNamePromptConstant, "", true)
	if nameError != nil {
		return "", nameError
	}
	if len(profileName) == 0 {
		return "", ErrProfileNameRequired
	}

	existing, _ := document.Profile(profileName)
	profile, profileError := wizard.promptProfile(existing)
	if profileError != nil {
		return "", profileError
	}

	useAsDefault, confirmError := wizard.prompter.Confirm(
		fmt.Sprintf(defaultProfilePromptTemplateConstant, profileName),
		len(document.DefaultProfile) == 0 || document.DefaultProfile == profileName,
	)
	if confirmError != nil {
		return "", fmt.Errorf(promptFailureTemplateConstant, defaultProfilePromptTemplateConstant, confirmError)
	}

	document.Upsert(profileName, profile)
	switch {
	case useAsDefault:
		document.DefaultProfile = profileName
	case document.DefaultProfile == profileName:
		document.DefaultProfile = ""
	}

	if saveError := wizard.store.Save(document); saveError != nil {
		return "", fmt.Errorf(saveFailureTemplateConstant, profileName, saveError)
	}

	return profileName, nil
}

func (wizard *Wizard) promptProfile(existing profiles.HostProfile) (profiles.HostProfile, error) {
	host, hostError := wizard.ask(hostPromptConstant, existing.Host, true)
	if hostError != nil {
		return profiles.HostProfile{}, hostError
	}
	if validationError := provision.ValidateHost(host); validationError != nil {
		return profiles.HostProfile{}, validationError
	}

	baseDirectory, baseDirectoryError := wizard.ask(baseDirectoryPromptConstant, valueOrDefault(existing.BaseDirectory, defaultBaseDirectoryConstant), true)
	if baseDirectoryError != nil {
		return profiles.HostProfile{}, baseDirectoryError
	}
	if validationError := provision.ValidateBaseDirectory(baseDirectory); validationError != nil {
		return profiles.HostProfile{}, validationError
	}

	defaultBranch, branchError := wizard.ask(defaultBranchPromptConstant, valueOrDefault(existing.DefaultBranch, provision.DefaultBranchName), true)
	if branchError != nil {
		return profiles.HostProfile{}, branchError
	}
	if validationError := provision.ValidateBranchName(defaultBranch); validationError != nil {
		return profiles.HostProfile{}, validationError
	}

	secureShellKey, keyError := wizard.ask(secureShellKeyPromptConstant, existing.SecureShellKey, false)
	if keyError != nil {
		return profiles.HostProfile{}, keyError
	}
	if secureShellKey == clearValueAnswerConstant {
		secureShellKey = ""
	}

	return profiles.HostProfile{
		Host:           host,
		BaseDirectory:  baseDirectory,
		DefaultBranch:  defaultBranch,
		SecureShellKey: secureShellKey,
	}, nil
}

func (wizard *Wizard) ask(message string, defaultValue string, required bool) (string, error) {
	answer, askError := wizard.prompter.Ask(message, defaultValue, required)
	if askError != nil {
		return "", fmt.Errorf(promptFailureTemplateConstant, message, askError)
	}
	return strings.TrimSpace(answer), nil
}

func valueOrDefault(value string, fallback string) string {
	if len(strings.TrimSpace(value)) == 0 {
		return fallback
	}
	return value
}
