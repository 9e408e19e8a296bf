package profiles

import (
	"fmt"
	"sort"
	"strings"
)

const (
	unknownProfileErrorTemplateConstant      = "unknown host profile '%s' (%s)"
	knownProfilesDescriptionTemplateConstant = "known profiles: %s"
	noProfilesDescriptionConstant            = "no profiles configured"
	knownProfilesSeparatorConstant           = ", "
)

// HostProfile describes where bare repositories are created for one named host.
type HostProfile struct {
	Host           string `toml:"host"`
	BaseDirectory  string `toml:"base_dir"`
	DefaultBranch  string `toml:"default_branch"`
	SecureShellKey string `toml:"ssh_key,omitempty"`
}

// Document is the profile portion of the configuration file.
type Document struct {
	DefaultProfile string                 `toml:"default_profile"`
	Hosts          map[string]HostProfile `toml:"hosts"`
}

// UnknownProfileError reports a profile selector that does not match a stored profile.
type UnknownProfileError struct {
	ProfileName   string
	KnownProfiles []string
}

// Error describes the missing profile and the available alternatives.
func (failure UnknownProfileError) Error() string {
	availability := noProfilesDescriptionConstant
	if len(failure.KnownProfiles) > 0 {
		availability = fmt.Sprintf(knownProfilesDescriptionTemplateConstant, strings.Join(failure.KnownProfiles, knownProfilesSeparatorConstant))
	}
	return fmt.Sprintf(unknownProfileErrorTemplateConstant, failure.ProfileName, availability)
}

// Profile returns the named profile.
func (document Document) Profile(profileName string) (HostProfile, bool) {
	profile, exists := document.Hosts[profileName]
	return profile, exists
}

// RequireProfile returns the named profile or an UnknownProfileError.
func (document Document) RequireProfile(profileName string) (HostProfile, error) {
	profile, exists := document.Profile(profileName)
	if !exists {
		return HostProfile{}, UnknownProfileError{ProfileName: profileName, KnownProfiles: document.Names()}
	}
	return profile, nil
}

// Names lists stored profile names in lexical order.
func (document Document) Names() []string {
	names := make([]string, 0, len(document.Hosts))
	for profileName := range document.Hosts {
		names = append(names, profileName)
	}
	sort.Strings(names)
	return names
}

// Upsert inserts or replaces the named profile.
func (document *Document) Upsert(profileName string, profile HostProfile) {
	if document.Hosts == nil {
		document.Hosts = make(map[string]HostProfile)
	}
	document.Hosts[profileName] = profile
}

// Delete removes the named profile and clears the default selection when it pointed at it.
func (document *Document) Delete(profileName string) error {
	if _, exists := document.Hosts[profileName]; !exists {
		return UnknownProfileError{ProfileName: profileName, KnownProfiles: document.Names()}
	}
	delete(document.Hosts, profileName)
	if document.DefaultProfile == profileName {
		document.DefaultProfile = ""
	}
	return nil
}
