package provision

import (
	"strings"

	"github.com/temirov/initrepo/internal/profiles"
	pathutils "github.com/temirov/initrepo/internal/utils/path"
)

// DefaultBranchName is used when neither an override nor the profile names a branch.
const DefaultBranchName = "master"

// Request carries the repository name and the optional command-line overrides.
type Request struct {
	RepositoryName string
	ProfileName    string
	Host           string
	BaseDirectory  string
	DefaultBranch  string
	SecureShellKey string
	Local          bool
}

// EffectiveParameters are the fully resolved values for one provisioning request.
type EffectiveParameters struct {
	RepositoryName string
	ProfileName    string
	Host           string
	BaseDirectory  string
	DefaultBranch  string
	SecureShellKey string
}

// Target reports where the parameters point.
func (parameters EffectiveParameters) Target() Target {
	return Target{ProfileName: parameters.ProfileName, Host: parameters.Host}
}

// Resolver merges request overrides with stored host profiles.
type Resolver struct {
	homeExpander *pathutils.HomeExpander
}

// NewResolver constructs a Resolver that expands local ~ paths with the provided expander.
func NewResolver(homeExpander *pathutils.HomeExpander) Resolver {
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}
	return Resolver{homeExpander: homeExpander}
}

// Resolve selects a profile and applies explicit value > profile value > default for every field.
//
// The profile is chosen from Request.ProfileName, falling back to the
// document's default profile. Remote requests without any profile must carry
// a host override.
func (resolver Resolver) Resolve(request Request, document profiles.Document) (EffectiveParameters, error) {
	profileName := strings.TrimSpace(request.ProfileName)
	if len(profileName) == 0 {
		profileName = strings.TrimSpace(document.DefaultProfile)
	}
	hostOverride := strings.TrimSpace(request.Host)

	var profile profiles.HostProfile
	if len(profileName) > 0 {
		selectedProfile, profileError := document.RequireProfile(profileName)
		if profileError != nil {
			return EffectiveParameters{}, profileError
		}
		profile = selectedProfile
	} else if !request.Local && len(hostOverride) == 0 {
		return EffectiveParameters{}, MissingHostError{}
	}

	parameters := EffectiveParameters{
		RepositoryName: strings.TrimSpace(request.RepositoryName),
		ProfileName:    profileName,
		BaseDirectory:  firstNonEmpty(request.BaseDirectory, profile.BaseDirectory),
		DefaultBranch:  firstNonEmpty(request.DefaultBranch, profile.DefaultBranch, DefaultBranchName),
	}

	if len(parameters.BaseDirectory) == 0 {
		return EffectiveParameters{}, MissingBaseDirectoryError{ProfileName: profileName}
	}

	if request.Local {
		parameters.BaseDirectory = resolver.homeExpander.Expand(parameters.BaseDirectory)
		return parameters, nil
	}

	parameters.Host = firstNonEmpty(hostOverride, profile.Host)
	if len(parameters.Host) == 0 {
		return EffectiveParameters{}, MissingHostError{ProfileName: profileName}
	}

	if secureShellKey := firstNonEmpty(request.SecureShellKey, profile.SecureShellKey); len(secureShellKey) > 0 {
		parameters.SecureShellKey = resolver.homeExpander.Expand(secureShellKey)
	}

	return parameters, nil
}

func firstNonEmpty(candidates ...string) string {
	for _, candidate := range candidates {
		if trimmedCandidate := strings.TrimSpace(candidate); len(trimmedCandidate) > 0 {
			return trimmedCandidate
		}
	}
	return ""
}
