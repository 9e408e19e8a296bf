package provision

import (
	"fmt"
	"strings"
	"time"

	"github.com/temirov/initrepo/internal/profiles"
)

const (
	adHocProfileLabelConstant                 = "ad hoc"
	targetDescriptionTemplateConstant         = "%s (profile %s)"
	adHocTargetDescriptionTemplateConstant    = "%s (%s)"
	missingHostMessageConstant                = "no host profile selected and no --host given; run `init-repo configure` or pass --host"
	missingHostForProfileTemplateConstant     = "host profile '%s' does not define a host; pass --host"
	missingBaseDirectoryTemplateConstant      = "no base directory resolved for %s; pass --base-dir"
	missingBaseDirectoryForProfileConstant    = "profile '%s'"
	unsafeInputTemplateConstant               = "unsafe %s %q: %s"
	remoteCommandFailedTemplateConstant       = "remote command failed on %s with exit code %d%s"
	remoteCommandFailedDetailTemplateConstant = ": %s"
	timeoutTemplateConstant                   = "timed out after %s waiting for %s"
	remoteStateUnverifiedSuffixConstant       = "; remote repository state is unverified"
	transportFailureTemplateConstant          = "unable to reach %s: %v"
	repositoryExistsTemplateConstant          = "repository already exists at %s"
	localInitializationFailedTemplateConstant = "unable to initialize repository at %s: %v"
)

// UnknownProfileError reports a profile selector that matches no stored profile.
type UnknownProfileError = profiles.UnknownProfileError

// Target identifies where a provisioning request was sent.
type Target struct {
	ProfileName string
	Host        string
}

// String renders the host with its profile, or marks the request as ad hoc.
func (target Target) String() string {
	if len(target.ProfileName) == 0 {
		return fmt.Sprintf(adHocTargetDescriptionTemplateConstant, target.Host, adHocProfileLabelConstant)
	}
	return fmt.Sprintf(targetDescriptionTemplateConstant, target.Host, target.ProfileName)
}

// MissingHostError reports a remote request with neither a profile nor a host override.
type MissingHostError struct {
	ProfileName string
}

// Error describes how to supply a host.
func (failure MissingHostError) Error() string {
	if len(failure.ProfileName) > 0 {
		return fmt.Sprintf(missingHostForProfileTemplateConstant, failure.ProfileName)
	}
	return missingHostMessageConstant
}

// MissingBaseDirectoryError reports that neither the profile nor an override supplied a base directory.
type MissingBaseDirectoryError struct {
	ProfileName string
}

// Error describes how to supply a base directory.
func (failure MissingBaseDirectoryError) Error() string {
	subject := adHocProfileLabelConstant
	if len(failure.ProfileName) > 0 {
		subject = fmt.Sprintf(missingBaseDirectoryForProfileConstant, failure.ProfileName)
	}
	return fmt.Sprintf(missingBaseDirectoryTemplateConstant, subject)
}

// UnsafeInputError reports a value rejected before any command is built.
type UnsafeInputError struct {
	Field  string
	Value  string
	Reason string
}

// Error names the rejected field, value and reason.
func (failure UnsafeInputError) Error() string {
	return fmt.Sprintf(unsafeInputTemplateConstant, failure.Field, failure.Value, failure.Reason)
}

// RemoteCommandFailedError reports a remote command that exited with a non-zero status.
type RemoteCommandFailedError struct {
	Target        Target
	ExitCode      int
	StandardError string
}

// Error includes the remote standard error stream.
func (failure RemoteCommandFailedError) Error() string {
	detail := ""
	if trimmedStandardError := strings.TrimSpace(failure.StandardError); len(trimmedStandardError) > 0 {
		detail = fmt.Sprintf(remoteCommandFailedDetailTemplateConstant, trimmedStandardError)
	}
	return fmt.Sprintf(remoteCommandFailedTemplateConstant, failure.Target, failure.ExitCode, detail)
}

// TimeoutError reports an SSH invocation terminated by its deadline.
type TimeoutError struct {
	Target  Target
	Timeout time.Duration
}

// Error reports the elapsed bound and the host that did not answer.
func (failure TimeoutError) Error() string {
	return fmt.Sprintf(timeoutTemplateConstant, failure.Timeout, failure.Target.Host) + remoteStateUnverifiedSuffixConstant
}

// TransportError reports an SSH client that could not be started or awaited.
type TransportError struct {
	Target Target
	Cause  error
}

// Error wraps the underlying cause.
func (failure TransportError) Error() string {
	return fmt.Sprintf(transportFailureTemplateConstant, failure.Target, failure.Cause) + remoteStateUnverifiedSuffixConstant
}

// Unwrap exposes the underlying cause.
func (failure TransportError) Unwrap() error {
	return failure.Cause
}

// RepositoryExistsError reports a local target path that already exists.
type RepositoryExistsError struct {
	Path string
}

// Error names the existing path.
func (failure RepositoryExistsError) Error() string {
	return fmt.Sprintf(repositoryExistsTemplateConstant, failure.Path)
}

// LocalInitializationError reports a failure while creating a local bare repository.
type LocalInitializationError struct {
	Path  string
	Cause error
}

// Error wraps the underlying cause.
func (failure LocalInitializationError) Error() string {
	return fmt.Sprintf(localInitializationFailedTemplateConstant, failure.Path, failure.Cause)
}

// Unwrap exposes the underlying cause.
func (failure LocalInitializationError) Unwrap() error {
	return failure.Cause
}
