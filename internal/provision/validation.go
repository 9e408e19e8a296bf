package provision

import (
	"strings"
	"unicode"
)

const (
	fieldRepositoryNameConstant = "repository name"
	fieldBaseDirectoryConstant  = "base directory"
	fieldDefaultBranchConstant  = "default branch"
	fieldHostConstant           = "host"

	reasonEmptyConstant              = "must not be empty"
	reasonPathSeparatorConstant      = "must not contain a path separator"
	reasonControlCharacterConstant   = "must not contain control characters"
	reasonLeadingDashConstant        = "must not start with '-'"
	reasonDotComponentConstant       = "must not be '.' or '..'"
	reasonWhitespaceConstant         = "must not contain whitespace"
	reasonDoubleDotConstant          = "must not contain '..'"
	reasonForbiddenCharacterConstant = "must not contain any of ~^:?*[\\"
	reasonLeadingSlashConstant       = "must not start with '/'"
	reasonTrailingSlashConstant      = "must not end with '/'"
	reasonTrailingDotConstant        = "must not end with '.'"
	reasonLockSuffixConstant         = "must not end with '.lock'"

	branchForbiddenCharactersConstant = "~^:?*[\\"
	pathSeparatorCharactersConstant   = "/\\"
	currentDirectoryNameConstant      = "."
	parentDirectoryNameConstant       = ".."
	leadingDashConstant               = "-"
	slashConstant                     = "/"
	lockSuffixConstant                = ".lock"
)

// ValidateRepositoryName rejects names that could escape the base directory or be read as options.
func ValidateRepositoryName(repositoryName string) error {
	switch {
	case len(repositoryName) == 0:
		return unsafeRepositoryName(repositoryName, reasonEmptyConstant)
	case strings.ContainsAny(repositoryName, pathSeparatorCharactersConstant):
		return unsafeRepositoryName(repositoryName, reasonPathSeparatorConstant)
	case containsControlCharacter(repositoryName):
		return unsafeRepositoryName(repositoryName, reasonControlCharacterConstant)
	case strings.HasPrefix(repositoryName, leadingDashConstant):
		return unsafeRepositoryName(repositoryName, reasonLeadingDashConstant)
	case repositoryName == currentDirectoryNameConstant || repositoryName == parentDirectoryNameConstant:
		return unsafeRepositoryName(repositoryName, reasonDotComponentConstant)
	}
	return nil
}

// ValidateBaseDirectory rejects base directories that mkdir or git could misread.
func ValidateBaseDirectory(baseDirectory string) error {
	switch {
	case len(baseDirectory) == 0:
		return UnsafeInputError{Field: fieldBaseDirectoryConstant, Value: baseDirectory, Reason: reasonEmptyConstant}
	case strings.HasPrefix(baseDirectory, leadingDashConstant):
		return UnsafeInputError{Field: fieldBaseDirectoryConstant, Value: baseDirectory, Reason: reasonLeadingDashConstant}
	case containsControlCharacter(baseDirectory):
		return UnsafeInputError{Field: fieldBaseDirectoryConstant, Value: baseDirectory, Reason: reasonControlCharacterConstant}
	}
	return nil
}

// ValidateBranchName applies the subset of git check-ref-format rules relevant to a single branch name.
func ValidateBranchName(branchName string) error {
	reason := ""
	switch {
	case len(branchName) == 0:
		reason = reasonEmptyConstant
	case containsControlCharacter(branchName):
		reason = reasonControlCharacterConstant
	case strings.IndexFunc(branchName, unicode.IsSpace) >= 0:
		reason = reasonWhitespaceConstant
	case strings.Contains(branchName, parentDirectoryNameConstant):
		reason = reasonDoubleDotConstant
	case strings.ContainsAny(branchName, branchForbiddenCharactersConstant):
		reason = reasonForbiddenCharacterConstant
	case strings.HasPrefix(branchName, leadingDashConstant):
		reason = reasonLeadingDashConstant
	case strings.HasPrefix(branchName, slashConstant):
		reason = reasonLeadingSlashConstant
	case strings.HasSuffix(branchName, slashConstant):
		reason = reasonTrailingSlashConstant
	case strings.HasSuffix(branchName, lockSuffixConstant):
		reason = reasonLockSuffixConstant
	case strings.HasSuffix(branchName, currentDirectoryNameConstant):
		reason = reasonTrailingDotConstant
	}
	if len(reason) > 0 {
		return UnsafeInputError{Field: fieldDefaultBranchConstant, Value: branchName, Reason: reason}
	}
	return nil
}

// ValidateHost rejects hosts that ssh would parse as an option or split into several words.
func ValidateHost(host string) error {
	reason := ""
	switch {
	case len(host) == 0:
		reason = reasonEmptyConstant
	case strings.HasPrefix(host, leadingDashConstant):
		reason = reasonLeadingDashConstant
	case containsControlCharacter(host):
		reason = reasonControlCharacterConstant
	case strings.IndexFunc(host, unicode.IsSpace) >= 0:
		reason = reasonWhitespaceConstant
	}
	if len(reason) > 0 {
		return UnsafeInputError{Field: fieldHostConstant, Value: host, Reason: reason}
	}
	return nil
}

func unsafeRepositoryName(repositoryName string, reason string) error {
	return UnsafeInputError{Field: fieldRepositoryNameConstant, Value: repositoryName, Reason: reason}
}

func containsControlCharacter(value string) bool {
	return strings.IndexFunc(value, unicode.IsControl) >= 0
}
