package provision

import (
	"strings"
	"time"
)

const (
	defaultSecureShellExecutableConstant = "ssh"
	defaultSecureShellTimeoutConstant    = 10 * time.Second
	defaultSecureShellOptionConstant     = "BatchMode=yes"
	secureShellIdentityFlagConstant      = "-i"
	secureShellOptionFlagConstant        = "-o"
)

// SecureShellConfiguration captures how the ssh client is invoked.
type SecureShellConfiguration struct {
	Executable string        `mapstructure:"executable"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Options    []string      `mapstructure:"options"`
}

// DefaultSecureShellConfiguration returns the client, timeout and options used when nothing is configured.
func DefaultSecureShellConfiguration() SecureShellConfiguration {
	return SecureShellConfiguration{
		Executable: defaultSecureShellExecutableConstant,
		Timeout:    defaultSecureShellTimeoutConstant,
		Options:    []string{defaultSecureShellOptionConstant},
	}
}

// Sanitize trims values and fills unset fields from the defaults.
func (configuration SecureShellConfiguration) Sanitize() SecureShellConfiguration {
	defaults := DefaultSecureShellConfiguration()
	sanitized := SecureShellConfiguration{
		Executable: strings.TrimSpace(configuration.Executable),
		Timeout:    configuration.Timeout,
	}
	if len(sanitized.Executable) == 0 {
		sanitized.Executable = defaults.Executable
	}
	if sanitized.Timeout <= 0 {
		sanitized.Timeout = defaults.Timeout
	}
	for _, option := range configuration.Options {
		if trimmedOption := strings.TrimSpace(option); len(trimmedOption) > 0 {
			sanitized.Options = append(sanitized.Options, trimmedOption)
		}
	}
	return sanitized
}

// buildArguments renders ssh [-i key] [-o option]... host command.
func (configuration SecureShellConfiguration) buildArguments(parameters EffectiveParameters, remoteCommand RemoteCommand) []string {
	arguments := make([]string, 0, 2*len(configuration.Options)+4)
	if len(parameters.SecureShellKey) > 0 {
		arguments = append(arguments, secureShellIdentityFlagConstant, parameters.SecureShellKey)
	}
	for _, option := range configuration.Options {
		arguments = append(arguments, secureShellOptionFlagConstant, option)
	}
	return append(arguments, parameters.Host, remoteCommand.Script)
}
