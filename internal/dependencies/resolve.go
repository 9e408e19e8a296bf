// Package dependencies supplies production defaults for optional command collaborators.
package dependencies

import (
	"context"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/initrepo/internal/execshell"
	"github.com/temirov/initrepo/internal/filesystem"
	"github.com/temirov/initrepo/internal/profiles"
	pathutils "github.com/temirov/initrepo/internal/utils/path"
)

// ShellCommandExecutor runs external commands through the shell executor contract.
type ShellCommandExecutor interface {
	Execute(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// FileSystem exposes the filesystem operations used during provisioning.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	MkdirAll(path string, permissions fs.FileMode) error
	RemoveAll(path string) error
}

// ResolveShellExecutor returns the provided executor or constructs an os/exec-backed default.
func ResolveShellExecutor(existing ShellCommandExecutor, logger *zap.Logger, observer execshell.CommandEventObserver) (ShellCommandExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, execshell.WithCommandEventObserver(observer))
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing FileSystem) FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveHomeExpander returns the provided expander or one backed by the operating system.
func ResolveHomeExpander(existing *pathutils.HomeExpander) *pathutils.HomeExpander {
	if existing != nil {
		return existing
	}
	return pathutils.NewHomeExpander()
}

// ResolveProfileStore binds a profile store to the configured path or ~/.init-repo/config.toml.
func ResolveProfileStore(configurationFilePath string, expander *pathutils.HomeExpander) (*profiles.Store, error) {
	trimmedPath := strings.TrimSpace(configurationFilePath)
	if len(trimmedPath) > 0 {
		return profiles.NewStore(ResolveHomeExpander(expander).Expand(trimmedPath)), nil
	}

	defaultPath, defaultPathError := profiles.DefaultFilePath()
	if defaultPathError != nil {
		return nil, defaultPathError
	}
	return profiles.NewStore(defaultPath), nil
}
