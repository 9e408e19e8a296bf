package profiles

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultDirectoryName is the per-user configuration directory under the home directory.
	DefaultDirectoryName = ".init-repo"
	// DefaultFileName is the configuration file name inside DefaultDirectoryName.
	DefaultFileName = "config.toml"

	defaultProfileKeyConstant                   = "default_profile"
	hostsKeyConstant                            = "hosts"
	temporaryFileSuffixConstant                 = ".tmp"
	configurationDirectoryPermissionsConstant   = 0o755
	configurationFilePermissionsConstant        = 0o600
	configurationNotFoundMessageConstant        = "configuration file not found"
	configurationNotFoundHintTemplateConstant   = "%w: %s (run `init-repo configure` to create a host profile)"
	configurationReadErrorTemplateConstant      = "unable to read configuration %s: %w"
	configurationParseErrorTemplateConstant     = "unable to parse configuration %s: %w"
	configurationEncodeErrorTemplateConstant    = "unable to encode configuration: %w"
	configurationWriteErrorTemplateConstant     = "unable to write configuration %s: %w"
	configurationDirectoryErrorTemplateConstant = "unable to create configuration directory %s: %w"
	homeDirectoryErrorTemplateConstant          = "unable to resolve home directory: %w"
)

// ErrConfigurationNotFound indicates the configuration file does not exist.
var ErrConfigurationNotFound = errors.New(configurationNotFoundMessageConstant)

// Store reads and writes the profile document kept in one configuration file.
//
// Writes are last-writer-wins; concurrent invocations are not coordinated.
type Store struct {
	filePath string
}

// NewStore binds a Store to the configuration file at filePath.
func NewStore(filePath string) *Store {
	return &Store{filePath: filePath}
}

// DefaultFilePath returns ~/.init-repo/config.toml for the current user.
func DefaultFilePath() (string, error) {
	homeDirectory, homeError := os.UserHomeDir()
	if homeError != nil {
		return "", fmt.Errorf(homeDirectoryErrorTemplateConstant, homeError)
	}
	return filepath.Join(homeDirectory, DefaultDirectoryName, DefaultFileName), nil
}

// Path returns the configuration file location.
func (store *Store) Path() string {
	return store.filePath
}

// Load reads the profile document; a missing file yields ErrConfigurationNotFound.
func (store *Store) Load() (Document, error) {
	fileContents, readError := os.ReadFile(store.filePath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return Document{}, fmt.Errorf(configurationNotFoundHintTemplateConstant, ErrConfigurationNotFound, store.filePath)
		}
		return Document{}, fmt.Errorf(configurationReadErrorTemplateConstant, store.filePath, readError)
	}

	var document Document
	if _, decodeError := toml.Decode(string(fileContents), &document); decodeError != nil {
		return Document{}, fmt.Errorf(configurationParseErrorTemplateConstant, store.filePath, decodeError)
	}
	if document.Hosts == nil {
		document.Hosts = make(map[string]HostProfile)
	}
	return document, nil
}

// LoadOrEmpty behaves like Load but treats a missing file as an empty document.
func (store *Store) LoadOrEmpty() (Document, error) {
	document, loadError := store.Load()
	if errors.Is(loadError, ErrConfigurationNotFound) {
		return Document{Hosts: make(map[string]HostProfile)}, nil
	}
	return document, loadError
}

// Save replaces the profile portion of the configuration file.
//
// The file is written to a sibling temporary file and renamed into place.
func (store *Store) Save(document Document) error {
	preservedSections, readError := store.readRawSections()
	if readError != nil {
		return readError
	}

	delete(preservedSections, defaultProfileKeyConstant)
	delete(preservedSections, hostsKeyConstant)
	if len(document.DefaultProfile) > 0 {
		preservedSections[defaultProfileKeyConstant] = document.DefaultProfile
	}
	if len(document.Hosts) > 0 {
		preservedSections[hostsKeyConstant] = document.Hosts
	}

	var encodedDocument bytes.Buffer
	if encodeError := toml.NewEncoder(&encodedDocument).Encode(preservedSections); encodeError != nil {
		return fmt.Errorf(configurationEncodeErrorTemplateConstant, encodeError)
	}

	configurationDirectory := filepath.Dir(store.filePath)
	if directoryError := os.MkdirAll(configurationDirectory, configurationDirectoryPermissionsConstant); directoryError != nil {
		return fmt.Errorf(configurationDirectoryErrorTemplateConstant, configurationDirectory, directoryError)
	}

	temporaryFilePath := store.filePath + temporaryFileSuffixConstant
	if writeError := os.WriteFile(temporaryFilePath, encodedDocument.Bytes(), configurationFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(configurationWriteErrorTemplateConstant, temporaryFilePath, writeError)
	}
	if renameError := os.Rename(temporaryFilePath, store.filePath); renameError != nil {
		_ = os.Remove(temporaryFilePath)
		return fmt.Errorf(configurationWriteErrorTemplateConstant, store.filePath, renameError)
	}
	return nil
}

func (store *Store) readRawSections() (map[string]any, error) {
	rawSections := make(map[string]any)
	fileContents, readError := os.ReadFile(store.filePath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return rawSections, nil
		}
		return nil, fmt.Errorf(configurationReadErrorTemplateConstant, store.filePath, readError)
	}
	if _, decodeError := toml.Decode(string(fileContents), &rawSections); decodeError != nil {
		return nil, fmt.Errorf(configurationParseErrorTemplateConstant, store.filePath, decodeError)
	}
	return rawSections, nil
}
