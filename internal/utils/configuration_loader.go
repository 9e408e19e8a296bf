package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	configurationKeyDelimiterConstant        = "."
	environmentWordDelimiterConstant         = "_"
	configurationListDelimiterConstant       = ","
	embeddedDefaultsErrorTemplateConstant    = "embedded defaults: %w"
	configurationDecodeErrorTemplateConstant = "decode configuration: %w"
	configurationFileErrorTemplateConstant   = "configuration file %q: %v"
)

// ConfigurationFileError reports a configuration file that exists but cannot be parsed.
type ConfigurationFileError struct {
	Path  string
	Cause error
}

// Error names the offending file.
func (failure ConfigurationFileError) Error() string {
	return fmt.Sprintf(configurationFileErrorTemplateConstant, failure.Path, failure.Cause)
}

// Unwrap exposes the parser error.
func (failure ConfigurationFileError) Unwrap() error {
	return failure.Cause
}

// LoadedConfiguration surfaces metadata about the resolved configuration.
type LoadedConfiguration struct {
	ConfigFileUsed string
}

type embeddedDocument struct {
	contents []byte
	format   string
}

// ConfigurationLoader layers defaults, an embedded document, an on-disk file and INITREPO_* style environment variables.
type ConfigurationLoader struct {
	fileName          string
	format            string
	environmentPrefix string
	searchDirectories []string
	embedded          embeddedDocument
}

// NewConfigurationLoader describes where configuration lives and which environment prefix overrides it.
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	return &ConfigurationLoader{
		fileName:          configurationName,
		format:            configurationType,
		environmentPrefix: environmentPrefix,
		searchDirectories: append([]string(nil), searchPaths...),
	}
}

// SetEmbeddedConfiguration installs the document merged beneath any user file. Empty data clears it.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(configurationData []byte, configurationType string) {
	if loader == nil {
		return
	}
	loader.embedded = embeddedDocument{
		contents: bytes.Clone(configurationData),
		format:   strings.TrimSpace(configurationType),
	}
}

// LoadConfiguration decodes the layered configuration into targetConfiguration.
//
// Later layers win: defaults, embedded document, configuration file, environment.
// Duration strings ("10s") and comma-separated lists decode into time.Duration
// and []string fields. A configuration file that does not exist yet is not an
// error; ConfigFileUsed still reports the explicit path so callers can create it.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, defaultValues map[string]any, targetConfiguration any) (LoadedConfiguration, error) {
	viperInstance := loader.newViper(defaultValues)

	if embeddedError := loader.mergeEmbedded(viperInstance); embeddedError != nil {
		return LoadedConfiguration{}, embeddedError
	}

	if fileError := loader.mergeFile(viperInstance, configurationFilePath); fileError != nil {
		return LoadedConfiguration{}, fileError
	}

	if decodeError := viperInstance.Unmarshal(targetConfiguration, configurationDecodeHook()); decodeError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationDecodeErrorTemplateConstant, decodeError)
	}

	return LoadedConfiguration{ConfigFileUsed: viperInstance.ConfigFileUsed()}, nil
}

func (loader *ConfigurationLoader) newViper(defaultValues map[string]any) *viper.Viper {
	viperInstance := viper.New()
	viperInstance.SetConfigName(loader.fileName)
	viperInstance.SetConfigType(loader.format)
	for _, searchDirectory := range loader.searchDirectories {
		viperInstance.AddConfigPath(searchDirectory)
	}

	viperInstance.SetEnvPrefix(loader.environmentPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(configurationKeyDelimiterConstant, environmentWordDelimiterConstant))
	viperInstance.AutomaticEnv()

	for key, value := range defaultValues {
		viperInstance.SetDefault(key, value)
	}
	return viperInstance
}

func (loader *ConfigurationLoader) mergeEmbedded(viperInstance *viper.Viper) error {
	if len(loader.embedded.contents) == 0 {
		return nil
	}
	if len(loader.embedded.format) > 0 {
		viperInstance.SetConfigType(loader.embedded.format)
		defer viperInstance.SetConfigType(loader.format)
	}
	if mergeError := viperInstance.MergeConfig(bytes.NewReader(loader.embedded.contents)); mergeError != nil {
		return fmt.Errorf(embeddedDefaultsErrorTemplateConstant, mergeError)
	}
	return nil
}

func (loader *ConfigurationLoader) mergeFile(viperInstance *viper.Viper, configurationFilePath string) error {
	configurationFilePath = strings.TrimSpace(configurationFilePath)
	if len(configurationFilePath) > 0 {
		viperInstance.SetConfigFile(configurationFilePath)
	}

	mergeError := viperInstance.MergeInConfig()
	if mergeError == nil || configurationAbsent(mergeError) {
		return nil
	}
	return ConfigurationFileError{Path: viperInstance.ConfigFileUsed(), Cause: mergeError}
}

func configurationAbsent(mergeError error) bool {
	var notFoundError viper.ConfigFileNotFoundError
	return errors.As(mergeError, &notFoundError) || errors.Is(mergeError, fs.ErrNotExist)
}

func configurationDecodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(configurationListDelimiterConstant),
	))
}
