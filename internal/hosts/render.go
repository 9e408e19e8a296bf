package hosts

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/temirov/initrepo/internal/profiles"
)

const (
	// OutputFormatTable renders profiles as an aligned table.
	OutputFormatTable = "table"
	// OutputFormatYAML renders profiles as a YAML document.
	OutputFormatYAML  = "yaml"

	defaultMarkerConstant             = "*"
	columnDefaultConstant             = ""
	columnNameConstant                = "NAME"
	columnHostConstant                = "HOST"
	columnBaseDirectoryConstant       = "BASE DIR"
	columnDefaultBranchConstant       = "DEFAULT BRANCH"
	columnSecureShellKeyConstant      = "SSH KEY"
	columnPaddingConstant             = 2
	noProfilesMessageConstant         = "No host profiles configured. Run `init-repo configure` to add one."
	unsupportedFormatTemplateConstant = "unsupported output format %q"
	yamlEncodeErrorTemplateConstant   = "unable to encode host profiles: %w"
)

type profileListing struct {
	DefaultProfile string         `yaml:"default_profile,omitempty"`
	Hosts          []profileEntry `yaml:"hosts"`
}

type profileEntry struct {
	Name           string `yaml:"name"`
	Host           string `yaml:"host"`
	BaseDirectory  string `yaml:"base_dir"`
	DefaultBranch  string `yaml:"default_branch"`
	SecureShellKey string `yaml:"ssh_key,omitempty"`
}

// RenderProfiles writes the document in the requested format.
func RenderProfiles(writer io.Writer, document profiles.Document, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case OutputFormatTable:
		return renderTable(writer, document)
	case OutputFormatYAML:
		return renderYAML(writer, document)
	default:
		return fmt.Errorf(unsupportedFormatTemplateConstant, format)
	}
}

func renderTable(writer io.Writer, document profiles.Document) error {
	profileNames := document.Names()
	if len(profileNames) == 0 {
		_, writeError := fmt.Fprintln(writer, noProfilesMessageConstant)
		return writeError
	}

	rows := make([][]string, 0, len(profileNames))
	for _, profileName := range profileNames {
		profile := document.Hosts[profileName]
		marker := ""
		if profileName == document.DefaultProfile {
			marker = defaultMarkerConstant
		}
		rows = append(rows, []string{marker, profileName, profile.Host, profile.BaseDirectory, profile.DefaultBranch, profile.SecureShellKey})
	}

	profileTable := table.New().
		Headers(columnDefaultConstant, columnNameConstant, columnHostConstant, columnBaseDirectoryConstant, columnDefaultBranchConstant, columnSecureShellKeyConstant).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, column int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(columnPaddingConstant)
			}
			return lipgloss.NewStyle().PaddingRight(columnPaddingConstant)
		})

	_, writeError := fmt.Fprintln(writer, profileTable.String())
	return writeError
}

func renderYAML(writer io.Writer, document profiles.Document) error {
	listing := profileListing{DefaultProfile: document.DefaultProfile, Hosts: []profileEntry{}}
	for _, profileName := range document.Names() {
		profile := document.Hosts[profileName]
		listing.Hosts = append(listing.Hosts, profileEntry{
			Name:           profileName,
			Host:           profile.Host,
			BaseDirectory:  profile.BaseDirectory,
			DefaultBranch:  profile.DefaultBranch,
			SecureShellKey: profile.SecureShellKey,
		})
	}

	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if encodeError := encoder.Encode(listing); encodeError != nil {
		return fmt.Errorf(yamlEncodeErrorTemplateConstant, encodeError)
	}
	return encoder.Close()
}
