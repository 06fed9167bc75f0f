package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
)

type readmeApplicationConfiguration struct {
	Common struct {
		LogLevel  string `yaml:"log_level"`
		LogFormat string `yaml:"log_format"`
	} `yaml:"common"`
	Catalogue struct {
		Path   string `yaml:"path"`
		Prefix string `yaml:"prefix"`
	} `yaml:"catalogue"`
	Tools struct {
		Install struct {
			DryRun bool `yaml:"dry_run"`
		} `yaml:"install"`
		Push struct {
			DryRun bool `yaml:"dry_run"`
		} `yaml:"push"`
		Status struct {
			Local bool `yaml:"local"`
		} `yaml:"status"`
	} `yaml:"tools"`
}

func TestReadmeConfigurationSnippetParses(testInstance *testing.T) {
	readmePath := filepath.Join(parentDirectoryReferenceConstant, readmeFileNameConstant)
	readmeContent, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	snippet := extractConfigurationSnippet(testInstance, string(readmeContent))

	var configuration readmeApplicationConfiguration
	decoder := yaml.NewDecoder(strings.NewReader(snippet))
	decoder.KnownFields(true)
	require.NoError(testInstance, decoder.Decode(&configuration))

	require.Equal(testInstance, "info", configuration.Common.LogLevel)
	require.Equal(testInstance, "console", configuration.Common.LogFormat)
	require.NotEmpty(testInstance, configuration.Catalogue.Path)
	require.NotEmpty(testInstance, configuration.Catalogue.Prefix)
	require.False(testInstance, configuration.Tools.Install.DryRun)
	require.False(testInstance, configuration.Tools.Push.DryRun)
	require.False(testInstance, configuration.Tools.Status.Local)
}

func extractConfigurationSnippet(testInstance *testing.T, readmeContent string) string {
	testInstance.Helper()

	headerIndex := strings.Index(readmeContent, configHeaderMarkerConstant)
	require.GreaterOrEqual(testInstance, headerIndex, 0, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(readmeContent[:headerIndex], yamlFenceStartConstant)
	require.GreaterOrEqual(testInstance, fenceStartIndex, 0, missingStartFenceMessageConstant)

	snippetStart := fenceStartIndex + len(yamlFenceStartConstant)
	fenceEndOffset := strings.Index(readmeContent[snippetStart:], yamlFenceEndConstant)
	require.GreaterOrEqual(testInstance, fenceEndOffset, 0, missingEndFenceMessageConstant)

	return strings.TrimSpace(readmeContent[snippetStart : snippetStart+fenceEndOffset])
}
