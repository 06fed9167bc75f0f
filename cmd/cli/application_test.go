package cli_test

import (
	"bytes"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/temirov/gitcat/cmd/cli"
)

func TestEmbeddedDefaultConfigurationMatchesApplicationSchema(testInstance *testing.T) {
	configurationContent, configurationType := cli.EmbeddedDefaultConfiguration()

	loader := viper.New()
	loader.SetConfigType(configurationType)
	require.NoError(testInstance, loader.ReadConfig(bytes.NewReader(configurationContent)))

	var configuration cli.ApplicationConfiguration
	require.NoError(testInstance, loader.Unmarshal(&configuration, func(decoderConfiguration *mapstructure.DecoderConfig) {
		decoderConfiguration.ErrorUnused = true
	}))

	require.Equal(testInstance, "info", configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", configuration.Common.LogFormat)
	require.False(testInstance, configuration.Tools.Install.DryRun)
	require.False(testInstance, configuration.Tools.Push.DryRun)
	require.False(testInstance, configuration.Tools.Status.Local)
}
