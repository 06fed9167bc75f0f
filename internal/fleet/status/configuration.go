package status

// CommandConfiguration captures the configurable defaults of the status command.
type CommandConfiguration struct {
	Local bool `mapstructure:"local"`
}

// DefaultCommandConfiguration returns the built-in status command defaults.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Local: false}
}

const configurationLocalKeyConstant = "local"

// DefaultConfigurationValues produces Viper defaults for the status command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationLocalKeyConstant: defaults.Local,
	}
}
