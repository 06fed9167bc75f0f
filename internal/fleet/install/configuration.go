package install

// CommandConfiguration captures configuration values for the install command.
type CommandConfiguration struct {
	DryRun bool `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration provides baseline configuration values for install.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{DryRun: false}
}

const configurationDryRunKeyConstant = "dry_run"

// DefaultConfigurationValues produces Viper defaults for the install command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationDryRunKeyConstant: defaults.DryRun,
	}
}
