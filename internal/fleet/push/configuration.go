package push

// CommandConfiguration captures configuration values for the push and commit commands.
type CommandConfiguration struct {
	DryRun bool `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration provides baseline configuration values for push and commit.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{DryRun: false}
}

const configurationDryRunKeyConstant = "dry_run"

// DefaultConfigurationValues produces Viper defaults for the push and commit commands.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationDryRunKeyConstant: defaults.DryRun,
	}
}
