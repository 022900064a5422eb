package mirror

const (
	statusFileConfigurationKeyConstant = "status_file"
	configurationKeySeparatorConstant  = "."
)

// CommandConfiguration captures mirror settings persisted in the application configuration.
type CommandConfiguration struct {
	StatusFile string `mapstructure:"status_file"`
}

// DefaultConfigurationValues returns viper defaults for the mirror configuration section.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	return map[string]any{
		configurationPrefix + configurationKeySeparatorConstant + statusFileConfigurationKeyConstant: "",
	}
}
