package config

// NewAppConfig creates an AppConfig with a preset file path for testing.
func NewAppConfig(path string) *AppConfig {
	return &AppConfig{path: path}
}
