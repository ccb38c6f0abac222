package config

// SetPathForTest sets the configuration file path for testing purposes
func (a *AppConfig) SetPathForTest(path string) {
	a.path = path
}
