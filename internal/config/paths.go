package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the per-user directory
	GlobalDirName = ".infradocs"
	// ConfigFileName is the config file inside the global directory
	ConfigFileName = "config.yaml"
	// LogFileName is the log file inside the global directory
	LogFileName = "infradocs.log"
	// EnvConfigPath overrides the config file location
	EnvConfigPath = "INFRADOCS_CONFIG"
)

// GlobalDir returns the per-user directory (~/.infradocs)
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return GlobalDirName
	}
	return filepath.Join(home, GlobalDirName)
}

// ConfigPath returns the config file path.
// INFRADOCS_CONFIG wins over ~/.infradocs/config.yaml.
func ConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(GlobalDir(), ConfigFileName)
}

// LogPath returns the default log file path (~/.infradocs/infradocs.log)
func LogPath() string {
	return filepath.Join(GlobalDir(), LogFileName)
}
