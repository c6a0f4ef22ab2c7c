// Package config loads CLI-wide settings: a TOML file under the user's
// config directory, overridden by environment variables, overridden by
// explicit command-line flags. It mirrors the precedence most CLI tools in
// this codebase use, backed by viper.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var configDir string
var configFilePath string

func getConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		appData := os.Getenv("LOCALAPPDATA")
		if appData == "" {
			appData = os.Getenv("APPDATA")
		}
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = home
		}
		return filepath.Join(appData, "sonicindex"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sonicindex"), nil
}

// Init loads .env (if present), sets defaults, and reads a TOML config file.
// configPath == "" resolves to the platform default config directory. A
// missing config file is not an error; defaults and environment variables
// still apply.
func Init(configPath string) error {
	_ = godotenv.Load()

	var err error
	if configPath != "" {
		configDir = filepath.Dir(configPath)
		configFilePath = configPath
	} else {
		configDir, err = getConfigDir()
		if err != nil {
			return err
		}
		configFilePath = filepath.Join(configDir, "config.toml")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	viper.SetConfigType("toml")
	viper.SetEnvPrefix("SONICINDEX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	viper.SetConfigFile(configFilePath)
	_ = viper.ReadInConfig()

	return nil
}

func setDefaults() {
	viper.SetDefault("scan.offline", false)
	viper.SetDefault("scan.model_dir", "assets/models")
	viper.SetDefault("server.port", 3000)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", filepath.Join(configDir, "sonicindex.log"))
}

// GetString returns a string configuration value.
func GetString(key string) string { return viper.GetString(key) }

// GetInt returns an int configuration value.
func GetInt(key string) int { return viper.GetInt(key) }

// GetBool returns a bool configuration value.
func GetBool(key string) bool { return viper.GetBool(key) }

// GetConfigDir returns the resolved configuration directory.
func GetConfigDir() string { return configDir }
