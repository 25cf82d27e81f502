package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/amytools-labs/amytools/internal/branding"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized keys.
const (
	KeyVault         = "vault"
	KeyLogLevel      = "log.level"
	KeyLogFile       = "log.file"
	KeyHooksInterval = "hooks.interval"
)

// DefaultHooksInterval is the period of the extension's recurring timer.
const DefaultHooksInterval = 5 * time.Minute

// Dir returns the path to the config directory (~/.amytools/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.amytools/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyLogFile, filepath.Join(Dir(), branding.CLIName()+".log"))
	viper.SetDefault(KeyHooksInterval, DefaultHooksInterval.String())

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// VaultRoot returns the vault directory: the "vault" key (file or
// AMYTOOLS_VAULT) when set, otherwise the working directory.
func VaultRoot() (string, error) {
	if v := viper.GetString(KeyVault); v != "" {
		return filepath.Abs(v)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return wd, nil
}

// HooksInterval returns the recurring timer period. Unparseable or
// non-positive values fall back to DefaultHooksInterval.
func HooksInterval() time.Duration {
	d, err := time.ParseDuration(viper.GetString(KeyHooksInterval))
	if err != nil || d <= 0 {
		return DefaultHooksInterval
	}
	return d
}

// Watch re-reads the config file whenever it changes on disk and calls fn
// with the event that triggered the reload.
func Watch(fn func(fsnotify.Event)) {
	viper.OnConfigChange(fn)
	viper.WatchConfig()
}
