// Config loading for the sqlview CLI.
// Implements: config.yaml in the resolved config directory, SQLVIEW_* env
// overrides, optional .env file, flag overrides.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/sqlview/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix  = "SQLVIEW"
	dotEnvFile = ".env"

	// Config keys.
	cfgKeyDatabase     = "database"
	cfgKeyFormat       = "format"
	cfgKeyNullText     = "null_text"
	cfgKeyProbeTimeout = "probe_timeout"
	cfgKeyAddr         = "addr"
)

// Flag names bound to config keys.
const (
	flagNameDatabase     = "db"
	flagNameFormat       = "format"
	flagNameNullText     = "null-text"
	flagNameProbeTimeout = "probe-timeout"
	flagNameAddr         = "addr"
)

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	flagNameDatabase:     cfgKeyDatabase,
	flagNameFormat:       cfgKeyFormat,
	flagNameNullText:     cfgKeyNullText,
	flagNameProbeTimeout: cfgKeyProbeTimeout,
	flagNameAddr:         cfgKeyAddr,
}

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# sqlview configuration
# Every key can be overridden by a SQLVIEW_<KEY> environment variable
# or by the matching command-line flag.

# Database file opened when --db is not given.
# database:

# Output format: table, csv, json
format: table

# Text shown for NULL cells.
null_text: ""

# Connection liveness probe timeout.
probe_timeout: 5s

# Listen address for "sqlview serve".
addr: 127.0.0.1:8080
`

// loadConfig reads config.yaml from configDir using Viper, after loading an
// optional .env file from the working directory. It creates the config
// directory and a default config.yaml on first run. A missing config.yaml
// is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", dotEnvFile, err)
	}

	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	defaults := types.DefaultConfig()
	v := viper.New()
	v.SetDefault(cfgKeyDatabase, defaults.Database)
	v.SetDefault(cfgKeyFormat, defaults.Format)
	v.SetDefault(cfgKeyNullText, defaults.NullText)
	v.SetDefault(cfgKeyProbeTimeout, defaults.ProbeTimeout)
	v.SetDefault(cfgKeyAddr, defaults.Addr)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// bindFlags lets explicitly set flags on cmd override config and env values.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// buildConfig extracts and validates a types.Config from v.
func buildConfig(v *viper.Viper) (types.Config, error) {
	c := types.Config{
		Database:     v.GetString(cfgKeyDatabase),
		Format:       v.GetString(cfgKeyFormat),
		NullText:     v.GetString(cfgKeyNullText),
		ProbeTimeout: v.GetDuration(cfgKeyProbeTimeout),
		Addr:         v.GetString(cfgKeyAddr),
	}
	if err := c.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
