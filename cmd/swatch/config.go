// Config loading for the swatch CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/swatch/internal/export"
	"github.com/mesh-intelligence/swatch/internal/logging"
	"github.com/mesh-intelligence/swatch/internal/paths"
	"github.com/mesh-intelligence/swatch/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "SWATCH"

	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeyCSSPrefix = "css_prefix"
	cfgKeyLogLevel  = "log_level"
	cfgKeyLogFormat = "log_format"
)

// configFile is the structure written to config.yaml.
type configFile struct {
	Backend   string `yaml:"backend"`
	DataDir   string `yaml:"data_dir,omitempty"`
	CSSPrefix string `yaml:"css_prefix"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func defaultConfigFile() configFile {
	logCfg := logging.DefaultConfig()
	return configFile{
		Backend:   types.BackendSQLite,
		CSSPrefix: export.DefaultPrefix,
		LogLevel:  logCfg.Level,
		LogFormat: logCfg.Format,
	}
}

// loadConfig reads config.yaml from configDir using Viper, writing the
// default file on first run. SWATCH_LOG_LEVEL, SWATCH_LOG_FORMAT,
// SWATCH_CSS_PREFIX and SWATCH_BACKEND override the file. data_dir is not
// bound here because SWATCH_DATA_DIR ranks below the config value.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := writeConfigIfMissing(configDir); err != nil {
		return nil, err
	}

	def := defaultConfigFile()
	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyCSSPrefix, def.CSSPrefix)
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetDefault(cfgKeyLogFormat, def.LogFormat)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyBackend, cfgKeyCSSPrefix, cfgKeyLogLevel, cfgKeyLogFormat} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates configDir and a default config.yaml if the
// file does not exist. An existing file is left alone.
func writeConfigIfMissing(configDir string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	path := filepath.Join(configDir, paths.ConfigFile)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	cfg := defaultConfigFile()
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
