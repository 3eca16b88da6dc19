package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"
)

var configLog = commonlog.GetLogger("identic.config")

const configFileName = ".identicrc"

type Config struct {
	SaveDirectory string    `toml:"save_directory"`
	Confirmations bool      `toml:"confirmations"`
	ShowAllFiles  bool      `toml:"show_all_files"`
	LogFile       string    `toml:"log_file"`
	Verbosity     int       `toml:"verbosity"`
	Run           RunConfig `toml:"run"`
}

type RunConfig struct {
	SourcePath     string `toml:"source_path"`
	ExecutablePath string `toml:"executable_path"`
	ScriptPath     string `toml:"script_path"`
	BuildCommand   string `toml:"build_command"`
	Terminal       string `toml:"terminal"`
}

func defaultConfig() *Config {
	return &Config{
		SaveDirectory: "",
		Confirmations: true,
		ShowAllFiles:  false,
		LogFile:       filepath.Join(os.TempDir(), "identic.log"),
		Verbosity:     1,
		Run: RunConfig{
			SourcePath:     "/tmp/identi-c-source.c",
			ExecutablePath: "/tmp/identi-c-executable",
			ScriptPath:     "/tmp/identi-c-run.sh",
			BuildCommand:   "gcc {source} -o {executable} `pkg-config --cflags --libs gtk+-3.0`",
			Terminal:       "xfce4-terminal -x",
		},
	}
}

func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, configFileName)
}

// loadConfig reads the config at path. A missing file yields the defaults.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()
	if path == "" {
		return config, nil
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return defaultConfig(), fmt.Errorf("parsing %s: %w", path, err)
	}

	config.SaveDirectory = expandPath(config.SaveDirectory)
	config.LogFile = expandPath(config.LogFile)
	return config, nil
}

func expandPath(value string) string {
	if value == "" {
		return value
	}
	if strings.HasPrefix(value, "~") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
		}
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// GetSavePath places bare filenames in the configured save directory.
func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) || strings.ContainsRune(filename, os.PathSeparator) {
		return filename
	}
	if err := os.MkdirAll(c.SaveDirectory, 0755); err != nil {
		configLog.Warningf("save directory %s: %s", c.SaveDirectory, err)
		return filename
	}
	return filepath.Join(c.SaveDirectory, filename)
}
