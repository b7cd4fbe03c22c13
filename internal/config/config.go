package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/maintence-saida/gestion-maintenance/internal/logging"
)

// FileName config file looked up next to the executable
const FileName = "config.toml"

// AppConfig application settings
type AppConfig struct {
	Server     ServerConfig        `toml:"server"`
	Data       DataConfig          `toml:"data"`
	Store      StoreConfig         `toml:"store"`
	Log        logging.Config      `toml:"log"`
	Classifier ClassifierConfig    `toml:"classifier"`
	Aliases    map[string][]string `toml:"aliases"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port        int  `toml:"port"`
	DevMode     bool `toml:"dev_mode"`
	OpenBrowser bool `toml:"open_browser"`
}

// DataConfig workbook location settings
type DataConfig struct {
	DataDir          string `toml:"data_dir"`
	DefaultFile      string `toml:"default_file"`
	DefaultSheet     string `toml:"default_sheet"`
	WatchDefaultFile bool   `toml:"watch_default_file"`
}

// StoreConfig import log database
type StoreConfig struct {
	DSN string `toml:"dsn"`
}

// ClassifierConfig status classification settings
type ClassifierConfig struct {
	StatusScope string `toml:"status_scope"` // "columns" or "row"
}

// LoadConfigInfo what the config file actually set
type LoadConfigInfo struct {
	Path          string
	Found         bool
	PortSpecified bool
}

// DefaultConfig default settings
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        20262,
			DevMode:     false,
			OpenBrowser: true,
		},
		Data: DataConfig{
			DataDir:          "data",
			DefaultFile:      "gestion-maintenace.xlsx",
			WatchDefaultFile: true,
		},
		Store: StoreConfig{
			DSN: "file:maintdash?mode=memory&cache=shared",
		},
		Log: logging.Config{
			Level:  "info",
			Format: "console",
		},
		Classifier: ClassifierConfig{
			StatusScope: "columns",
		},
		Aliases: map[string][]string{},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir directory of the running executable
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// DefaultPath config.toml next to the executable
func DefaultPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, FileName)
}

// LoadConfigWithInfo loads config.toml from next to the executable
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	return LoadFile(DefaultPath())
}

// LoadFile loads the given config file. A missing file yields the defaults;
// environment overrides apply in both cases.
func LoadFile(path string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.Found = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, info, err
	}

	if err := applyEnv(config, &info); err != nil {
		return nil, info, err
	}
	return config, info, nil
}

// applyEnv environment overrides
func applyEnv(config *AppConfig, info *LoadConfigInfo) error {
	if v := os.Getenv("MAINTDASH_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAINTDASH_PORT: %w", err)
		}
		config.Server.Port = port
		info.PortSpecified = true
	}
	if v := os.Getenv("MAINTDASH_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("MAINTDASH_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
	return nil
}

// SaveConfig writes the config to path
func SaveConfig(config *AppConfig, path string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ResolveDataDir data directory; relative paths are taken from the executable directory
func ResolveDataDir(config *AppConfig) string {
	if filepath.IsAbs(config.Data.DataDir) {
		return config.Data.DataDir
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir)
}

// EnsureDataDir creates the data directory and its exports subdirectory
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := ResolveDataDir(config)
	if err := os.MkdirAll(filepath.Join(dataDir, "exports"), 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// DefaultFilePath path of the conventional workbook auto-loaded at startup
func DefaultFilePath(config *AppConfig) string {
	if config.Data.DefaultFile == "" {
		return ""
	}
	if filepath.IsAbs(config.Data.DefaultFile) {
		return config.Data.DefaultFile
	}
	return filepath.Join(ResolveDataDir(config), config.Data.DefaultFile)
}
