package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Dialogs  DialogsConfig  `toml:"dialogs"`
	Host     HostConfig     `toml:"host"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
}

// DialogsConfig contains the default dialog presentation settings applied
// to launches that don't override them.
type DialogsConfig struct {
	Title     string         `toml:"title"`
	Directory string         `toml:"directory"`
	FileName  string         `toml:"file_name"`
	Filters   []FilterConfig `toml:"filters"`
}

// FilterConfig is one named extension filter, in the order filters should
// be presented.
type FilterConfig struct {
	Name       string   `toml:"name"`
	Extensions []string `toml:"extensions"`
}

// HostConfig contains settings for the tick loop that drains dialog
// results.
type HostConfig struct {
	TickRateMS  int `toml:"tick_rate_ms"`
	HistorySize int `toml:"history_size"`
}

// TickRate returns the tick interval, falling back to 250ms for missing or
// nonsense values.
func (h HostConfig) TickRate() time.Duration {
	if h.TickRateMS <= 0 {
		return 250 * time.Millisecond
	}
	return time.Duration(h.TickRateMS) * time.Millisecond
}

// History returns the scrollback size for delivered events, never zero.
func (h HostConfig) History() int {
	if h.HistorySize <= 0 {
		return 200
	}
	return h.HistorySize
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
