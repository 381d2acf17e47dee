package commons

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultUserAgent is the user agent presented by the browser context and
// by direct HTTP downloads.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"

// Config carries the runtime settings shared by the CLI, the GUI and the
// engine. Values come from config.yaml, AURA_* environment variables, or
// the defaults below.
type Config struct {
	Headless          bool   `mapstructure:"headless"`
	DownloadPath      string `mapstructure:"download_path"`
	DebugDir          string `mapstructure:"debug_dir"`
	LogLevel          string `mapstructure:"log_level"`
	UserAgent         string `mapstructure:"user_agent"`
	NavigationTimeout string `mapstructure:"navigation_timeout"` // Go duration string like "60s"
}

// LoadConfig reads configuration from config.yaml (searched in "." and
// "./config") and the environment.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.AutomaticEnv()
	v.SetEnvPrefix("AURA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("headless", true)
	v.SetDefault("download_path", defaultDownloadPath())
	v.SetDefault("debug_dir", "debug_jsons")
	v.SetDefault("log_level", "info")
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("navigation_timeout", "60s")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	return &config, nil
}

// NavigationTimeoutDuration parses NavigationTimeout, falling back to 60s
// on an empty or malformed value.
func (c *Config) NavigationTimeoutDuration() time.Duration {
	if c.NavigationTimeout != "" {
		if d, err := time.ParseDuration(c.NavigationTimeout); err == nil && d > 0 {
			return d
		}
	}
	return 60 * time.Second
}

func defaultDownloadPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "AnimeHeaven")
	}
	return filepath.Join(home, "Downloads", "AnimeHeaven")
}
