package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds runtime settings for the tripcal CLI.
type Config struct {
	ServerURL         string
	DataDir           string
	Language          string
	LogLevel          string
	InactivityTimeout time.Duration
	// RequestTimeout bounds each backend call; zero leaves it to the caller.
	RequestTimeout  time.Duration
	RefreshSchedule string
	WeekStart       time.Weekday
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:3133"
	c.DataDir = defaultDataDir()
	c.Language = "en"
	c.LogLevel = "info"
	c.InactivityTimeout = 24 * time.Hour
	c.RequestTimeout = 0
	c.RefreshSchedule = "@every 5m"
	c.WeekStart = time.Monday
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "tripcal")
	}
	return ".tripcal"
}

// LoadConfig builds a Config from defaults, the optional config file, the
// environment and the process flags, in that order.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

func load(args []string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, configFilePath(args)); err != nil {
		return nil, err
	}
	parseEnv(cfg, lookup)
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("config: server url is empty")
	}
	if c.DataDir == "" {
		return fmt.Errorf("config: data dir is empty")
	}
	if c.InactivityTimeout <= 0 {
		return fmt.Errorf("config: inactivity timeout must be positive, got %s", c.InactivityTimeout)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("config: request timeout must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}

// ParseWeekday accepts an English weekday name, case-insensitive.
func ParseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("config: unknown weekday %q", s)
}
