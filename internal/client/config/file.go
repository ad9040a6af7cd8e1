package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/tripcal/internal/flagx"
	"github.com/dmitrijs2005/tripcal/internal/timex"
)

// fileConfig is a DTO used exclusively for decoding the config file. Absent
// fields leave the earlier value in place.
type fileConfig struct {
	ServerURL         string          `json:"server_url" yaml:"server_url"`
	DataDir           string          `json:"data_dir" yaml:"data_dir"`
	Language          string          `json:"language" yaml:"language"`
	LogLevel          string          `json:"log_level" yaml:"log_level"`
	InactivityTimeout *timex.Duration `json:"inactivity_timeout" yaml:"inactivity_timeout"`
	RequestTimeout    *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	RefreshSchedule   string          `json:"refresh_schedule" yaml:"refresh_schedule"`
	WeekStart         string          `json:"week_start" yaml:"week_start"`
}

func configFilePath(args []string) string {
	return flagx.ConfigFileFlagIn(args)
}

func parseFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	return fc.apply(cfg)
}

func (fc fileConfig) apply(cfg *Config) error {
	setString(&cfg.ServerURL, fc.ServerURL)
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.Language, fc.Language)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.RefreshSchedule, fc.RefreshSchedule)

	if fc.InactivityTimeout != nil {
		cfg.InactivityTimeout = fc.InactivityTimeout.Duration
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.WeekStart != "" {
		d, err := ParseWeekday(fc.WeekStart)
		if err != nil {
			return err
		}
		cfg.WeekStart = d
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
