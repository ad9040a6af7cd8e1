package config

// Environment variables read by parseEnv.
const (
	EnvServer   = "TRIPCAL_SERVER"
	EnvLanguage = "TRIPCAL_LANGUAGE"
)

func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvServer); ok && v != "" {
		cfg.ServerURL = v
	}
	if v, ok := lookup(EnvLanguage); ok && v != "" {
		cfg.Language = v
	}
}
