package app

import "os"

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("NRC_BASE_URL")
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = os.Getenv("CACHE_DIR")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv("SCRAPER_USER_AGENT")
	}
}
