package app

import "time"

// Config holds runtime configuration for one scrape run.
type Config struct {
	// Year selects which annual archive to walk. The NRC published these
	// daily pages per calendar year.
	Year    int
	BaseURL string

	// Outputs. OutputPath is the PSV artifact and is always written; the
	// others are optional and skipped when empty.
	OutputPath string
	XLSXPath   string
	SQLitePath string
	PDFPath    string

	// Cache
	CacheDir    string
	NoCache     bool
	CacheClear  bool
	CacheMaxAge time.Duration

	// Fetch behavior
	Concurrency       int
	MaxAttempts       int
	PerRequestTimeout time.Duration
	RetryBackoff      time.Duration
	UserAgent         string

	Verbose bool
}
