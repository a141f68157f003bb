package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nukewatch/reactorstatus/internal/app"
	"github.com/nukewatch/reactorstatus/internal/days"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath  string
		year        int
		baseURL     string
		outputPath  string
		xlsxPath    string
		sqlitePath  string
		pdfPath     string
		cacheDir    string
		noCache     bool
		cacheClear  bool
		cacheMaxAge time.Duration
		concurrency int
		attempts    int
		timeout     time.Duration
		backoff     time.Duration
		userAgent   string
		verbose     bool
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "Optional YAML/JSON config file; explicit flags take precedence")
	flag.IntVar(&year, "year", app.DefaultYear, "Report year to scrape")
	flag.StringVar(&baseURL, "base", os.Getenv("NRC_BASE_URL"), "Archive base URL (defaults to the NRC 1999 reading room)")
	flag.StringVar(&outputPath, "out", app.DefaultOutputPath, "Output pipe-delimited file path")
	flag.StringVar(&xlsxPath, "xlsx", "", "Optional XLSX export path")
	flag.StringVar(&sqlitePath, "sqlite", "", "Optional SQLite archive path")
	flag.StringVar(&pdfPath, "pdf", "", "Optional PDF run-summary path")
	flag.StringVar(&cacheDir, "cache.dir", app.DefaultCacheDir, "Directory to cache fetched HTML (speeds up reruns)")
	flag.BoolVar(&noCache, "no-cache", false, "Disable caching HTML to disk")
	flag.BoolVar(&cacheClear, "cache.clear", false, "Clear cache directory before run")
	flag.DurationVar(&cacheMaxAge, "cache.maxAge", 0, "Max age for cache entries before purge (e.g. 168h); 0 disables")
	flag.IntVar(&concurrency, "concurrency", app.DefaultConcurrency, "Number of days fetched in parallel")
	flag.IntVar(&attempts, "retries", app.DefaultAttempts, "Fetch attempts per day including the first")
	flag.DurationVar(&timeout, "timeout", app.DefaultTimeout, "Per-request timeout")
	flag.DurationVar(&backoff, "backoff", 0, "Base retry backoff; attempt n waits n*backoff (default 200ms)")
	flag.StringVar(&userAgent, "ua", app.DefaultUserAgent, "User-Agent for archive requests")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("reactorstatus %s (%s)\n", app.BuildVersion, app.BuildCommit)
		return
	}

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		Year:              year,
		BaseURL:           baseURL,
		OutputPath:        outputPath,
		XLSXPath:          xlsxPath,
		SQLitePath:        sqlitePath,
		PDFPath:           pdfPath,
		CacheDir:          cacheDir,
		NoCache:           noCache,
		CacheClear:        cacheClear,
		CacheMaxAge:       cacheMaxAge,
		Concurrency:       concurrency,
		MaxAttempts:       attempts,
		PerRequestTimeout: timeout,
		RetryBackoff:      backoff,
		UserAgent:         userAgent,
		Verbose:           verbose,
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("config", configPath).Msg("config file unreadable")
			os.Exit(2)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvToConfig(&cfg)
	if cfg.BaseURL == "" {
		cfg.BaseURL = days.DefaultBaseURL
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		// Exit code policy: nonzero only when nothing could be scraped or
		// the output artifact could not be written. Individual day failures
		// are warnings inside the run.
		os.Exit(2)
	}
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	return a.Run(ctx)
}
