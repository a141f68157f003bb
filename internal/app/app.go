package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nukewatch/reactorstatus/internal/cache"
	"github.com/nukewatch/reactorstatus/internal/classify"
	"github.com/nukewatch/reactorstatus/internal/days"
	"github.com/nukewatch/reactorstatus/internal/fetch"
	"github.com/nukewatch/reactorstatus/internal/htmltable"
	"github.com/nukewatch/reactorstatus/internal/sink"
)

// App drives one scrape run: iterate the year's days, fetch and parse each
// report page, and write the collected records to the configured sinks.
type App struct {
	cfg       Config
	pageCache *cache.PageCache
}

// ErrNoDaysSucceeded is returned when every day of the run failed to fetch.
// Per the exit code policy, only this condition (or an unwritable output)
// makes the process exit nonzero; individual day failures never do.
var ErrNoDaysSucceeded = fmt.Errorf("no days fetched successfully")

func New(cfg Config) (*App, error) {
	if cfg.Year == 0 {
		cfg.Year = DefaultYear
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = days.DefaultBaseURL
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutputPath
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultAttempts
	}
	if cfg.PerRequestTimeout <= 0 {
		cfg.PerRequestTimeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	a := &App{cfg: cfg}
	if cfg.CacheDir != "" && !cfg.NoCache {
		if cfg.CacheClear {
			_ = cache.ClearDir(cfg.CacheDir)
		}
		if cfg.CacheMaxAge > 0 {
			// Purge by age; ignore errors to avoid failing startup.
			_, _ = cache.PurgeByAge(cfg.CacheDir, cfg.CacheMaxAge)
		}
		a.pageCache = &cache.PageCache{Dir: cfg.CacheDir}
	}
	return a, nil
}

// dayResult carries one day's outcome from a worker back to the collector.
type dayResult struct {
	date    time.Time
	records []classify.Record
	err     error
}

func (a *App) Run(ctx context.Context) error {
	dates := days.ForYear(a.cfg.Year)

	client := &fetch.Client{
		HTTPClient:        newArchiveHTTPClient(),
		UserAgent:         a.cfg.UserAgent,
		MaxAttempts:       a.cfg.MaxAttempts,
		PerRequestTimeout: a.cfg.PerRequestTimeout,
		RetryBackoff:      a.cfg.RetryBackoff,
		Cache:             a.pageCache,
		MaxConcurrent:     a.cfg.Concurrency,
	}

	// Fan the year's days over a bounded worker pool. Each unit of work is
	// independent: fetch one day, extract, classify, hand the records back.
	jobs := make(chan time.Time)
	results := make(chan dayResult)

	var wg sync.WaitGroup
	for i := 0; i < a.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := range jobs {
				recs, err := a.scrapeDay(ctx, client, d)
				results <- dayResult{date: d, records: recs, err: err}
			}
		}()
	}
	go func() {
		defer close(jobs)
		for _, d := range dates {
			select {
			case jobs <- d:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	var (
		collected []dayResult
		processed int
		failed    int
	)
	for res := range results {
		processed++
		if res.err != nil {
			failed++
			log.Warn().Err(res.err).Str("date", res.date.Format("2006-01-02")).Msg("day failed; skipping")
		} else {
			collected = append(collected, res)
		}
		if processed%10 == 0 {
			log.Info().Int("processed", processed).Int("total", len(dates)).Int("failed", failed).Msg("progress")
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(collected) == 0 {
		return ErrNoDaysSucceeded
	}

	// Completion order is whatever the pool produced; restore date order
	// before writing.
	sort.Slice(collected, func(i, j int) bool { return collected[i].date.Before(collected[j].date) })
	var all []classify.Record
	for _, res := range collected {
		all = append(all, res.records...)
	}

	if err := a.writeSinks(ctx, all, failed); err != nil {
		return err
	}

	log.Info().
		Int("days", processed).
		Int("failed", failed).
		Int("records", len(all)).
		Str("out", a.cfg.OutputPath).
		Msg("run complete")
	return nil
}

// scrapeDay fetches one day's report page and turns it into records. A page
// with no recognizable status table yields zero records and no error.
func (a *App) scrapeDay(ctx context.Context, client *fetch.Client, d time.Time) ([]classify.Record, error) {
	url := days.URL(a.cfg.BaseURL, d)
	body, contentType, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	decoded := htmltable.DecodeToUTF8(body, contentType)
	recs := classify.Document(d, htmltable.Extract(decoded))
	log.Debug().Str("date", d.Format("2006-01-02")).Int("records", len(recs)).Msg("day parsed")
	return recs, nil
}

func (a *App) writeSinks(ctx context.Context, all []classify.Record, failed int) error {
	w, err := sink.NewPSVWriter(a.cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	if err := w.Append(all); err != nil {
		w.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	if a.cfg.XLSXPath != "" {
		if err := sink.WriteXLSX(a.cfg.XLSXPath, all); err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
		log.Info().Str("xlsx", a.cfg.XLSXPath).Msg("wrote workbook")
	}
	if a.cfg.SQLitePath != "" {
		archive, err := sink.OpenArchive(a.cfg.SQLitePath)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		if err := archive.InsertAll(ctx, all); err != nil {
			archive.Close()
			return fmt.Errorf("archive records: %w", err)
		}
		if err := archive.Close(); err != nil {
			return fmt.Errorf("close archive: %w", err)
		}
		log.Info().Str("sqlite", a.cfg.SQLitePath).Msg("archived records")
	}
	if a.cfg.PDFPath != "" {
		if err := sink.WriteSummaryPDF(a.cfg.PDFPath, all, failed, a.cfg.Year); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		log.Info().Str("pdf", a.cfg.PDFPath).Msg("wrote summary")
	}
	return nil
}
