package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"

	"realestate-aggregator/config"
	"realestate-aggregator/models"
	"realestate-aggregator/scraper"
	"realestate-aggregator/services"
	"realestate-aggregator/storage"
	"realestate-aggregator/utils"
)

// fetchResult holds one target's listings until they are ingested in
// configuration order.
type fetchResult struct {
	source   string
	listings []models.RawListing
	ok       bool
}

func main() {
	os.Exit(run())
}

func run() int {
	logger := utils.NewLogger()
	cfg := config.Load()
	logger.SetDebug(cfg.Debug)

	logger.Info("=== Real estate aggregator starting ===")
	logger.Info("Config: targets: %d | concurrency: %d | rate: %dms | page timeout: %ds",
		len(cfg.Targets), cfg.MaxConcurrency, cfg.RateLimitMs, cfg.PageTimeoutSec)

	sites, err := scraper.LoadSites(cfg.SitesFile)
	if err != nil {
		logger.Error("Failed to load site catalogue: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	agg := services.NewAggregator(services.LogObserver(logger))

	if len(cfg.Targets) == 0 {
		logger.Warn("No TARGET_URLS configured, e.g. TARGET_URLS=DDProperty=https://www.ddproperty.com/en/property-for-sale/bangkok")
	} else {
		browser, err := scraper.NewBrowser(cfg, logger)
		if err != nil {
			logger.Error("Failed to start browser: %v", err)
			return 1
		}
		results := scrapeAll(ctx, cfg, sites, browser, logger)
		browser.Close()

		for _, r := range results {
			if r.ok {
				agg.Ingest(r.source, r.listings)
			}
		}
	}

	removed := agg.Deduplicate()
	logger.Info("Aggregated dataset: %d listings (%d duplicates dropped)", agg.Len(), removed)

	if cfg.Filters.Active() {
		reportFilters(agg, cfg.Filters, logger)
	}

	exitCode := 0
	exports := []struct {
		format storage.Format
		path   string
	}{
		{storage.FormatJSON, cfg.JSONOutputPath},
		{storage.FormatCSV, cfg.CSVOutputPath},
	}
	for _, e := range exports {
		w, err := storage.NewWriter(e.format, e.path)
		if err != nil {
			logger.Error("Export setup failed: %v", err)
			exitCode = 1
			continue
		}
		if err := agg.Export(w); err != nil {
			exitCode = 1
			continue
		}
		if e.format == storage.FormatCSV && agg.Len() == 0 {
			logger.Warn("No listings, CSV export skipped")
			continue
		}
		logger.Info("Saved %d listings to %s", agg.Len(), e.path)
	}

	services.PrintSummary(os.Stdout, services.Summarize(agg.Listings()))

	fmt.Printf("  Done. JSON → %s | CSV → %s\n\n", cfg.JSONOutputPath, cfg.CSVOutputPath)
	return exitCode
}

// scrapeAll fetches every configured target on the worker pool. A target
// that fails contributes nothing; the others are unaffected.
func scrapeAll(ctx context.Context, cfg *config.Config, sites []scraper.SiteSpec,
	fetcher scraper.HTMLFetcher, logger *utils.Logger) []fetchResult {

	results := make([]fetchResult, len(cfg.Targets))
	pool := utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs)
	visited := utils.NewKeySet()

	for i, target := range cfg.Targets {
		spec, ok := scraper.FindSite(sites, target.Site)
		if !ok {
			logger.Error("Unknown site %q for %s, skipping", target.Site, target.URL)
			continue
		}
		if !visited.Add(spec.Name + " " + target.URL) {
			logger.Warn("[%s] Duplicate target %s skipped", spec.Name, target.URL)
			continue
		}

		src := scraper.NewSource(spec, fetcher, logger)
		pool.Submit(func() error {
			listings, err := src.Fetch(ctx, target.URL)
			if err != nil {
				logger.Error("[%s] Scrape failed: %v", src.Name(), err)
				return err
			}
			results[i] = fetchResult{source: src.Name(), listings: listings, ok: true}
			return nil
		})
	}

	if err := pool.Wait(); err != nil {
		logger.Warn("Some targets failed; continuing with %d of %d", visited.Size()-countErrors(err), len(cfg.Targets))
	}
	return results
}

func countErrors(err error) int {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return len(joined.Unwrap())
	}
	return 1
}

func reportFilters(agg *services.Aggregator, f config.Filters, logger *utils.Logger) {
	var preds []services.Predicate
	if f.MinPrice > 0 || f.MaxPrice > 0 {
		upper := f.MaxPrice
		if upper <= 0 {
			upper = math.MaxInt
		}
		preds = append(preds, services.ByPrice(f.MinPrice, upper))
	}
	if f.Location != "" {
		preds = append(preds, services.ByLocation(f.Location))
	}
	if f.PropertyType != "" {
		preds = append(preds, services.ByPropertyType(f.PropertyType))
	}

	matches := agg.Query(preds...)
	logger.Info("Filter %+v matched %d listings", f, len(matches))
	for _, l := range matches {
		logger.Info("  [%s] %s | %s | %s", l.Source, l.Title, l.Price, l.Location)
	}
}
