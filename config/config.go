package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Target is one page to scrape with a named site's selectors.
type Target struct {
	Site string
	URL  string
}

// Filters narrows the listings reported after aggregation. Zero values mean
// "no constraint".
type Filters struct {
	MinPrice     int
	MaxPrice     int
	Location     string
	PropertyType string
}

// Active reports whether any filter is set.
func (f Filters) Active() bool {
	return f.MinPrice > 0 || f.MaxPrice > 0 || f.Location != "" || f.PropertyType != ""
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	JSONOutputPath string
	CSVOutputPath  string

	MaxConcurrency int
	RateLimitMs    int
	PageTimeoutSec int

	ChromeBin string
	SitesFile string
	Targets   []Target
	Debug     bool

	Filters Filters
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		JSONOutputPath: getEnv("JSON_OUTPUT_PATH", "./output/listings.json"),
		CSVOutputPath:  getEnv("CSV_OUTPUT_PATH", "./output/listings.csv"),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 2000),
		PageTimeoutSec: getEnvInt("PAGE_TIMEOUT_SEC", 30),

		ChromeBin: getEnv("CHROME_BIN", ""),
		SitesFile: getEnv("SITES_FILE", ""),
		Targets:   ParseTargets(getEnv("TARGET_URLS", "")),
		Debug:     getEnvBool("DEBUG", false),

		Filters: Filters{
			MinPrice:     getEnvInt("FILTER_MIN_PRICE", 0),
			MaxPrice:     getEnvInt("FILTER_MAX_PRICE", 0),
			Location:     getEnv("FILTER_LOCATION", ""),
			PropertyType: getEnv("FILTER_PROPERTY_TYPE", ""),
		},
	}
}

// ParseTargets reads a comma-separated list of Site=URL pairs. Malformed
// entries are logged and skipped.
func ParseTargets(raw string) []Target {
	var targets []Target
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		site, u, ok := strings.Cut(entry, "=")
		site, u = strings.TrimSpace(site), strings.TrimSpace(u)
		if !ok || site == "" || u == "" {
			log.Printf("[config] Ignoring malformed target %q (want Site=URL)", entry)
			continue
		}
		targets = append(targets, Target{Site: site, URL: u})
	}
	return targets
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
