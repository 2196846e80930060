package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"realestate-aggregator/models"
	"realestate-aggregator/services"
	"realestate-aggregator/utils"
)

// HTMLFetcher returns the rendered HTML of a page.
type HTMLFetcher interface {
	FetchHTML(ctx context.Context, pageURL string) (string, error)
}

// Source pulls listings for one site: fetch the page, then extract with the
// site's selectors.
type Source struct {
	spec    SiteSpec
	fetcher HTMLFetcher
	logger  *utils.Logger
}

var _ services.Fetcher = (*Source)(nil)

// NewSource creates a Source for spec backed by fetcher.
func NewSource(spec SiteSpec, fetcher HTMLFetcher, logger *utils.Logger) *Source {
	return &Source{spec: spec, fetcher: fetcher, logger: logger}
}

// Name returns the site name used as the listings' source tag.
func (s *Source) Name() string {
	return s.spec.Name
}

// Fetch returns every listing on target, or an error if the page could not
// be loaded or parsed.
func (s *Source) Fetch(ctx context.Context, target string) ([]models.RawListing, error) {
	base, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("%s: parse target %q: %w", s.spec.Name, target, err)
	}

	s.logger.Info("[%s] Scraping %s", s.spec.Name, target)
	html, err := s.fetcher.FetchHTML(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch %q: %w", s.spec.Name, target, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%s: parse html: %w", s.spec.Name, err)
	}

	listings := Extract(doc, s.spec, base)
	if len(listings) == 0 {
		s.logger.Warn("[%s] No listings matched %q on %s", s.spec.Name, s.spec.Item, target)
	} else {
		s.logger.Info("[%s] Extracted %d listings", s.spec.Name, len(listings))
	}
	return listings, nil
}
