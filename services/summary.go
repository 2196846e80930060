package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"realestate-aggregator/models"
)

// Summarize computes counts and price figures over listings. Listings without
// a parsed price are left out of the price figures.
func Summarize(listings []models.Listing) models.Summary {
	s := models.Summary{
		BySource:           make(map[string]int),
		ListingsByLocation: make(map[string]int),
	}
	s.TotalListings = len(listings)

	var total int
	for i := range listings {
		l := &listings[i]
		s.BySource[l.Source]++
		if l.Location != "" {
			s.ListingsByLocation[l.Location]++
		}

		if l.PriceValue == nil {
			continue
		}
		p := *l.PriceValue
		if s.PricedListings == 0 || p < s.MinPrice {
			s.MinPrice = p
		}
		if s.PricedListings == 0 || p > s.MaxPrice {
			s.MaxPrice = p
			s.MostExpensive = l
		}
		s.PricedListings++
		total += p
	}

	if s.PricedListings > 0 {
		s.AveragePrice = round2(float64(total) / float64(s.PricedListings))
	}
	return s
}

// PrintSummary renders s as a short text report.
func PrintSummary(w io.Writer, s models.Summary) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n%s\n  LISTING SUMMARY\n%s\n\n", sep, sep)

	fmt.Fprintf(w, "  Overview\n  %s\n", thin)
	fmt.Fprintf(w, "  Total listings : %d\n", s.TotalListings)
	for _, src := range sortedKeys(s.BySource) {
		fmt.Fprintf(w, "  %-14s : %d\n", src, s.BySource[src])
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Prices\n  %s\n", thin)
	if s.PricedListings == 0 {
		fmt.Fprintf(w, "  No price data available\n")
	} else {
		fmt.Fprintf(w, "  With price : %d\n", s.PricedListings)
		fmt.Fprintf(w, "  Average    : %.2f\n", s.AveragePrice)
		fmt.Fprintf(w, "  Minimum    : %d\n", s.MinPrice)
		fmt.Fprintf(w, "  Maximum    : %d\n", s.MaxPrice)
		if s.MostExpensive != nil {
			fmt.Fprintf(w, "  Top        : %s (%s)\n", truncate(s.MostExpensive.Title, 40), s.MostExpensive.Location)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  Listings by Location\n  %s\n", thin)
	if len(s.ListingsByLocation) == 0 {
		fmt.Fprintf(w, "  No location data\n")
	} else {
		locs := sortedKeys(s.ListingsByLocation)
		sort.SliceStable(locs, func(i, j int) bool {
			return s.ListingsByLocation[locs[i]] > s.ListingsByLocation[locs[j]]
		})
		for _, loc := range locs {
			fmt.Fprintf(w, "  %-30s %d\n", truncate(loc, 28), s.ListingsByLocation[loc])
		}
	}

	fmt.Fprintf(w, "\n%s\n\n", sep)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
