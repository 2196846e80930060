package services

import (
	"strconv"
	"strings"

	"realestate-aggregator/models"
)

// Normalize tags raw with its source and derives the numeric fields. It never
// fails: text that holds no number leaves the numeric field nil.
func Normalize(raw models.RawListing, source string) models.Listing {
	return models.Listing{
		Title:        raw.Title,
		Price:        raw.Price,
		Location:     raw.Location,
		PropertyType: raw.PropertyType,
		Size:         raw.Size,
		Bedrooms:     raw.Bedrooms,
		Bathrooms:    raw.Bathrooms,
		Description:  raw.Description,
		Images:       uniqueImages(raw.Images),
		AgentInfo:    raw.AgentInfo,
		URL:          raw.URL,

		Source:         source,
		PriceValue:     ParseNumber(raw.Price),
		SizeSqm:        ParseNumber(raw.Size),
		BedroomsValue:  ParseNumber(raw.Bedrooms),
		BathroomsValue: ParseNumber(raw.Bathrooms),
	}
}

// ParseNumber keeps only the decimal digits of text and parses them as a
// base-10 integer. Sign, decimal point and unit text are discarded, so
// "฿3,500,000/month" gives 3500000 and "2.5" gives 25. Returns nil when no
// digits remain or the digits overflow an int.
func ParseNumber(text string) *int {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return nil
	}

	n, err := strconv.Atoi(b.String())
	if err != nil {
		return nil
	}
	return &n
}

// uniqueImages drops blank entries and exact duplicates. First-seen order is
// kept but callers must not rely on it.
func uniqueImages(images []string) []string {
	result := make([]string, 0, len(images))
	seen := make(map[string]struct{}, len(images))

	for _, img := range images {
		if strings.TrimSpace(img) == "" {
			continue
		}
		if _, dup := seen[img]; dup {
			continue
		}
		seen[img] = struct{}{}
		result = append(result, img)
	}
	return result
}
