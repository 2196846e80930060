package services

import (
	"strings"

	"realestate-aggregator/models"
)

// Predicate reports whether a listing should be kept by a query.
type Predicate func(*models.Listing) bool

// ByPrice keeps listings with a parsed price in [min, max]. Listings whose
// price text held no number never match.
func ByPrice(min, max int) Predicate {
	return func(l *models.Listing) bool {
		return l.PriceValue != nil && *l.PriceValue >= min && *l.PriceValue <= max
	}
}

// ByLocation matches sub case-insensitively anywhere in the location.
func ByLocation(sub string) Predicate {
	return containsFold(func(l *models.Listing) string { return l.Location }, sub)
}

// ByPropertyType matches sub case-insensitively anywhere in the property type.
func ByPropertyType(sub string) Predicate {
	return containsFold(func(l *models.Listing) string { return l.PropertyType }, sub)
}

func containsFold(field func(*models.Listing) string, sub string) Predicate {
	needle := strings.ToLower(sub)
	return func(l *models.Listing) bool {
		return strings.Contains(strings.ToLower(field(l)), needle)
	}
}

// Filter returns copies of the listings that satisfy every predicate.
// The input is not modified.
func Filter(listings []models.Listing, preds ...Predicate) []models.Listing {
	result := make([]models.Listing, 0)
	for i := range listings {
		if matchAll(&listings[i], preds) {
			result = append(result, listings[i].Clone())
		}
	}
	return result
}

func matchAll(l *models.Listing, preds []Predicate) bool {
	for _, p := range preds {
		if !p(l) {
			return false
		}
	}
	return true
}
