package storage

import (
	"fmt"
	"strings"

	"realestate-aggregator/models"
)

// ListingWriter is the interface any export backend must satisfy.
type ListingWriter interface {
	Write(listings []models.Listing) error
}

// Format names a supported export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("storage: unknown export format %q", s)
	}
}

// NewWriter returns the writer for format targeting path.
func NewWriter(format Format, path string) (ListingWriter, error) {
	switch format {
	case FormatJSON:
		return NewJSONWriter(path), nil
	case FormatCSV:
		return NewCSVWriter(path), nil
	default:
		return nil, fmt.Errorf("storage: unknown export format %q", format)
	}
}
