package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"realestate-aggregator/models"
)

// JSONWriter exports listings as a pretty-printed JSON array.
type JSONWriter struct {
	path string
}

var _ ListingWriter = (*JSONWriter)(nil)

// NewJSONWriter creates a writer that overwrites path on every Write.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// Write serialises listings and replaces the file. An empty set produces [].
func (j *JSONWriter) Write(listings []models.Listing) error {
	if listings == nil {
		listings = []models.Listing{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(listings); err != nil {
		return fmt.Errorf("json: encode: %w", err)
	}

	if err := replaceFile(j.path, buf.Bytes()); err != nil {
		return fmt.Errorf("json: %w", err)
	}
	return nil
}
