package storage

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"realestate-aggregator/models"
)

// ImageDelimiter joins the image URLs of a listing into one cell.
const ImageDelimiter = ";"

type column struct {
	name  string
	value func(*models.Listing) string
}

// columns lists every listing field in export order.
var columns = []column{
	{"title", func(l *models.Listing) string { return l.Title }},
	{"price", func(l *models.Listing) string { return l.Price }},
	{"location", func(l *models.Listing) string { return l.Location }},
	{"propertyType", func(l *models.Listing) string { return l.PropertyType }},
	{"size", func(l *models.Listing) string { return l.Size }},
	{"bedrooms", func(l *models.Listing) string { return l.Bedrooms }},
	{"bathrooms", func(l *models.Listing) string { return l.Bathrooms }},
	{"description", func(l *models.Listing) string { return l.Description }},
	{"images", func(l *models.Listing) string { return strings.Join(l.Images, ImageDelimiter) }},
	{"agentInfo", func(l *models.Listing) string { return l.AgentInfo }},
	{"url", func(l *models.Listing) string { return l.URL }},
	{"source", func(l *models.Listing) string { return l.Source }},
	{"priceValue", func(l *models.Listing) string { return formatInt(l.PriceValue) }},
	{"sizeSqm", func(l *models.Listing) string { return formatInt(l.SizeSqm) }},
	{"bedroomsValue", func(l *models.Listing) string { return formatInt(l.BedroomsValue) }},
	{"bathroomsValue", func(l *models.Listing) string { return formatInt(l.BathroomsValue) }},
}

// CSVWriter exports listings as comma-separated rows under a header row.
// Every data cell is quoted, with embedded quotes doubled.
type CSVWriter struct {
	path string
}

var _ ListingWriter = (*CSVWriter)(nil)

// NewCSVWriter creates a writer that overwrites path on every Write.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Write replaces the file with the encoded listings. With no listings it
// writes nothing and leaves any existing file untouched.
func (c *CSVWriter) Write(listings []models.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	if err := replaceFile(c.path, EncodeCSV(listings)); err != nil {
		return fmt.Errorf("csv: %w", err)
	}
	return nil
}

// EncodeCSV renders the header and one row per listing, separated by "\n"
// with no trailing newline.
func EncodeCSV(listings []models.Listing) []byte {
	var buf bytes.Buffer

	for i, col := range columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(col.name)
	}

	for i := range listings {
		buf.WriteByte('\n')
		for j, col := range columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(quote(col.value(&listings[i])))
		}
	}
	return buf.Bytes()
}

// encoding/csv only quotes when it has to; every cell here is quoted.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatInt(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
