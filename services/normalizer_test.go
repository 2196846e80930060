package services

import (
	"reflect"
	"testing"

	"realestate-aggregator/models"
)

func intPtr(n int) *int { return &n }

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want *int
	}{
		{"฿3,500,000", intPtr(3500000)},
		{"฿3,500,000/month", intPtr(3500000)},
		{"2 bed", intPtr(2)},
		{"45 sqm", intPtr(45)},
		{"2.5", intPtr(25)},
		{"2-3", intPtr(23)},
		{"-7", intPtr(7)},
		{"0", intPtr(0)},
		{"", nil},
		{"N/A", nil},
		{"٣", nil},
		{"99999999999999999999999999", nil},
	}

	for _, tt := range tests {
		got := ParseNumber(tt.raw)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("ParseNumber(%q) = %d; want nil", tt.raw, *got)
		case tt.want != nil && got == nil:
			t.Errorf("ParseNumber(%q) = nil; want %d", tt.raw, *tt.want)
		case tt.want != nil && *got != *tt.want:
			t.Errorf("ParseNumber(%q) = %d; want %d", tt.raw, *got, *tt.want)
		}
	}
}

func TestNormalizeKeepsFieldsAndTagsSource(t *testing.T) {
	raw := models.RawListing{
		Title:        "Condo near BTS",
		Price:        "฿4,200,000",
		Location:     "Sukhumvit, Bangkok",
		PropertyType: "Condo",
		Size:         "35 sqm",
		Bedrooms:     "1 bed",
		Bathrooms:    "N/A",
		Description:  "Quiet unit",
		Images:       []string{"a.jpg"},
		AgentInfo:    "Khun Somchai",
		URL:          "https://example.com/1",
	}

	got := Normalize(raw, "DDProperty")

	if got.Source != "DDProperty" {
		t.Errorf("Source = %q; want %q", got.Source, "DDProperty")
	}
	if got.Title != raw.Title || got.Price != raw.Price || got.Location != raw.Location ||
		got.PropertyType != raw.PropertyType || got.Size != raw.Size || got.Bedrooms != raw.Bedrooms ||
		got.Bathrooms != raw.Bathrooms || got.Description != raw.Description ||
		got.AgentInfo != raw.AgentInfo || got.URL != raw.URL {
		t.Errorf("Normalize changed a text field: %+v", got)
	}
	if got.PriceValue == nil || *got.PriceValue != 4200000 {
		t.Errorf("PriceValue = %v; want 4200000", got.PriceValue)
	}
	if got.SizeSqm == nil || *got.SizeSqm != 35 {
		t.Errorf("SizeSqm = %v; want 35", got.SizeSqm)
	}
	if got.BedroomsValue == nil || *got.BedroomsValue != 1 {
		t.Errorf("BedroomsValue = %v; want 1", got.BedroomsValue)
	}
	if got.BathroomsValue != nil {
		t.Errorf("BathroomsValue = %d; want nil", *got.BathroomsValue)
	}
}

func TestNormalizeEmptyRecord(t *testing.T) {
	got := Normalize(models.RawListing{}, "Hipflat")

	if got.Images == nil || len(got.Images) != 0 {
		t.Errorf("Images = %#v; want empty non-nil slice", got.Images)
	}
	if got.PriceValue != nil || got.SizeSqm != nil || got.BedroomsValue != nil || got.BathroomsValue != nil {
		t.Errorf("expected every numeric field to be nil, got %+v", got)
	}
}

func TestNormalizeImages(t *testing.T) {
	raw := models.RawListing{Images: []string{"a.jpg", "", "b.jpg", "a.jpg", "  ", "b.jpg", "c.jpg"}}

	got := Normalize(raw, "PropertyShowcase").Images
	want := []string{"a.jpg", "b.jpg", "c.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Images = %v; want %v", got, want)
	}
}
