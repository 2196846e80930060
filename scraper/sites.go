package scraper

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldSelectors maps listing fields to CSS selectors evaluated inside one
// listing element. An empty selector leaves the field empty.
type FieldSelectors struct {
	Title        string `yaml:"title"`
	Price        string `yaml:"price"`
	Location     string `yaml:"location"`
	PropertyType string `yaml:"propertyType"`
	Size         string `yaml:"size"`
	Bedrooms     string `yaml:"bedrooms"`
	Bathrooms    string `yaml:"bathrooms"`
	Description  string `yaml:"description"`
	AgentInfo    string `yaml:"agentInfo"`
	Link         string `yaml:"link"`
	Image        string `yaml:"image"`
}

// SiteSpec describes how to pull listings out of one site's result page.
type SiteSpec struct {
	Name   string         `yaml:"name"`
	Item   string         `yaml:"item"`
	Fields FieldSelectors `yaml:"fields"`

	// DescriptionFromText uses the whole listing element's text as the
	// description, cut to DescriptionLimit runes when that is positive.
	DescriptionFromText bool `yaml:"descriptionFromText"`
	DescriptionLimit    int  `yaml:"descriptionLimit"`
}

// Validate checks the fields every spec needs.
func (s SiteSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("site spec: missing name")
	}
	if strings.TrimSpace(s.Item) == "" {
		return fmt.Errorf("site spec %s: missing item selector", s.Name)
	}
	return nil
}

// DefaultSites returns the built-in catalogue.
func DefaultSites() []SiteSpec {
	return []SiteSpec{
		{
			Name: "DDProperty",
			Item: `[data-testid="property-item"]`,
			Fields: FieldSelectors{
				Title:        `[data-testid="property-title"]`,
				Price:        `[data-testid="property-price"]`,
				Location:     `[data-testid="property-location"]`,
				PropertyType: `[data-testid="property-type"]`,
				Size:         `[data-testid="property-size"]`,
				Bedrooms:     `[data-testid="bedrooms"]`,
				Bathrooms:    `[data-testid="bathrooms"]`,
				Description:  `[data-testid="property-description"]`,
				AgentInfo:    `[data-testid="agent-info"]`,
				Link:         "a",
				Image:        "img",
			},
		},
		{
			Name: "PropertyShowcase",
			Item: `.property-card, [class*="property-item"]`,
			Fields: FieldSelectors{
				Title:        `h2, h3, [class*="title"]`,
				Price:        `[class*="price"]`,
				Location:     `[class*="location"], [class*="address"]`,
				PropertyType: `[class*="type"]`,
				Size:         `[class*="size"], [class*="area"]`,
				Bedrooms:     `[class*="bed"]`,
				Bathrooms:    `[class*="bath"]`,
				Description:  `[class*="description"]`,
				AgentInfo:    `[class*="agent"]`,
				Link:         "a",
				Image:        "img",
			},
		},
		{
			Name: "Hipflat",
			Item: `article, [class*="listing"]`,
			Fields: FieldSelectors{
				Title:        "h2, h3, a",
				Price:        `[class*="price"]`,
				Location:     `[class*="location"]`,
				PropertyType: `[class*="type"]`,
				Size:         `[class*="area"], [class*="size"]`,
				Bedrooms:     `[class*="bed"]`,
				Bathrooms:    `[class*="bath"]`,
				AgentInfo:    `[class*="agent"]`,
				Link:         "a",
				Image:        "img",
			},
			DescriptionFromText: true,
			DescriptionLimit:    500,
		},
	}
}

type siteFile struct {
	Sites []SiteSpec `yaml:"sites"`
}

// LoadSites reads a YAML site catalogue. An empty path returns DefaultSites.
func LoadSites(path string) ([]SiteSpec, error) {
	if path == "" {
		return DefaultSites(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sites: read %q: %w", path, err)
	}
	return ParseSites(data)
}

// ParseSites decodes a YAML catalogue of the form {sites: [...]}.
func ParseSites(data []byte) ([]SiteSpec, error) {
	var f siteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("sites: decode: %w", err)
	}
	if len(f.Sites) == 0 {
		return nil, fmt.Errorf("sites: catalogue is empty")
	}

	seen := make(map[string]struct{}, len(f.Sites))
	for _, s := range f.Sites {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("sites: %w", err)
		}
		key := strings.ToLower(s.Name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("sites: duplicate site %q", s.Name)
		}
		seen[key] = struct{}{}
	}
	return f.Sites, nil
}

// FindSite looks a spec up by name, ignoring case.
func FindSite(sites []SiteSpec, name string) (SiteSpec, bool) {
	for _, s := range sites {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return SiteSpec{}, false
}
