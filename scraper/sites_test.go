package scraper

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSitesValid(t *testing.T) {
	sites := DefaultSites()
	if len(sites) != 3 {
		t.Errorf("got %d built-in sites; want 3", len(sites))
	}
	for _, s := range sites {
		if err := s.Validate(); err != nil {
			t.Errorf("built-in site %s: %v", s.Name, err)
		}
	}
}

func TestFindSiteIgnoresCase(t *testing.T) {
	if _, ok := FindSite(DefaultSites(), "hipflat"); !ok {
		t.Error("FindSite should match regardless of case")
	}
	if _, ok := FindSite(DefaultSites(), "Zillow"); ok {
		t.Error("FindSite matched an unknown site")
	}
}

func TestParseSites(t *testing.T) {
	data := []byte(`
sites:
  - name: Livinginsider
    item: ".listing-card"
    fields:
      title: "h2"
      price: ".price"
      propertyType: ".type"
      link: "a"
      image: "img"
    descriptionFromText: true
    descriptionLimit: 200
`)
	sites, err := ParseSites(data)
	if err != nil {
		t.Fatalf("ParseSites: %v", err)
	}
	if len(sites) != 1 {
		t.Fatalf("got %d sites; want 1", len(sites))
	}
	s := sites[0]
	if s.Name != "Livinginsider" || s.Item != ".listing-card" {
		t.Errorf("unexpected spec: %+v", s)
	}
	if s.Fields.PropertyType != ".type" || s.Fields.Link != "a" {
		t.Errorf("fields not decoded: %+v", s.Fields)
	}
	if !s.DescriptionFromText || s.DescriptionLimit != 200 {
		t.Errorf("description options not decoded: %+v", s)
	}
}

func TestParseSitesErrors(t *testing.T) {
	tests := map[string]string{
		"empty":        `sites: []`,
		"missing item": "sites:\n  - name: A\n",
		"missing name": "sites:\n  - item: div\n",
		"duplicate":    "sites:\n  - {name: A, item: div}\n  - {name: a, item: p}\n",
		"bad yaml":     "sites: [",
	}
	for name, data := range tests {
		if _, err := ParseSites([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadSites(t *testing.T) {
	sites, err := LoadSites("")
	if err != nil || len(sites) != len(DefaultSites()) {
		t.Errorf("LoadSites(\"\") = %d sites, %v; want built-in catalogue", len(sites), err)
	}

	path := filepath.Join(t.TempDir(), "sites.yaml")
	if err := os.WriteFile(path, []byte("sites:\n  - {name: A, item: div}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	sites, err = LoadSites(path)
	if err != nil || len(sites) != 1 || sites[0].Name != "A" {
		t.Errorf("LoadSites(file) = %+v, %v", sites, err)
	}

	if _, err := LoadSites(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
