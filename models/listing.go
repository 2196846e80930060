package models

// RawListing holds the unnormalised fields a source collaborator extracted for
// one listing. Every field defaults to the empty value.
type RawListing struct {
	Title        string   `json:"title"`
	Price        string   `json:"price"`
	Location     string   `json:"location"`
	PropertyType string   `json:"propertyType"`
	Size         string   `json:"size"`
	Bedrooms     string   `json:"bedrooms"`
	Bathrooms    string   `json:"bathrooms"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
	AgentInfo    string   `json:"agentInfo"`
	URL          string   `json:"url"`
}

// Listing is a RawListing tagged with its source and extended with parsed
// numeric fields. A nil numeric field means the display text held no number.
type Listing struct {
	Title        string   `json:"title"`
	Price        string   `json:"price"`
	Location     string   `json:"location"`
	PropertyType string   `json:"propertyType"`
	Size         string   `json:"size"`
	Bedrooms     string   `json:"bedrooms"`
	Bathrooms    string   `json:"bathrooms"`
	Description  string   `json:"description"`
	Images       []string `json:"images"`
	AgentInfo    string   `json:"agentInfo"`
	URL          string   `json:"url"`

	Source         string `json:"source"`
	PriceValue     *int   `json:"priceValue"`
	SizeSqm        *int   `json:"sizeSqm"`
	BedroomsValue  *int   `json:"bedroomsValue"`
	BathroomsValue *int   `json:"bathroomsValue"`
}

// Clone returns a deep copy so callers can't reach back into a store.
func (l Listing) Clone() Listing {
	c := l
	c.Images = append(make([]string, 0, len(l.Images)), l.Images...)
	c.PriceValue = cloneInt(l.PriceValue)
	c.SizeSqm = cloneInt(l.SizeSqm)
	c.BedroomsValue = cloneInt(l.BedroomsValue)
	c.BathroomsValue = cloneInt(l.BathroomsValue)
	return c
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Summary holds simple aggregate figures over a set of listings.
type Summary struct {
	TotalListings      int
	BySource           map[string]int
	PricedListings     int
	AveragePrice       float64
	MinPrice           int
	MaxPrice           int
	MostExpensive      *Listing
	ListingsByLocation map[string]int
}
