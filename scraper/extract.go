package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"realestate-aggregator/models"
)

// Extract returns one RawListing per element matching spec.Item. Links and
// image sources are resolved against base when it is non-nil.
func Extract(doc *goquery.Document, spec SiteSpec, base *url.URL) []models.RawListing {
	listings := make([]models.RawListing, 0)
	f := spec.Fields

	doc.Find(spec.Item).Each(func(_ int, el *goquery.Selection) {
		l := models.RawListing{
			Title:        firstText(el, f.Title),
			Price:        firstText(el, f.Price),
			Location:     firstText(el, f.Location),
			PropertyType: firstText(el, f.PropertyType),
			Size:         firstText(el, f.Size),
			Bedrooms:     firstText(el, f.Bedrooms),
			Bathrooms:    firstText(el, f.Bathrooms),
			Description:  firstText(el, f.Description),
			AgentInfo:    firstText(el, f.AgentInfo),
			Images:       imageSources(el, f.Image, base),
		}

		if spec.DescriptionFromText {
			l.Description = strings.TrimSpace(truncateRunes(el.Text(), spec.DescriptionLimit))
		}

		if f.Link != "" {
			if href, ok := el.Find(f.Link).First().Attr("href"); ok {
				l.URL = resolve(base, href)
			}
		}

		listings = append(listings, l)
	})

	return listings
}

func firstText(el *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return strings.TrimSpace(el.Find(selector).First().Text())
}

// imageSources collects src, falling back to data-src for lazy images.
func imageSources(el *goquery.Selection, selector string, base *url.URL) []string {
	images := make([]string, 0)
	if selector == "" {
		return images
	}

	el.Find(selector).Each(func(_ int, img *goquery.Selection) {
		src := strings.TrimSpace(img.AttrOr("src", ""))
		if src == "" {
			src = strings.TrimSpace(img.AttrOr("data-src", ""))
		}
		if src != "" {
			images = append(images, resolve(base, src))
		}
	})
	return images
}

func resolve(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if base == nil || ref == "" {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
