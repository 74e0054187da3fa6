package extractor

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ecooper/dp-headlines/internal/fetcher"
	"github.com/ecooper/dp-headlines/internal/logger"
)

// Featured extracts the first article link following the homepage's
// "Featured" section heading. Single fetch, no article page visit.
type Featured struct {
	HomepageURL string
}

// Name returns the variant name.
func (e *Featured) Name() string {
	return VariantFeatured
}

// Extract fetches the homepage and returns the text of the first article
// link after the Featured heading in document order.
func (e *Featured) Extract(client *fetcher.Client, log *logger.Logger) Result {
	log.Info("Requesting homepage", logger.Fields{"url": e.HomepageURL})
	body, err := client.Get(e.HomepageURL)
	if err != nil {
		log.Error("Error fetching homepage", logger.Fields{"url": e.HomepageURL}, err)
		return transportFailure(err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		log.Warn("Could not parse homepage HTML", logger.Fields{"error": err.Error()})
		return structureFailure("parsing homepage HTML: " + err.Error())
	}

	headline, found := featuredHeadline(doc)
	if !found {
		log.Warn("Could not find 'Featured' section or a following article link", nil)
		return structureFailure("featured section link not found")
	}
	if headline == "" {
		log.Warn("Featured article link has no text", nil)
		return emptyResult("featured link has no text")
	}

	log.Info("Extracted headline", logger.Fields{"headline": headline})
	return success(headline)
}

// featuredHeadline walks the document in order, arms on a heading whose text
// contains "Featured", and returns the trimmed text of the next link. The
// bool reports whether both the heading and a following link were located;
// the text itself may still be empty.
func featuredHeadline(doc *goquery.Document) (string, bool) {
	var headline string
	found := false
	armed := false

	doc.Find("*").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		name := goquery.NodeName(sel)

		if !armed {
			if isHeading(name) && strings.Contains(sel.Text(), "Featured") {
				armed = true
			}
			return true
		}

		if name == "a" {
			headline = strings.TrimSpace(sel.Text())
			found = true
			return false
		}
		return true
	})

	return headline, found
}

func isHeading(nodeName string) bool {
	switch nodeName {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}
