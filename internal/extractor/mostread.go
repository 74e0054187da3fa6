package extractor

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ecooper/dp-headlines/internal/fetcher"
	"github.com/ecooper/dp-headlines/internal/logger"
)

// MostRead extracts the headline of the homepage's most-read article. It
// makes two fetches: the homepage, to locate the most-read article link, and
// the article page itself, to read its primary heading.
type MostRead struct {
	HomepageURL string
}

// Name returns the variant name.
func (e *MostRead) Name() string {
	return VariantMostRead
}

// Extract fetches the homepage, follows the first Most Read link, and
// returns the article page's h1 text.
func (e *MostRead) Extract(client *fetcher.Client, log *logger.Logger) Result {
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

	href, res := mostReadHref(doc, log)
	if res.Reason != "" {
		return res
	}

	articleURL, err := resolveURL(e.HomepageURL, href)
	if err != nil {
		log.Warn("Could not resolve Most Read article URL", logger.Fields{"href": href})
		return structureFailure("resolving article URL: " + err.Error())
	}
	log.Info("Most Read article URL", logger.Fields{"url": articleURL})

	articleBody, err := client.Get(articleURL)
	if err != nil {
		log.Error("Error fetching article page", logger.Fields{"url": articleURL}, err)
		return transportFailure(err)
	}

	articleDoc, err := goquery.NewDocumentFromReader(bytes.NewReader(articleBody))
	if err != nil {
		log.Warn("Could not parse article HTML", logger.Fields{"error": err.Error()})
		return structureFailure("parsing article HTML: " + err.Error())
	}

	heading := articleDoc.Find("h1").First()
	if heading.Length() == 0 {
		log.Warn("Could not find article headline", logger.Fields{"url": articleURL})
		return structureFailure("article heading not found")
	}

	headline := strings.TrimSpace(heading.Text())
	if headline == "" {
		log.Warn("Article headline is empty", logger.Fields{"url": articleURL})
		return emptyResult("article heading has no text")
	}

	log.Info("Extracted headline", logger.Fields{"headline": headline})
	return success(headline)
}

// mostReadHref locates the Most Read section and returns the href of its
// first article link. A zero Result means the href is usable; a populated
// Reason is the failure to propagate.
func mostReadHref(doc *goquery.Document, log *logger.Logger) (string, Result) {
	section := doc.Find("span#mostRead").First()
	if section.Length() == 0 {
		log.Warn("Could not find 'Most Read' section", nil)
		return "", structureFailure("most read section not found")
	}

	link := section.Find("a.frontpage-link.standard-link").First()
	href, exists := link.Attr("href")
	if !exists || href == "" {
		log.Warn("Could not find 'Most Read' article link", nil)
		return "", structureFailure("most read article link not found")
	}

	return href, Result{}
}
