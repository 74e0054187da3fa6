package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ecooper/dp-headlines/internal/fetcher"
	"github.com/ecooper/dp-headlines/internal/logger"
)

// Variant names accepted by New.
const (
	VariantMostRead = "mostread"
	VariantFeatured = "featured"
	VariantRSS      = "rss"
)

// Reason classifies why an extraction produced no headline.
type Reason string

const (
	// ReasonTransport means a fetch failed (DNS, connection, timeout, bad status).
	ReasonTransport Reason = "transport"
	// ReasonStructure means an expected HTML or feed element was absent.
	ReasonStructure Reason = "structure"
	// ReasonEmpty means the expected element was present but held no text.
	ReasonEmpty Reason = "empty"
	// ReasonUnexpected means extraction panicked and was recovered by the caller.
	ReasonUnexpected Reason = "unexpected"
)

// Result is the outcome of one extraction attempt: either a headline or a
// typed reason for its absence.
type Result struct {
	Headline string
	Reason   Reason
	Detail   string
	Err      error
}

// OK reports whether a headline was produced.
func (r Result) OK() bool {
	return r.Headline != ""
}

func success(headline string) Result {
	return Result{Headline: headline}
}

func transportFailure(err error) Result {
	return Result{Reason: ReasonTransport, Err: err}
}

func structureFailure(detail string) Result {
	return Result{Reason: ReasonStructure, Detail: detail}
}

func emptyResult(detail string) Result {
	return Result{Reason: ReasonEmpty, Detail: detail}
}

// Extractor derives a headline from fetched page content. Implementations
// perform their own fetches through the supplied client but mutate no state.
type Extractor interface {
	// Name returns the variant name.
	Name() string
	// Extract attempts to produce a headline.
	Extract(client *fetcher.Client, log *logger.Logger) Result
}

// Variants lists the accepted variant names.
func Variants() []string {
	return []string{VariantMostRead, VariantFeatured, VariantRSS}
}

// New builds the named extractor variant. homepageURL is the site homepage
// for the HTML variants; feedURL is the feed address for the rss variant.
func New(variant, homepageURL, feedURL string) (Extractor, error) {
	switch variant {
	case VariantMostRead:
		return &MostRead{HomepageURL: homepageURL}, nil
	case VariantFeatured:
		return &Featured{HomepageURL: homepageURL}, nil
	case VariantRSS:
		return &RSS{FeedURL: feedURL}, nil
	default:
		return nil, fmt.Errorf("unknown extractor variant %q (valid: %s)",
			variant, strings.Join(Variants(), ", "))
	}
}

// resolveURL resolves href against base, covering both absolute links and
// the site-relative paths the homepage actually uses.
func resolveURL(base, href string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("parsing link href: %w", err)
	}
	return b.ResolveReference(ref).String(), nil
}
