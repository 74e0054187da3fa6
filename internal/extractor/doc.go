// Package extractor derives a single headline from fetched page content.
//
// Three interchangeable variants exist, selected per deployment: "mostread"
// follows the homepage's Most Read link to the article page and takes its
// primary heading, "featured" takes the first article link after the
// Featured section heading, and "rss" takes the title of the first item in
// the site's feed.
//
// Each variant is a pipeline of best-effort structural lookups that
// short-circuits at the first absent step. Failures are values, not errors:
// an extraction returns a Result carrying either the headline or a typed
// reason why none was produced, and the caller decides what to do with it.
package extractor
