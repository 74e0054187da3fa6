// Package fetcher performs single-attempt HTTP retrieval of pages for the
// headline scrape job.
//
// Every request carries a browser-identifying User-Agent, since the target
// site rejects obvious bot traffic, and is bounded by a fixed timeout. There
// is no retry loop: a failed fetch is reported to the caller, which treats
// it as "no headline this run".
package fetcher
