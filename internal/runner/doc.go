// Package runner sequences one run of the headline scrape job: ensure the
// data directory, load the daily event monitor, extract a headline, record
// and persist it if one was produced, then emit operator diagnostics.
package runner
