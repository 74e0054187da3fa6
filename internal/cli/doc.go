// Package cli wires the scrape job's command line: flag parsing, config
// assembly, logger construction, and the handoff to the runner.
package cli
