// Package cli implements the command-line interface for portwatch.
//
// The cli package provides the Cobra-based CLI: run starts the poll loop, the
// chat bot and the optional HTTP API; check fetches the listing once and prints
// it (text/JSON, sorted by listing, date, berth or name); validate and version
// report on the installation. It wires the config, scraper, store, monitor,
// notifier, bot and api packages together.
package cli
