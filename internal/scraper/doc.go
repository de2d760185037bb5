// Package scraper provides HTTP fetching and HTML parsing for the port maneuver listing.
//
// The scraper fetches the configured operations page and extracts the rows of the
// first table on it as maneuver records. Rows with fewer than fifteen cells are
// dropped silently, and a page without any table yields an empty listing.
package scraper
