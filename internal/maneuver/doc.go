// Package maneuver provides the vessel maneuver record and the change detection
// that decides which records in a freshly scraped listing are new.
//
// A Maneuver is a flat, comparable struct of scraped strings. Two records are the
// same record only when every field matches exactly, which lets the detector use
// the struct itself as a set key.
package maneuver
