// Package store holds the in-memory maneuver snapshot and the cumulative detail index.
//
// The store has a single writer, the monitor's poll loop, which publishes each new
// state as a whole. Readers such as the chat bot and the HTTP API never observe a
// partially applied poll. Nothing is persisted; the state starts empty on every run.
package store
