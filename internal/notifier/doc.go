// Package notifier delivers new maneuver alerts to the configured destination.
//
// Every implementation sends one message per maneuver, in order, pausing between
// consecutive messages. A failed message is logged and the rest are still sent.
package notifier
