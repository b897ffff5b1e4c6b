// Package slot provides durable single-entry token slots for the session controller.
package slot

// DefaultKey names the slot when none is configured.
const DefaultKey = "jobboard.token"
