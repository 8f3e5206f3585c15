// Package ui renders the banner, the closing summary, and human-readable command events.
package ui
