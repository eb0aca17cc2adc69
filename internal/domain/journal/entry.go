// Package journal defines the event log entries recorded during play.
package journal

import "time"

// Entry is a single logged game event
type Entry struct {
	ID          string         `yaml:"id"`
	Timestamp   time.Time      `yaml:"timestamp"`
	EventType   string         `yaml:"event_type"`
	Description string         `yaml:"description"`
	Metadata    map[string]any `yaml:"metadata,omitempty"`
}
