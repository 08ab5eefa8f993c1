// Package models pkg/models/records.go
package models

import "time"

// QueueRecord is the normalized projection of a routing queue plus its live
// gauges. Gauges default to zero when no observation matched the queue.
type QueueRecord struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Division     DivisionRef `json:"division"`
	OnQueueUsers int         `json:"on_queue_users"`
	Interacting  int         `json:"interacting"`
	Waiting      int         `json:"waiting"`
}

// AuditEntry is a read-only projection of one audit-log record. String
// fields the platform left absent carry the NotAvailable sentinel.
type AuditEntry struct {
	ID         string    `json:"id"`
	Actor      string    `json:"actor"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityName string    `json:"entity_name"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}

// ConversationSummary is a read-only projection of one conversation detail
// record.
type ConversationSummary struct {
	ID               string     `json:"id"`
	Start            time.Time  `json:"start"`
	End              *time.Time `json:"end,omitempty"`
	MediaType        string     `json:"media_type"`
	Direction        string     `json:"direction"`
	QueueName        string     `json:"queue_name"`
	ParticipantCount int        `json:"participant_count"`
}
