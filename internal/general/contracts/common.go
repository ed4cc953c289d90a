package contracts

import "time"

// Envelope adds cross-cutting headers all messages may carry.
type Envelope struct {
	Producer string    `json:"producer,omitempty"` // producer service name, e.g. "route-producer"
	SentAt   time.Time `json:"sent_at,omitempty"`  // ISO-8601 send time (UTC)
}
