// internal/models/status_check.go
package models

import "time"

// StatusCheck is a diagnostic heartbeat document, unrelated to project
// requests. Stored in MongoDB.
type StatusCheck struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Client    string    `json:"client" bson:"client"`
	CheckedAt time.Time `json:"checked_at" bson:"checked_at"`
}
