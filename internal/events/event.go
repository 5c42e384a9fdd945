// Package events publishes account lifecycle events to downstream consumers (Kafka, OTel logs).
package events

import "time"

// Event types.
const (
	TypeUserCreated    = "user_created"
	TypePasswordReset  = "password_reset"
	TypeThemesSelected = "themes_selected"
)

// Event is one account lifecycle event. Themes is set for themes_selected only.
type Event struct {
	Type      string    `json:"type"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email,omitempty"`
	Themes    []string  `json:"themes,omitempty"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// New returns an event of the given type stamped with the current UTC time.
func New(eventType, userID, email string) *Event {
	return &Event{Type: eventType, UserID: userID, Email: email, CreatedAt: time.Now().UTC()}
}
