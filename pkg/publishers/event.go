package publishers

import (
	"time"

	"github.com/google/uuid"

	"github.com/genego-hq/genego-site/internal/domain"
)

// EventContactSubmitted is emitted for every accepted contact form submission.
const EventContactSubmitted = "contact.submitted"

// Event represents the payload published downstream.
type Event struct {
	ID         string                `json:"id"`
	Type       string                `json:"type"`
	Source     string                `json:"source"`
	Contact    domain.ContactMessage `json:"contact"`
	OccurredAt time.Time             `json:"occurred_at"`
}

// NewContactEvent wraps a contact message for the given site.
func NewContactEvent(source string, msg domain.ContactMessage) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       EventContactSubmitted,
		Source:     source,
		Contact:    msg,
		OccurredAt: time.Now().UTC(),
	}
}

// attributes returns the non-empty routing attributes attached to queue messages.
func (e Event) attributes() map[string]string {
	out := make(map[string]string, 3)
	for k, v := range map[string]string{
		"event_id":   e.ID,
		"event_type": e.Type,
		"source":     e.Source,
	} {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
