package events

import (
	"time"

	"smart-pdf-assistant/pkg/store"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the subject suffix for this event (e.g., "session.upload_succeeded").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewTransitionEvent summarises a store transition for external consumers.
// The transcript itself is not included, only its length.
func NewTransitionEvent(t store.Transition) BaseEvent {
	s := t.Session
	return BaseEvent{
		Type: "session." + t.Action,
		Data: map[string]interface{}{
			"action":         t.Action,
			"state":          string(s.State),
			"pdf_file_name":  s.PdfFileName,
			"page_count":     s.PageCount,
			"uploading":      s.Uploading,
			"upload_error":   s.UploadError,
			"loading_answer": s.LoadingAnswer,
			"messages":       len(s.ChatHistory),
			"generation":     s.Generation,
			"version":        s.Version,
		},
		OccurredAt: s.UpdatedAt,
	}
}
