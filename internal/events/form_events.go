package events

import (
	"time"
)

// EventType represents different types of domain events
type EventType string

const (
	// Form lifecycle events
	EventFormCreated EventType = "form.created"
	EventFormUpdated EventType = "form.updated"
	EventFormDeleted EventType = "form.deleted"

	// Response events
	EventResponseSubmitted EventType = "response.submitted"
)

// DomainEvent is the base envelope for all published events
type DomainEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Form event payloads

type FormCreatedEvent struct {
	FormID        uint   `json:"form_id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count"`
	CreatedBy     string `json:"created_by"`
}

type FormUpdatedEvent struct {
	FormID        uint   `json:"form_id"`
	Title         string `json:"title"`
	QuestionCount int    `json:"question_count"`
}

type FormDeletedEvent struct {
	FormID uint `json:"form_id"`
}

// Response event payloads

type ResponseSubmittedEvent struct {
	ResponseID  uint      `json:"response_id"`
	FormID      uint      `json:"form_id"`
	AnswerCount int       `json:"answer_count"`
	SubmittedAt time.Time `json:"submitted_at"`
}
