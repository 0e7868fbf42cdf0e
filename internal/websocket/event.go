package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the type of event (created, updated, deleted)
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeContact  EntityType = "contact"
	EntityTypeCompany  EntityType = "company"
	EntityTypeLead     EntityType = "lead"
	EntityTypeNote     EntityType = "note"
	EntityTypePipeline EntityType = "pipeline"
	EntityTypeProduct  EntityType = "product"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "lead.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "lead"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ContactCreated creates a contact.created event
func ContactCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeContact, payload)
}

// ContactUpdated creates a contact.updated event
func ContactUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeContact, payload)
}

// ContactDeleted creates a contact.deleted event
func ContactDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeContact, payload)
}

// CompanyCreated creates a company.created event
func CompanyCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeCompany, payload)
}

// CompanyUpdated creates a company.updated event
func CompanyUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeCompany, payload)
}

// CompanyDeleted creates a company.deleted event
func CompanyDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeCompany, payload)
}

// LeadCreated creates a lead.created event
func LeadCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeLead, payload)
}

// LeadUpdated creates a lead.updated event
func LeadUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeLead, payload)
}

// LeadDeleted creates a lead.deleted event
func LeadDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeLead, payload)
}

// NoteCreated creates a note.created event
func NoteCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeNote, payload)
}

// PipelineUpdated creates a pipeline.updated event
func PipelineUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypePipeline, payload)
}

// ProductCreated creates a product.created event
func ProductCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeProduct, payload)
}
