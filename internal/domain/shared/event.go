package shared

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact recorded by an aggregate and consumed in-process by
// the application service that saved it.
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
	TenantID() uuid.UUID
}

// BaseDomainEvent holds the metadata common to every event.
type BaseDomainEvent struct {
	Type   string    `json:"type"`
	At     time.Time `json:"occurred_at"`
	Tenant uuid.UUID `json:"tenant_id"`
}

func (e *BaseDomainEvent) EventType() string {
	return e.Type
}

func (e *BaseDomainEvent) OccurredAt() time.Time {
	return e.At
}

func (e *BaseDomainEvent) TenantID() uuid.UUID {
	return e.Tenant
}

// NewBaseDomainEvent stamps an event of the given type with the current time.
func NewBaseDomainEvent(eventType string, tenantID uuid.UUID) BaseDomainEvent {
	return BaseDomainEvent{
		Type:   eventType,
		At:     time.Now(),
		Tenant: tenantID,
	}
}
