package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Event types published by the planner
const (
	AccountCreated   Type = "account.created"
	AccountUpdated   Type = "account.updated"
	AccountDeleted   Type = "account.deleted"
	PlanCreated      Type = "plan.created"
	PlanUpdated      Type = "plan.updated"
	PlanDeleted      Type = "plan.deleted"
	PlanGroupChanged Type = "plan_group.changed"

	PlanRequirementsComputed Type = "plan.requirements.computed"
)

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata interface{} `json:"metadata,omitempty"`
}

// PlanRequirementsComputedPayloadV1 is the typed payload for computation events
type PlanRequirementsComputedPayloadV1 struct {
	AccountID     string `json:"account_id"`
	PlanID        int64  `json:"plan_id"`
	GroupID       int64  `json:"group_id"`
	PrecedingLen  int    `json:"preceding_len"`
	ServantCount  int    `json:"servant_count"`
	MaterialCount int    `json:"material_count"`
	Timestamp     int64  `json:"timestamp"`
}

// NewPlanRequirementsComputedEvent builds a computation event.
func NewPlanRequirementsComputedEvent(accountID string, planID, groupID int64, precedingLen, servantCount, materialCount int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PlanRequirementsComputed,
		Payload: PlanRequirementsComputedPayloadV1{
			AccountID:     accountID,
			PlanID:        planID,
			GroupID:       groupID,
			PrecedingLen:  precedingLen,
			ServantCount:  servantCount,
			MaterialCount: materialCount,
			Timestamp:     time.Now().Unix(),
		},
	}
}

// PlanChangedPayloadV1 is the typed payload for plan lifecycle events
type PlanChangedPayloadV1 struct {
	AccountID string `json:"account_id"`
	PlanID    int64  `json:"plan_id"`
	GroupID   int64  `json:"group_id"`
	Timestamp int64  `json:"timestamp"`
}

// NewPlanChangedEvent builds a plan lifecycle event of the given type.
func NewPlanChangedEvent(eventType Type, accountID string, planID, groupID int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: PlanChangedPayloadV1{
			AccountID: accountID,
			PlanID:    planID,
			GroupID:   groupID,
			Timestamp: time.Now().Unix(),
		},
	}
}

// AccountChangedPayloadV1 is the typed payload for account lifecycle events
type AccountChangedPayloadV1 struct {
	AccountID string `json:"account_id"`
	UserID    string `json:"user_id"`
	Timestamp int64  `json:"timestamp"`
}

// NewAccountChangedEvent builds an account lifecycle event of the given type.
func NewAccountChangedEvent(eventType Type, accountID, userID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: AccountChangedPayloadV1{
			AccountID: accountID,
			UserID:    userID,
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex

	onHandlerError func(eventType Type, err error)
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously
// in subscription order; every handler runs even when an earlier one fails.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	onError := b.onHandlerError
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			if onError != nil {
				onError(event.Type, err)
			}
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%d handler error(s) for event %s: %v", len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// OnHandlerError installs an observer invoked once per failed handler during
// Publish. Used to feed handler failures into monitoring without coupling
// the bus to a metrics backend.
func (b *MemoryBus) OnHandlerError(fn func(eventType Type, err error)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.onHandlerError = fn
}
