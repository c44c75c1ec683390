package metrics

import (
	"context"

	"github.com/alvinquach/fgo-planner-go/internal/event"
)

// collectedEventTypes are the event types the collector subscribes to.
var collectedEventTypes = []event.Type{
	event.AccountCreated,
	event.AccountUpdated,
	event.AccountDeleted,
	event.PlanCreated,
	event.PlanUpdated,
	event.PlanDeleted,
	event.PlanGroupChanged,
	event.PlanRequirementsComputed,
}

// EventMetricsCollector counts published events per type.
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new EventMetricsCollector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes the collector to every event type on the bus.
func (c *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range collectedEventTypes {
		t := eventType
		bus.Subscribe(t, func(ctx context.Context, e event.Event) error {
			EventsPublished.WithLabelValues(string(t)).Inc()
			return nil
		})
	}
	return nil
}
