// Package service declares domain-level collaborator interfaces.
package service

import (
	"context"
)

// AdEventTypeCreated is emitted after a new ad is fully registered.
const AdEventTypeCreated = "ad.created"

// AdEvent describes a change to the ad inventory, published for downstream
// consumers (cache warmers, reporting).
type AdEvent struct {
	RequestID   string  `json:"request_id,omitempty"` // For distributed tracing
	EventType   string  `json:"event_type"`
	AdID        string  `json:"ad_id"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	RadiusKm    float64 `json:"radius_km"`
	Description string  `json:"description,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAdEvent publishes an ad inventory event for async processing
	PublishAdEvent(ctx context.Context, event *AdEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
