// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"adradar/internal/errors"
)

// ErrMetadataNotFound is returned when no attribute set is stored for an ad.
var ErrMetadataNotFound = errors.New("ad metadata not found")

// GeoMatch is one indexed point returned by a radius search.
type GeoMatch struct {
	AdID       string
	DistanceKm float64
}

// GeoIndex maintains point locations keyed by ad identifier.
// Implementations must be safe for concurrent inserts and queries; a search
// never observes a point without both coordinates set.
type GeoIndex interface {
	// Index inserts or replaces the location for an ad. Idempotent.
	Index(ctx context.Context, adID string, lat, lng float64) error

	// Search returns every indexed point whose great-circle distance from
	// (lat, lng) is at most radiusKm, with distances in kilometers.
	// Results are ordered by ascending distance.
	Search(ctx context.Context, lat, lng, radiusKm float64) ([]GeoMatch, error)
}

// MetadataStore maintains the named attribute mapping per ad identifier.
// Put replaces the full mapping atomically from the caller's perspective.
type MetadataStore interface {
	// Put stores or overwrites the full attribute mapping for an ad.
	Put(ctx context.Context, adID string, attrs map[string]string) error

	// Get returns a copy of the attribute mapping, or ErrMetadataNotFound.
	Get(ctx context.Context, adID string) (map[string]string, error)
}
