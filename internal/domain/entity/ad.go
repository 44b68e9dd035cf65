// Package entity contains the core business objects of the project.
package entity

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Metadata attribute keys stored per ad in the metadata store.
const (
	MetaDescription = "description"
	MetaBudget      = "budget"
	MetaRadiusKm    = "radiusKm"
	MetaVideoURL    = "videoUrl"
	MetaImageURL    = "imageUrl"
)

// Ad is the durable record for a geolocated advertisement.
type Ad struct {
	ID          uuid.UUID `json:"id"`                  // Stable identifier, assigned at creation.
	Description string    `json:"description"`         // Free-text ad title/description.
	Budget      string    `json:"budget"`              // Decimal budget, descriptive only (not enforced).
	RadiusKm    float64   `json:"radius_km"`           // The ad's own validity radius in kilometers.
	Latitude    float64   `json:"latitude"`            // Geographic latitude of the ad placement.
	Longitude   float64   `json:"longitude"`           // Geographic longitude of the ad placement.
	VideoURL    string    `json:"video_url,omitempty"` // Absolute locator of the video creative, empty if none.
	ImageURL    string    `json:"image_url,omitempty"` // Absolute locator of the image creative, empty if none.
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Attributes builds the metadata map indexed by the geo store for matching.
// URL keys are only present when the ad carries the corresponding creative.
func (a *Ad) Attributes() map[string]string {
	attrs := map[string]string{
		MetaDescription: a.Description,
		MetaBudget:      a.Budget,
		MetaRadiusKm:    formatRadius(a.RadiusKm),
	}
	if a.VideoURL != "" {
		attrs[MetaVideoURL] = a.VideoURL
	}
	if a.ImageURL != "" {
		attrs[MetaImageURL] = a.ImageURL
	}

	return attrs
}

func formatRadius(radiusKm float64) string {
	return strconv.FormatFloat(radiusKm, 'f', -1, 64)
}

// MatchedAd is one accepted candidate from a radius match, ordered by distance.
type MatchedAd struct {
	AdID       string            // Identifier as stored in the geo index.
	DistanceKm float64           // Great-circle distance from the query point.
	Metadata   map[string]string // Snapshot of the ad's stored attributes.
}
