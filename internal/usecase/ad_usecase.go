// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"io"

	"adradar/internal/domain/entity"

	"github.com/google/uuid"
)

// CreativeUpload carries one uploaded creative stream into the registry.
type CreativeUpload struct {
	Body        io.Reader
	Filename    string
	ContentType string
}

// CreateAdInput represents the input for registering a new ad
type CreateAdInput struct {
	Description string  `json:"description"`
	Budget      string  `json:"budget"`
	RadiusKm    float64 `json:"radius_km"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`

	Video *CreativeUpload `json:"-"`
	Image *CreativeUpload `json:"-"`
}

// AdUsecase defines the interface for ad registry use cases
type AdUsecase interface {
	// CreateAd persists a new ad, stores its creatives, and indexes its location
	CreateAd(ctx context.Context, input *CreateAdInput) (*entity.Ad, error)

	// GetAd retrieves one ad record by ID
	GetAd(ctx context.Context, id uuid.UUID) (*entity.Ad, error)

	// ListAds retrieves all registered ads ordered by creation time
	ListAds(ctx context.Context) ([]*entity.Ad, error)

	// OpenCreative streams a stored creative of the given kind for an ad
	OpenCreative(ctx context.Context, id uuid.UUID, kind string) (io.ReadCloser, string, error)
}
