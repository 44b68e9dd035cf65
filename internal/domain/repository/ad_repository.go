package repository

import (
	"context"

	"adradar/internal/domain/entity"
	"adradar/internal/errors"

	"github.com/google/uuid"
)

// ErrAdNotFound is returned when an ad record does not exist.
var ErrAdNotFound = errors.New("ad not found")

// AdRepository defines the interface for durable ad record operations.
// There is no delete path in the current scope.
type AdRepository interface {
	// CreateAd persists a new ad record.
	CreateAd(ctx context.Context, ad *entity.Ad) error

	// FindAdByID retrieves an ad by its unique ID.
	FindAdByID(ctx context.Context, id uuid.UUID) (*entity.Ad, error)

	// ListAds retrieves all stored ads ordered by creation time.
	ListAds(ctx context.Context) ([]*entity.Ad, error)
}
