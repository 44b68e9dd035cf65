// Package impl provides the concrete usecase implementations.
package impl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"adradar/config"
	"adradar/internal/domain/constants"
	"adradar/internal/domain/entity"
	domainerrors "adradar/internal/domain/errors"
	"adradar/internal/domain/repository"
	"adradar/internal/domain/service"
	"adradar/internal/usecase"

	"github.com/google/uuid"
)

const (
	videoCreativeKey = "video.mp4"
	imageCreativeKey = "image.jpg"
)

type adService struct {
	adRepo        repository.AdRepository
	creativeStore repository.CreativeStore
	geoIndex      repository.GeoIndex
	metadataStore repository.MetadataStore
	publisher     service.EventPublisher
	logger        *slog.Logger
	baseURL       string
}

// NewAdService creates a new ad registry service instance
func NewAdService(
	cfg *config.Config,
	adRepo repository.AdRepository,
	creativeStore repository.CreativeStore,
	geoIndex repository.GeoIndex,
	metadataStore repository.MetadataStore,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.AdUsecase {
	return &adService{
		adRepo:        adRepo,
		creativeStore: creativeStore,
		geoIndex:      geoIndex,
		metadataStore: metadataStore,
		publisher:     publisher,
		logger:        logger,
		baseURL:       cfg.Ads.BaseURL,
	}
}

// CreateAd registers a new ad: persists the record, stores creative binaries,
// indexes the location, and publishes an inventory event.
func (s *adService) CreateAd(ctx context.Context, input *usecase.CreateAdInput) (*entity.Ad, error) {
	ad := &entity.Ad{
		ID:          uuid.New(),
		Description: input.Description,
		Budget:      input.Budget,
		RadiusKm:    input.RadiusKm,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
	}

	if input.Video != nil {
		key := creativeKey(ad.ID, constants.CreativeKindVideo)
		if err := s.creativeStore.Save(ctx, key, input.Video.Body, "video/mp4"); err != nil {
			return nil, domainerrors.ErrCreativeStoreFailed.WrapMessage(err.Error())
		}
		ad.VideoURL = s.creativeURL(ad.ID, constants.CreativeKindVideo)
	}
	if input.Image != nil {
		key := creativeKey(ad.ID, constants.CreativeKindImage)
		if err := s.creativeStore.Save(ctx, key, input.Image.Body, "image/jpeg"); err != nil {
			return nil, domainerrors.ErrCreativeStoreFailed.WrapMessage(err.Error())
		}
		ad.ImageURL = s.creativeURL(ad.ID, constants.CreativeKindImage)
	}

	if err := s.adRepo.CreateAd(ctx, ad); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to persist ad")
	}

	adID := ad.ID.String()
	if err := s.geoIndex.Index(ctx, adID, ad.Latitude, ad.Longitude); err != nil {
		return nil, fmt.Errorf("failed to index ad location: %w", err)
	}
	if err := s.metadataStore.Put(ctx, adID, ad.Attributes()); err != nil {
		return nil, fmt.Errorf("failed to store ad metadata: %w", err)
	}

	// Best effort; the ad is already live for matching.
	event := &service.AdEvent{
		EventType:   service.AdEventTypeCreated,
		AdID:        adID,
		Latitude:    ad.Latitude,
		Longitude:   ad.Longitude,
		RadiusKm:    ad.RadiusKm,
		Description: ad.Description,
	}
	if err := s.publisher.PublishAdEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish ad created event",
			slog.String("adId", adID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "Ad registered",
		slog.String("adId", adID),
		slog.Float64("lat", ad.Latitude),
		slog.Float64("lng", ad.Longitude),
		slog.Float64("radiusKm", ad.RadiusKm),
	)

	return ad, nil
}

// GetAd retrieves one ad record by ID
func (s *adService) GetAd(ctx context.Context, id uuid.UUID) (*entity.Ad, error) {
	ad, err := s.adRepo.FindAdByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAdNotFound) {
			return nil, domainerrors.ErrAdNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to fetch ad")
	}

	return ad, nil
}

// ListAds retrieves all registered ads ordered by creation time
func (s *adService) ListAds(ctx context.Context) ([]*entity.Ad, error) {
	ads, err := s.adRepo.ListAds(ctx)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list ads")
	}

	return ads, nil
}

// OpenCreative streams the stored creative of the given kind, returning the
// reader and its content type.
func (s *adService) OpenCreative(ctx context.Context, id uuid.UUID, kind string) (io.ReadCloser, string, error) {
	var contentType string
	switch kind {
	case constants.CreativeKindVideo:
		contentType = "video/mp4"
	case constants.CreativeKindImage:
		contentType = "image/jpeg"
	default:
		return nil, "", domainerrors.ErrCreativeNotFound
	}

	reader, err := s.creativeStore.Open(ctx, creativeKey(id, kind))
	if err != nil {
		if errors.Is(err, repository.ErrCreativeNotFound) {
			return nil, "", domainerrors.ErrCreativeNotFound
		}

		return nil, "", domainerrors.ErrCreativeStoreFailed.WrapMessage(err.Error())
	}

	return reader, contentType, nil
}

func (s *adService) creativeURL(id uuid.UUID, kind string) string {
	return fmt.Sprintf("%s/api/ads/%s/%s", s.baseURL, id, kind)
}

func creativeKey(id uuid.UUID, kind string) string {
	name := videoCreativeKey
	if kind == constants.CreativeKindImage {
		name = imageCreativeKey
	}

	return fmt.Sprintf("%s/%s", id, name)
}
