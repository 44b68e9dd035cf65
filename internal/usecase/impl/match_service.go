package impl

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"adradar/config"
	"adradar/internal/domain/entity"
	"adradar/internal/domain/repository"
	"adradar/internal/usecase"
	"adradar/internal/vmap"
)

// maxAds caps how many matched ads one manifest schedules.
const maxAds = 3

type matchService struct {
	geoIndex       repository.GeoIndex
	metadataStore  repository.MetadataStore
	renderer       vmap.Renderer
	searchRadiusKm float64
	logger         *slog.Logger
}

// NewMatchService creates a new match service instance
func NewMatchService(
	cfg *config.Config,
	geoIndex repository.GeoIndex,
	metadataStore repository.MetadataStore,
	logger *slog.Logger,
) usecase.MatchUsecase {
	return &matchService{
		geoIndex:       geoIndex,
		metadataStore:  metadataStore,
		renderer:       vmap.Renderer{StubLinearURL: cfg.Ads.StubLinearURL},
		searchRadiusKm: cfg.Ads.SearchRadiusKm,
		logger:         logger,
	}
}

// Match runs the radius match and renders the VMAP manifest. Backend failures
// degrade to an empty manifest so the player keeps running ad-free.
func (s *matchService) Match(ctx context.Context, input *usecase.MatchInput) string {
	ads, err := s.matchAds(ctx, input.Latitude, input.Longitude)
	if err != nil {
		s.logger.ErrorContext(ctx, "Ad matching failed, serving empty manifest",
			slog.Float64("lat", input.Latitude),
			slog.Float64("lng", input.Longitude),
			slog.String("error", err.Error()),
		)

		return vmap.EmptyManifest()
	}

	// Zero matches is a normal outcome: the player gets the minimal empty
	// document, never placeholder breaks.
	if len(ads) == 0 {
		s.logger.InfoContext(ctx, "No ads matched, serving empty manifest",
			slog.Float64("lat", input.Latitude),
			slog.Float64("lng", input.Longitude),
		)

		return vmap.EmptyManifest()
	}

	offsets := vmap.Schedule(input.DurationSec)

	s.logger.InfoContext(ctx, "Manifest generated",
		slog.Float64("lat", input.Latitude),
		slog.Float64("lng", input.Longitude),
		slog.Float64("durationSec", input.DurationSec),
		slog.Int("matchedAds", len(ads)),
		slog.Int("breaks", len(offsets)),
	)

	return s.renderer.Render(ads, offsets)
}

// candidateOutcome classifies how one geo hit fared against its own metadata.
type candidateOutcome int

const (
	candidateMatched candidateOutcome = iota
	candidateOutOfRange
	candidateSkippedMissing
	candidateSkippedCorrupt
)

// matchAds searches the index around the viewer and keeps candidates whose
// own radius covers the viewer's distance, nearest first, capped at maxAds.
func (s *matchService) matchAds(ctx context.Context, lat, lng float64) ([]entity.MatchedAd, error) {
	hits, err := s.geoIndex.Search(ctx, lat, lng, s.searchRadiusKm)
	if err != nil {
		return nil, err
	}

	matched := make([]entity.MatchedAd, 0, maxAds)
	for _, hit := range hits {
		if len(matched) == maxAds {
			break
		}

		ad, outcome, err := s.evaluateCandidate(ctx, hit)
		if err != nil {
			return nil, err
		}
		if outcome == candidateMatched {
			matched = append(matched, ad)
		}
	}

	return matched, nil
}

// evaluateCandidate joins one geo hit with its attributes and decides whether
// the ad's own radius covers the viewer. Stale and corrupt records are skip
// outcomes, not errors.
func (s *matchService) evaluateCandidate(ctx context.Context, hit repository.GeoMatch) (entity.MatchedAd, candidateOutcome, error) {
	attrs, err := s.metadataStore.Get(ctx, hit.AdID)
	if err != nil {
		if errors.Is(err, repository.ErrMetadataNotFound) {
			// Indexed point without attributes; stale entry, skip quietly.
			return entity.MatchedAd{}, candidateSkippedMissing, nil
		}

		return entity.MatchedAd{}, candidateSkippedMissing, err
	}
	if len(attrs) == 0 {
		return entity.MatchedAd{}, candidateSkippedMissing, nil
	}

	adRadiusKm, err := strconv.ParseFloat(attrs[entity.MetaRadiusKm], 64)
	if err != nil || adRadiusKm < 0 {
		s.logger.WarnContext(ctx, "Skipping ad with invalid radius",
			slog.String("adId", hit.AdID),
			slog.String("radiusKm", attrs[entity.MetaRadiusKm]),
		)

		return entity.MatchedAd{}, candidateSkippedCorrupt, nil
	}

	if hit.DistanceKm > adRadiusKm {
		return entity.MatchedAd{}, candidateOutOfRange, nil
	}

	return entity.MatchedAd{
		AdID:       hit.AdID,
		DistanceKm: hit.DistanceKm,
		Metadata:   attrs,
	}, candidateMatched, nil
}
