// Package redis implements the geo index and metadata store on an external
// Redis instance, using GEO commands for the spatial side and hashes for the
// attribute side. One Store serves both capability groups.
package redis

import (
	"context"

	"adradar/internal/domain/repository"
	"adradar/internal/errors"

	"github.com/redis/go-redis/v9"
)

const (
	geoKey         = "ads:geo"
	metadataPrefix = "ads:metadata:"
)

// Store implements repository.GeoIndex and repository.MetadataStore.
type Store struct {
	client *redis.Client
}

// New creates a Redis-backed geo store.
func New(client *redis.Client) *Store {
	return &Store{client: client}
}

// Index inserts or replaces the location for adID via GEOADD.
func (s *Store) Index(ctx context.Context, adID string, lat, lng float64) error {
	err := s.client.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      adID,
		Latitude:  lat,
		Longitude: lng,
	}).Err()
	if err != nil {
		return errors.Wrap(err, "failed to geoadd ad location")
	}

	return nil
}

// Search runs GEOSEARCH with distances, ordered ascending.
func (s *Store) Search(ctx context.Context, lat, lng, radiusKm float64) ([]repository.GeoMatch, error) {
	locations, err := s.client.GeoSearchLocation(ctx, geoKey, &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Latitude:   lat,
			Longitude:  lng,
			Radius:     radiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
		},
		WithDist: true,
	}).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to geosearch ad locations")
	}

	matches := make([]repository.GeoMatch, 0, len(locations))
	for _, loc := range locations {
		matches = append(matches, repository.GeoMatch{
			AdID:       loc.Name,
			DistanceKm: loc.Dist,
		})
	}

	return matches, nil
}

// Put replaces the full attribute mapping for adID. The hash is deleted and
// rewritten in one pipeline so a re-put never leaves stale fields behind.
func (s *Store) Put(ctx context.Context, adID string, attrs map[string]string) error {
	key := metadataPrefix + adID

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(attrs) > 0 {
			pipe.HSet(ctx, key, attrs)
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to store ad metadata")
	}

	return nil
}

// Get returns the attribute mapping, or ErrMetadataNotFound for an empty hash.
func (s *Store) Get(ctx context.Context, adID string) (map[string]string, error) {
	attrs, err := s.client.HGetAll(ctx, metadataPrefix+adID).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to hgetall ad metadata")
	}
	if len(attrs) == 0 {
		return nil, repository.ErrMetadataNotFound
	}

	return attrs, nil
}

// Close releases the underlying client connection.
func (s *Store) Close() error {
	return errors.WithStack(s.client.Close())
}
