package impl

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"adradar/config"
	"adradar/internal/domain/entity"
	"adradar/internal/domain/repository"
	"adradar/internal/infra/geo/memory"
	"adradar/internal/usecase"
	"adradar/internal/vmap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Ads: &config.AdsConfig{
			SearchRadiusKm: 1.0,
			BaseURL:        "http://ads.example.com",
			StubLinearURL:  "http://ads.example.com/blank-15s.webm",
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newMemoryMatchService(t *testing.T) (usecase.MatchUsecase, *memory.GridIndex, *memory.MetadataStore) {
	t.Helper()

	geoIndex := memory.NewGridIndex(0.5)
	metadataStore := memory.NewMetadataStore()
	svc := NewMatchService(testConfig(), geoIndex, metadataStore, discardLogger())

	return svc, geoIndex, metadataStore
}

func indexAd(t *testing.T, geoIndex *memory.GridIndex, store *memory.MetadataStore, adID string, lat, lng float64, attrs map[string]string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, geoIndex.Index(ctx, adID, lat, lng))
	require.NoError(t, store.Put(ctx, adID, attrs))
}

func videoAttrs(radiusKm string) map[string]string {
	return map[string]string{
		entity.MetaDescription: "coffee promo",
		entity.MetaBudget:      "500.00",
		entity.MetaRadiusKm:    radiusKm,
		entity.MetaVideoURL:    "http://ads.example.com/api/ads/x/video",
	}
}

func TestMatchService_FullPipeline(t *testing.T) {
	svc, geoIndex, store := newMemoryMatchService(t)

	// Viewer in central Bangalore, one ad roughly 120m away.
	indexAd(t, geoIndex, store, "ad-near", 12.9726, 77.5946, videoAttrs("0.5"))

	manifest := svc.Match(context.Background(), &usecase.MatchInput{
		Latitude:    12.9716,
		Longitude:   77.5946,
		DurationSec: 60,
	})

	assert.Contains(t, manifest, `breakId="preroll"`)
	assert.Contains(t, manifest, `breakId="midroll1"`)
	assert.Contains(t, manifest, `breakId="midroll2"`)
	assert.Contains(t, manifest, `timeOffset="00:00:20.000"`)
	assert.Contains(t, manifest, `timeOffset="00:00:40.000"`)
	// Single match repeats across every scheduled break.
	assert.Equal(t, 3, strings.Count(manifest, "http://ads.example.com/api/ads/x/video"))
}

func TestMatchService_NoAdsYieldsEmptyManifest(t *testing.T) {
	svc, _, _ := newMemoryMatchService(t)

	manifest := svc.Match(context.Background(), &usecase.MatchInput{
		Latitude:    12.9716,
		Longitude:   77.5946,
		DurationSec: 60,
	})

	assert.Equal(t, vmap.EmptyManifest(), manifest)
	// Never placeholder breaks for an empty match set, whatever the duration.
	assert.NotContains(t, manifest, "AdBreak")
}

func TestMatchService_CapsAtThreeAds(t *testing.T) {
	svc, geoIndex, store := newMemoryMatchService(t)

	// Five ads at increasing distance, all covering the viewer.
	coords := []struct {
		id  string
		lat float64
	}{
		{"ad-1", 12.9717},
		{"ad-2", 12.9719},
		{"ad-3", 12.9721},
		{"ad-4", 12.9723},
		{"ad-5", 12.9725},
	}
	for _, c := range coords {
		attrs := videoAttrs("1.0")
		attrs[entity.MetaVideoURL] = "http://ads.example.com/api/ads/" + c.id + "/video"
		indexAd(t, geoIndex, store, c.id, c.lat, 77.5946, attrs)
	}

	manifest := svc.Match(context.Background(), &usecase.MatchInput{
		Latitude:    12.9716,
		Longitude:   77.5946,
		DurationSec: 60,
	})

	// The three closest make it in, furthest two do not.
	assert.Contains(t, manifest, "ad-1")
	assert.Contains(t, manifest, "ad-2")
	assert.Contains(t, manifest, "ad-3")
	assert.NotContains(t, manifest, "ad-4")
	assert.NotContains(t, manifest, "ad-5")
}

func TestMatchService_NearestAdFillsFirstBreak(t *testing.T) {
	svc, geoIndex, store := newMemoryMatchService(t)

	farAttrs := videoAttrs("1.0")
	farAttrs[entity.MetaVideoURL] = "http://ads.example.com/api/ads/far/video"
	indexAd(t, geoIndex, store, "ad-far", 12.9760, 77.5946, farAttrs)

	nearAttrs := videoAttrs("1.0")
	nearAttrs[entity.MetaVideoURL] = "http://ads.example.com/api/ads/near/video"
	indexAd(t, geoIndex, store, "ad-near", 12.9718, 77.5946, nearAttrs)

	manifest := svc.Match(context.Background(), &usecase.MatchInput{
		Latitude:    12.9716,
		Longitude:   77.5946,
		DurationSec: 60,
	})

	nearIdx := strings.Index(manifest, "/api/ads/near/video")
	farIdx := strings.Index(manifest, "/api/ads/far/video")
	require.GreaterOrEqual(t, nearIdx, 0)
	require.GreaterOrEqual(t, farIdx, 0)
	assert.Less(t, nearIdx, farIdx)
}

func TestMatchService_AdRadiusExcludesDistantViewer(t *testing.T) {
	svc, geoIndex, store := newMemoryMatchService(t)

	// Ad is ~550m away but only valid within 100m of itself.
	indexAd(t, geoIndex, store, "ad-tight", 12.9766, 77.5946, videoAttrs("0.1"))

	manifest := svc.Match(context.Background(), &usecase.MatchInput{
		Latitude:    12.9716,
		Longitude:   77.5946,
		DurationSec: 30,
	})

	assert.Equal(t, vmap.EmptyManifest(), manifest)
}

func TestMatchService_SkipsUnparsableRadius(t *testing.T) {
	svc, geoIndex, store := newMemoryMatchService(t)

	corrupt := videoAttrs("not-a-number")
	indexAd(t, geoIndex, store, "ad-corrupt", 12.9718, 77.5946, corrupt)

	good := videoAttrs("1.0")
	good[entity.MetaVideoURL] = "http://ads.example.com/api/ads/good/video"
	indexAd(t, geoIndex, store, "ad-good", 12.9720, 77.5946, good)

	manifest := svc.Match(context.Background(), &usecase.MatchInput{
		Latitude:    12.9716,
		Longitude:   77.5946,
		DurationSec: 30,
	})

	assert.Contains(t, manifest, "/api/ads/good/video")
	assert.NotContains(t, manifest, "ad-corrupt")
}

func TestMatchService_SkipsIndexedAdWithoutMetadata(t *testing.T) {
	svc, geoIndex, store := newMemoryMatchService(t)

	// Stale index entry, no attribute set behind it.
	require.NoError(t, geoIndex.Index(context.Background(), "ad-stale", 12.9718, 77.5946))

	good := videoAttrs("1.0")
	good[entity.MetaVideoURL] = "http://ads.example.com/api/ads/good/video"
	indexAd(t, geoIndex, store, "ad-good", 12.9720, 77.5946, good)

	manifest := svc.Match(context.Background(), &usecase.MatchInput{
		Latitude:    12.9716,
		Longitude:   77.5946,
		DurationSec: 30,
	})

	assert.Contains(t, manifest, "/api/ads/good/video")
}

func TestMatchService_SearchFailureDegradesToEmptyManifest(t *testing.T) {
	svc := NewMatchService(
		testConfig(),
		&failingGeoIndex{err: errors.New("backend down")},
		memory.NewMetadataStore(),
		discardLogger(),
	)

	manifest := svc.Match(context.Background(), &usecase.MatchInput{
		Latitude:    12.9716,
		Longitude:   77.5946,
		DurationSec: 60,
	})

	assert.Equal(t, vmap.EmptyManifest(), manifest)
}

func TestMatchService_MetadataFailureDegradesToEmptyManifest(t *testing.T) {
	svc := NewMatchService(
		testConfig(),
		&staticGeoIndex{matches: []repository.GeoMatch{{AdID: "ad-1", DistanceKm: 0.1}}},
		&failingMetadataStore{err: errors.New("store unavailable")},
		discardLogger(),
	)

	manifest := svc.Match(context.Background(), &usecase.MatchInput{
		Latitude:    12.9716,
		Longitude:   77.5946,
		DurationSec: 60,
	})

	assert.Equal(t, vmap.EmptyManifest(), manifest)
}

func TestMatchService_Deterministic(t *testing.T) {
	svc, geoIndex, store := newMemoryMatchService(t)
	indexAd(t, geoIndex, store, "ad-near", 12.9720, 77.5946, videoAttrs("1.0"))

	input := &usecase.MatchInput{Latitude: 12.9716, Longitude: 77.5946, DurationSec: 45}
	first := svc.Match(context.Background(), input)
	second := svc.Match(context.Background(), input)

	assert.Equal(t, first, second)
}
