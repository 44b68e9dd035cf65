package impl

import (
	"context"
	"sync"

	"adradar/internal/domain/entity"
	"adradar/internal/domain/repository"
	"adradar/internal/domain/service"

	"github.com/google/uuid"
)

// memoryAdRepo is an in-memory AdRepository for tests.
type memoryAdRepo struct {
	mu  sync.Mutex
	ads []*entity.Ad
}

func (r *memoryAdRepo) CreateAd(_ context.Context, ad *entity.Ad) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *ad
	r.ads = append(r.ads, &copied)

	return nil
}

func (r *memoryAdRepo) FindAdByID(_ context.Context, id uuid.UUID) (*entity.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ad := range r.ads {
		if ad.ID == id {
			copied := *ad

			return &copied, nil
		}
	}

	return nil, repository.ErrAdNotFound
}

func (r *memoryAdRepo) ListAds(_ context.Context) ([]*entity.Ad, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Ad, 0, len(r.ads))
	for _, ad := range r.ads {
		copied := *ad
		out = append(out, &copied)
	}

	return out, nil
}

// failingAdRepo returns the configured error from every method.
type failingAdRepo struct {
	err error
}

func (r *failingAdRepo) CreateAd(context.Context, *entity.Ad) error { return r.err }

func (r *failingAdRepo) FindAdByID(context.Context, uuid.UUID) (*entity.Ad, error) {
	return nil, r.err
}

func (r *failingAdRepo) ListAds(context.Context) ([]*entity.Ad, error) { return nil, r.err }

// failingGeoIndex fails every search.
type failingGeoIndex struct {
	err error
}

func (g *failingGeoIndex) Index(context.Context, string, float64, float64) error { return g.err }

func (g *failingGeoIndex) Search(context.Context, float64, float64, float64) ([]repository.GeoMatch, error) {
	return nil, g.err
}

// staticGeoIndex serves a fixed result set, ignoring the query.
type staticGeoIndex struct {
	matches []repository.GeoMatch
}

func (g *staticGeoIndex) Index(context.Context, string, float64, float64) error { return nil }

func (g *staticGeoIndex) Search(context.Context, float64, float64, float64) ([]repository.GeoMatch, error) {
	return g.matches, nil
}

// failingMetadataStore fails every get.
type failingMetadataStore struct {
	err error
}

func (m *failingMetadataStore) Put(context.Context, string, map[string]string) error { return m.err }

func (m *failingMetadataStore) Get(context.Context, string) (map[string]string, error) {
	return nil, m.err
}

// recordingPublisher captures every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.AdEvent
	err    error
}

func (p *recordingPublisher) PublishAdEvent(_ context.Context, event *service.AdEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []*service.AdEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]*service.AdEvent(nil), p.events...)
}
