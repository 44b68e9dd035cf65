// Package memory provides in-process implementations of the geo index and
// metadata store, suitable for a single-node deployment and for tests.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"adradar/internal/domain/repository"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const (
	// 1 degree latitude ≈ 111 km; longitude shrinks with cos(lat).
	kmPerDegreeLat = 111.0

	defaultCellSizeKm = 0.5

	// Guard against degenerate cell spans near the poles.
	minCosLat = 0.01
)

// GridIndex implements repository.GeoIndex with a simple grid-based spatial
// index. Cells are addressed in absolute degree space so inserts never
// require a rebuild. All operations are safe for concurrent use.
type GridIndex struct {
	mu          sync.RWMutex
	points      map[string]orb.Point // id -> (lng, lat)
	grid        map[gridKey]map[string]struct{}
	cellSizeLat float64 // grid cell size in latitude degrees
	cellSizeLng float64 // grid cell size in longitude degrees (at the equator)
}

type gridKey struct {
	latCell int
	lngCell int
}

// NewGridIndex creates a grid index. cellSizeKm tunes the cell size; values
// at or below zero fall back to the default.
func NewGridIndex(cellSizeKm float64) *GridIndex {
	if cellSizeKm <= 0 {
		cellSizeKm = defaultCellSizeKm
	}

	return &GridIndex{
		points:      make(map[string]orb.Point),
		grid:        make(map[gridKey]map[string]struct{}),
		cellSizeLat: cellSizeKm / kmPerDegreeLat,
		cellSizeLng: cellSizeKm / kmPerDegreeLat,
	}
}

// Index inserts or replaces the location for adID. Idempotent.
func (g *GridIndex) Index(_ context.Context, adID string, lat, lng float64) error {
	point := orb.Point{lng, lat}
	key := g.cellKey(lat, lng)

	g.mu.Lock()
	defer g.mu.Unlock()

	if old, ok := g.points[adID]; ok {
		oldKey := g.cellKey(old.Lat(), old.Lon())
		if cell, ok := g.grid[oldKey]; ok {
			delete(cell, adID)
			if len(cell) == 0 {
				delete(g.grid, oldKey)
			}
		}
	}

	g.points[adID] = point
	cell, ok := g.grid[key]
	if !ok {
		cell = make(map[string]struct{})
		g.grid[key] = cell
	}
	cell[adID] = struct{}{}

	return nil
}

// Search returns every indexed point within radiusKm of (lat, lng), ordered
// by ascending distance. Exact-distance ties break by ascending ad ID so
// repeated queries over identical state yield identical output.
func (g *GridIndex) Search(_ context.Context, lat, lng, radiusKm float64) ([]repository.GeoMatch, error) {
	if radiusKm < 0 {
		return nil, nil
	}

	center := orb.Point{lng, lat}
	centerKey := g.cellKey(lat, lng)

	latSpan := int(math.Ceil(radiusKm/kmPerDegreeLat/g.cellSizeLat)) + 1
	cosLat := math.Max(math.Abs(math.Cos(lat*math.Pi/180)), minCosLat)
	lngSpan := int(math.Ceil(radiusKm/(kmPerDegreeLat*cosLat)/g.cellSizeLng)) + 1

	g.mu.RLock()
	defer g.mu.RUnlock()

	var matches []repository.GeoMatch
	for dLat := -latSpan; dLat <= latSpan; dLat++ {
		for dLng := -lngSpan; dLng <= lngSpan; dLng++ {
			key := gridKey{latCell: centerKey.latCell + dLat, lngCell: centerKey.lngCell + dLng}
			cell, ok := g.grid[key]
			if !ok {
				continue
			}

			for adID := range cell {
				distKm := geo.DistanceHaversine(center, g.points[adID]) / 1000
				if distKm <= radiusKm {
					matches = append(matches, repository.GeoMatch{AdID: adID, DistanceKm: distKm})
				}
			}
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].DistanceKm != matches[j].DistanceKm {
			return matches[i].DistanceKm < matches[j].DistanceKm
		}

		return matches[i].AdID < matches[j].AdID
	})

	return matches, nil
}

// Size returns the number of indexed points.
func (g *GridIndex) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.points)
}

func (g *GridIndex) cellKey(lat, lng float64) gridKey {
	return gridKey{
		latCell: int(math.Floor(lat / g.cellSizeLat)),
		lngCell: int(math.Floor(lng / g.cellSizeLng)),
	}
}
