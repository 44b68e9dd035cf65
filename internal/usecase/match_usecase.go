package usecase

import (
	"context"
)

// MatchInput represents one playback position asking for an ad schedule
type MatchInput struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DurationSec float64 `json:"duration_sec"`
}

// MatchUsecase defines the interface for the read-path manifest pipeline
type MatchUsecase interface {
	// Match runs the radius match and renders a VMAP manifest for the
	// request. It never fails: on any backend error it returns an empty,
	// well-formed manifest so playback continues ad-free.
	Match(ctx context.Context, input *MatchInput) string
}
