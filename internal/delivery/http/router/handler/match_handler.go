package handler

import (
	"log/slog"
	"math"
	"net/http"

	"adradar/internal/delivery/http/response"
	"adradar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// MatchHandlerParams holds dependencies for MatchHandler, injected by Fx.
type MatchHandlerParams struct {
	fx.In

	MatchUC usecase.MatchUsecase
	Logger  *slog.Logger
}

// MatchHandler serves the manifest endpoint for video players
type MatchHandler struct {
	matchUC usecase.MatchUsecase
	logger  *slog.Logger
}

// NewMatchHandler is the constructor for MatchHandler
func NewMatchHandler(params MatchHandlerParams) *MatchHandler {
	return &MatchHandler{
		matchUC: params.MatchUC,
		logger:  params.Logger,
	}
}

// MatchRequest represents the request body from the player
type MatchRequest struct {
	Lat      float64 `json:"lat" validate:"min=-90,max=90"`
	Lng      float64 `json:"lng" validate:"min=-180,max=180"`
	Duration float64 `json:"duration" validate:"min=0"`
}

// Match runs the ad match and returns the VMAP manifest as XML. The body is
// always a well-formed manifest and the status is always 200 once the input
// validates; an empty document plays through ad-free.
func (h *MatchHandler) Match(c echo.Context) error {
	var req MatchRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid match request")
	}

	if !isFinite(req.Lat) || !isFinite(req.Lng) || !isFinite(req.Duration) {
		return response.BadRequest(c, "INVALID_INPUT", "Coordinates and duration must be finite numbers")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	manifest := h.matchUC.Match(c.Request().Context(), &usecase.MatchInput{
		Latitude:    req.Lat,
		Longitude:   req.Lng,
		DurationSec: req.Duration,
	})

	return c.Blob(http.StatusOK, echo.MIMEApplicationXML, []byte(manifest))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
