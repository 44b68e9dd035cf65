// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"adradar/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AdHandler    *handler.AdHandler
	MatchHandler *handler.MatchHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	adHandler    *handler.AdHandler
	matchHandler *handler.MatchHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		adHandler:    params.AdHandler,
		matchHandler: params.MatchHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	adsGroup := e.Group("/api/ads")
	{
		adsGroup.POST("/create", r.adHandler.CreateAd)
		adsGroup.POST("/match", r.matchHandler.Match)
		adsGroup.GET("", r.adHandler.ListAds)
		adsGroup.GET("/:id", r.adHandler.GetAd)
		adsGroup.GET("/:id/video", r.adHandler.GetVideo)
		adsGroup.GET("/:id/image", r.adHandler.GetImage)
	}
}
