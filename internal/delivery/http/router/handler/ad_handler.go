// Package handler contains the Echo HTTP handlers.
package handler

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"adradar/internal/delivery/http/response"
	"adradar/internal/domain/constants"
	domainerrors "adradar/internal/domain/errors"
	"adradar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AdHandlerParams holds dependencies for AdHandler, injected by Fx.
type AdHandlerParams struct {
	fx.In

	AdUC   usecase.AdUsecase
	Logger *slog.Logger
}

// AdHandler holds dependencies for ad registry handlers
type AdHandler struct {
	adUC   usecase.AdUsecase
	logger *slog.Logger
}

// NewAdHandler is the constructor for AdHandler
func NewAdHandler(params AdHandlerParams) *AdHandler {
	return &AdHandler{
		adUC:   params.AdUC,
		logger: params.Logger,
	}
}

// CreateAd handles the multipart ad registration form. Coordinates, radius,
// description and budget arrive as form fields; video and image files are
// both optional.
func (h *AdHandler) CreateAd(c echo.Context) error {
	lat, err := parseFormFloat(c, "lat")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "lat must be a number")
	}
	lng, err := parseFormFloat(c, "lng")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "lng must be a number")
	}
	radiusKm, err := parseFormFloat(c, "radiusKm")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "radiusKm must be a number")
	}

	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return response.BadRequest(c, "INVALID_COORDINATES", "Latitude or longitude out of range")
	}
	if radiusKm < 0 {
		return response.BadRequest(c, "INVALID_INPUT", "radiusKm must not be negative")
	}

	input := &usecase.CreateAdInput{
		Description: c.FormValue("description"),
		Budget:      c.FormValue("budget"),
		RadiusKm:    radiusKm,
		Latitude:    lat,
		Longitude:   lng,
	}

	video, closeVideo, err := openFormFile(c, "video")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "video upload is unreadable")
	}
	if closeVideo != nil {
		defer closeVideo()
	}
	input.Video = video

	image, closeImage, err := openFormFile(c, "image")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "image upload is unreadable")
	}
	if closeImage != nil {
		defer closeImage()
	}
	input.Image = image

	ad, err := h.adUC.CreateAd(c.Request().Context(), input)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"adId": ad.ID.String()}, "Ad created successfully")
}

// GetAd handles retrieving one ad record by ID
func (h *AdHandler) GetAd(c echo.Context) error {
	adID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid ad ID")
	}

	ad, err := h.adUC.GetAd(c.Request().Context(), adID)
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, ad, "Ad retrieved successfully")
}

// ListAds handles retrieving all registered ads
func (h *AdHandler) ListAds(c echo.Context) error {
	ads, err := h.adUC.ListAds(c.Request().Context())
	if err != nil {
		return h.handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, ads, "Ads retrieved successfully")
}

// GetVideo streams the stored video creative for an ad
func (h *AdHandler) GetVideo(c echo.Context) error {
	return h.serveCreative(c, constants.CreativeKindVideo, "video.mp4")
}

// GetImage streams the stored image creative for an ad
func (h *AdHandler) GetImage(c echo.Context) error {
	return h.serveCreative(c, constants.CreativeKindImage, "image.jpg")
}

func (h *AdHandler) serveCreative(c echo.Context, kind, filename string) error {
	adID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid ad ID")
	}

	reader, contentType, err := h.adUC.OpenCreative(c.Request().Context(), adID, kind)
	if err != nil {
		return h.handleAppError(c, err)
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))

	return c.Stream(http.StatusOK, contentType, reader)
}

// handleAppError handles application errors
func (h *AdHandler) handleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	return errors.WithStack(err)
}

func parseFormFloat(c echo.Context, name string) (float64, error) {
	return strconv.ParseFloat(c.FormValue(name), 64)
}

// openFormFile opens an optional multipart file field. A missing field is not
// an error; the returned close func is nil in that case.
func openFormFile(c echo.Context, name string) (*usecase.CreativeUpload, func(), error) {
	fileHeader, err := c.FormFile(name)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, nil
		}

		return nil, nil, err
	}

	return openUpload(fileHeader)
}

func openUpload(fileHeader *multipart.FileHeader) (*usecase.CreativeUpload, func(), error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}

	upload := &usecase.CreativeUpload{
		Body:        file,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}

	return upload, func() { _ = file.Close() }, nil
}
