package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jeugdwerk/games-api/internal/core/ports"
)

// ReferenceHandler serves the tag and intensity taxonomies.
type ReferenceHandler struct {
	tags        ports.TagService
	intensities ports.IntensityService
}

func NewReferenceHandler(tags ports.TagService, intensities ports.IntensityService) *ReferenceHandler {
	return &ReferenceHandler{tags: tags, intensities: intensities}
}

// ListTags handles GET /tags.
//
// @Summary      Get all tags
// @Tags         reference
// @Produce      json
// @Success      200  {array}  tagResponse
// @Router       /tags [get]
func (h *ReferenceHandler) ListTags(c echo.Context) error {
	tags, err := h.tags.GetAll(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]tagResponse, len(tags))
	for i := range tags {
		out[i] = toTagResponse(&tags[i])
	}
	return c.JSON(http.StatusOK, out)
}

// GetTag handles GET /tags/:id.
//
// @Summary      Get a tag by id
// @Tags         reference
// @Produce      json
// @Param        id   path      string  true  "Tag id"
// @Success      200  {object}  tagResponse
// @Failure      404  {object}  messageResponse
// @Router       /tags/{id} [get]
func (h *ReferenceHandler) GetTag(c echo.Context) error {
	tag, err := h.tags.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTagResponse(tag))
}

// ListIntensities handles GET /intensities, ordered by rank ascending.
//
// @Summary      Get all intensities
// @Tags         reference
// @Produce      json
// @Success      200  {array}  intensityResponse
// @Router       /intensities [get]
func (h *ReferenceHandler) ListIntensities(c echo.Context) error {
	intensities, err := h.intensities.GetAll(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]intensityResponse, len(intensities))
	for i := range intensities {
		out[i] = toIntensityResponse(&intensities[i])
	}
	return c.JSON(http.StatusOK, out)
}

// GetIntensity handles GET /intensities/:id.
//
// @Summary      Get an intensity by id
// @Tags         reference
// @Produce      json
// @Param        id   path      string  true  "Intensity id"
// @Success      200  {object}  intensityResponse
// @Failure      404  {object}  messageResponse
// @Router       /intensities/{id} [get]
func (h *ReferenceHandler) GetIntensity(c echo.Context) error {
	intensity, err := h.intensities.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toIntensityResponse(intensity))
}
