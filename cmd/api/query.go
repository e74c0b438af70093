package main

import (
	"errors"
	"net/http"

	"nearby-weather/internal/geoquery"
	"nearby-weather/internal/navigation"
	"nearby-weather/internal/types"

	"github.com/gin-gonic/gin"
)

// QueryInput defines the body of a search request. The coordinate fields
// carry no "required" binding: gin's required rejects zero values, and 0 is a
// legal latitude or longitude. Range checking happens in the core.
type QueryInput struct {
	Origin *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"origin" binding:"required"`
	Category       string  `json:"category"`
	BandSizeMiles  float64 `json:"band_size_miles"`
	MaxRadiusMiles float64 `json:"max_radius_miles"`
}

// handleQuery godoc
// @Summary Start a proximity search
// @Description Rank POIs by distance from the origin, enrich the nearest radius band with current weather, and return a navigation cursor
// @Tags navigation
// @Accept json
// @Produce json
// @Param request body QueryInput true "Search request"
// @Success 200 {object} navigation.QueryResult
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /query [post]
func (app *App) handleQuery(c *gin.Context) {
	var input QueryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := app.engine.NewQuery(c.Request.Context(), navigation.QueryRequest{
		Origin:         types.NewCoords(input.Origin.Latitude, input.Origin.Longitude),
		Category:       types.Category(input.Category),
		BandSizeMiles:  input.BandSizeMiles,
		MaxRadiusMiles: input.MaxRadiusMiles,
	})
	if err != nil {
		// Validation errors from the core map to 400
		if errors.Is(err, types.ErrInvalidLatitude) ||
			errors.Is(err, types.ErrInvalidLongitude) ||
			errors.Is(err, geoquery.ErrInvalidSearchParams) ||
			errors.Is(err, navigation.ErrUnknownCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, navigation.ErrStaleCursor) {
			// This query was superseded while it was still enriching
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}

		app.logger.Error("query failed",
			"latitude", input.Origin.Latitude,
			"longitude", input.Origin.Longitude,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}
