package main

import (
	"net/http"

	"nearby-weather/internal/types"

	"github.com/gin-gonic/gin"
)

// handleListPois godoc
// @Summary List points of interest
// @Description List the known points of interest, optionally restricted to a bounding region
// @Tags pois
// @Produce json
// @Param south_lat query number false "Southern latitude of the region"
// @Param west_lng query number false "Western longitude of the region"
// @Param north_lat query number false "Northern latitude of the region"
// @Param east_lng query number false "Eastern longitude of the region"
// @Success 200 {object} map[string][]types.PointOfInterest
// @Failure 500 {object} map[string]string
// @Router /pois [get]
func (app *App) handleListPois(c *gin.Context) {
	var input struct {
		SouthLat float64 `form:"south_lat"`
		WestLng  float64 `form:"west_lng"`
		NorthLat float64 `form:"north_lat"`
		EastLng  float64 `form:"east_lng"`
	}
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	region := types.Bounds{
		SouthWest: types.NewCoords(input.SouthLat, input.WestLng),
		NorthEast: types.NewCoords(input.NorthLat, input.EastLng),
	}

	pois, err := app.poiSource.ListPOIs(c.Request.Context(), region)
	if err != nil {
		app.logger.Error("failed to list POIs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list POIs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pois": pois})
}
