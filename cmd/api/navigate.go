package main

import (
	"errors"
	"net/http"

	"nearby-weather/internal/navigation"
	"nearby-weather/internal/types"

	"github.com/gin-gonic/gin"
)

// NavigateInput defines the body of a navigation request
type NavigateInput struct {
	Generation int64         `json:"generation" binding:"required"`
	Op         string        `json:"op" binding:"required"`
	Viewport   *types.Bounds `json:"viewport"`
}

// handleNavigate godoc
// @Summary Apply a cursor operation
// @Description Move the navigation cursor closer or farther, or widen the search radius; returns the updated cursor and, when the target left the viewport, a recenter directive
// @Tags navigation
// @Accept json
// @Produce json
// @Param request body NavigateInput true "Navigation request"
// @Success 200 {object} navigation.NavigateResult
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /navigate [post]
func (app *App) handleNavigate(c *gin.Context) {
	var input NavigateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := navigation.NavigateRequest{
		Generation: input.Generation,
		Op:         navigation.Op(input.Op),
	}
	if input.Viewport != nil {
		req.Viewport = *input.Viewport
	}

	result, err := app.engine.Navigate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, navigation.ErrUnknownOp) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, navigation.ErrStaleCursor) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}

		app.logger.Error("navigation failed",
			"generation", input.Generation,
			"op", input.Op,
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "navigation failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}
